// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"portal/config"
	deliverycontext "portal/internal/delivery/context"
	domainerrors "portal/internal/domain/errors"
	"portal/internal/domain/registration"
	"portal/internal/domain/repository"
	"portal/internal/domain/service"
	"portal/internal/security"
	"portal/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// registrationService implements the RegistrationUsecase interface.
type registrationService struct {
	sessions    service.RegistrationStore
	tokens      service.TokenStore
	sectionRepo repository.SectionRepository
	sessionTTL  time.Duration
	csrfTTL     time.Duration
	logger      *slog.Logger
	now         func() time.Time
}

// RegistrationServiceParams holds dependencies for registrationService, injected by Fx.
type RegistrationServiceParams struct {
	fx.In

	Sessions    service.RegistrationStore
	Tokens      service.TokenStore
	SectionRepo repository.SectionRepository
	Config      *config.Config
	Logger      *slog.Logger
}

// NewRegistrationService is the constructor for registrationService.
func NewRegistrationService(params RegistrationServiceParams) usecase.RegistrationUsecase {
	return &registrationService{
		sessions:    params.Sessions,
		tokens:      params.Tokens,
		sectionRepo: params.SectionRepo,
		sessionTTL:  params.Config.Registration.SessionTTL,
		csrfTTL:     params.Config.Registration.CSRFTTL,
		logger:      params.Logger,
		now:         time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *registrationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// StartSession opens a fresh sign-up session. The school id is generated
// here, exactly once per attempt; the CSRF token issued with the session is
// recorded so mutating requests can be checked against it.
func (srv *registrationService) StartSession(ctx context.Context) (*usecase.StartRegistrationOutput, error) {
	csrfToken, err := security.GenerateCSRFToken()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate csrf token")
	}
	if err := srv.tokens.Save(ctx, csrfToken, srv.csrfTTL); err != nil {
		return nil, errors.Wrap(err, "failed to save csrf token")
	}

	now := srv.now()
	session := &registration.Session{
		ID:        uuid.New(),
		Form:      registration.Form{SchoolID: registration.NewSchoolID(now)},
		CSRFToken: csrfToken,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := srv.sessions.Save(ctx, session, srv.sessionTTL); err != nil {
		return nil, errors.Wrap(err, "failed to save registration session")
	}

	srv.log(ctx).Info("Registration session started", slog.String("sessionID", session.ID.String()))

	return &usecase.StartRegistrationOutput{Session: session}, nil
}

// GetSession returns the current state of an in-flight session.
func (srv *registrationService) GetSession(ctx context.Context, id uuid.UUID) (*registration.Session, error) {
	session, err := srv.sessions.Get(ctx, id)
	if errors.Is(err, service.ErrStoreMiss) {
		return nil, domainerrors.ErrRegistrationSessionNotFound.WrapMessage("registration session lookup")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load registration session")
	}

	return session, nil
}

// UpdateField sanitizes the incoming value, runs it through the form
// reducer, and refreshes the section options when the cohort triad changed.
// The options saved with the session always belong to the triad current at
// save time; a fetch for a superseded triad is discarded.
func (srv *registrationService) UpdateField(ctx context.Context, input usecase.UpdateFieldInput) (*usecase.UpdateFieldOutput, error) {
	session, err := srv.GetSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	cleaned, err := security.Sanitize(input.Value)
	if err != nil {
		srv.log(ctx).Warn("Field value rejected by sanitizer",
			slog.String("sessionID", input.SessionID.String()),
			slog.String("field", string(input.Field)))

		return nil, domainerrors.ErrValidationFailed.WrapMessage("field value contains disallowed content")
	}

	nextForm, needsFetch := registration.Apply(session.Form, registration.Event{
		Field: input.Field,
		Value: cleaned,
	})

	triadChanged := nextForm.Triad() != session.Form.Triad()
	session.Form = nextForm
	if triadChanged {
		session.ClearSections()
	}

	if needsFetch {
		triad := nextForm.Triad()
		sections, err := srv.sectionRepo.FindByCohort(ctx, repository.Cohort{
			StudentType: triad.StudentType,
			Program:     triad.Program,
			YearLevel:   triad.YearLevel,
		})
		if err != nil {
			// A failed lookup leaves the selector empty rather than
			// blocking the field update itself.
			srv.log(ctx).Error("Section lookup failed",
				slog.String("sessionID", input.SessionID.String()),
				slog.Any("error", err))
		} else if !session.ApplySections(triad, sections) {
			srv.log(ctx).Debug("Discarded stale section result",
				slog.String("sessionID", input.SessionID.String()))
		}
	}

	session.UpdatedAt = srv.now()
	if err := srv.sessions.Save(ctx, session, srv.sessionTTL); err != nil {
		return nil, errors.Wrap(err, "failed to save registration session")
	}

	return &usecase.UpdateFieldOutput{
		Form:           session.Form,
		SectionEnabled: session.Form.SectionEnabled(),
		SectionOptions: session.SectionOptions,
	}, nil
}

// RegenerateSchoolID replaces the school id on explicit user request.
func (srv *registrationService) RegenerateSchoolID(ctx context.Context, sessionID uuid.UUID) (string, error) {
	session, err := srv.GetSession(ctx, sessionID)
	if err != nil {
		return "", err
	}

	session.Form.SchoolID = registration.NewSchoolID(srv.now())
	session.UpdatedAt = srv.now()
	if err := srv.sessions.Save(ctx, session, srv.sessionTTL); err != nil {
		return "", errors.Wrap(err, "failed to save registration session")
	}

	return session.Form.SchoolID, nil
}

// Abandon discards an in-flight session and invalidates its CSRF token.
// Abandoning an already-gone session is a no-op; the outcome the caller
// wants is "no such session", which is already true.
func (srv *registrationService) Abandon(ctx context.Context, sessionID uuid.UUID) error {
	session, err := srv.sessions.Get(ctx, sessionID)
	if errors.Is(err, service.ErrStoreMiss) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to load registration session")
	}

	if err := srv.tokens.Delete(ctx, session.CSRFToken); err != nil {
		return errors.Wrap(err, "failed to delete csrf token")
	}
	if err := srv.sessions.Delete(ctx, sessionID); err != nil {
		return errors.Wrap(err, "failed to delete registration session")
	}

	srv.log(ctx).Info("Registration session abandoned", slog.String("sessionID", sessionID.String()))

	return nil
}

// ScorePassword classifies a password draft for the strength meter.
func (srv *registrationService) ScorePassword(password string) security.Strength {
	return security.ScorePasswordStrength(password)
}
