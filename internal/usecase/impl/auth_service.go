package impl

import (
	"context"
	"log/slog"
	"time"

	"portal/config"
	deliverycontext "portal/internal/delivery/context"
	"portal/internal/domain/authflow"
	"portal/internal/domain/entity"
	domainerrors "portal/internal/domain/errors"
	"portal/internal/domain/registration"
	"portal/internal/domain/repository"
	"portal/internal/domain/service"
	"portal/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface. It owns the submit-to-
// resolution cycle: every provider failure is classified at the gateway and
// resolved here into a flow state carrying a user-facing message.
type authService struct {
	sessions       service.RegistrationStore
	sessionStore   service.SessionStore
	identity       service.IdentityProvider
	userRepo       repository.UserRepository
	enrollmentRepo repository.EnrollmentRepository
	materializer   *SessionMaterializer
	regSessionTTL  time.Duration
	sessionTTL     time.Duration
	otpLength      int
	logger         *slog.Logger
	now            func() time.Time
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	Sessions       service.RegistrationStore
	SessionStore   service.SessionStore
	Identity       service.IdentityProvider
	UserRepo       repository.UserRepository
	EnrollmentRepo repository.EnrollmentRepository
	Materializer   *SessionMaterializer
	Config         *config.Config
	Logger         *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		sessions:       params.Sessions,
		sessionStore:   params.SessionStore,
		identity:       params.Identity,
		userRepo:       params.UserRepo,
		enrollmentRepo: params.EnrollmentRepo,
		materializer:   params.Materializer,
		regSessionTTL:  params.Config.Registration.SessionTTL,
		sessionTTL:     params.Config.Session.TTL,
		otpLength:      params.Config.Registration.OTPLength,
		logger:         params.Logger,
		now:            time.Now,
	}
}

func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SignUp submits an in-flight registration session. The sequence is strict:
// local validation gate, then the email existence check, then the provider
// call. The gate refusing the form means no network call was made at all,
// and a duplicate found by the pre-check means SignUp never reached the
// provider.
func (srv *authService) SignUp(ctx context.Context, input usecase.SignUpInput) (*usecase.SignUpOutput, error) {
	session, err := srv.loadSession(ctx, input)
	if err != nil {
		return nil, err
	}

	flow, err := session.Flow.Begin(authflow.ModeSignUp, srv.now())
	if errors.Is(err, authflow.ErrAttemptInFlight) {
		return nil, domainerrors.ErrAttemptInFlight.WrapMessage("sign-up submit")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin sign-up attempt")
	}

	if problems := session.Form.ValidateSubmit(authflow.ModeSignUp, input.Password, input.ConfirmPassword); len(problems) > 0 {
		flow, err = flow.FailValidation(domainerrors.ErrValidationFailed.Message())
		if err != nil {
			return nil, errors.Wrap(err, "failed to resolve validation failure")
		}
		if err := srv.saveFlow(ctx, session, flow); err != nil {
			return nil, err
		}

		return &usecase.SignUpOutput{Flow: flow, FieldErrors: problems}, nil
	}

	email := session.Form.Email
	if srv.emailExists(ctx, email) {
		return srv.resolveDuplicate(ctx, session, flow)
	}

	identity, err := srv.identity.SignUp(ctx, email, input.Password, signUpMetadata(session.Form))
	if err != nil {
		// The pre-check can race a concurrent sign-up; a provider-reported
		// duplicate resolves exactly like one the pre-check caught.
		if errors.Is(err, domainerrors.ErrDuplicateEmail) {
			return srv.resolveDuplicate(ctx, session, flow)
		}

		srv.log(ctx).Error("Provider sign-up failed", slog.String("email", email), slog.Any("error", err))
		flow, ferr := flow.FailProvider(providerMessage(err))
		if ferr != nil {
			return nil, errors.Wrap(ferr, "failed to resolve provider failure")
		}
		if err := srv.saveFlow(ctx, session, flow); err != nil {
			return nil, err
		}

		return &usecase.SignUpOutput{Flow: flow}, nil
	}

	flow, err = flow.PendVerification(email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open verification challenge")
	}
	if err := srv.saveFlow(ctx, session, flow); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Identity created, verification pending",
		slog.String("email", email), slog.String("identityID", identity.ID.String()))

	srv.enrollDefaultSubjects(ctx, identity, session.Form)

	return &usecase.SignUpOutput{Flow: flow}, nil
}

// SignIn exchanges credentials for a materialized session.
func (srv *authService) SignIn(ctx context.Context, input usecase.SignInInput) (*usecase.SignInOutput, error) {
	flow, err := authflow.NewFlow().Begin(authflow.ModeSignIn, srv.now())
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin sign-in attempt")
	}

	form := registration.Form{Role: input.Role, Email: input.Email}
	if problems := form.ValidateSubmit(authflow.ModeSignIn, input.Password, ""); len(problems) > 0 {
		flow, err = flow.FailValidation(domainerrors.ErrValidationFailed.Message())
		if err != nil {
			return nil, errors.Wrap(err, "failed to resolve validation failure")
		}

		return &usecase.SignInOutput{Flow: flow}, nil
	}

	identity, providerSession, err := srv.identity.SignInWithPassword(ctx, input.Email, input.Password)
	if err != nil {
		return srv.resolveSignInFailure(ctx, flow, input.Email, err)
	}

	user, err := srv.userRepo.FindByIDAndRole(ctx, identity.ID, input.Role)
	if errors.Is(err, repository.ErrRoleRecordNotFound) || errors.Is(err, repository.ErrUserNotFound) {
		// The identity exists but not under the selected role. Treated as a
		// credential failure, never a silent sign-in under another role.
		flow, ferr := flow.FailCredentials(domainerrors.ErrRoleRecordNotFound.Message())
		if ferr != nil {
			return nil, errors.Wrap(ferr, "failed to resolve role mismatch")
		}

		return &usecase.SignInOutput{Flow: flow}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load role record")
	}

	session := srv.materializer.Materialize(identity, user, providerSession, srv.now())
	if err := srv.sessionStore.Save(ctx, session, srv.sessionTTL); err != nil {
		return nil, errors.Wrap(err, "failed to save session")
	}

	flow, err = flow.CompleteSignIn()
	if err != nil {
		return nil, errors.Wrap(err, "failed to complete sign-in")
	}

	srv.log(ctx).Info("Signed in",
		slog.String("email", input.Email),
		slog.String("role", input.Role.String()),
		slog.String("route", string(session.Route)))

	return &usecase.SignInOutput{Flow: flow, Session: session}, nil
}

// VerifyOtp checks the emailed passcode. For an in-flight sign-up the flow
// lives in the registration session and a success clears the form; the
// sign-in path verifies transiently by email alone.
func (srv *authService) VerifyOtp(ctx context.Context, input usecase.VerifyOtpInput) (*usecase.VerifyOtpOutput, error) {
	if input.SessionID == nil {
		flow := authflow.Flow{State: authflow.StateUnverified, Email: input.Email}

		return srv.runVerify(ctx, nil, flow, input.Code)
	}

	session, err := srv.sessions.Get(ctx, *input.SessionID)
	if errors.Is(err, service.ErrStoreMiss) {
		return nil, domainerrors.ErrRegistrationSessionNotFound.WrapMessage("verify otp")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load registration session")
	}

	return srv.runVerify(ctx, session, session.Flow, input.Code)
}

func (srv *authService) runVerify(
	ctx context.Context,
	session *registration.Session,
	flow authflow.Flow,
	code string,
) (*usecase.VerifyOtpOutput, error) {
	email := flow.Email

	flow, err := flow.BeginVerify()
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("no verification is pending")
	}

	// A code that cannot match the emailed passcode's shape is rejected
	// locally and never reaches the provider.
	if !srv.validPasscode(code) {
		return srv.resolveOtpFailure(ctx, session, flow, email, domainerrors.ErrInvalidOtp.Message())
	}

	_, _, err = srv.identity.VerifyOtp(ctx, email, code)
	if err != nil {
		message := domainerrors.ErrInvalidOtp.Message()
		if errors.Is(err, domainerrors.ErrOtpExpired) {
			message = domainerrors.ErrOtpExpired.Message()
		} else if !errors.Is(err, domainerrors.ErrInvalidOtp) {
			srv.log(ctx).Error("Passcode verification failed", slog.String("email", email), slog.Any("error", err))
			message = providerMessage(err)
		}

		return srv.resolveOtpFailure(ctx, session, flow, email, message)
	}

	flow, err = flow.CompleteVerify()
	if err != nil {
		return nil, errors.Wrap(err, "failed to complete verification")
	}

	// The sign-up form has served its purpose once the account is verified.
	if session != nil {
		if err := srv.sessions.Delete(ctx, session.ID); err != nil {
			srv.log(ctx).Warn("Failed to clear registration session",
				slog.String("sessionID", session.ID.String()), slog.Any("error", err))
		}
	}

	srv.log(ctx).Info("Account verified", slog.String("email", email))

	return &usecase.VerifyOtpOutput{Flow: flow, Email: email}, nil
}

// validPasscode checks the submitted code against the configured passcode
// length and digit-only alphabet.
func (srv *authService) validPasscode(code string) bool {
	if len(code) != srv.otpLength {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

func (srv *authService) resolveOtpFailure(
	ctx context.Context,
	session *registration.Session,
	flow authflow.Flow,
	email string,
	message string,
) (*usecase.VerifyOtpOutput, error) {
	flow, err := flow.FailOtp(message)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve rejected passcode")
	}
	if session != nil {
		if err := srv.saveFlow(ctx, session, flow); err != nil {
			return nil, err
		}
	}

	return &usecase.VerifyOtpOutput{Flow: flow, Email: email}, nil
}

// ResendOtp requests a fresh passcode. Resends are unlimited here; the
// provider enforces its own throttling.
func (srv *authService) ResendOtp(ctx context.Context, email string) error {
	if err := srv.identity.ResendOtp(ctx, email); err != nil {
		srv.log(ctx).Error("Passcode resend failed", slog.String("email", email), slog.Any("error", err))

		return errors.Wrap(err, "failed to resend passcode")
	}

	srv.log(ctx).Info("Passcode resent", slog.String("email", email))

	return nil
}

func (srv *authService) loadSession(ctx context.Context, input usecase.SignUpInput) (*registration.Session, error) {
	session, err := srv.sessions.Get(ctx, input.SessionID)
	if errors.Is(err, service.ErrStoreMiss) {
		return nil, domainerrors.ErrRegistrationSessionNotFound.WrapMessage("sign-up submit")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load registration session")
	}

	return session, nil
}

func (srv *authService) saveFlow(ctx context.Context, session *registration.Session, flow authflow.Flow) error {
	session.Flow = flow
	session.UpdatedAt = srv.now()
	if err := srv.sessions.Save(ctx, session, srv.regSessionTTL); err != nil {
		return errors.Wrap(err, "failed to save registration session")
	}

	return nil
}

// emailExists is a soft check: a transient lookup failure reads as "not
// registered" so the flow is never blocked, and the provider remains the
// final authority on duplicates.
func (srv *authService) emailExists(ctx context.Context, email string) bool {
	exists, err := srv.userRepo.EmailExists(ctx, email)
	if err != nil {
		srv.log(ctx).Warn("Email existence check failed", slog.String("email", email), slog.Any("error", err))

		return false
	}

	return exists
}

func (srv *authService) resolveDuplicate(
	ctx context.Context,
	session *registration.Session,
	flow authflow.Flow,
) (*usecase.SignUpOutput, error) {
	flow, err := flow.FailDuplicate(domainerrors.ErrDuplicateEmail.Message())
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve duplicate email")
	}
	if err := srv.saveFlow(ctx, session, flow); err != nil {
		return nil, err
	}

	return &usecase.SignUpOutput{Flow: flow}, nil
}

func (srv *authService) resolveSignInFailure(
	ctx context.Context,
	flow authflow.Flow,
	email string,
	cause error,
) (*usecase.SignInOutput, error) {
	switch {
	case errors.Is(cause, domainerrors.ErrInvalidCredentials):
		// Split wrong-password from no-account purely for message quality.
		message := domainerrors.ErrInvalidCredentials.Message()
		if !srv.emailExists(ctx, email) {
			message = domainerrors.ErrAccountNotFound.Message()
		}
		flow, err := flow.FailCredentials(message)
		if err != nil {
			return nil, errors.Wrap(err, "failed to resolve credential failure")
		}

		return &usecase.SignInOutput{Flow: flow}, nil

	case errors.Is(cause, domainerrors.ErrUnverified):
		flow, err := flow.RequireVerification(email)
		if err != nil {
			return nil, errors.Wrap(err, "failed to reroute to verification")
		}

		return &usecase.SignInOutput{Flow: flow}, nil

	default:
		srv.log(ctx).Error("Provider sign-in failed", slog.String("email", email), slog.Any("error", cause))
		flow, err := flow.FailProvider(providerMessage(cause))
		if err != nil {
			return nil, errors.Wrap(err, "failed to resolve provider failure")
		}

		return &usecase.SignInOutput{Flow: flow}, nil
	}
}

// enrollDefaultSubjects runs after account creation and must never fail the
// sign-up; the account is already valid without it.
func (srv *authService) enrollDefaultSubjects(ctx context.Context, identity *service.Identity, form registration.Form) {
	if form.Role != entity.RoleStudent || form.SectionCode == "" {
		return
	}

	count, err := srv.enrollmentRepo.EnrollDefaultSubjects(ctx, identity.ID, form.SectionCode)
	if err != nil {
		srv.log(ctx).Warn("Default subject enrollment failed",
			slog.String("identityID", identity.ID.String()),
			slog.String("section", form.SectionCode),
			slog.Any("error", err))

		return
	}

	srv.log(ctx).Debug("Default subjects enrolled",
		slog.String("identityID", identity.ID.String()),
		slog.Int("count", count))
}

func signUpMetadata(form registration.Form) service.SignUpMetadata {
	return service.SignUpMetadata{
		FirstName:   form.FirstName,
		MiddleName:  form.MiddleName,
		LastName:    form.LastName,
		Role:        form.Role,
		StudentType: form.StudentType,
		Program:     form.Program,
		YearLevel:   form.YearLevel,
		SectionCode: form.SectionCode,
		SchoolID:    form.SchoolID,
		Department:  form.Department,
	}
}

// providerMessage surfaces the classified provider message where one
// exists; anything unclassified collapses to the generic provider message.
func providerMessage(err error) string {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message()
	}

	return domainerrors.ErrProvider.Message()
}
