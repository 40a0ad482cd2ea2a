package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"portal/internal/domain/authflow"
	"portal/internal/domain/entity"
	domainerrors "portal/internal/domain/errors"
	"portal/internal/domain/registration"
	"portal/internal/domain/repository"
	"portal/internal/domain/service"
	"portal/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type authServiceFixture struct {
	service  *authService
	sessions *fakeRegistrationStore
	store    *fakeSessionStore
	provider *fakeIdentityProvider
	users    *fakeUserRepository
	enroll   *fakeEnrollmentRepository
}

func newAuthServiceFixture() *authServiceFixture {
	sessions := newFakeRegistrationStore()
	store := newFakeSessionStore()
	provider := &fakeIdentityProvider{}
	users := &fakeUserRepository{}
	enroll := &fakeEnrollmentRepository{}

	return &authServiceFixture{
		service: &authService{
			sessions:       sessions,
			sessionStore:   store,
			identity:       provider,
			userRepo:       users,
			enrollmentRepo: enroll,
			materializer:   NewSessionMaterializer(),
			regSessionTTL:  30 * time.Minute,
			sessionTTL:     24 * time.Hour,
			otpLength:      8,
			logger:         discardLogger(),
			now:            func() time.Time { return testTime },
		},
		sessions: sessions,
		store:    store,
		provider: provider,
		users:    users,
		enroll:   enroll,
	}
}

func seedSession(t *testing.T, f *authServiceFixture) *registration.Session {
	t.Helper()

	session := &registration.Session{
		ID: uuid.New(),
		Form: registration.Form{
			Role:        entity.RoleStudent,
			FirstName:   "Juan",
			LastName:    "Dela Cruz",
			Email:       "juan@school.edu.ph",
			StudentType: entity.StudentTypeCollege,
			Program:     "BSCS",
			YearLevel:   "1st Year College",
			SectionCode: "BSCS-1A",
			SchoolID:    "08312026-1234",
		},
		Flow:      authflow.NewFlow(),
		CreatedAt: testTime,
	}
	require.NoError(t, f.sessions.Save(context.Background(), session, time.Minute))

	return session
}

func TestAuthService_SignUp(t *testing.T) {
	ctx := context.Background()

	t.Run("existing email resolves to duplicate without calling the provider", func(t *testing.T) {
		f := newAuthServiceFixture()
		session := seedSession(t, f)
		f.users.existsFn = func(context.Context, string) (bool, error) { return true, nil }

		out, err := f.service.SignUp(ctx, usecase.SignUpInput{
			SessionID: session.ID, Password: "secret1", ConfirmPassword: "secret1",
		})

		require.NoError(t, err)
		assert.Equal(t, authflow.StateDuplicateEmail, out.Flow.State)
		assert.Equal(t, domainerrors.ErrDuplicateEmail.Message(), out.Flow.Message)
		assert.Zero(t, f.provider.signUpCalls)
	})

	t.Run("successful sign-up opens the challenge and enrolls defaults", func(t *testing.T) {
		f := newAuthServiceFixture()
		session := seedSession(t, f)
		identityID := uuid.New()
		f.provider.signUpFn = func(_ context.Context, email, _ string, metadata service.SignUpMetadata) (*service.Identity, error) {
			assert.Equal(t, "juan@school.edu.ph", email)
			assert.Equal(t, entity.RoleStudent, metadata.Role)
			assert.Equal(t, "08312026-1234", metadata.SchoolID)

			return &service.Identity{ID: identityID, Email: email}, nil
		}

		out, err := f.service.SignUp(ctx, usecase.SignUpInput{
			SessionID: session.ID, Password: "secret1", ConfirmPassword: "secret1",
		})

		require.NoError(t, err)
		assert.Equal(t, authflow.StatePendingVerification, out.Flow.State)
		assert.Equal(t, "juan@school.edu.ph", out.Flow.Email)
		assert.Equal(t, []string{"BSCS-1A"}, f.enroll.calls)

		stored, err := f.sessions.Get(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, authflow.StatePendingVerification, stored.Flow.State)
	})

	t.Run("provider duplicate after a raced pre-check resolves identically", func(t *testing.T) {
		f := newAuthServiceFixture()
		session := seedSession(t, f)
		f.provider.signUpFn = func(context.Context, string, string, service.SignUpMetadata) (*service.Identity, error) {
			return nil, domainerrors.ErrDuplicateEmail.WrapMessage("signup")
		}

		out, err := f.service.SignUp(ctx, usecase.SignUpInput{
			SessionID: session.ID, Password: "secret1", ConfirmPassword: "secret1",
		})

		require.NoError(t, err)
		assert.Equal(t, authflow.StateDuplicateEmail, out.Flow.State)
	})

	t.Run("enrollment failure does not fail the sign-up", func(t *testing.T) {
		f := newAuthServiceFixture()
		session := seedSession(t, f)
		f.provider.signUpFn = func(context.Context, string, string, service.SignUpMetadata) (*service.Identity, error) {
			return &service.Identity{ID: uuid.New()}, nil
		}
		f.enroll.enrollFn = func(context.Context, uuid.UUID, string) (int, error) {
			return 0, errors.New("subjects table unavailable")
		}

		out, err := f.service.SignUp(ctx, usecase.SignUpInput{
			SessionID: session.ID, Password: "secret1", ConfirmPassword: "secret1",
		})

		require.NoError(t, err)
		assert.Equal(t, authflow.StatePendingVerification, out.Flow.State)
	})

	t.Run("validation gate failure never reaches the provider", func(t *testing.T) {
		f := newAuthServiceFixture()
		session := seedSession(t, f)

		out, err := f.service.SignUp(ctx, usecase.SignUpInput{
			SessionID: session.ID, Password: "abc", ConfirmPassword: "abc",
		})

		require.NoError(t, err)
		assert.Equal(t, authflow.StateValidationError, out.Flow.State)
		assert.Contains(t, out.FieldErrors, "password")
		assert.Zero(t, f.provider.signUpCalls)
	})

	t.Run("second submit while one is in flight is refused", func(t *testing.T) {
		f := newAuthServiceFixture()
		session := seedSession(t, f)
		session.Flow = authflow.Flow{Mode: authflow.ModeSignUp, State: authflow.StateSubmitting}
		require.NoError(t, f.sessions.Save(ctx, session, time.Minute))

		_, err := f.service.SignUp(ctx, usecase.SignUpInput{
			SessionID: session.ID, Password: "secret1", ConfirmPassword: "secret1",
		})

		assert.ErrorIs(t, err, domainerrors.ErrAttemptInFlight)
	})

	t.Run("missing session maps to the session-expired error", func(t *testing.T) {
		f := newAuthServiceFixture()

		_, err := f.service.SignUp(ctx, usecase.SignUpInput{
			SessionID: uuid.New(), Password: "secret1", ConfirmPassword: "secret1",
		})

		assert.ErrorIs(t, err, domainerrors.ErrRegistrationSessionNotFound)
	})
}

func TestAuthService_SignIn(t *testing.T) {
	ctx := context.Background()
	identityID := uuid.New()

	signInOK := func(context.Context, string, string) (*service.Identity, *service.ProviderSession, error) {
		return &service.Identity{ID: identityID, Email: "juan@school.edu.ph", Verified: true},
			&service.ProviderSession{AccessToken: "token-abc", ExpiresAt: testTime.Add(time.Hour)},
			nil
	}

	t.Run("successful sign-in materializes a routed session", func(t *testing.T) {
		f := newAuthServiceFixture()
		f.provider.signInFn = signInOK
		f.users.findFn = func(_ context.Context, id uuid.UUID, role entity.Role) (*entity.User, error) {
			require.Equal(t, identityID, id)
			require.Equal(t, entity.RoleStudent, role)

			return &entity.User{
				ID: id, Email: "juan@school.edu.ph", FirstName: "Juan", LastName: "Dela Cruz",
				Role: entity.RoleStudent,
				StudentProfile: &entity.StudentProfile{
					StudentType: entity.StudentTypeCollege, Program: "BSCS",
					YearLevel: "1st Year College", SectionCode: "BSCS-1A", SchoolID: "08312026-1234",
				},
			}, nil
		}

		out, err := f.service.SignIn(ctx, usecase.SignInInput{
			Email: "juan@school.edu.ph", Password: "secret1", Role: entity.RoleStudent,
		})

		require.NoError(t, err)
		assert.Equal(t, authflow.StateSignedIn, out.Flow.State)
		require.NotNil(t, out.Session)
		assert.Equal(t, entity.RouteCollegePortal, out.Session.Route)
		assert.Equal(t, "token-abc", out.Session.AccessToken)
		assert.Equal(t, testTime, out.Session.LoggedInAt)

		stored, err := f.store.Get(ctx, out.Session.ID)
		require.NoError(t, err)
		assert.Equal(t, out.Session.IdentityID, stored.IdentityID)
	})

	t.Run("wrong password and unknown email carry distinct messages", func(t *testing.T) {
		f := newAuthServiceFixture()
		f.provider.signInFn = func(context.Context, string, string) (*service.Identity, *service.ProviderSession, error) {
			return nil, nil, domainerrors.ErrInvalidCredentials.WrapMessage("password grant")
		}

		f.users.existsFn = func(context.Context, string) (bool, error) { return true, nil }
		out, err := f.service.SignIn(ctx, usecase.SignInInput{
			Email: "juan@school.edu.ph", Password: "wrong-password", Role: entity.RoleStudent,
		})
		require.NoError(t, err)
		assert.Equal(t, authflow.StateInvalidCredentials, out.Flow.State)
		assert.Equal(t, domainerrors.ErrInvalidCredentials.Message(), out.Flow.Message)

		f.users.existsFn = func(context.Context, string) (bool, error) { return false, nil }
		out, err = f.service.SignIn(ctx, usecase.SignInInput{
			Email: "ghost@school.edu.ph", Password: "wrong-password", Role: entity.RoleStudent,
		})
		require.NoError(t, err)
		assert.Equal(t, authflow.StateInvalidCredentials, out.Flow.State)
		assert.Equal(t, domainerrors.ErrAccountNotFound.Message(), out.Flow.Message)
	})

	t.Run("unverified account reroutes to verification", func(t *testing.T) {
		f := newAuthServiceFixture()
		f.provider.signInFn = func(context.Context, string, string) (*service.Identity, *service.ProviderSession, error) {
			return nil, nil, domainerrors.ErrUnverified.WrapMessage("password grant")
		}

		out, err := f.service.SignIn(ctx, usecase.SignInInput{
			Email: "juan@school.edu.ph", Password: "secret1", Role: entity.RoleStudent,
		})

		require.NoError(t, err)
		assert.Equal(t, authflow.StateUnverified, out.Flow.State)
		assert.Equal(t, "juan@school.edu.ph", out.Flow.Email)
		assert.Nil(t, out.Session)
	})

	t.Run("role mismatch is a credential failure, not a crash", func(t *testing.T) {
		f := newAuthServiceFixture()
		f.provider.signInFn = signInOK
		f.users.findFn = func(context.Context, uuid.UUID, entity.Role) (*entity.User, error) {
			return nil, repository.ErrRoleRecordNotFound
		}

		out, err := f.service.SignIn(ctx, usecase.SignInInput{
			Email: "juan@school.edu.ph", Password: "secret1", Role: entity.RoleTeacher,
		})

		require.NoError(t, err)
		assert.Equal(t, authflow.StateInvalidCredentials, out.Flow.State)
		assert.Equal(t, domainerrors.ErrRoleRecordNotFound.Message(), out.Flow.Message)
	})

	t.Run("unclassified provider failure resolves to a generic message", func(t *testing.T) {
		f := newAuthServiceFixture()
		f.provider.signInFn = func(context.Context, string, string) (*service.Identity, *service.ProviderSession, error) {
			return nil, nil, errors.New("connection reset")
		}

		out, err := f.service.SignIn(ctx, usecase.SignInInput{
			Email: "juan@school.edu.ph", Password: "secret1", Role: entity.RoleStudent,
		})

		require.NoError(t, err)
		assert.Equal(t, authflow.StateProviderError, out.Flow.State)
		assert.Equal(t, domainerrors.ErrProvider.Message(), out.Flow.Message)
	})
}

func TestAuthService_VerifyOtp(t *testing.T) {
	ctx := context.Background()

	pendingSession := func(t *testing.T, f *authServiceFixture) *registration.Session {
		t.Helper()
		session := seedSession(t, f)
		session.Flow = authflow.Flow{
			Mode: authflow.ModeSignUp, State: authflow.StatePendingVerification, Email: session.Form.Email,
		}
		require.NoError(t, f.sessions.Save(ctx, session, time.Minute))

		return session
	}

	t.Run("successful verification clears the registration session", func(t *testing.T) {
		f := newAuthServiceFixture()
		session := pendingSession(t, f)
		f.provider.verifyFn = func(_ context.Context, email, code string) (*service.Identity, *service.ProviderSession, error) {
			assert.Equal(t, "juan@school.edu.ph", email)
			assert.Equal(t, "12345678", code)

			return &service.Identity{Email: email, Verified: true}, &service.ProviderSession{AccessToken: "t"}, nil
		}

		out, err := f.service.VerifyOtp(ctx, usecase.VerifyOtpInput{SessionID: &session.ID, Code: "12345678"})

		require.NoError(t, err)
		assert.Equal(t, authflow.StateVerified, out.Flow.State)

		_, err = f.sessions.Get(ctx, session.ID)
		assert.ErrorIs(t, err, service.ErrStoreMiss)
	})

	t.Run("rejected passcode keeps the challenge open", func(t *testing.T) {
		f := newAuthServiceFixture()
		session := pendingSession(t, f)
		f.provider.verifyFn = func(context.Context, string, string) (*service.Identity, *service.ProviderSession, error) {
			return nil, nil, domainerrors.ErrInvalidOtp.WrapMessage("verify")
		}

		out, err := f.service.VerifyOtp(ctx, usecase.VerifyOtpInput{SessionID: &session.ID, Code: "00000000"})

		require.NoError(t, err)
		assert.Equal(t, authflow.StateInvalidOtp, out.Flow.State)
		assert.Equal(t, domainerrors.ErrInvalidOtp.Message(), out.Flow.Message)

		stored, err := f.sessions.Get(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, authflow.StateInvalidOtp, stored.Flow.State)
	})

	t.Run("a code that cannot match the passcode shape never reaches the provider", func(t *testing.T) {
		for _, code := range []string{"123456", "123456789", "12a45678", ""} {
			f := newAuthServiceFixture()
			session := pendingSession(t, f)

			out, err := f.service.VerifyOtp(ctx, usecase.VerifyOtpInput{SessionID: &session.ID, Code: code})

			require.NoError(t, err, "code %q", code)
			assert.Equal(t, authflow.StateInvalidOtp, out.Flow.State, "code %q", code)
			assert.Equal(t, domainerrors.ErrInvalidOtp.Message(), out.Flow.Message, "code %q", code)
			assert.Zero(t, f.provider.verifyCalls, "code %q", code)

			stored, err := f.sessions.Get(ctx, session.ID)
			require.NoError(t, err)
			assert.Equal(t, authflow.StateInvalidOtp, stored.Flow.State, "code %q", code)
		}
	})

	t.Run("expired passcode surfaces the expiry message", func(t *testing.T) {
		f := newAuthServiceFixture()
		session := pendingSession(t, f)
		f.provider.verifyFn = func(context.Context, string, string) (*service.Identity, *service.ProviderSession, error) {
			return nil, nil, domainerrors.ErrOtpExpired.WrapMessage("verify")
		}

		out, err := f.service.VerifyOtp(ctx, usecase.VerifyOtpInput{SessionID: &session.ID, Code: "12345678"})

		require.NoError(t, err)
		assert.Equal(t, authflow.StateInvalidOtp, out.Flow.State)
		assert.Equal(t, domainerrors.ErrOtpExpired.Message(), out.Flow.Message)
	})

	t.Run("sign-in path verifies by email without a registration session", func(t *testing.T) {
		f := newAuthServiceFixture()
		f.provider.verifyFn = func(_ context.Context, email, _ string) (*service.Identity, *service.ProviderSession, error) {
			return &service.Identity{Email: email, Verified: true}, &service.ProviderSession{}, nil
		}

		out, err := f.service.VerifyOtp(ctx, usecase.VerifyOtpInput{Email: "juan@school.edu.ph", Code: "12345678"})

		require.NoError(t, err)
		assert.Equal(t, authflow.StateVerified, out.Flow.State)
		assert.Equal(t, "juan@school.edu.ph", out.Email)
	})
}

func TestAuthService_ResendOtp(t *testing.T) {
	f := newAuthServiceFixture()

	require.NoError(t, f.service.ResendOtp(context.Background(), "juan@school.edu.ph"))
	require.NoError(t, f.service.ResendOtp(context.Background(), "juan@school.edu.ph"))
	assert.Equal(t, 2, f.provider.resendCalls)
}
