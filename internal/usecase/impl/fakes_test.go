package impl

import (
	"context"
	"time"

	"portal/internal/domain/entity"
	"portal/internal/domain/registration"
	"portal/internal/domain/repository"
	"portal/internal/domain/service"

	"github.com/google/uuid"
)

// In-memory fakes for the store and gateway interfaces. Each fake records
// just enough to let tests assert on call order and payloads.

type fakeRegistrationStore struct {
	sessions map[uuid.UUID]*registration.Session
	saveErr  error
}

func newFakeRegistrationStore() *fakeRegistrationStore {
	return &fakeRegistrationStore{sessions: make(map[uuid.UUID]*registration.Session)}
}

func (s *fakeRegistrationStore) Save(_ context.Context, session *registration.Session, _ time.Duration) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	copied := *session
	s.sessions[session.ID] = &copied

	return nil
}

func (s *fakeRegistrationStore) Get(_ context.Context, id uuid.UUID) (*registration.Session, error) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, service.ErrStoreMiss
	}
	copied := *session

	return &copied, nil
}

func (s *fakeRegistrationStore) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.sessions, id)

	return nil
}

type fakeTokenStore struct {
	tokens map[string]struct{}
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]struct{})}
}

func (s *fakeTokenStore) Save(_ context.Context, token string, _ time.Duration) error {
	s.tokens[token] = struct{}{}

	return nil
}

func (s *fakeTokenStore) Exists(_ context.Context, token string) (bool, error) {
	_, ok := s.tokens[token]

	return ok, nil
}

func (s *fakeTokenStore) Delete(_ context.Context, token string) error {
	delete(s.tokens, token)

	return nil
}

type fakeSessionStore struct {
	sessions map[uuid.UUID]*entity.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[uuid.UUID]*entity.Session)}
}

func (s *fakeSessionStore) Save(_ context.Context, session *entity.Session, _ time.Duration) error {
	copied := *session
	s.sessions[session.ID] = &copied

	return nil
}

func (s *fakeSessionStore) Get(_ context.Context, id uuid.UUID) (*entity.Session, error) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, service.ErrStoreMiss
	}
	copied := *session

	return &copied, nil
}

func (s *fakeSessionStore) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.sessions, id)

	return nil
}

type fakeIdentityProvider struct {
	signUpFn  func(ctx context.Context, email, password string, metadata service.SignUpMetadata) (*service.Identity, error)
	signInFn  func(ctx context.Context, email, password string) (*service.Identity, *service.ProviderSession, error)
	verifyFn  func(ctx context.Context, email, code string) (*service.Identity, *service.ProviderSession, error)
	resendFn  func(ctx context.Context, email string) error
	signOutFn func(ctx context.Context, accessToken string) error

	signUpCalls int
	verifyCalls int
	resendCalls int
}

func (p *fakeIdentityProvider) SignUp(ctx context.Context, email, password string, metadata service.SignUpMetadata) (*service.Identity, error) {
	p.signUpCalls++

	return p.signUpFn(ctx, email, password, metadata)
}

func (p *fakeIdentityProvider) SignInWithPassword(ctx context.Context, email, password string) (*service.Identity, *service.ProviderSession, error) {
	return p.signInFn(ctx, email, password)
}

func (p *fakeIdentityProvider) VerifyOtp(ctx context.Context, email, code string) (*service.Identity, *service.ProviderSession, error) {
	p.verifyCalls++

	return p.verifyFn(ctx, email, code)
}

func (p *fakeIdentityProvider) ResendOtp(ctx context.Context, email string) error {
	p.resendCalls++
	if p.resendFn != nil {
		return p.resendFn(ctx, email)
	}

	return nil
}

func (p *fakeIdentityProvider) SignOut(ctx context.Context, accessToken string) error {
	if p.signOutFn != nil {
		return p.signOutFn(ctx, accessToken)
	}

	return nil
}

type fakeUserRepository struct {
	existsFn func(ctx context.Context, email string) (bool, error)
	findFn   func(ctx context.Context, id uuid.UUID, role entity.Role) (*entity.User, error)
}

func (r *fakeUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	if r.existsFn != nil {
		return r.existsFn(ctx, email)
	}

	return false, nil
}

func (r *fakeUserRepository) FindByEmail(context.Context, string) (*entity.User, error) {
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepository) FindByIDAndRole(ctx context.Context, id uuid.UUID, role entity.Role) (*entity.User, error) {
	if r.findFn != nil {
		return r.findFn(ctx, id, role)
	}

	return nil, repository.ErrUserNotFound
}

type fakeSectionRepository struct {
	findFn func(ctx context.Context, cohort repository.Cohort) ([]entity.Section, error)
	calls  []repository.Cohort
}

func (r *fakeSectionRepository) FindByCohort(ctx context.Context, cohort repository.Cohort) ([]entity.Section, error) {
	r.calls = append(r.calls, cohort)
	if r.findFn != nil {
		return r.findFn(ctx, cohort)
	}

	return nil, nil
}

type fakeEnrollmentRepository struct {
	enrollFn func(ctx context.Context, identityID uuid.UUID, sectionCode string) (int, error)
	calls    []string
}

func (r *fakeEnrollmentRepository) EnrollDefaultSubjects(ctx context.Context, identityID uuid.UUID, sectionCode string) (int, error) {
	r.calls = append(r.calls, sectionCode)
	if r.enrollFn != nil {
		return r.enrollFn(ctx, identityID, sectionCode)
	}

	return 0, nil
}

type fakeTokenService struct {
	validateFn func(tokenString string) (*service.Claims, error)
}

func (s *fakeTokenService) ValidateAccessToken(tokenString string) (*service.Claims, error) {
	return s.validateFn(tokenString)
}
