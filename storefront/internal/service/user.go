package service

import (
	"context"
	"net/http"
	"sync"

	"food-storefront/storefront/internal/backend"
	"food-storefront/storefront/internal/domain"
)

const UserStateVersion = 1

type userState struct {
	User            *domain.User `json:"user"`
	IsAuthenticated bool         `json:"isAuthenticated"`
}

type forgotPasswordInput struct {
	Email string `validate:"required,email"`
}

type resetPasswordInput struct {
	Token       string `validate:"required"`
	NewPassword string `validate:"required,min=6"`
}

type verifyEmailInput struct {
	VerificationCode string `validate:"required"`
}

// UserStore tracks the signed-in user. Only the user snapshot and the
// authenticated flag survive a restart.
type UserStore struct {
	api       AuthAPI
	notifier  Notifier
	persister *Persister

	mu             sync.RWMutex
	state          userState
	loading        bool
	isCheckingAuth bool
}

func NewUserStore(api AuthAPI, notifier Notifier, persister *Persister) *UserStore {
	return &UserStore{api: api, notifier: notifier, persister: persister}
}

func (s *UserStore) Restore(ctx context.Context) error {
	var state userState
	ok, err := s.persister.Load(ctx, &state)
	if err != nil || !ok {
		return err
	}
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	return nil
}

func (s *UserStore) Signup(ctx context.Context, in domain.SignupInput) (*domain.User, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	return s.authenticate(ctx, func(ctx context.Context) (*domain.User, string, error) {
		return s.api.Signup(ctx, in)
	})
}

func (s *UserStore) Login(ctx context.Context, in domain.LoginInput) (*domain.User, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	return s.authenticate(ctx, func(ctx context.Context) (*domain.User, string, error) {
		return s.api.Login(ctx, in)
	})
}

func (s *UserStore) VerifyEmail(ctx context.Context, code string) (*domain.User, error) {
	if err := validateInput(verifyEmailInput{VerificationCode: code}); err != nil {
		return nil, err
	}
	return s.authenticate(ctx, func(ctx context.Context) (*domain.User, string, error) {
		return s.api.VerifyEmail(ctx, code)
	})
}

func (s *UserStore) authenticate(ctx context.Context, call func(context.Context) (*domain.User, string, error)) (*domain.User, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	user, msg, err := call(ctx)
	if err != nil {
		notifyFailure(s.notifier, err)
		return nil, err
	}
	s.notifier.Success(msg)
	s.setUser(user, true)
	return copyUser(user), nil
}

// CheckAuthentication asks the backend whether the session cookie is still
// valid. A 401 just means signed out and is not reported to the user.
func (s *UserStore) CheckAuthentication(ctx context.Context) (*domain.User, error) {
	s.mu.Lock()
	s.isCheckingAuth = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.isCheckingAuth = false
		s.mu.Unlock()
	}()

	user, err := s.api.CheckAuth(ctx)
	if err != nil {
		s.setUser(nil, false)
		if backend.HasStatus(err, http.StatusUnauthorized) {
			return nil, nil
		}
		notifyFailure(s.notifier, err)
		return nil, err
	}
	s.setUser(user, true)
	return copyUser(user), nil
}

func (s *UserStore) Logout(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	msg, err := s.api.Logout(ctx)
	if err != nil {
		notifyFailure(s.notifier, err)
		return err
	}
	s.notifier.Success(msg)
	s.setUser(nil, false)
	return nil
}

func (s *UserStore) ForgotPassword(ctx context.Context, email string) error {
	if err := validateInput(forgotPasswordInput{Email: email}); err != nil {
		return err
	}
	s.setLoading(true)
	defer s.setLoading(false)

	msg, err := s.api.ForgotPassword(ctx, email)
	if err != nil {
		notifyFailure(s.notifier, err)
		return err
	}
	s.notifier.Success(msg)
	return nil
}

func (s *UserStore) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := validateInput(resetPasswordInput{Token: token, NewPassword: newPassword}); err != nil {
		return err
	}
	s.setLoading(true)
	defer s.setLoading(false)

	msg, err := s.api.ResetPassword(ctx, token, newPassword)
	if err != nil {
		notifyFailure(s.notifier, err)
		return err
	}
	s.notifier.Success(msg)
	return nil
}

func (s *UserStore) UpdateProfile(ctx context.Context, in domain.UpdateProfileInput) (*domain.User, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	s.setLoading(true)
	defer s.setLoading(false)

	user, msg, err := s.api.UpdateProfile(ctx, in)
	if err != nil {
		notifyFailure(s.notifier, err)
		return nil, err
	}
	s.notifier.Success(msg)
	s.setUser(user, true)
	return copyUser(user), nil
}

func (s *UserStore) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyUser(s.state.User)
}

func (s *UserStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsAuthenticated
}

func (s *UserStore) IsCheckingAuth() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isCheckingAuth
}

func (s *UserStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *UserStore) setUser(user *domain.User, authenticated bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = userState{User: copyUser(user), IsAuthenticated: authenticated}
	s.persister.persist(s.state)
}

func (s *UserStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func copyUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	out := *u
	return &out
}
