package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"food-storefront/storefront/internal/backend"
	"food-storefront/storefront/internal/domain"
	"food-storefront/storefront/internal/mocks"
	"food-storefront/storefront/internal/service"
	"food-storefront/storefront/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var asha = &domain.User{ID: "u1", Fullname: "Asha", Email: "asha@example.com", Contact: "9876543210", IsVerified: true}

func newUserStore(t *testing.T) (*service.UserStore, *mocks.AuthAPI, *service.Inbox, *storage.MemoryStore) {
	t.Helper()
	api := mocks.NewAuthAPI(t)
	inbox := service.NewInbox(10, nil)
	state := storage.NewMemoryStore()
	persister := service.NewPersister(state, "client-1", "user", service.UserStateVersion)
	return service.NewUserStore(api, inbox, persister), api, inbox, state
}

func TestUserStore_Login(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		input         domain.LoginInput
		prepareMocks  func(api *mocks.AuthAPI)
		expectedError bool
		authenticated bool
		message       string
	}{
		{
			name:  "success",
			input: domain.LoginInput{Email: "asha@example.com", Password: "secret1"},
			prepareMocks: func(api *mocks.AuthAPI) {
				api.On("Login", mock.Anything, domain.LoginInput{Email: "asha@example.com", Password: "secret1"}).
					Return(asha, "Welcome back Asha", nil).Once()
			},
			authenticated: true,
			message:       "Welcome back Asha",
		},
		{
			name:          "short_password_rejected_locally",
			input:         domain.LoginInput{Email: "asha@example.com", Password: "123"},
			prepareMocks:  func(api *mocks.AuthAPI) {},
			expectedError: true,
		},
		{
			name:  "wrong_credentials",
			input: domain.LoginInput{Email: "asha@example.com", Password: "secret1"},
			prepareMocks: func(api *mocks.AuthAPI) {
				api.On("Login", mock.Anything, mock.Anything).
					Return(nil, "", &backend.APIError{Status: http.StatusBadRequest, Message: "Incorrect email or password"}).Once()
			},
			expectedError: true,
			message:       "Incorrect email or password",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			store, api, inbox, _ := newUserStore(t)
			testCase.prepareMocks(api)

			_, err := store.Login(ctx, testCase.input)

			assert.Equal(t, testCase.expectedError, err != nil)
			assert.Equal(t, testCase.authenticated, store.IsAuthenticated())
			assert.False(t, store.Loading())
			notes := inbox.Drain()
			if testCase.message == "" {
				assert.Empty(t, notes)
				return
			}
			require.Len(t, notes, 1)
			assert.Equal(t, testCase.message, notes[0].Message)
		})
	}
}

func TestUserStore_SignupValidation(t *testing.T) {
	store, _, _, _ := newUserStore(t)

	_, err := store.Signup(context.Background(), domain.SignupInput{Fullname: "Asha", Email: "asha@example.com", Contact: "12345", Password: "secret1"})

	var validationErr *service.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, map[string]string{"contact": "contact must be at least 10 characters"}, validationErr.Fields)
}

func TestUserStore_CheckAuthentication(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		prepareMocks  func(api *mocks.AuthAPI)
		expectedError bool
		authenticated bool
		notified      int
	}{
		{
			name: "valid_session",
			prepareMocks: func(api *mocks.AuthAPI) {
				api.On("CheckAuth", mock.Anything).Return(asha, nil).Once()
			},
			authenticated: true,
		},
		{
			name: "unauthorized_is_silent",
			prepareMocks: func(api *mocks.AuthAPI) {
				api.On("CheckAuth", mock.Anything).
					Return(nil, &backend.APIError{Status: http.StatusUnauthorized, Message: "User not authenticated"}).Once()
			},
		},
		{
			name: "backend_down",
			prepareMocks: func(api *mocks.AuthAPI) {
				api.On("CheckAuth", mock.Anything).
					Return(nil, &backend.TransportError{Op: "GET /user/check-auth", Err: errors.New("refused")}).Once()
			},
			expectedError: true,
			notified:      1,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			store, api, inbox, _ := newUserStore(t)
			testCase.prepareMocks(api)

			_, err := store.CheckAuthentication(ctx)

			assert.Equal(t, testCase.expectedError, err != nil)
			assert.Equal(t, testCase.authenticated, store.IsAuthenticated())
			assert.False(t, store.IsCheckingAuth())
			assert.Len(t, inbox.Drain(), testCase.notified)
		})
	}
}

func TestUserStore_SessionSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	store, api, _, state := newUserStore(t)
	api.On("VerifyEmail", mock.Anything, "123456").Return(asha, "Email verified", nil).Once()

	_, err := store.VerifyEmail(ctx, "123456")
	require.NoError(t, err)

	restored := service.NewUserStore(api, service.NewInbox(0, nil),
		service.NewPersister(state, "client-1", "user", service.UserStateVersion))
	require.NoError(t, restored.Restore(ctx))
	assert.True(t, restored.IsAuthenticated())
	assert.Equal(t, "Asha", restored.User().Fullname)

	api.On("Logout", mock.Anything).Return("Logged out", nil).Once()
	require.NoError(t, restored.Logout(ctx))
	assert.False(t, restored.IsAuthenticated())
	assert.Nil(t, restored.User())
}

func TestUserStore_PasswordFlows(t *testing.T) {
	ctx := context.Background()
	store, api, inbox, _ := newUserStore(t)

	assert.Error(t, store.ForgotPassword(ctx, "nope"))
	assert.Error(t, store.ResetPassword(ctx, "token", "123"))

	api.On("ForgotPassword", mock.Anything, "asha@example.com").Return("Reset link sent", nil).Once()
	require.NoError(t, store.ForgotPassword(ctx, "asha@example.com"))

	api.On("ResetPassword", mock.Anything, "tok", "secret1").Return("", &backend.APIError{Status: 400}).Once()
	assert.Error(t, store.ResetPassword(ctx, "tok", "secret1"))

	notes := inbox.Drain()
	require.Len(t, notes, 2)
	assert.Equal(t, "Reset link sent", notes[0].Message)
	assert.Equal(t, "Something went wrong", notes[1].Message)
}

func TestUserStore_UpdateProfile(t *testing.T) {
	store, api, _, _ := newUserStore(t)
	in := domain.UpdateProfileInput{Fullname: "Asha K", City: "Mumbai"}
	updated := *asha
	updated.Fullname = "Asha K"
	updated.City = "Mumbai"
	api.On("UpdateProfile", mock.Anything, in).Return(&updated, "Profile updated", nil).Once()

	user, err := store.UpdateProfile(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "Mumbai", user.City)
	assert.Equal(t, "Asha K", store.User().Fullname)
}
