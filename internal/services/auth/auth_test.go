package auth_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/avshapoval/shop-backend/internal/apperr"
	customjwt "github.com/avshapoval/shop-backend/internal/lib/jwt"
	"github.com/avshapoval/shop-backend/internal/lib/password"
	"github.com/avshapoval/shop-backend/internal/models"
	authservice "github.com/avshapoval/shop-backend/internal/services/auth"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) RegisterUser(ctx context.Context, user models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) UpdateUserPermissions(ctx context.Context, userUID string, permissions []string) (*models.User, error) {
	args := m.Called(ctx, userUID, permissions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) SetResetToken(ctx context.Context, email, token string, expiry time.Time) error {
	args := m.Called(ctx, email, token, expiry)
	return args.Error(0)
}

func (m *UserRepoMock) ConsumeResetToken(ctx context.Context, token, passwordHash string, now time.Time) (*models.User, error) {
	args := m.Called(ctx, token, passwordHash, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// Мок для jwt.Maker
type JwtMakerMock struct {
	mock.Mock
}

func (m *JwtMakerMock) GenerateToken(userUID string) (string, error) {
	args := m.Called(userUID)
	return args.String(0), args.Error(1)
}

func (m *JwtMakerMock) ParseToken(token string) (*customjwt.Claims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customjwt.Claims), args.Error(1)
}

// Мок для ResetNotifier
type NotifierMock struct {
	mock.Mock
}

func (m *NotifierMock) SendResetLink(ctx context.Context, email, token string) error {
	args := m.Called(ctx, email, token)
	return args.Error(0)
}

func newTestService(repo *UserRepoMock, maker *JwtMakerMock, notifier *NotifierMock) *authservice.Service {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return authservice.New(repo, maker, notifier, logger)
}

func TestService_SignUp(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		username   string
		password   string
		setupMocks func(r *UserRepoMock, j *JwtMakerMock)
		wantToken  string
		wantErr    error
	}{
		{
			name:     "successful signup lowercases email and grants USER",
			email:    "Test@Example.COM",
			username: "testuser",
			password: "password123",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("RegisterUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
					return user.Email == "test@example.com" &&
						user.Username == "testuser" &&
						user.PasswordHash != "" &&
						user.PasswordHash != "password123" &&
						len(user.Permissions) == 1 &&
						user.Permissions[0] == models.PermissionUser
				})).Return(&models.User{
					UID:         "some-uuid-string",
					Email:       "test@example.com",
					Username:    "testuser",
					Permissions: []string{models.PermissionUser},
				}, nil).Once()
				j.On("GenerateToken", "some-uuid-string").Return("signed-token", nil).Once()
			},
			wantToken: "signed-token",
		},
		{
			name:     "duplicate email",
			email:    "test@example.com",
			username: "testuser",
			password: "password123",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("RegisterUser", mock.Anything, mock.Anything).
					Return(nil, apperr.ErrUserAlreadyExists).Once()
			},
			wantErr: apperr.ErrUserAlreadyExists,
		},
		{
			name:       "empty password fails before repository",
			email:      "test@example.com",
			username:   "testuser",
			password:   "",
			setupMocks: func(_ *UserRepoMock, _ *JwtMakerMock) {},
			wantErr:    apperr.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			jwtMock := new(JwtMakerMock)
			notifier := new(NotifierMock)
			svc := newTestService(repo, jwtMock, notifier)

			tt.setupMocks(repo, jwtMock)

			user, token, err := svc.SignUp(context.Background(), tt.email, tt.username, tt.password)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantToken, token)
				assert.Equal(t, "test@example.com", user.Email)
			}

			repo.AssertExpectations(t)
			jwtMock.AssertExpectations(t)
		})
	}
}

func TestService_SignIn(t *testing.T) {
	rawPassword := "correctpassword"
	hash, err := password.Hash(rawPassword)
	require.NoError(t, err)

	storedUser := &models.User{
		UID:          "some-uuid-string",
		Email:        "test@example.com",
		Username:     "testuser",
		PasswordHash: hash,
		Permissions:  []string{models.PermissionUser},
	}

	tests := []struct {
		name       string
		email      string
		password   string
		setupMocks func(r *UserRepoMock, j *JwtMakerMock)
		wantErr    error
	}{
		{
			name:     "successful signin",
			email:    "Test@Example.com",
			password: rawPassword,
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "test@example.com").
					Return(storedUser, nil).Once()
				j.On("GenerateToken", "some-uuid-string").Return("signed-token", nil).Once()
			},
		},
		{
			name:     "wrong password",
			email:    "test@example.com",
			password: "wrongpassword",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "test@example.com").
					Return(storedUser, nil).Once()
			},
			wantErr: apperr.ErrInvalidCredential,
		},
		{
			// Неизвестный email и неверный пароль дают одну и ту же ошибку
			name:     "unknown email",
			email:    "ghost@example.com",
			password: rawPassword,
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "ghost@example.com").
					Return(nil, apperr.ErrUserNotFound).Once()
			},
			wantErr: apperr.ErrInvalidCredential,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			jwtMock := new(JwtMakerMock)
			notifier := new(NotifierMock)
			svc := newTestService(repo, jwtMock, notifier)

			tt.setupMocks(repo, jwtMock)

			user, token, err := svc.SignIn(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "signed-token", token)
				assert.Equal(t, storedUser.UID, user.UID)
			}

			repo.AssertExpectations(t)
			jwtMock.AssertExpectations(t)
		})
	}
}

func TestService_RequestReset(t *testing.T) {
	storedUser := &models.User{
		UID:   "some-uuid-string",
		Email: "test@example.com",
	}

	t.Run("issues one hour token and notifies", func(t *testing.T) {
		repo := new(UserRepoMock)
		jwtMock := new(JwtMakerMock)
		notifier := new(NotifierMock)
		svc := newTestService(repo, jwtMock, notifier)

		var issuedToken string
		repo.On("GetUserByEmail", mock.Anything, "test@example.com").
			Return(storedUser, nil).Once()
		repo.On("SetResetToken", mock.Anything, "test@example.com",
			mock.MatchedBy(func(token string) bool {
				issuedToken = token
				return len(token) == 40
			}),
			mock.MatchedBy(func(expiry time.Time) bool {
				return time.Until(expiry) > 59*time.Minute && time.Until(expiry) <= time.Hour
			})).Return(nil).Once()
		notifier.On("SendResetLink", mock.Anything, "test@example.com",
			mock.MatchedBy(func(token string) bool {
				return token == issuedToken
			})).Return(nil).Once()

		err := svc.RequestReset(context.Background(), "Test@example.com")
		require.NoError(t, err)

		repo.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})

	t.Run("unknown email is surfaced", func(t *testing.T) {
		repo := new(UserRepoMock)
		jwtMock := new(JwtMakerMock)
		notifier := new(NotifierMock)
		svc := newTestService(repo, jwtMock, notifier)

		repo.On("GetUserByEmail", mock.Anything, "ghost@example.com").
			Return(nil, apperr.ErrUserNotFound).Once()

		err := svc.RequestReset(context.Background(), "ghost@example.com")
		assert.ErrorIs(t, err, apperr.ErrUserNotFound)

		repo.AssertNotCalled(t, "SetResetToken",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		notifier.AssertNotCalled(t, "SendResetLink",
			mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("notifier failure does not revoke token", func(t *testing.T) {
		repo := new(UserRepoMock)
		jwtMock := new(JwtMakerMock)
		notifier := new(NotifierMock)
		svc := newTestService(repo, jwtMock, notifier)

		repo.On("GetUserByEmail", mock.Anything, "test@example.com").
			Return(storedUser, nil).Once()
		repo.On("SetResetToken", mock.Anything, "test@example.com",
			mock.Anything, mock.Anything).Return(nil).Once()
		notifier.On("SendResetLink", mock.Anything, "test@example.com", mock.Anything).
			Return(errors.New("broker down")).Once()

		err := svc.RequestReset(context.Background(), "test@example.com")
		assert.NoError(t, err)

		repo.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})
}

func TestService_ResetPassword(t *testing.T) {
	t.Run("mismatch is checked before any storage access", func(t *testing.T) {
		repo := new(UserRepoMock)
		jwtMock := new(JwtMakerMock)
		notifier := new(NotifierMock)
		svc := newTestService(repo, jwtMock, notifier)

		user, token, err := svc.ResetPassword(context.Background(),
			"sometoken", "newpassword", "differentpassword")
		assert.ErrorIs(t, err, apperr.ErrPasswordMismatch)
		assert.Nil(t, user)
		assert.Empty(t, token)

		repo.AssertNotCalled(t, "ConsumeResetToken",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid or expired token", func(t *testing.T) {
		repo := new(UserRepoMock)
		jwtMock := new(JwtMakerMock)
		notifier := new(NotifierMock)
		svc := newTestService(repo, jwtMock, notifier)

		repo.On("ConsumeResetToken", mock.Anything, "badtoken", mock.Anything, mock.Anything).
			Return(nil, apperr.ErrInvalidOrExpiredToken).Once()

		user, token, err := svc.ResetPassword(context.Background(),
			"badtoken", "newpassword", "newpassword")
		assert.ErrorIs(t, err, apperr.ErrInvalidOrExpiredToken)
		assert.Nil(t, user)
		assert.Empty(t, token)

		repo.AssertExpectations(t)
	})

	t.Run("successful reset opens new session", func(t *testing.T) {
		repo := new(UserRepoMock)
		jwtMock := new(JwtMakerMock)
		notifier := new(NotifierMock)
		svc := newTestService(repo, jwtMock, notifier)

		repo.On("ConsumeResetToken", mock.Anything, "goodtoken",
			mock.MatchedBy(func(hash string) bool {
				return password.Verify("newpassword", hash)
			}), mock.Anything).
			Return(&models.User{UID: "some-uuid-string", Email: "test@example.com"}, nil).Once()
		jwtMock.On("GenerateToken", "some-uuid-string").Return("fresh-token", nil).Once()

		user, token, err := svc.ResetPassword(context.Background(),
			"goodtoken", "newpassword", "newpassword")
		require.NoError(t, err)
		assert.Equal(t, "fresh-token", token)
		assert.Equal(t, "some-uuid-string", user.UID)

		repo.AssertExpectations(t)
		jwtMock.AssertExpectations(t)
	})
}

func TestService_UpdatePermissions(t *testing.T) {
	actorAdmin := &models.User{
		UID:         "admin-uid",
		Permissions: []string{models.PermissionAdmin},
	}
	actorPlain := &models.User{
		UID:         "plain-uid",
		Permissions: []string{models.PermissionUser},
	}

	t.Run("admin replaces permission set", func(t *testing.T) {
		repo := new(UserRepoMock)
		jwtMock := new(JwtMakerMock)
		notifier := new(NotifierMock)
		svc := newTestService(repo, jwtMock, notifier)

		newPerms := []string{models.PermissionUser, models.PermissionItemDelete}
		repo.On("GetUser", mock.Anything, "admin-uid").Return(actorAdmin, nil).Once()
		repo.On("UpdateUserPermissions", mock.Anything, "target-uid", newPerms).
			Return(&models.User{UID: "target-uid", Permissions: newPerms}, nil).Once()

		user, err := svc.UpdatePermissions(context.Background(),
			models.Session{UserUID: "admin-uid"}, "target-uid", newPerms)
		require.NoError(t, err)
		assert.Equal(t, newPerms, user.Permissions)

		repo.AssertExpectations(t)
	})

	t.Run("plain user is forbidden", func(t *testing.T) {
		repo := new(UserRepoMock)
		jwtMock := new(JwtMakerMock)
		notifier := new(NotifierMock)
		svc := newTestService(repo, jwtMock, notifier)

		repo.On("GetUser", mock.Anything, "plain-uid").Return(actorPlain, nil).Once()

		user, err := svc.UpdatePermissions(context.Background(),
			models.Session{UserUID: "plain-uid"}, "target-uid", []string{models.PermissionAdmin})
		assert.ErrorIs(t, err, apperr.ErrForbidden)
		assert.Nil(t, user)

		repo.AssertNotCalled(t, "UpdateUserPermissions",
			mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("anonymous session is unauthenticated", func(t *testing.T) {
		repo := new(UserRepoMock)
		jwtMock := new(JwtMakerMock)
		notifier := new(NotifierMock)
		svc := newTestService(repo, jwtMock, notifier)

		user, err := svc.UpdatePermissions(context.Background(),
			models.Session{}, "target-uid", []string{models.PermissionAdmin})
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
		assert.Nil(t, user)

		repo.AssertNotCalled(t, "GetUser", mock.Anything, mock.Anything)
	})
}

func TestService_Me(t *testing.T) {
	t.Run("anonymous session", func(t *testing.T) {
		repo := new(UserRepoMock)
		jwtMock := new(JwtMakerMock)
		notifier := new(NotifierMock)
		svc := newTestService(repo, jwtMock, notifier)

		user, err := svc.Me(context.Background(), models.Session{})
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
		assert.Nil(t, user)
	})

	t.Run("logged in user", func(t *testing.T) {
		repo := new(UserRepoMock)
		jwtMock := new(JwtMakerMock)
		notifier := new(NotifierMock)
		svc := newTestService(repo, jwtMock, notifier)

		repo.On("GetUser", mock.Anything, "some-uuid-string").
			Return(&models.User{UID: "some-uuid-string"}, nil).Once()

		user, err := svc.Me(context.Background(), models.Session{UserUID: "some-uuid-string"})
		require.NoError(t, err)
		assert.Equal(t, "some-uuid-string", user.UID)
	})
}
