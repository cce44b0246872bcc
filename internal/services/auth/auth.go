// Package auth содержит бизнес-логику учётных записей: регистрацию,
// вход, сброс пароля по токену и управление набором прав.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avshapoval/shop-backend/internal/apperr"
	"github.com/avshapoval/shop-backend/internal/lib/jwt"
	"github.com/avshapoval/shop-backend/internal/lib/password"
	"github.com/avshapoval/shop-backend/internal/lib/resettoken"
	"github.com/avshapoval/shop-backend/internal/lib/sl"
	"github.com/avshapoval/shop-backend/internal/models"
)

// UserRepository описывает контракт работы с пользователями в хранилище.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает созданную запись.
	RegisterUser(ctx context.Context, user models.User) (*models.User, error)
	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	// GetUserByEmail возвращает пользователя по email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// UpdateUserPermissions заменяет набор прав пользователя на переданный.
	UpdateUserPermissions(ctx context.Context, userUID string, permissions []string) (*models.User, error)
	// SetResetToken записывает токен сброса и срок его действия.
	SetResetToken(ctx context.Context, email, token string, expiry time.Time) error
	// ConsumeResetToken одной условной записью меняет хэш пароля и гасит токен.
	ConsumeResetToken(ctx context.Context, token, passwordHash string, now time.Time) (*models.User, error)
}

// ResetNotifier отправляет пользователю письмо со ссылкой сброса пароля.
// Ссылку из токена собирает вызывающая сторона, а не workflow.
type ResetNotifier interface {
	SendResetLink(ctx context.Context, email, token string) error
}

// Service отвечает за аутентификацию и жизненный цикл учётной записи.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
	notifier ResetNotifier
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(users UserRepository, jwtMaker jwt.Maker, notifier ResetNotifier, log *slog.Logger) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
		notifier: notifier,
		log:      log,
	}
}

// SignUp создает пользователя с набором прав ровно {USER}, хэширует пароль
// и выпускает токен сессии. Email нормализуется к нижнему регистру.
func (s *Service) SignUp(ctx context.Context, email, username, rawPassword string) (*models.User, string, error) {
	if rawPassword == "" {
		return nil, "", apperr.ErrValidation
	}
	hashed, err := password.Hash(rawPassword)
	if err != nil {
		return nil, "", err
	}
	user := models.User{
		Email:        strings.ToLower(email),
		Username:     username,
		PasswordHash: hashed,
		Permissions:  []string{models.PermissionUser},
	}
	created, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		return nil, "", err
	}
	token, err := s.jwtMaker.GenerateToken(created.UID)
	if err != nil {
		return nil, "", err
	}
	return created, token, nil
}

// SignIn проверяет пароль и выпускает токен сессии. Неизвестный email и
// неверный пароль отдаются одинаково, чтобы не раскрывать, что именно не так.
func (s *Service) SignIn(ctx context.Context, email, rawPassword string) (*models.User, string, error) {
	user, err := s.users.GetUserByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, "", apperr.ErrInvalidCredential
	}
	if !password.Verify(rawPassword, user.PasswordHash) {
		return nil, "", apperr.ErrInvalidCredential
	}
	token, err := s.jwtMaker.GenerateToken(user.UID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Me возвращает текущего пользователя сессии.
func (s *Service) Me(ctx context.Context, sess models.Session) (*models.User, error) {
	if err := RequireLoggedIn(sess); err != nil {
		return nil, err
	}
	return s.users.GetUser(ctx, sess.UserUID)
}

// RequestReset выдаёт пользователю одноразовый токен сброса пароля сроком
// на час и ставит письмо со ссылкой в очередь отправки. Ошибка отправки
// логируется и не отменяет уже записанный токен. Неизвестный email отдаётся
// как UserNotFound — утечка существования учётной записи здесь осознанная.
func (s *Service) RequestReset(ctx context.Context, email string) error {
	const op = "auth.RequestReset"
	user, err := s.users.GetUserByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return err
	}
	token, err := resettoken.New()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	expiry := time.Now().Add(resettoken.TTL)
	if err := s.users.SetResetToken(ctx, user.Email, token, expiry); err != nil {
		return err
	}
	if err := s.notifier.SendResetLink(ctx, user.Email, token); err != nil {
		s.log.Error("failed to enqueue reset email", sl.Err(err))
	}
	return nil
}

// ResetPassword гасит токен сброса: проверяет подтверждение пароля до
// любого обращения к хранилищу, затем одной условной записью меняет хэш
// и очищает оба поля токена. Второе погашение того же токена, как и
// просроченный или поддельный токен, завершается InvalidOrExpiredToken.
// На успех выпускается новый токен сессии.
func (s *Service) ResetPassword(ctx context.Context, resetToken, newPassword, confirmPassword string) (*models.User, string, error) {
	if newPassword != confirmPassword {
		return nil, "", apperr.ErrPasswordMismatch
	}
	if newPassword == "" {
		return nil, "", apperr.ErrValidation
	}
	hashed, err := password.Hash(newPassword)
	if err != nil {
		return nil, "", err
	}
	user, err := s.users.ConsumeResetToken(ctx, resetToken, hashed, time.Now())
	if err != nil {
		return nil, "", err
	}
	token, err := s.jwtMaker.GenerateToken(user.UID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// UpdatePermissions заменяет набор прав целевого пользователя ровно на
// переданный. Доступно только действующему пользователю с правом
// ADMIN или PERMISSIONUPDATE.
func (s *Service) UpdatePermissions(ctx context.Context, sess models.Session, targetUID string, permissions []string) (*models.User, error) {
	if err := s.RequirePermission(ctx, sess,
		models.PermissionAdmin, models.PermissionPermissionUpdate); err != nil {
		return nil, err
	}
	if len(permissions) == 0 {
		return nil, apperr.ErrValidation
	}
	return s.users.UpdateUserPermissions(ctx, targetUID, permissions)
}
