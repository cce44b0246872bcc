package auth

import (
	"context"

	"github.com/avshapoval/shop-backend/internal/apperr"
	"github.com/avshapoval/shop-backend/internal/models"
)

// RequireLoggedIn проверяет, что в сессии есть аутентифицированный
// пользователь. Проверки авторизации всегда выполняются до побочных
// эффектов защищаемой операции.
func RequireLoggedIn(sess models.Session) error {
	if !sess.IsLoggedIn() {
		return apperr.ErrUnauthenticated
	}
	return nil
}

// RequirePermission проверяет, что действующий пользователь имеет хотя бы
// одно из перечисленных прав. Набор прав читается из хранилища, а не из
// токена: токен несёт только идентификатор.
func (s *Service) RequirePermission(ctx context.Context, sess models.Session, allowed ...string) error {
	if err := RequireLoggedIn(sess); err != nil {
		return err
	}
	user, err := s.users.GetUser(ctx, sess.UserUID)
	if err != nil {
		return err
	}
	if !user.HasAnyPermission(allowed...) {
		return apperr.ErrForbidden
	}
	return nil
}

// RequireOwnerOrPermission разрешает операцию владельцу ресурса
// независимо от набора прав, иначе требует одно из перечисленных прав.
// Используется при удалении товара: владелец или {ADMIN, ITEMDELETE}.
func (s *Service) RequireOwnerOrPermission(ctx context.Context, sess models.Session, ownerUID string, allowed ...string) error {
	if err := RequireLoggedIn(sess); err != nil {
		return err
	}
	if sess.UserUID == ownerUID {
		return nil
	}
	return s.RequirePermission(ctx, sess, allowed...)
}
