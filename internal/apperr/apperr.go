// Package apperr определяет типизированные ошибки уровня приложения.
//
// Обработчики сопоставляют их с HTTP-статусами через errors.Is,
// сервисы возвращают их напрямую или обёрнутыми через %w.
package apperr

import "errors"

var (
	// ErrUnauthenticated — операция требует аутентификации, а сессии нет.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrForbidden — пользователь аутентифицирован, но не имеет нужного разрешения.
	ErrForbidden = errors.New("insufficient permissions")
	// ErrInvalidCredential — токен сессии повреждён или подпись не сходится.
	ErrInvalidCredential = errors.New("invalid session credential")
	// ErrUserNotFound — пользователь с таким email или uid не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserAlreadyExists — email уже занят.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrPasswordMismatch — подтверждение не совпадает с новым паролем.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrInvalidOrExpiredToken — токен сброса отсутствует, чужой или просрочен.
	// Просроченный и поддельный токены для вызывающего неразличимы.
	ErrInvalidOrExpiredToken = errors.New("invalid or expired reset token")
	// ErrValidation — некорректные входные данные.
	ErrValidation = errors.New("invalid input")
)
