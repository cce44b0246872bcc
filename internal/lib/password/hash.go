// Package password реализует безопасное хеширование и проверку паролей.
//
// Hash создает bcrypt-хэш пароля для хранения в базе данных.
// Verify сравнивает хэш с введённым паролем.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/avshapoval/shop-backend/internal/apperr"
)

// Hash принимает пароль пользователя и возвращает его bcrypt-хэш
// со стоимостью 10 раундов. Пустой пароль — ошибка валидации.
func Hash(raw string) (string, error) {
	const op = "password.Hash"
	if raw == "" {
		return "", fmt.Errorf("%s: %w", op, apperr.ErrValidation)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashed), nil
}

// Verify сравнивает bcrypt-хэш с введённым паролем.
// Несовпадение — это false, а не ошибка.
func Verify(raw, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}
