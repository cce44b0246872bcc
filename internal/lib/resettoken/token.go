// Package resettoken генерирует одноразовые токены сброса пароля.
package resettoken

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// TTL — срок действия выданного токена сброса.
const TTL = time.Hour

// New возвращает криптографически случайный токен: 20 байт в hex-кодировке.
func New() (string, error) {
	const op = "resettoken.New"
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return hex.EncodeToString(buf), nil
}
