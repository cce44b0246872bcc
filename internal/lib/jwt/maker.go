package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Maker описывает интерфейс выпуска и проверки токенов сессии.
type Maker interface {
	// GenerateToken выпускает подписанный токен для пользователя.
	GenerateToken(userUID string) (string, error)
	// ParseToken проверяет подпись и возвращает claims токена.
	ParseToken(tokenStr string) (*Claims, error)
}

// MakerImpl реализует Maker на HMAC-SHA256 с секретным ключом процесса.
type MakerImpl struct {
	secretKey string
}

// NewMaker создаёт новый MakerImpl. Пустой секрет недопустим:
// его отсутствие должно останавливать процесс на старте, а не здесь.
func NewMaker(secretKey string) *MakerImpl {
	return &MakerImpl{secretKey: secretKey}
}

// GenerateToken создает JWT с единственным claim — userId.
func (m *MakerImpl) GenerateToken(userUID string) (string, error) {
	const op = "jwt.GenerateToken"
	claims := Claims{
		UserUID: userUID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.secretKey))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

// ParseToken парсит токен, проверяет подпись и возвращает claims.
// Любой дефект токена — повреждённая нагрузка, чужая подпись,
// неожиданный алгоритм — неразличим для вызывающего.
func (m *MakerImpl) ParseToken(tokenStr string) (*Claims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(m.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserUID == "" {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}
