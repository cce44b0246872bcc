// Package jwt реализует выпуск и проверку токенов сессии.
//
// Токен несёт единственный claim — идентификатор пользователя — и
// подписывается секретом процесса. Срока действия у токена нет:
// время жизни сессии ограничивает только кука на стороне клиента.
package jwt

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims описывает полезную нагрузку токена сессии.
type Claims struct {
	UserUID              string `json:"userId"` // Идентификатор владельца сессии
	jwt.RegisteredClaims        // Стандартные claims (здесь только IssuedAt)
}
