// Package sessioncookie управляет cookie сессии с токеном.
package sessioncookie

import (
	"net/http"
	"time"
)

// Name — имя cookie с токеном сессии.
const Name = "token"

// maxAge — срок жизни cookie: один год. Сам токен срока не несёт,
// возрастом сессии управляет только cookie.
const maxAge = int(365 * 24 * time.Hour / time.Second)

// Set выставляет cookie сессии с переданным токеном.
func Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear сбрасывает cookie сессии.
func Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
