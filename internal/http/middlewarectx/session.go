// Package middlewarectx содержит HTTP middleware работы с сессией.
//
// SessionMiddleware читает JWT из cookie сессии и кладёт в контекст
// models.Session. Отсутствующий или невалидный токен не является ошибкой:
// запрос продолжается с анонимной сессией, решение о доступе принимают
// обработчики и RequireAuth.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/avshapoval/shop-backend/internal/http/response"
	"github.com/avshapoval/shop-backend/internal/http/sessioncookie"
	"github.com/avshapoval/shop-backend/internal/lib/jwt"
	"github.com/avshapoval/shop-backend/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// SessionKey — ключ сессии в контексте запроса.
const SessionKey Key = "session"

// SessionMiddleware возвращает middleware, который разбирает cookie сессии.
//
// Токен несёт только UID пользователя; права при каждой проверке читаются
// из хранилища, поэтому здесь нет обращений к базе.
func SessionMiddleware(maker jwt.Maker, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := models.Session{}

			if cookie, err := r.Cookie(sessioncookie.Name); err == nil && cookie.Value != "" {
				claims, err := maker.ParseToken(cookie.Value)
				if err != nil {
					log.Info("invalid session token, continuing as anonymous")
				} else {
					sess.UserUID = claims.UserUID
				}
			}

			ctx := context.WithValue(r.Context(), SessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext возвращает сессию запроса. Вне SessionMiddleware
// возвращается анонимная сессия.
func SessionFromContext(ctx context.Context) models.Session {
	if sess, ok := ctx.Value(SessionKey).(models.Session); ok {
		return sess
	}
	return models.Session{}
}

// RequireAuth возвращает middleware, который пропускает только запросы
// с аутентифицированной сессией, иначе отвечает 401.
func RequireAuth(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !SessionFromContext(r.Context()).IsLoggedIn() {
				log.Error("request without authenticated session")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("authentication required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
