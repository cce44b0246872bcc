// Package shopbackend предоставляет маршруты основного приложения.
package shopbackend

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/avshapoval/shop-backend/internal/http/handlers/auth/me"
	"github.com/avshapoval/shop-backend/internal/http/handlers/auth/requestreset"
	"github.com/avshapoval/shop-backend/internal/http/handlers/auth/resetpassword"
	"github.com/avshapoval/shop-backend/internal/http/handlers/auth/signin"
	"github.com/avshapoval/shop-backend/internal/http/handlers/auth/signout"
	"github.com/avshapoval/shop-backend/internal/http/handlers/auth/signup"
	cartadd "github.com/avshapoval/shop-backend/internal/http/handlers/cart/add"
	cartlist "github.com/avshapoval/shop-backend/internal/http/handlers/cart/list"
	"github.com/avshapoval/shop-backend/internal/http/handlers/health"
	itemcreate "github.com/avshapoval/shop-backend/internal/http/handlers/item/create"
	itemlist "github.com/avshapoval/shop-backend/internal/http/handlers/item/list"
	itemread "github.com/avshapoval/shop-backend/internal/http/handlers/item/read"
	itemremove "github.com/avshapoval/shop-backend/internal/http/handlers/item/remove"
	itemupdate "github.com/avshapoval/shop-backend/internal/http/handlers/item/update"
	"github.com/avshapoval/shop-backend/internal/http/handlers/user/updatepermissions"
	"github.com/avshapoval/shop-backend/internal/http/middlewarectx"
	"github.com/avshapoval/shop-backend/internal/lib/jwt"
	authservice "github.com/avshapoval/shop-backend/internal/services/auth"
	cartservice "github.com/avshapoval/shop-backend/internal/services/cart"
	itemservice "github.com/avshapoval/shop-backend/internal/services/item"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker, authService *authservice.Service, cartService *cartservice.Service, itemService *itemservice.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewarectx.SessionMiddleware(jwtMaker, logger))

		// Открытые конечные точки
		r.Post("/signup", signup.New(logger, authService).ServeHTTP)
		r.Post("/signin", signin.New(logger, authService).ServeHTTP)
		r.Post("/signout", signout.New(logger).ServeHTTP)
		r.Post("/requestreset", requestreset.New(logger, authService).ServeHTTP)
		r.Post("/resetpassword", resetpassword.New(logger, authService).ServeHTTP)
		r.Get("/items", itemlist.New(logger, itemService).ServeHTTP)
		r.Get("/items/{id}", itemread.New(logger, itemService).ServeHTTP)

		// Группа с обязательной аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RequireAuth(logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/me", me.New(logger, authService).ServeHTTP)
			r.Post("/items", itemcreate.New(logger, itemService).ServeHTTP)
			r.Put("/items/{id}", itemupdate.New(logger, itemService).ServeHTTP)
			r.Delete("/items/{id}", itemremove.New(logger, itemService).ServeHTTP)
			r.Post("/cart", cartadd.New(logger, cartService).ServeHTTP)
			r.Get("/cart", cartlist.New(logger, cartService).ServeHTTP)
			r.Put("/users/{uid}/permissions", updatepermissions.New(logger, authService).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
