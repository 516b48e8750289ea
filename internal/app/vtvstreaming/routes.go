// Package vtvstreaming собирает HTTP-приложение: хранилища, сервисы и маршруты.
package vtvstreaming

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/vtv-streaming/internal/http/handlers/admin/accounts"
	"github.com/magabrotheeeer/vtv-streaming/internal/http/handlers/admin/editimage"
	"github.com/magabrotheeeer/vtv-streaming/internal/http/handlers/admin/publish"
	"github.com/magabrotheeeer/vtv-streaming/internal/http/handlers/admin/reject"
	"github.com/magabrotheeeer/vtv-streaming/internal/http/handlers/admin/validate"
	"github.com/magabrotheeeer/vtv-streaming/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/vtv-streaming/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/vtv-streaming/internal/http/handlers/catalog/categories"
	"github.com/magabrotheeeer/vtv-streaming/internal/http/handlers/catalog/list"
	"github.com/magabrotheeeer/vtv-streaming/internal/http/handlers/catalog/play"
	"github.com/magabrotheeeer/vtv-streaming/internal/http/handlers/catalog/plans"
	"github.com/magabrotheeeer/vtv-streaming/internal/http/handlers/catalog/read"
	"github.com/magabrotheeeer/vtv-streaming/internal/http/handlers/health"
	"github.com/magabrotheeeer/vtv-streaming/internal/http/handlers/profile/renewal"
	"github.com/magabrotheeeer/vtv-streaming/internal/http/handlers/profile/show"
	"github.com/magabrotheeeer/vtv-streaming/internal/http/middlewarectx"
	"github.com/magabrotheeeer/vtv-streaming/internal/imageedit"
	"github.com/magabrotheeeer/vtv-streaming/internal/services/auth"
	"github.com/magabrotheeeer/vtv-streaming/internal/services/catalog"
	"github.com/magabrotheeeer/vtv-streaming/internal/services/entitlement"

	_ "github.com/magabrotheeeer/vtv-streaming/docs"
)

// Services — зависимости, из которых строятся маршруты.
type Services struct {
	Accounts     *entitlement.Manager
	Auth         *auth.AuthService
	Catalog      *catalog.ContentService
	Editor       *imageedit.Editor
	ImageLimiter *rate.Limiter
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, svc Services) {
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Get("/health", health.New(logger).ServeHTTP)
		r.Post("/register", register.New(logger, svc.Accounts).ServeHTTP)
		r.Post("/login", login.New(logger, svc.Auth).ServeHTTP)
		r.Get("/plans", plans.New(logger, svc.Catalog).ServeHTTP)
		r.Get("/categories", categories.New(logger, svc.Catalog).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(svc.Auth, logger))

			r.Get("/profile", show.New(logger, svc.Accounts).ServeHTTP)
			r.Post("/profile/renewal", renewal.New(logger, svc.Accounts).ServeHTTP)
			r.Get("/contents", list.New(logger, svc.Catalog).ServeHTTP)
			r.Get("/contents/{id}", read.New(logger, svc.Catalog).ServeHTTP)
			r.Post("/contents/{id}/play", play.New(logger, svc.Catalog).ServeHTTP)

			r.Route("/admin", func(r chi.Router) {
				r.Use(middlewarectx.RequireAdmin(logger))

				r.Get("/accounts", accounts.New(logger, svc.Accounts).ServeHTTP)
				r.Post("/accounts/{id}/validate", validate.New(logger, svc.Accounts).ServeHTTP)
				r.Post("/accounts/{id}/reject", reject.New(logger, svc.Accounts).ServeHTTP)
				r.Post("/contents", publish.New(logger, svc.Catalog).ServeHTTP)
				r.With(middlewarectx.RateLimitMiddleware(logger, svc.ImageLimiter)).
					Post("/images/edit", editimage.New(logger, svc.Editor).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
