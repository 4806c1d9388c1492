// Package expensetracker предоставляет маршруты для основного приложения.
package expensetracker

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/expense-tracker/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/expense-tracker/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/expense-tracker/internal/http/handlers/expense/create"
	"github.com/magabrotheeeer/expense-tracker/internal/http/handlers/expense/health"
	"github.com/magabrotheeeer/expense-tracker/internal/http/handlers/expense/list"
	"github.com/magabrotheeeer/expense-tracker/internal/http/handlers/expense/read"
	"github.com/magabrotheeeer/expense-tracker/internal/http/handlers/expense/remove"
	"github.com/magabrotheeeer/expense-tracker/internal/http/handlers/expense/update"
	"github.com/magabrotheeeer/expense-tracker/internal/http/handlers/report/categorysum"
	"github.com/magabrotheeeer/expense-tracker/internal/http/handlers/report/chart"
	"github.com/magabrotheeeer/expense-tracker/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/expense-tracker/internal/services/auth"
	expenseservice "github.com/magabrotheeeer/expense-tracker/internal/services/expense"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService *authservice.AuthService, expenseService *expenseservice.ExpenseService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Get("/health", health.New(logger).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/expenses", create.New(logger, expenseService).ServeHTTP)
			r.Get("/expenses", list.New(logger, expenseService).ServeHTTP)
			r.Get("/expenses/{id}", read.New(logger, expenseService).ServeHTTP)
			r.Put("/expenses/{id}", update.New(logger, expenseService).ServeHTTP)
			r.Delete("/expenses/{id}", remove.New(logger, expenseService).ServeHTTP)
			r.Get("/reports/categories", categorysum.New(logger, expenseService).ServeHTTP)
			r.Get("/reports/chart", chart.New(logger, expenseService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
