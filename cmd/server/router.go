package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tourbase/tours-api/internal/api"
	apiMiddleware "github.com/tourbase/tours-api/internal/api/middleware"
	"github.com/tourbase/tours-api/internal/domain"
)

// setupRouter configures the application router with all routes and
// middleware. Tour reads are public; aggregate planning and every mutation
// sit behind authentication, with catalog changes further restricted to
// staff roles.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	authHandler := api.NewAuthHandler(app.userStore, app.jwtService, app.hasher, app.hasher, app.logger)
	tourHandler := api.NewTourHandler(app.tourStore, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.userStore)

	r.Route("/api/v1", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/users/signup", authHandler.Signup)
		r.Post("/users/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Patch("/users/password", authHandler.UpdatePassword)
		})

		r.Route("/tours", func(r chi.Router) {
			// Public catalog reads
			r.Get("/", tourHandler.ListTours)
			r.Get("/top-5-cheap", tourHandler.TopTours)
			r.Get("/stats", tourHandler.TourStats)
			r.Get("/{tourID}", tourHandler.GetTour)

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Authenticate)
				r.Get("/monthly-plan/{year}", tourHandler.MonthlyPlan)

				r.Group(func(r chi.Router) {
					r.Use(apiMiddleware.RequireRoles(domain.RoleAdmin, domain.RoleLeadGuide))
					r.Post("/", tourHandler.CreateTour)
					r.Patch("/{tourID}", tourHandler.UpdateTour)
					r.Delete("/{tourID}", tourHandler.DeleteTour)
				})
			})
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
