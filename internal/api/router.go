package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/mnazarko/movie-store/internal/api/handlers"
	"github.com/mnazarko/movie-store/internal/api/middleware"
	"github.com/mnazarko/movie-store/internal/auth"
	"github.com/mnazarko/movie-store/internal/domain"
	"github.com/mnazarko/movie-store/internal/service"
)

func NewRouter(services *service.Services, issuer auth.TokenIssuer) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	accountHandler := handlers.NewAccountHandler(services.Account)
	movieHandler := handlers.NewMovieHandler(services.Catalog)
	cartHandler := handlers.NewCartHandler(services.Cart)
	orderHandler := handlers.NewOrderHandler(services.Order)

	r.Route("/api/v1", func(r chi.Router) {
		// Public account routes
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/register", accountHandler.Register)
			r.Post("/login", accountHandler.Login)
			r.Post("/activate", accountHandler.Activate)
			r.Post("/refresh", accountHandler.Refresh)
			r.Post("/password-reset/request", accountHandler.RequestPasswordReset)
			r.Post("/password-reset/complete", accountHandler.ResetPassword)

			// Protected account routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(issuer))
				r.Get("/me", accountHandler.Me)
				r.Post("/logout", accountHandler.Logout)
			})
		})

		// Catalog routes
		r.Route("/movies", func(r chi.Router) {
			r.Get("/", movieHandler.List)
			r.Get("/{id}", movieHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(issuer))
				r.Use(middleware.RequireGroup(services.Account, domain.GroupModerator, domain.GroupAdmin))
				r.Post("/", movieHandler.Create)
			})
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(issuer))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartHandler.Get)
				r.Post("/items", cartHandler.AddItem)
				r.Delete("/items/{movieId}", cartHandler.RemoveItem)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", orderHandler.Place)
				r.Get("/", orderHandler.List)
				r.Post("/{id}/cancel", orderHandler.Cancel)
			})
		})
	})

	return r
}
