package wire

import (
	"electrifind/internal/adaptor"
	"electrifind/internal/data/entity"
	"electrifind/internal/data/repository"
	"electrifind/internal/usecase"
	"electrifind/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireUser configures the admin account-management routes
func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	service *usecase.Service,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Requires both authentication AND the admin role
	r.With(
		middleware.Authenticate(service.Token, repo.User, log),
		middleware.Authorize(log, string(entity.RoleAdmin)),
	).Route("/api/admin/users", func(r chi.Router) {
		r.Get("/", userHandler.GetAllUsers)
		r.Patch("/{id}/deactivate", userHandler.DeactivateUser)
	})
}
