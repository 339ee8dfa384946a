package wire

import (
	"electrifind/internal/adaptor"
	"electrifind/internal/data/repository"
	"electrifind/internal/usecase"
	"electrifind/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	service *usecase.Service,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/auth/register", authHandler.Register)
	r.Post("/api/auth/login", authHandler.Login)

	// ==================== PROTECTED ROUTES ====================
	authenticate := middleware.Authenticate(service.Token, repo.User, log)

	r.With(authenticate).Get("/api/auth/me", authHandler.GetMe)
	r.With(authenticate).Put("/api/auth/profile", authHandler.UpdateProfile)
	r.With(authenticate).Put("/api/auth/password", authHandler.ChangePassword)
	r.With(authenticate).Post("/api/auth/logout", authHandler.Logout)
}
