package wire

import (
	"net/http"

	"electrifind/internal/adaptor"
	"electrifind/internal/data/repository"
	"electrifind/internal/usecase"
	"electrifind/pkg/middleware"
	"electrifind/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired dependencies
type App struct {
	Router *chi.Mux
}

// Wiring initializes all dependencies
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, service, repo, config, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the Chi router
func setupRouter(
	handler *adaptor.Handler,
	service *usecase.Service,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler.Auth, service, repo, logger)
	wireUser(r, handler.User, service, repo, logger)

	// Health check endpoint
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		utils.ResponseSuccess(w, config.App.Name+" API is running...", map[string]string{
			"version":     "1.0.0",
			"environment": config.App.Env,
		})
	})

	// JSON 404 for unknown routes
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		utils.ResponseNotFound(w, "Route not found")
	})

	return r
}
