package middleware

import (
	"net/http"
	"strings"

	"electrifind/internal/data/repository"
	"electrifind/internal/usecase"
	"electrifind/pkg/utils"

	"go.uber.org/zap"
)

// Authenticate verifies the bearer token, loads the account it belongs to
// and attaches identity + role to the request context. The account must
// still exist and still be active; a token outliving its user is refused.
func Authenticate(tokens usecase.TokenService, userRepo repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Extract token
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Not authorized to access this route")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.ResponseUnauthorized(w, "Not authorized to access this route")
				return
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				logger.Warn("Token verification failed", zap.Error(err))
				utils.ResponseUnauthorized(w, "Not authorized to access this route")
				return
			}

			userID, err := claims.UserID()
			if err != nil {
				logger.Warn("Malformed subject in token", zap.Error(err))
				utils.ResponseUnauthorized(w, "Not authorized to access this route")
				return
			}

			// Load the account; a valid token is not enough on its own
			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				logger.Error("Failed to load user for auth",
					zap.Error(err), zap.String("user_id", userID.String()))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if user == nil {
				logger.Warn("Token for deleted user", zap.String("user_id", userID.String()))
				utils.ResponseNotFound(w, "User not found")
				return
			}
			if !user.IsActive {
				logger.Warn("Token for deactivated user", zap.String("user_id", userID.String()))
				utils.ResponseForbidden(w, "User account is deactivated")
				return
			}

			ctx := utils.SetUserContext(r.Context(), user.ID, string(user.Role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Authorize gates a route on role membership. It only reads the context
// set by Authenticate; no I/O happens here.
func Authorize(logger *zap.Logger, roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := utils.GetRoleFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Not authorized to access this route")
				return
			}

			if !allowed[role] {
				logger.Warn("Insufficient role",
					zap.String("role", role),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Role '"+role+"' is not authorized to access this route")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
