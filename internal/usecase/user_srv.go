package usecase

import (
	"context"

	"electrifind/internal/data/repository"
	"electrifind/internal/dto/request"
	"electrifind/internal/dto/response"
	"electrifind/pkg/apperr"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService covers the admin-only account management surface.
type UserService interface {
	GetAllUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	DeactivateUser(ctx context.Context, userID string) error
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log,
	}
}

func (us *userService) GetAllUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	users, err := us.userRepo.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		us.log.Error("Failed to get all users",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, apperr.Internal(err)
	}

	total, err := us.userRepo.CountAll(ctx)
	if err != nil {
		us.log.Error("Failed to count users", zap.Error(err))
		return nil, apperr.Internal(err)
	}

	userResponses := make([]response.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = response.UserToResponse(user)
	}

	return response.NewPaginatedResponse(userResponses, req.Page, req.PerPage, total), nil
}

// DeactivateUser clears the active flag; the record itself is kept.
// Outstanding tokens for the account stop working at the next request
// because the guard re-checks the flag.
func (us *userService) DeactivateUser(ctx context.Context, userID string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		us.log.Warn("Invalid user ID", zap.String("user_id", userID), zap.Error(err))
		return apperr.Validation("Invalid user ID")
	}

	if err := us.userRepo.Deactivate(ctx, id); err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return err
		}
		us.log.Error("Failed to deactivate user", zap.Error(err), zap.String("user_id", userID))
		return apperr.Internal(err)
	}

	return nil
}
