package usecase

import (
	"electrifind/internal/data/repository"
	"electrifind/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Token TokenService
	Auth  AuthService
	User  UserService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	tokens := NewTokenService(config.JWT)

	return &Service{
		Token: tokens,
		Auth:  NewAuthService(repo.User, tokens, log),
		User:  NewUserService(repo.User, log),
	}
}
