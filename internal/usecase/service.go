package usecase

import (
	"errors"

	"user-panel/internal/data/repository"
	"user-panel/pkg/storage"
	"user-panel/pkg/utils"

	"go.uber.org/zap"
)

// ErrUserNotFound is returned when a lookup by id yields no record.
var ErrUserNotFound = errors.New("User not found.")

type Service struct {
	Auth AuthService
	User UserService
}

func NewService(repo *repository.Repository, store storage.ObjectStorage, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth: NewAuthService(repo, config, log),
		User: NewUserService(repo.User, store, log),
	}
}
