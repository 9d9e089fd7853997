package usecase

import (
	"market-auth/internal/data/repository"
	"market-auth/pkg/mailer"
	"market-auth/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth AuthService
	User UserService
}

func NewService(repo *repository.Repository, mail mailer.Mailer, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth: NewAuthService(repo, mail, config, log),
		User: NewUserService(repo.User, log),
	}
}
