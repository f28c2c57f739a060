package auth

import (
	"errors"

	"economy_backend/internal/config"
	"economy_backend/internal/repository"
	"economy_backend/internal/service"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrInvalidSession     = errors.New("invalid session")
)

type serv struct {
	authRepo  repository.AuthRepository
	jwtConfig config.JWTConfig
}

// NewAuthService Создать сервис авторизации админов
func NewAuthService(authRepo repository.AuthRepository, jwtConfig config.JWTConfig) service.AuthService {
	return &serv{
		authRepo:  authRepo,
		jwtConfig: jwtConfig,
	}
}

func generateSessionID() string {
	return uuid.NewString()
}
