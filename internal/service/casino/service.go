package casino

import (
	"errors"

	"economy_backend/internal/repository"
	"economy_backend/internal/service"
	"economy_backend/pkg/chance"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

var (
	ErrBadStake          = errors.New("stake must be positive")
	ErrInsufficientFunds = errors.New("not enough balance")
)

type serv struct {
	userRepo  repository.UserRepository
	settings  repository.SettingsRepository
	txManager trm.Manager
	rnd       chance.Source
}

// NewCasinoService Создать движок казино
func NewCasinoService(
	userRepo repository.UserRepository,
	settings repository.SettingsRepository,
	txManager trm.Manager,
	rnd chance.Source,
) service.CasinoService {
	return &serv{
		userRepo:  userRepo,
		settings:  settings,
		txManager: txManager,
		rnd:       rnd,
	}
}
