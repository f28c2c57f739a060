package theft

import (
	"errors"
	"fmt"
	"time"

	"economy_backend/internal/repository"
	"economy_backend/internal/service"
	"economy_backend/pkg/chance"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

var (
	ErrBanned            = errors.New("actor is banned")
	ErrTargetBanned      = errors.New("target is banned")
	ErrUnknownTarget     = errors.New("target not found")
	ErrSelfTarget        = errors.New("cannot rob yourself")
	ErrNoEligibleTarget  = errors.New("no eligible target")
	ErrCooldownActive    = errors.New("theft cooldown is active")
	ErrInsufficientFunds = errors.New("not enough balance")
)

// CooldownError несет оставшееся время до следующей попытки
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("theft cooldown is active, %s remaining", e.Remaining)
}

func (e *CooldownError) Is(target error) bool {
	return target == ErrCooldownActive
}

type serv struct {
	userRepo  repository.UserRepository
	banRepo   repository.BanRepository
	settings  repository.SettingsRepository
	statsRepo repository.TheftStatsRepository
	txManager trm.Manager
	rnd       chance.Source
}

// NewTheftService Создать движок ограблений
func NewTheftService(
	userRepo repository.UserRepository,
	banRepo repository.BanRepository,
	settings repository.SettingsRepository,
	statsRepo repository.TheftStatsRepository,
	txManager trm.Manager,
	rnd chance.Source,
) service.TheftService {
	return &serv{
		userRepo:  userRepo,
		banRepo:   banRepo,
		settings:  settings,
		statsRepo: statsRepo,
		txManager: txManager,
		rnd:       rnd,
	}
}
