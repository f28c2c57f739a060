package theft

import (
	"context"
	"time"

	"economy_backend/internal/model"
)

// Cooldown - готовность пользователя к следующей попытке.
// nil отметка времени означает, что попыток еще не было
func (s *serv) Cooldown(ctx context.Context, userID int64) (*model.CooldownState, error) {
	cooldownMinutes, err := s.settings.GetInt(ctx, model.SettingTheftCooldownMinutes)
	if err != nil {
		return nil, err
	}
	cooldown := time.Duration(cooldownMinutes) * time.Minute

	remaining, err := s.remaining(ctx, userID, cooldown)
	if err != nil {
		return nil, err
	}

	return &model.CooldownState{
		Ready:     remaining <= 0,
		Remaining: remaining,
	}, nil
}

func (s *serv) remaining(ctx context.Context, userID int64, cooldown time.Duration) (time.Duration, error) {
	last, err := s.userRepo.GetLastTheftTime(ctx, userID)
	if err != nil {
		return 0, err
	}
	if last == nil {
		return 0, nil
	}

	remaining := cooldown - time.Since(*last)
	if remaining < 0 {
		remaining = 0
	}

	return remaining, nil
}

// RoundStats - сводная статистика раундов процесса
func (s *serv) RoundStats() model.TheftRoundStats {
	return s.statsRepo.Stats()
}
