package theft

import (
	"context"
	"errors"
	"time"

	"economy_backend/internal/model"
	"economy_backend/internal/repository"
	"economy_backend/pkg/chance"
)

// Attempt выполняет попытку ограбления.
// Исход всегда ровно один: Defended, Success или Failed, либо отказ
// до фиксации попытки (бан, кулдаун, нет жертвы, нет денег на атаку)
func (s *serv) Attempt(ctx context.Context, attempt model.TheftAttempt) (*model.TheftResult, error) {
	actorID := attempt.ActorID

	// Валидация: баны и цель
	banned, err := s.banRepo.IsBanned(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if banned {
		return nil, ErrBanned
	}

	switch attempt.Mode {
	case model.TheftModeTargeted:
		if attempt.TargetID == actorID {
			return nil, ErrSelfTarget
		}
		if _, err := s.userRepo.GetUser(ctx, attempt.TargetID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrUnknownTarget
			}
			return nil, err
		}
		targetBanned, err := s.banRepo.IsBanned(ctx, attempt.TargetID)
		if err != nil {
			return nil, err
		}
		if targetBanned {
			return nil, ErrTargetBanned
		}
	case model.TheftModeRandom:
	default:
		return nil, errors.New("unknown theft mode")
	}

	// Настройки читаются в момент операции, без кэша
	cooldownMinutes, err := s.settings.GetInt(ctx, model.SettingTheftCooldownMinutes)
	if err != nil {
		return nil, err
	}
	cooldown := time.Duration(cooldownMinutes) * time.Minute

	minAmount, err := s.settings.GetInt(ctx, model.SettingMinTheftAmount)
	if err != nil {
		return nil, err
	}
	maxAmount, err := s.settings.GetInt(ctx, model.SettingMaxTheftAmount)
	if err != nil {
		return nil, err
	}
	successChance, err := s.settings.GetInt(ctx, model.SettingTheftSuccessChance)
	if err != nil {
		return nil, err
	}
	defenseChance, err := s.settings.GetInt(ctx, model.SettingTheftDefenseChance)
	if err != nil {
		return nil, err
	}
	defensePenalty, err := s.settings.GetInt(ctx, model.SettingTheftDefensePenalty)
	if err != nil {
		return nil, err
	}

	costKey := model.SettingRandomAttackCost
	if attempt.Mode == model.TheftModeTargeted {
		costKey = model.SettingTargetedAttackCost
	}
	cost, err := s.settings.GetInt(ctx, costKey)
	if err != nil {
		return nil, err
	}

	// Проверка кулдауна без фиксации: отказ здесь попытку не съедает
	state, err := s.Cooldown(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !state.Ready {
		return nil, &CooldownError{Remaining: state.Remaining}
	}

	// Выбор жертвы до фиксации кулдауна: NoEligibleTarget не тратит попытку.
	// Жертва годится, если с нее есть что взять: баланс ниже min_theft_amount
	// отсеивается еще в выборке
	targetID := attempt.TargetID
	if attempt.Mode == model.TheftModeRandom {
		candidates, err := s.userRepo.ListTheftCandidates(ctx, actorID, minAmount)
		if err != nil {
			return nil, err
		}
		if len(candidates) == 0 {
			return nil, ErrNoEligibleTarget
		}
		targetID = candidates[chance.Pick(len(candidates), s.rnd)]
	}

	// Стоимость атаки проверяется до фиксации, списывается после
	if cost > 0 {
		balance, err := s.userRepo.GetBalance(ctx, actorID)
		if err != nil {
			return nil, err
		}
		if balance < cost {
			return nil, ErrInsufficientFunds
		}
	}

	var res *model.TheftResult
	now := time.Now()

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Фиксация попытки. Условный UPDATE закрывает гонку двух
		// конкурентных попыток: вторая увидит кулдаун
		claimed, err := s.userRepo.ClaimTheftCooldown(txCtx, actorID, now, cooldown)
		if err != nil {
			return err
		}
		if !claimed {
			remaining, err := s.remaining(txCtx, actorID, cooldown)
			if err != nil {
				return err
			}
			return &CooldownError{Remaining: remaining}
		}

		// Попытка состоялась, стоимость атаки списывается и не возвращается
		if cost > 0 {
			if _, err := s.userRepo.Debit(txCtx, actorID, cost); err != nil {
				if errors.Is(err, repository.ErrInsufficientFunds) {
					return ErrInsufficientFunds
				}
				return err
			}
		}

		targetBalance, err := s.userRepo.GetBalance(txCtx, targetID)
		if err != nil {
			return err
		}

		// Бросок суммы делается один раз: он же база штрафа при защите.
		// Украсть больше, чем есть у жертвы, нельзя
		roll := chance.Between(minAmount, maxAmount, s.rnd)
		wouldSteal := roll
		if wouldSteal > targetBalance {
			wouldSteal = targetBalance
		}

		switch {
		case chance.Resolve(defenseChance, s.rnd):
			// Жертва защитилась: грабитель платит штраф в процентах от
			// несостоявшейся добычи, штраф уходит жертве как компенсация
			penalty := wouldSteal * defensePenalty / 100
			actorBalance, err := s.userRepo.GetBalance(txCtx, actorID)
			if err != nil {
				return err
			}
			if penalty > actorBalance {
				penalty = actorBalance
			}
			if err := s.transfer(txCtx, actorID, targetID, penalty); err != nil {
				return err
			}
			if err := s.applyStats(txCtx,
				actorID, model.TheftStatsDelta{Attempts: 1, Failed: 1},
				targetID, model.TheftStatsDelta{Protected: 1},
			); err != nil {
				return err
			}
			res = &model.TheftResult{
				Kind:     model.TheftOutcomeDefended,
				TargetID: targetID,
				Penalty:  penalty,
				Cost:     cost,
			}

		case chance.Resolve(successChance, s.rnd):
			steal := wouldSteal
			if steal > 0 {
				if err := s.transfer(txCtx, targetID, actorID, steal); err != nil {
					if !errors.Is(err, repository.ErrInsufficientFunds) {
						return err
					}
					// Баланс жертвы успел измениться: одно повторное
					// чтение и одна повторная попытка
					targetBalance, err = s.userRepo.GetBalance(txCtx, targetID)
					if err != nil {
						return err
					}
					steal = roll
					if steal > targetBalance {
						steal = targetBalance
					}
					if steal > 0 {
						if err := s.transfer(txCtx, targetID, actorID, steal); err != nil {
							return err
						}
					}
				}
			}
			if err := s.applyStats(txCtx,
				actorID, model.TheftStatsDelta{Attempts: 1, Success: 1},
				targetID, model.TheftStatsDelta{Losses: 1},
			); err != nil {
				return err
			}
			res = &model.TheftResult{
				Kind:     model.TheftOutcomeSuccess,
				TargetID: targetID,
				Amount:   steal,
				Cost:     cost,
			}

		default:
			if err := s.userRepo.AddTheftStats(txCtx, actorID,
				model.TheftStatsDelta{Attempts: 1, Failed: 1}); err != nil {
				return err
			}
			res = &model.TheftResult{
				Kind:     model.TheftOutcomeFailed,
				TargetID: targetID,
				Cost:     cost,
			}
		}

		balance, err := s.userRepo.GetBalance(txCtx, actorID)
		if err != nil {
			return err
		}
		res.Balance = balance

		return nil
	})
	if err != nil {
		return nil, err
	}

	switch res.Kind {
	case model.TheftOutcomeDefended:
		s.statsRepo.RecordRound(res.Kind, res.Penalty)
	default:
		s.statsRepo.RecordRound(res.Kind, res.Amount)
	}

	return res, nil
}

// transfer переводит amount от from к to. Изменения применяются в порядке
// возрастания ID, чтобы встречные ограбления не взаимоблокировались
func (s *serv) transfer(ctx context.Context, from, to int64, amount int) error {
	if amount <= 0 || from == to {
		return nil
	}

	if from < to {
		if _, err := s.userRepo.Debit(ctx, from, amount); err != nil {
			return err
		}
		_, err := s.userRepo.Credit(ctx, to, amount)
		return err
	}

	if _, err := s.userRepo.Credit(ctx, to, amount); err != nil {
		return err
	}
	_, err := s.userRepo.Debit(ctx, from, amount)
	return err
}

// applyStats обновляет счетчики двух пользователей в порядке возрастания ID
func (s *serv) applyStats(ctx context.Context, firstID int64, first model.TheftStatsDelta, secondID int64, second model.TheftStatsDelta) error {
	if firstID > secondID {
		firstID, secondID = secondID, firstID
		first, second = second, first
	}

	if err := s.userRepo.AddTheftStats(ctx, firstID, first); err != nil {
		return err
	}
	return s.userRepo.AddTheftStats(ctx, secondID, second)
}
