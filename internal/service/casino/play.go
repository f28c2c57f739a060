package casino

import (
	"context"
	"errors"

	"economy_backend/internal/model"
	"economy_backend/internal/repository"
	"economy_backend/pkg/chance"
)

// Play выполняет раунд ставки: списание сразу, при выигрыше
// начисляется двойная ставка (чистый выигрыш равен ставке)
func (s *serv) Play(ctx context.Context, round model.CasinoRound) (*model.CasinoResult, error) {
	if round.Stake <= 0 {
		return nil, ErrBadStake
	}

	winChance, err := s.settings.GetInt(ctx, model.SettingCasinoWinChance)
	if err != nil {
		return nil, err
	}

	var res *model.CasinoResult

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		balance, err := s.userRepo.Debit(txCtx, round.UserID, round.Stake)
		if err != nil {
			if errors.Is(err, repository.ErrInsufficientFunds) {
				return ErrInsufficientFunds
			}
			return err
		}

		win := chance.Resolve(winChance, s.rnd)
		if win {
			payout := round.Stake * 2
			balance, err = s.userRepo.Credit(txCtx, round.UserID, payout)
			if err != nil {
				return err
			}
			res = &model.CasinoResult{Win: true, Payout: payout, Balance: balance}
			return nil
		}

		res = &model.CasinoResult{Win: false, Balance: balance}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}
