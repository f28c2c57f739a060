package giveaway

import (
	"context"
	"sort"

	"economy_backend/internal/model"
	"economy_backend/pkg/chance"
)

// Draw завершает розыгрыш и выбирает победителей.
// Переход active -> completed происходит ровно один раз: условный UPDATE
// в ClaimCompletion гарантирует, что повторный или конкурентный вызов
// (планировщик против ручного розыгрыша) получит ErrAlreadyDrawn и не
// перерисует победителей. Пустой розыгрыш завершается без победителей
func (s *serv) Draw(ctx context.Context, giveawayID int64) (*model.DrawResult, error) {
	g, err := s.Get(ctx, giveawayID)
	if err != nil {
		return nil, err
	}

	var res *model.DrawResult

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		claimed, err := s.giveawayRepo.ClaimCompletion(txCtx, giveawayID)
		if err != nil {
			return err
		}
		if !claimed {
			return ErrAlreadyDrawn
		}

		participants, err := s.giveawayRepo.ListParticipants(txCtx, giveawayID)
		if err != nil {
			return err
		}

		res = &model.DrawResult{
			GiveawayID:   giveawayID,
			Participants: len(participants),
		}
		if len(participants) == 0 {
			return nil
		}

		// Равномерная выборка без повторений; если участников меньше,
		// чем мест, выигрывают все
		winners := make([]int64, 0, g.WinnersCount)
		for _, idx := range chance.PickN(len(participants), g.WinnersCount, s.rnd) {
			winners = append(winners, participants[idx])
		}
		sort.Slice(winners, func(i, j int) bool { return winners[i] < winners[j] })

		if err := s.giveawayRepo.SetWinners(txCtx, giveawayID, winners); err != nil {
			return err
		}

		res.Winners = winners
		return nil
	})
	if err != nil {
		return nil, err
	}

	if res.Participants == 0 {
		// Статус уже completed, но вызывающему нужно отличить пустой
		// розыгрыш от состоявшегося
		return res, ErrNoParticipants
	}

	return res, nil
}
