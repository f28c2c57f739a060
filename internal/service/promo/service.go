package promo

import (
	"context"
	"errors"

	"economy_backend/internal/model"
	"economy_backend/internal/repository"
	"economy_backend/internal/service"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

var (
	ErrUnknownCode = errors.New("promo code not found")
	ErrExhausted   = errors.New("promo code is exhausted")
	ErrBadPromo    = errors.New("reward and max uses must be positive")
	ErrDuplicate   = errors.New("promo code already exists")
)

type serv struct {
	promoRepo repository.PromoRepository
	userRepo  repository.UserRepository
	txManager trm.Manager
}

// NewPromoService Создать движок промокодов
func NewPromoService(
	promoRepo repository.PromoRepository,
	userRepo repository.UserRepository,
	txManager trm.Manager,
) service.PromoService {
	return &serv{
		promoRepo: promoRepo,
		userRepo:  userRepo,
		txManager: txManager,
	}
}

// Redeem активирует промокод и начисляет награду.
// Счетчик использований общий на код: конкурентные активации в сумме
// никогда не превысят max_uses, лимита на пользователя нет
func (s *serv) Redeem(ctx context.Context, userID int64, code string) (*model.PromoResult, error) {
	var res *model.PromoResult

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		promo, err := s.promoRepo.GetByCode(txCtx, code)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrUnknownCode
			}
			return err
		}

		consumed, err := s.promoRepo.ConsumeUse(txCtx, code)
		if err != nil {
			return err
		}
		if !consumed {
			return ErrExhausted
		}

		balance, err := s.userRepo.Credit(txCtx, userID, promo.Reward)
		if err != nil {
			return err
		}

		res = &model.PromoResult{Reward: promo.Reward, Balance: balance}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// Create - создание промокода админом
func (s *serv) Create(ctx context.Context, promo *model.PromoCode) error {
	if promo.Reward <= 0 || promo.MaxUses <= 0 {
		return ErrBadPromo
	}
	if _, err := s.promoRepo.GetByCode(ctx, promo.Code); err == nil {
		return ErrDuplicate
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	return s.promoRepo.Create(ctx, promo)
}

// Delete - удаление промокода
func (s *serv) Delete(ctx context.Context, code string) error {
	err := s.promoRepo.Delete(ctx, code)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUnknownCode
	}
	return err
}

// List - все промокоды
func (s *serv) List(ctx context.Context) ([]model.PromoCode, error) {
	return s.promoRepo.List(ctx)
}
