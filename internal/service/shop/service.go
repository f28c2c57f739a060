package shop

import (
	"context"
	"errors"
	"time"

	"economy_backend/internal/model"
	"economy_backend/internal/repository"
	"economy_backend/internal/service"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

var (
	ErrUnknownItem       = errors.New("shop item not found")
	ErrOutOfStock        = errors.New("item is out of stock")
	ErrInsufficientFunds = errors.New("not enough balance")
	ErrUnknownPurchase   = errors.New("purchase not found")
	ErrAlreadyResolved   = errors.New("purchase already resolved")
)

type serv struct {
	shopRepo  repository.ShopRepository
	userRepo  repository.UserRepository
	txManager trm.Manager
}

// NewShopService Создать сервис магазина
func NewShopService(
	shopRepo repository.ShopRepository,
	userRepo repository.UserRepository,
	txManager trm.Manager,
) service.ShopService {
	return &serv{
		shopRepo:  shopRepo,
		userRepo:  userRepo,
		txManager: txManager,
	}
}

// ListItems - все товары магазина
func (s *serv) ListItems(ctx context.Context) ([]model.ShopItem, error) {
	return s.shopRepo.ListItems(ctx)
}

// Buy - покупка товара: списание цены, уменьшение остатка,
// заявка уходит админу в статусе pending
func (s *serv) Buy(ctx context.Context, userID, itemID int64) (*model.Purchase, error) {
	var purchase *model.Purchase

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		item, err := s.shopRepo.GetItem(txCtx, itemID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrUnknownItem
			}
			return err
		}

		inStock, err := s.shopRepo.DecrementStock(txCtx, itemID)
		if err != nil {
			return err
		}
		if !inStock {
			return ErrOutOfStock
		}

		if _, err := s.userRepo.Debit(txCtx, userID, item.Price); err != nil {
			if errors.Is(err, repository.ErrInsufficientFunds) {
				return ErrInsufficientFunds
			}
			return err
		}

		purchase = &model.Purchase{
			UserID:       userID,
			ItemID:       itemID,
			PurchaseDate: time.Now(),
			Status:       model.PurchaseStatusPending,
		}
		purchase.ID, err = s.shopRepo.CreatePurchase(txCtx, purchase)
		return err
	})
	if err != nil {
		return nil, err
	}

	return purchase, nil
}

// ListPending - заявки, ожидающие решения админа
func (s *serv) ListPending(ctx context.Context) ([]model.Purchase, error) {
	return s.shopRepo.ListPurchasesByStatus(ctx, model.PurchaseStatusPending)
}

// Approve - подтверждение покупки
func (s *serv) Approve(ctx context.Context, purchaseID int64, comment string) error {
	resolved, err := s.shopRepo.SetPurchaseStatus(ctx, purchaseID, model.PurchaseStatusApproved, comment)
	if err != nil {
		return err
	}
	if !resolved {
		return s.resolveConflict(ctx, purchaseID)
	}

	return nil
}

// Reject - отклонение покупки с возвратом денег и остатка
func (s *serv) Reject(ctx context.Context, purchaseID int64, comment string) error {
	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		resolved, err := s.shopRepo.SetPurchaseStatus(txCtx, purchaseID, model.PurchaseStatusRejected, comment)
		if err != nil {
			return err
		}
		if !resolved {
			return s.resolveConflict(txCtx, purchaseID)
		}

		purchase, err := s.shopRepo.GetPurchase(txCtx, purchaseID)
		if err != nil {
			return err
		}
		item, err := s.shopRepo.GetItem(txCtx, purchase.ItemID)
		if err != nil {
			return err
		}

		if _, err := s.userRepo.Credit(txCtx, purchase.UserID, item.Price); err != nil {
			return err
		}
		return s.shopRepo.RestoreStock(txCtx, purchase.ItemID)
	})
}

// resolveConflict различает несуществующую и уже рассмотренную заявку
func (s *serv) resolveConflict(ctx context.Context, purchaseID int64) error {
	_, err := s.shopRepo.GetPurchase(ctx, purchaseID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUnknownPurchase
	}
	if err != nil {
		return err
	}
	return ErrAlreadyResolved
}
