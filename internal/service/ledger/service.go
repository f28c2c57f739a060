package ledger

import (
	"context"
	"errors"

	"economy_backend/internal/model"
	"economy_backend/internal/repository"
	"economy_backend/internal/service"
)

var (
	ErrBadAmount         = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("not enough balance")
)

type serv struct {
	userRepo repository.UserRepository
}

// NewLedgerService Создать сервис баланса
func NewLedgerService(userRepo repository.UserRepository) service.LedgerService {
	return &serv{
		userRepo: userRepo,
	}
}

// EnsureUser - регистрация пользователя при первом обращении
func (s *serv) EnsureUser(ctx context.Context, user *model.User) error {
	return s.userRepo.EnsureUser(ctx, user)
}

// GetBalance - баланс пользователя, 0 для неизвестного
func (s *serv) GetBalance(ctx context.Context, userID int64) (int, error) {
	return s.userRepo.GetBalance(ctx, userID)
}

// Credit - начисление amount > 0 на баланс
func (s *serv) Credit(ctx context.Context, userID int64, amount int) (int, error) {
	if amount <= 0 {
		return 0, ErrBadAmount
	}
	return s.userRepo.Credit(ctx, userID, amount)
}

// Debit - списание amount > 0 с баланса
func (s *serv) Debit(ctx context.Context, userID int64, amount int) (int, error) {
	if amount <= 0 {
		return 0, ErrBadAmount
	}

	balance, err := s.userRepo.Debit(ctx, userID, amount)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientFunds) {
			return 0, ErrInsufficientFunds
		}
		return 0, err
	}

	return balance, nil
}
