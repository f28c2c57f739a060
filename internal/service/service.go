package service

import (
	"context"

	"economy_backend/internal/model"
)

// LedgerService - узкая граница для чтения и прямых изменений баланса
type LedgerService interface {
	EnsureUser(ctx context.Context, user *model.User) error
	GetBalance(ctx context.Context, userID int64) (int, error)
	Credit(ctx context.Context, userID int64, amount int) (int, error)
	Debit(ctx context.Context, userID int64, amount int) (int, error)
}

type TheftService interface {
	Attempt(ctx context.Context, attempt model.TheftAttempt) (*model.TheftResult, error)
	Cooldown(ctx context.Context, userID int64) (*model.CooldownState, error)
	RoundStats() model.TheftRoundStats
}

type CasinoService interface {
	Play(ctx context.Context, round model.CasinoRound) (*model.CasinoResult, error)
}

type PromoService interface {
	Redeem(ctx context.Context, userID int64, code string) (*model.PromoResult, error)
	Create(ctx context.Context, promo *model.PromoCode) error
	Delete(ctx context.Context, code string) error
	List(ctx context.Context) ([]model.PromoCode, error)
}

type GiveawayService interface {
	Create(ctx context.Context, giveaway *model.Giveaway) (int64, error)
	Get(ctx context.Context, id int64) (*model.Giveaway, error)
	ListActive(ctx context.Context) ([]model.Giveaway, error)
	Enroll(ctx context.Context, userID, giveawayID int64) error
	Draw(ctx context.Context, giveawayID int64) (*model.DrawResult, error)
}

type ShopService interface {
	ListItems(ctx context.Context) ([]model.ShopItem, error)
	Buy(ctx context.Context, userID, itemID int64) (*model.Purchase, error)
	ListPending(ctx context.Context) ([]model.Purchase, error)
	Approve(ctx context.Context, purchaseID int64, comment string) error
	Reject(ctx context.Context, purchaseID int64, comment string) error
}

type AdminService interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
	AllSettings(ctx context.Context) (map[string]string, error)

	Ban(ctx context.Context, entry *model.BanEntry) error
	Unban(ctx context.Context, userID int64) error
	ListBans(ctx context.Context) ([]model.BanEntry, error)
}

type AuthService interface {
	Login(ctx context.Context, login, password string) (*model.AuthData, error)
	Refresh(ctx context.Context, data *model.AuthData) (newAccessToken string, err error)
	Logout(ctx context.Context, sessionID string) error
}
