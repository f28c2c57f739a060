package repository

import (
	"context"
	"errors"
	"time"

	"economy_backend/internal/model"
)

var (
	// ErrNotFound - запрошенной записи нет в хранилище
	ErrNotFound = errors.New("not found")
	// ErrInsufficientFunds - на балансе меньше, чем требуется списать
	ErrInsufficientFunds = errors.New("insufficient funds")
)

type UserRepository interface {
	// EnsureUser создает пользователя при первом обращении, существующего не трогает
	EnsureUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id int64) (*model.User, error)

	// GetBalance возвращает 0 для неизвестного пользователя
	GetBalance(ctx context.Context, id int64) (int, error)
	// Credit атомарно начисляет amount > 0, возвращает новый баланс
	Credit(ctx context.Context, id int64, amount int) (int, error)
	// Debit атомарно списывает amount > 0 с защитой от ухода в минус,
	// возвращает ErrInsufficientFunds если средств не хватает
	Debit(ctx context.Context, id int64, amount int) (int, error)

	// ClaimTheftCooldown одним условным UPDATE проверяет готовность и
	// фиксирует попытку. false - кулдаун еще активен, отметка не тронута
	ClaimTheftCooldown(ctx context.Context, id int64, now time.Time, cooldown time.Duration) (bool, error)
	GetLastTheftTime(ctx context.Context, id int64) (*time.Time, error)

	// ListTheftCandidates возвращает ID пользователей, пригодных в жертвы:
	// не сам грабитель, не в бане, баланс не ниже minBalance
	ListTheftCandidates(ctx context.Context, excludeID int64, minBalance int) ([]int64, error)

	AddTheftStats(ctx context.Context, id int64, delta model.TheftStatsDelta) error
}

type SettingsRepository interface {
	// Get возвращает значение по умолчанию, если записи нет
	Get(ctx context.Context, key string) (string, error)
	GetInt(ctx context.Context, key string) (int, error)
	Set(ctx context.Context, key, value string) error
	GetAll(ctx context.Context) (map[string]string, error)
	// SeedDefaults вставляет отсутствующие ключи, существующие не трогает
	SeedDefaults(ctx context.Context, defaults map[string]string) error
}

type PromoRepository interface {
	GetByCode(ctx context.Context, code string) (*model.PromoCode, error)
	// ConsumeUse инкрементирует used_count под защитой used_count < max_uses.
	// false - код исчерпан, счетчик не изменен
	ConsumeUse(ctx context.Context, code string) (bool, error)
	Create(ctx context.Context, promo *model.PromoCode) error
	Delete(ctx context.Context, code string) error
	List(ctx context.Context) ([]model.PromoCode, error)
}

type GiveawayRepository interface {
	Create(ctx context.Context, giveaway *model.Giveaway) (int64, error)
	Get(ctx context.Context, id int64) (*model.Giveaway, error)
	ListActive(ctx context.Context) ([]model.Giveaway, error)
	// ListExpiredActive возвращает ID активных розыгрышей с истекшим сроком
	ListExpiredActive(ctx context.Context, now time.Time) ([]int64, error)

	// AddParticipant вставляет пару (user, giveaway), только пока розыгрыш
	// активен. false - пара уже есть или розыгрыш завершен
	AddParticipant(ctx context.Context, userID, giveawayID int64) (bool, error)
	ListParticipants(ctx context.Context, giveawayID int64) ([]int64, error)
	CountParticipants(ctx context.Context, giveawayID int64) (int, error)

	// ClaimCompletion одним условным UPDATE переводит active -> completed.
	// false - розыгрыш уже завершен кем-то другим
	ClaimCompletion(ctx context.Context, id int64) (bool, error)
	SetWinners(ctx context.Context, id int64, winners []int64) error
}

type BanRepository interface {
	IsBanned(ctx context.Context, userID int64) (bool, error)
	Ban(ctx context.Context, entry *model.BanEntry) error
	Unban(ctx context.Context, userID int64) error
	List(ctx context.Context) ([]model.BanEntry, error)
}

type ShopRepository interface {
	ListItems(ctx context.Context) ([]model.ShopItem, error)
	GetItem(ctx context.Context, id int64) (*model.ShopItem, error)
	// DecrementStock уменьшает остаток под защитой stock > 0.
	// Для безлимитного товара (stock = -1) всегда true
	DecrementStock(ctx context.Context, itemID int64) (bool, error)
	RestoreStock(ctx context.Context, itemID int64) error
	SeedDefaultItems(ctx context.Context, items []model.ShopItem) error

	CreatePurchase(ctx context.Context, purchase *model.Purchase) (int64, error)
	GetPurchase(ctx context.Context, id int64) (*model.Purchase, error)
	ListPurchasesByStatus(ctx context.Context, status model.PurchaseStatus) ([]model.Purchase, error)
	// SetPurchaseStatus переводит pending -> status. false - покупка уже рассмотрена
	SetPurchaseStatus(ctx context.Context, id int64, status model.PurchaseStatus, comment string) (bool, error)
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session *model.Session) error
	GetRefreshTokenBySessionID(ctx context.Context, sessionID string) (refreshToken string, err error)
	DeleteSession(ctx context.Context, sessionID string) error
	GetAdminBySessionID(ctx context.Context, sessionID string) (*model.Admin, error)

	GetAdminByLogin(ctx context.Context, login string) (*model.Admin, error)
	CreateAdmin(ctx context.Context, admin *model.Admin) (int64, error)
}

type TheftStatsRepository interface {
	RecordRound(kind model.TheftOutcomeKind, amount int)
	Stats() model.TheftRoundStats
}
