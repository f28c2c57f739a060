// Package mocks - потокобезопасные фейки хранилищ для тестов сервисов.
// Повторяют охранную семантику SQL-запросов (условные UPDATE) в памяти
package mocks

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/avito-tech/go-transaction-manager/trm/v2"

	"economy_backend/internal/model"
	"economy_backend/internal/repository"
)

// TxManager прокидывает контекст как есть: фейкам транзакции не нужны
type TxManager struct{}

func (TxManager) Do(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func (TxManager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(context.Context) error) error {
	return fn(ctx)
}

// ScriptedSource отдает заранее заданные броски по очереди,
// после исчерпания очереди возвращает 0
type ScriptedSource struct {
	Draws []int
}

func (s *ScriptedSource) Intn(n int) int {
	if len(s.Draws) == 0 {
		return 0
	}
	d := s.Draws[0]
	s.Draws = s.Draws[1:]
	if d >= n {
		d = n - 1
	}
	return d
}

// UserRepo - хранилище пользователей в памяти.
// Banned разделяется с BanRepo для фильтрации кандидатов
type UserRepo struct {
	Mu     sync.Mutex
	Users  map[int64]*model.User
	Banned map[int64]bool
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		Users:  make(map[int64]*model.User),
		Banned: make(map[int64]bool),
	}
}

// Add кладет пользователя с заданным балансом
func (r *UserRepo) Add(id int64, balance int) {
	r.Users[id] = &model.User{ID: id, Balance: balance}
}

func (r *UserRepo) ensure(id int64) *model.User {
	u, ok := r.Users[id]
	if !ok {
		u = &model.User{ID: id}
		r.Users[id] = u
	}
	return u
}

func (r *UserRepo) EnsureUser(ctx context.Context, user *model.User) error {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	if _, ok := r.Users[user.ID]; !ok {
		r.Users[user.ID] = &model.User{ID: user.ID, Username: user.Username, FirstName: user.FirstName}
	}
	return nil
}

func (r *UserRepo) GetUser(ctx context.Context, id int64) (*model.User, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	u, ok := r.Users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *UserRepo) GetBalance(ctx context.Context, id int64) (int, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	u, ok := r.Users[id]
	if !ok {
		return 0, nil
	}
	return u.Balance, nil
}

func (r *UserRepo) Credit(ctx context.Context, id int64, amount int) (int, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	u := r.ensure(id)
	u.Balance += amount
	return u.Balance, nil
}

func (r *UserRepo) Debit(ctx context.Context, id int64, amount int) (int, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	u, ok := r.Users[id]
	if !ok || u.Balance < amount {
		return 0, repository.ErrInsufficientFunds
	}
	u.Balance -= amount
	return u.Balance, nil
}

func (r *UserRepo) ClaimTheftCooldown(ctx context.Context, id int64, now time.Time, cooldown time.Duration) (bool, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	u := r.ensure(id)
	if u.LastTheftTime != nil && u.LastTheftTime.After(now.Add(-cooldown)) {
		return false, nil
	}
	u.LastTheftTime = &now
	return true, nil
}

func (r *UserRepo) GetLastTheftTime(ctx context.Context, id int64) (*time.Time, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	u, ok := r.Users[id]
	if !ok || u.LastTheftTime == nil {
		return nil, nil
	}
	t := *u.LastTheftTime
	return &t, nil
}

func (r *UserRepo) ListTheftCandidates(ctx context.Context, excludeID int64, minBalance int) ([]int64, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	var ids []int64
	for id, u := range r.Users {
		if id == excludeID || r.Banned[id] || u.Balance < minBalance {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *UserRepo) AddTheftStats(ctx context.Context, id int64, delta model.TheftStatsDelta) error {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	u := r.ensure(id)
	u.TheftAttempts += delta.Attempts
	u.TheftSuccess += delta.Success
	u.TheftFailed += delta.Failed
	u.TheftProtected += delta.Protected
	u.TheftLosses += delta.Losses
	return nil
}

// BanRepo работает поверх карты банов UserRepo
type BanRepo struct {
	Users *UserRepo
}

func (r *BanRepo) IsBanned(ctx context.Context, userID int64) (bool, error) {
	r.Users.Mu.Lock()
	defer r.Users.Mu.Unlock()
	return r.Users.Banned[userID], nil
}

func (r *BanRepo) Ban(ctx context.Context, entry *model.BanEntry) error {
	r.Users.Mu.Lock()
	defer r.Users.Mu.Unlock()
	r.Users.Banned[entry.UserID] = true
	return nil
}

func (r *BanRepo) Unban(ctx context.Context, userID int64) error {
	r.Users.Mu.Lock()
	defer r.Users.Mu.Unlock()
	if !r.Users.Banned[userID] {
		return repository.ErrNotFound
	}
	delete(r.Users.Banned, userID)
	return nil
}

func (r *BanRepo) List(ctx context.Context) ([]model.BanEntry, error) {
	r.Users.Mu.Lock()
	defer r.Users.Mu.Unlock()
	var entries []model.BanEntry
	for id := range r.Users.Banned {
		entries = append(entries, model.BanEntry{UserID: id})
	}
	return entries, nil
}

// SettingsRepo - настройки в памяти поверх значений по умолчанию
type SettingsRepo struct {
	Mu     sync.Mutex
	Values map[string]string
}

func NewSettingsRepo(overrides map[string]string) *SettingsRepo {
	values := make(map[string]string, len(model.DefaultSettings))
	for k, v := range model.DefaultSettings {
		values[k] = v
	}
	for k, v := range overrides {
		values[k] = v
	}
	return &SettingsRepo{Values: values}
}

func (s *SettingsRepo) Get(ctx context.Context, key string) (string, error) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	return s.Values[key], nil
}

func (s *SettingsRepo) GetInt(ctx context.Context, key string) (int, error) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	return strconv.Atoi(s.Values[key])
}

func (s *SettingsRepo) Set(ctx context.Context, key, value string) error {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	s.Values[key] = value
	return nil
}

func (s *SettingsRepo) GetAll(ctx context.Context) (map[string]string, error) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	all := make(map[string]string, len(s.Values))
	for k, v := range s.Values {
		all[k] = v
	}
	return all, nil
}

func (s *SettingsRepo) SeedDefaults(ctx context.Context, defaults map[string]string) error {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	for k, v := range defaults {
		if _, ok := s.Values[k]; !ok {
			s.Values[k] = v
		}
	}
	return nil
}

// PromoRepo повторяет охрану used_count < max_uses
type PromoRepo struct {
	Mu    sync.Mutex
	Codes map[string]*model.PromoCode
}

func NewPromoRepo() *PromoRepo {
	return &PromoRepo{Codes: make(map[string]*model.PromoCode)}
}

func (r *PromoRepo) GetByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	p, ok := r.Codes[code]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *PromoRepo) ConsumeUse(ctx context.Context, code string) (bool, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	p, ok := r.Codes[code]
	if !ok || p.UsedCount >= p.MaxUses {
		return false, nil
	}
	p.UsedCount++
	return true, nil
}

func (r *PromoRepo) Create(ctx context.Context, promo *model.PromoCode) error {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	copied := *promo
	r.Codes[promo.Code] = &copied
	return nil
}

func (r *PromoRepo) Delete(ctx context.Context, code string) error {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	if _, ok := r.Codes[code]; !ok {
		return repository.ErrNotFound
	}
	delete(r.Codes, code)
	return nil
}

func (r *PromoRepo) List(ctx context.Context) ([]model.PromoCode, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	var codes []model.PromoCode
	for _, p := range r.Codes {
		codes = append(codes, *p)
	}
	return codes, nil
}

// GiveawayRepo повторяет охрану status = 'active' при завершении
type GiveawayRepo struct {
	Mu           sync.Mutex
	Giveaways    map[int64]*model.Giveaway
	Participants map[int64][]int64
	nextID       int64
}

func NewGiveawayRepo() *GiveawayRepo {
	return &GiveawayRepo{
		Giveaways:    make(map[int64]*model.Giveaway),
		Participants: make(map[int64][]int64),
	}
}

func (r *GiveawayRepo) Create(ctx context.Context, giveaway *model.Giveaway) (int64, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	r.nextID++
	giveaway.ID = r.nextID
	copied := *giveaway
	r.Giveaways[giveaway.ID] = &copied
	return giveaway.ID, nil
}

func (r *GiveawayRepo) Get(ctx context.Context, id int64) (*model.Giveaway, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	g, ok := r.Giveaways[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *g
	copied.Winners = append([]int64(nil), g.Winners...)
	return &copied, nil
}

func (r *GiveawayRepo) ListActive(ctx context.Context) ([]model.Giveaway, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	var active []model.Giveaway
	for _, g := range r.Giveaways {
		if g.Status == model.GiveawayStatusActive {
			active = append(active, *g)
		}
	}
	return active, nil
}

func (r *GiveawayRepo) ListExpiredActive(ctx context.Context, now time.Time) ([]int64, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	var ids []int64
	for id, g := range r.Giveaways {
		if g.Status == model.GiveawayStatusActive && !g.EndDate.After(now) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *GiveawayRepo) AddParticipant(ctx context.Context, userID, giveawayID int64) (bool, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	g, ok := r.Giveaways[giveawayID]
	if !ok || g.Status != model.GiveawayStatusActive {
		return false, nil
	}
	for _, existing := range r.Participants[giveawayID] {
		if existing == userID {
			return false, nil
		}
	}
	r.Participants[giveawayID] = append(r.Participants[giveawayID], userID)
	return true, nil
}

func (r *GiveawayRepo) ListParticipants(ctx context.Context, giveawayID int64) ([]int64, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	return append([]int64(nil), r.Participants[giveawayID]...), nil
}

func (r *GiveawayRepo) CountParticipants(ctx context.Context, giveawayID int64) (int, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	return len(r.Participants[giveawayID]), nil
}

func (r *GiveawayRepo) ClaimCompletion(ctx context.Context, id int64) (bool, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	g, ok := r.Giveaways[id]
	if !ok || g.Status != model.GiveawayStatusActive {
		return false, nil
	}
	g.Status = model.GiveawayStatusCompleted
	return true, nil
}

func (r *GiveawayRepo) SetWinners(ctx context.Context, id int64, winners []int64) error {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	g, ok := r.Giveaways[id]
	if !ok {
		return repository.ErrNotFound
	}
	g.Winners = append([]int64(nil), winners...)
	return nil
}

// ShopRepo повторяет охрану stock > 0 и pending-переходы покупок
type ShopRepo struct {
	Mu        sync.Mutex
	Items     map[int64]*model.ShopItem
	Purchases map[int64]*model.Purchase
	nextID    int64
}

func NewShopRepo() *ShopRepo {
	return &ShopRepo{
		Items:     make(map[int64]*model.ShopItem),
		Purchases: make(map[int64]*model.Purchase),
	}
}

// AddItem кладет товар с заданным ID
func (r *ShopRepo) AddItem(item model.ShopItem) {
	r.Items[item.ID] = &item
}

func (r *ShopRepo) ListItems(ctx context.Context) ([]model.ShopItem, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	var items []model.ShopItem
	for _, item := range r.Items {
		items = append(items, *item)
	}
	return items, nil
}

func (r *ShopRepo) GetItem(ctx context.Context, id int64) (*model.ShopItem, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	item, ok := r.Items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *ShopRepo) DecrementStock(ctx context.Context, itemID int64) (bool, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	item, ok := r.Items[itemID]
	if !ok {
		return false, repository.ErrNotFound
	}
	if item.Stock < 0 {
		return true, nil
	}
	if item.Stock == 0 {
		return false, nil
	}
	item.Stock--
	return true, nil
}

func (r *ShopRepo) RestoreStock(ctx context.Context, itemID int64) error {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	item, ok := r.Items[itemID]
	if !ok {
		return repository.ErrNotFound
	}
	if item.Stock >= 0 {
		item.Stock++
	}
	return nil
}

func (r *ShopRepo) SeedDefaultItems(ctx context.Context, items []model.ShopItem) error {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	for _, item := range items {
		r.nextID++
		item.ID = r.nextID
		copied := item
		r.Items[item.ID] = &copied
	}
	return nil
}

func (r *ShopRepo) CreatePurchase(ctx context.Context, purchase *model.Purchase) (int64, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	r.nextID++
	purchase.ID = r.nextID
	copied := *purchase
	r.Purchases[purchase.ID] = &copied
	return purchase.ID, nil
}

func (r *ShopRepo) GetPurchase(ctx context.Context, id int64) (*model.Purchase, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	p, ok := r.Purchases[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *ShopRepo) ListPurchasesByStatus(ctx context.Context, status model.PurchaseStatus) ([]model.Purchase, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	var purchases []model.Purchase
	for _, p := range r.Purchases {
		if p.Status == status {
			purchases = append(purchases, *p)
		}
	}
	return purchases, nil
}

func (r *ShopRepo) SetPurchaseStatus(ctx context.Context, id int64, status model.PurchaseStatus, comment string) (bool, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	p, ok := r.Purchases[id]
	if !ok {
		return false, nil
	}
	if p.Status != model.PurchaseStatusPending {
		return false, nil
	}
	p.Status = status
	p.AdminComment = comment
	return true, nil
}
