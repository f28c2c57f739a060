package admin

import (
	"context"
	"errors"
	"strconv"

	"economy_backend/internal/model"
	"economy_backend/internal/repository"
	"economy_backend/internal/service"
)

var (
	ErrUnknownSetting = errors.New("unknown setting key")
	ErrBadValue       = errors.New("setting value must be a non-negative integer")
	ErrNotBanned      = errors.New("user is not banned")
)

type serv struct {
	settings repository.SettingsRepository
	banRepo  repository.BanRepository
}

// NewAdminService Создать сервис админских операций
func NewAdminService(
	settings repository.SettingsRepository,
	banRepo repository.BanRepository,
) service.AdminService {
	return &serv{
		settings: settings,
		banRepo:  banRepo,
	}
}

// GetSetting - значение настройки по ключу
func (s *serv) GetSetting(ctx context.Context, key string) (string, error) {
	if !validKey(key) {
		return "", ErrUnknownSetting
	}
	return s.settings.Get(ctx, key)
}

// SetSetting - установка настройки. Все значения целые неотрицательные
func (s *serv) SetSetting(ctx context.Context, key, value string) error {
	if !validKey(key) {
		return ErrUnknownSetting
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return ErrBadValue
	}

	return s.settings.Set(ctx, key, value)
}

// AllSettings - все настройки с подстановкой значений по умолчанию
func (s *serv) AllSettings(ctx context.Context) (map[string]string, error) {
	return s.settings.GetAll(ctx)
}

// Ban - блокировка пользователя
func (s *serv) Ban(ctx context.Context, entry *model.BanEntry) error {
	return s.banRepo.Ban(ctx, entry)
}

// Unban - разблокировка пользователя
func (s *serv) Unban(ctx context.Context, userID int64) error {
	err := s.banRepo.Unban(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotBanned
	}
	return err
}

// ListBans - все записи бан-листа
func (s *serv) ListBans(ctx context.Context) ([]model.BanEntry, error) {
	return s.banRepo.List(ctx)
}

func validKey(key string) bool {
	for _, k := range model.SettingKeys {
		if k == key {
			return true
		}
	}
	return false
}
