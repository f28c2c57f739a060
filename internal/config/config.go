package config

import (
	"time"

	"economy_backend/internal/model"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
	RefreshTokenDuration() time.Duration
}

type GameConfig interface {
	// DefaultSettings - стартовые значения игровых настроек,
	// засеваются в БД только при отсутствии ключа
	DefaultSettings() map[string]string
	DefaultShopItems() []model.ShopItem
	GiveawayScanInterval() time.Duration
}
