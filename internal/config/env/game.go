package env

import (
	"economy_backend/internal/config"
	"economy_backend/internal/model"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultGiveawayScanInterval = 10 * time.Minute

type gameYAML struct {
	Game struct {
		Settings             map[string]string `yaml:"settings"`
		GiveawayScanInterval string            `yaml:"giveaway_scan_interval"`
	} `yaml:"game"`
	Shop struct {
		Items []struct {
			Name        string `yaml:"name"`
			Description string `yaml:"description"`
			Price       int    `yaml:"price"`
			Stock       int    `yaml:"stock"`
		} `yaml:"items"`
	} `yaml:"shop"`
}

type gameConfig struct {
	settings     map[string]string
	shopItems    []model.ShopItem
	scanInterval time.Duration
}

// NewGameConfigFromYAML читает игровые значения по умолчанию из config.yaml.
// Ключи, отсутствующие в файле, берутся из встроенных значений
func NewGameConfigFromYAML(path string) (config.GameConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config: %w", err)
	}

	var parsed gameYAML
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse game config: %w", err)
	}

	settings := make(map[string]string, len(model.DefaultSettings))
	for key, value := range model.DefaultSettings {
		settings[key] = value
	}
	for key, value := range parsed.Game.Settings {
		if _, ok := settings[key]; !ok {
			return nil, fmt.Errorf("unknown setting key in game config: %s", key)
		}
		settings[key] = value
	}

	scanInterval := defaultGiveawayScanInterval
	if parsed.Game.GiveawayScanInterval != "" {
		scanInterval, err = time.ParseDuration(parsed.Game.GiveawayScanInterval)
		if err != nil {
			return nil, fmt.Errorf("invalid giveaway scan interval: %w", err)
		}
	}

	var items []model.ShopItem
	for _, item := range parsed.Shop.Items {
		items = append(items, model.ShopItem{
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price,
			Stock:       item.Stock,
		})
	}

	return &gameConfig{
		settings:     settings,
		shopItems:    items,
		scanInterval: scanInterval,
	}, nil
}

func (cfg *gameConfig) DefaultSettings() map[string]string {
	return cfg.settings
}

func (cfg *gameConfig) DefaultShopItems() []model.ShopItem {
	return cfg.shopItems
}

func (cfg *gameConfig) GiveawayScanInterval() time.Duration {
	return cfg.scanInterval
}
