package config

import (
	"os"

	"gomarketsync/config/values"

	"gopkg.in/yaml.v3"
)

type Config interface {
}

type ChannelConfig interface {
}

// ServerConfig -- настройки административного HTTP API.
type ServerConfig struct {
	Address   string `yaml:"address"`
	JwtSecret string `yaml:"jwt_secret"`
}

// StorefrontConfig -- подключение к витринному каналу (REST).
type StorefrontConfig struct {
	ApiKey   string                 `yaml:"api_key"`
	BaseURL  string                 `yaml:"base_url"`
	Defaults values.ChannelDefaults `yaml:"default_values"`
	Settings map[string]string      `yaml:"settings"`
}

// AuctionConfig -- подключение к аукционному каналу (GraphQL).
type AuctionConfig struct {
	ApiKey   string                 `yaml:"api_key"`
	Endpoint string                 `yaml:"endpoint"`
	Defaults values.ChannelDefaults `yaml:"default_values"`
	Settings map[string]string      `yaml:"settings"`
}

// OperatorConfig -- REST-вариант мультиоператорного канала под конкретного оператора.
type OperatorConfig struct {
	Name    string `yaml:"name"`
	ApiKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

// MultiOperatorConfig -- подключение к мультиоператорному маркетплейсу.
type MultiOperatorConfig struct {
	ApiKey       string                 `yaml:"api_key"`
	BaseURL      string                 `yaml:"base_url"`
	OfferFeedURL string                 `yaml:"offer_feed_url"`
	Defaults     values.ChannelDefaults `yaml:"default_values"`
	Settings     map[string]string      `yaml:"settings"`
	Operators    []OperatorConfig       `yaml:"operators"`
}

// CatalogConfig -- внутренний каталожный сервис, источник карточек товаров.
type CatalogConfig struct {
	BaseURL string `yaml:"base_url"`
}

type ChannelsConfig struct {
	Storefront    StorefrontConfig    `yaml:"storefront"`
	Auction       AuctionConfig       `yaml:"auction"`
	MultiOperator MultiOperatorConfig `yaml:"multioperator"`
}

type AppConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Channels ChannelsConfig `yaml:"channels"`
	Postgres PostgresConfig `yaml:"postgres"`
}

func LoadConfig(filename string) (*AppConfig, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	config := &AppConfig{}
	if err := decoder.Decode(config); err != nil {
		return nil, err
	}
	return config, nil
}
