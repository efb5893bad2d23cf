// Package config loads client settings from an optional osl.yaml, a .env
// file and OSL_ prefixed environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/banky/go-osl/constants"
	"github.com/banky/go-osl/exchange"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	fileName  = "osl"
	envPrefix = "OSL"
)

type Config struct {
	APIKey    string        `mapstructure:"api_key"`
	APISecret string        `mapstructure:"api_secret"`
	Currency  string        `mapstructure:"currency"`
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Debug     bool          `mapstructure:"debug"`
}

// Load reads the configuration found in dir. Neither osl.yaml nor .env is
// required.
func Load(dir string) (*Config, error) {
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName(fileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal only sees env values for keys viper already knows about
	v.SetDefault("api_key", "")
	v.SetDefault("api_secret", "")
	v.SetDefault("currency", constants.DEFAULT_CURRENCY_PAIR)
	v.SetDefault("base_url", constants.MAINNET_API_URL)
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("debug", false)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// HasCredentials reports whether authenticated calls can be signed.
func (c *Config) HasCredentials() bool {
	return c.APIKey != "" && c.APISecret != ""
}

// ExchangeConfig converts c into the settings of an exchange client.
func (c *Config) ExchangeConfig(logger *zap.Logger) exchange.Config {
	return exchange.Config{
		BaseURL:   c.BaseURL,
		Timeout:   c.Timeout,
		APIKey:    c.APIKey,
		APISecret: c.APISecret,
		Currency:  c.Currency,
		Logger:    logger,
	}
}

// String hides the secret.
func (c *Config) String() string {
	secret := ""
	if c.APISecret != "" {
		secret = "<redacted>"
	}
	return fmt.Sprintf("Config{BaseURL: %s, Currency: %s, APIKey: %s, APISecret: %s, Timeout: %s, Debug: %v}",
		c.BaseURL, c.Currency, c.APIKey, secret, c.Timeout, c.Debug)
}
