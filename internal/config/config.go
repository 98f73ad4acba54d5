package config

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	TelegramBotToken    string `env:"TELEGRAM_BOT_TOKEN,required"`
	TelegramPollTimeout int    `env:"TELEGRAM_POLL_TIMEOUT,default=60"`

	DataFile string `env:"DATA_FILE,default=data.json"`

	AlertInterval  time.Duration `env:"ALERT_INTERVAL,default=1m"`
	DigestInterval time.Duration `env:"DIGEST_INTERVAL,default=1m"`

	SteamBaseURL   string `env:"STEAM_BASE_URL,default=https://steamcommunity.com"`
	SteamAppID     int    `env:"STEAM_APP_ID,default=730"`
	SteamCurrency  int    `env:"STEAM_CURRENCY,default=3"`
	CSFloatBaseURL string `env:"CSFLOAT_BASE_URL,default=https://csfloat.com"`

	// Gates Steam trade volume and CSFloat matching-listing count alike.
	MinSupportingCount int `env:"MIN_SUPPORTING_COUNT,default=1"`

	SourceTimeout time.Duration `env:"SOURCE_TIMEOUT,default=10s"`
	LogLevel      string        `env:"LOG_LEVEL,default=info"`
}

func Load(ctx context.Context) (Config, error) {
	// Environment variables win over .env entries; a missing .env is fine.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
