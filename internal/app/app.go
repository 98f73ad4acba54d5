package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/skinsentry/skinsentry/internal/config"
	"github.com/skinsentry/skinsentry/internal/delivery/telegram"
	"github.com/skinsentry/skinsentry/internal/domain"
	"github.com/skinsentry/skinsentry/internal/infra/csfloat"
	"github.com/skinsentry/skinsentry/internal/infra/log"
	"github.com/skinsentry/skinsentry/internal/infra/state"
	"github.com/skinsentry/skinsentry/internal/infra/steam"
	"github.com/skinsentry/skinsentry/internal/usecase"
)

type App struct {
	bot     *telegram.Bot
	watcher *usecase.Watcher
	logger  *zap.Logger
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	logger, err := log.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	store := state.NewStore(cfg.DataFile)

	sources := map[domain.Source]domain.PriceSource{
		domain.SourceSteam:   steam.NewClient(cfg.SteamBaseURL, cfg.SteamAppID, cfg.SteamCurrency, cfg.SourceTimeout, logger),
		domain.SourceCSFloat: csfloat.NewClient(cfg.CSFloatBaseURL, cfg.SourceTimeout, logger),
	}

	api, err := telegram.NewAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, err
	}

	notifier := telegram.NewNotifier(api, logger)
	watcher := usecase.NewWatcher(store, sources, notifier, cfg.MinSupportingCount, cfg.AlertInterval, cfg.DigestInterval, logger)

	alertUC := usecase.NewAlertUsecase(store)
	subUC := usecase.NewSubscriptionUsecase(store)
	handlers := telegram.NewHandlers(alertUC, subUC, logger)
	bot := telegram.NewBot(api, handlers, cfg.TelegramPollTimeout)

	return &App{bot: bot, watcher: watcher, logger: logger}, nil
}

// Run starts the bot and both watch loops, returning the first failure.
// Context cancellation lets in-flight ticks finish before the loops exit.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.logger.Info("skinsentry starting")

	errCh := make(chan error, 2)
	go func() {
		errCh <- a.watcher.Run(ctx)
	}()
	go func() {
		errCh <- a.bot.Start(ctx)
	}()

	a.logger.Info("skinsentry started")

	err := <-errCh
	cancel()
	<-errCh
	return err
}

func (a *App) Shutdown() {
	a.logger.Info("skinsentry shutting down")
	_ = a.logger.Sync()
}
