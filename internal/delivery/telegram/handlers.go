package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/skinsentry/skinsentry/internal/usecase"
)

type Handlers struct {
	alertUC *usecase.AlertUsecase
	subUC   *usecase.SubscriptionUsecase
	logger  *zap.Logger
}

func NewHandlers(alertUC *usecase.AlertUsecase, subUC *usecase.SubscriptionUsecase, logger *zap.Logger) *Handlers {
	return &Handlers{alertUC: alertUC, subUC: subUC, logger: logger}
}

func (h *Handlers) HandleUpdate(ctx context.Context, api *tgbotapi.BotAPI, update tgbotapi.Update) {
	if update.Message == nil {
		return
	}
	if update.Message.From == nil {
		return
	}
	if update.Message.IsCommand() {
		h.handleCommand(ctx, api, update)
		return
	}
}

func (h *Handlers) handleCommand(ctx context.Context, api *tgbotapi.BotAPI, update tgbotapi.Update) {
	command := update.Message.Command()
	args := update.Message.CommandArguments()
	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	h.logger.Info(
		"telegram command received",
		zap.Int64("chat_id", chatID),
		zap.Int64("user_id", userID),
		zap.String("command", command),
		zap.String("args", args),
	)

	switch command {
	case "start":
		h.reply(api, chatID, "Welcome to Skinsentry.\n\n"+HelpText)
	case "help":
		h.reply(api, chatID, HelpText)
	case "track":
		item, source, direction, price, err := ParseTrackArgs(args)
		if err != nil {
			h.reply(api, chatID, "Usage: /track <item> <steam|csfloat> <below|above> <price>")
			return
		}
		alert, err := h.alertUC.Track(ctx, userID, chatID, item, source, direction, price)
		if err != nil {
			h.logger.Warn("track failed", zap.Int64("user_id", userID), zap.Error(err))
			h.reply(api, chatID, h.errorMessage(err))
			return
		}
		h.logger.Info("track complete", zap.Int64("user_id", userID), zap.String("item", alert.Item))
		h.reply(api, chatID, fmt.Sprintf("Tracking %s (%s): alert when price is %s %s.",
			alert.Item, alert.Source, alert.Direction, alert.TargetPrice))
	case "untrack":
		item, source, err := ParseUntrackArgs(args)
		if err != nil {
			h.reply(api, chatID, "Usage: /untrack <item> <steam|csfloat>")
			return
		}
		removed, err := h.alertUC.Untrack(ctx, userID, item, source)
		if err != nil {
			h.logger.Warn("untrack failed", zap.Int64("user_id", userID), zap.Error(err))
			h.reply(api, chatID, h.errorMessage(err))
			return
		}
		if removed == 0 {
			h.reply(api, chatID, "No matching alerts.")
			return
		}
		h.reply(api, chatID, fmt.Sprintf("Removed %d alert(s) for %s.", removed, item))
	case "daily":
		item, source, mode, err := ParseDailyArgs(args)
		if err != nil {
			h.reply(api, chatID, "Usage: /daily <item> <steam|csfloat> <on|off>")
			return
		}
		enabled, err := h.subUC.SetDaily(ctx, userID, chatID, item, source, mode)
		if err != nil {
			h.logger.Warn("daily failed", zap.Int64("user_id", userID), zap.Error(err))
			h.reply(api, chatID, h.errorMessage(err))
			return
		}
		if enabled {
			h.reply(api, chatID, fmt.Sprintf("Daily digest for %s is on.", item))
		} else {
			h.reply(api, chatID, fmt.Sprintf("Daily digest for %s is off.", item))
		}
	case "list":
		h.handleList(ctx, api, chatID, userID)
	default:
		h.logger.Warn("unknown command", zap.Int64("user_id", userID), zap.String("command", command))
		h.reply(api, chatID, "Unknown command.\n\n"+HelpText)
	}
}

func (h *Handlers) handleList(ctx context.Context, api *tgbotapi.BotAPI, chatID, userID int64) {
	alerts, err := h.alertUC.List(ctx, userID)
	if err != nil {
		h.logger.Warn("list alerts failed", zap.Int64("user_id", userID), zap.Error(err))
		h.reply(api, chatID, h.errorMessage(err))
		return
	}
	subs, err := h.subUC.List(ctx, userID)
	if err != nil {
		h.logger.Warn("list subscriptions failed", zap.Int64("user_id", userID), zap.Error(err))
		h.reply(api, chatID, h.errorMessage(err))
		return
	}

	if len(alerts) == 0 && len(subs) == 0 {
		h.reply(api, chatID, "Nothing tracked yet. Use /track or /daily to start.")
		return
	}

	var builder strings.Builder
	if len(alerts) > 0 {
		builder.WriteString("Alerts:\n")
		for _, alert := range alerts {
			builder.WriteString(fmt.Sprintf("- %s (%s) %s %s\n",
				alert.Item, alert.Source, alert.Direction, alert.TargetPrice))
		}
	}
	if len(subs) > 0 {
		builder.WriteString("Daily digests:\n")
		for _, sub := range subs {
			last := sub.LastSent
			if last == "" {
				last = "never"
			}
			builder.WriteString(fmt.Sprintf("- %s (%s), last sent %s\n", sub.Item, sub.Source, last))
		}
	}
	h.reply(api, chatID, builder.String())
}

func (h *Handlers) errorMessage(err error) string {
	switch {
	case errors.Is(err, usecase.ErrInvalidItem):
		return "Invalid item name."
	case errors.Is(err, usecase.ErrInvalidSource):
		return "Invalid source. Use steam or csfloat."
	case errors.Is(err, usecase.ErrInvalidDirection):
		return "Invalid direction. Use below or above."
	case errors.Is(err, usecase.ErrInvalidPrice):
		return "Invalid price. Use a positive decimal like 11.50."
	case errors.Is(err, usecase.ErrInvalidMode):
		return "Invalid mode. Use on or off."
	}

	h.logger.Warn("unhandled error", zap.Error(err))
	return "Something went wrong. Please try again."
}

func (h *Handlers) reply(api *tgbotapi.BotAPI, chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := api.Send(msg); err != nil {
		h.logger.Warn("failed to send message", zap.Error(err))
	}
}
