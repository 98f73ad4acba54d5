package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Bot struct {
	api         *tgbotapi.BotAPI
	handlers    *Handlers
	pollTimeout int
}

func NewAPI(token string) (*tgbotapi.BotAPI, error) {
	return tgbotapi.NewBotAPI(token)
}

func NewBot(api *tgbotapi.BotAPI, handlers *Handlers, pollTimeout int) *Bot {
	return &Bot{api: api, handlers: handlers, pollTimeout: pollTimeout}
}

func (b *Bot) Start(ctx context.Context) error {
	config := tgbotapi.NewUpdate(0)
	config.Timeout = b.pollTimeout
	updates := b.api.GetUpdatesChan(config)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handlers.HandleUpdate(ctx, b.api, update)
		}
	}
}

// Notifier delivers watcher messages to the chat an alert or digest targets,
// with a text mention of the user it belongs to.
type Notifier struct {
	api    *tgbotapi.BotAPI
	logger *zap.Logger
}

func NewNotifier(api *tgbotapi.BotAPI, logger *zap.Logger) *Notifier {
	return &Notifier{api: api, logger: logger}
}

func (n *Notifier) Notify(destination, user int64, text string) error {
	const mentionLabel = "You"

	msg := tgbotapi.NewMessage(destination, mentionLabel+": "+text)
	// text_mention works for users without a username. Offset and length
	// are UTF-16 units; the label is ASCII.
	msg.Entities = []tgbotapi.MessageEntity{{
		Type:   "text_mention",
		Offset: 0,
		Length: len(mentionLabel),
		User:   &tgbotapi.User{ID: user},
	}}

	if _, err := n.api.Send(msg); err != nil {
		n.logger.Warn("failed to notify",
			zap.Int64("destination", destination),
			zap.Int64("user", user),
			zap.Error(err))
		return err
	}
	return nil
}
