package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/hws-labs/wetterbot/internal/bot"
)

// Handler is the slice of the router the consume loop needs.
type Handler interface {
	Handle(ctx context.Context, msg bot.Inbound)
}

// Consume drains the update channel and hands each text message to the
// router in its own goroutine: messages are independent units of work
// with no ordering guarantee, and a slow collaborator call for one user
// must not block another user's message. A panic while handling one
// message is recovered and logged so it never takes down the loop.
func Consume(ctx context.Context, updates <-chan tgbotapi.Update, router Handler, log *zap.SugaredLogger) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || update.Message.Chat == nil || update.Message.Text == "" {
				continue
			}

			msg := toInbound(update.Message)
			go func() {
				defer func() {
					if rec := recover(); rec != nil {
						log.Errorw("panic while handling message",
							"chat_id", msg.ChatID,
							"panic", rec,
						)
					}
				}()
				router.Handle(ctx, msg)
			}()
		}
	}
}

// toInbound flattens a Telegram message into the routed shape. A nil
// From leaves UserID zero, which the router drops as lacking identity.
func toInbound(m *tgbotapi.Message) bot.Inbound {
	msg := bot.Inbound{
		ChatID:    m.Chat.ID,
		MessageID: m.MessageID,
		Text:      m.Text,
	}
	if m.From != nil {
		msg.UserID = m.From.ID
	}
	return msg
}

// ConfigureWebhook registers the webhook URL with Telegram for
// production mode.
func ConfigureWebhook(api *tgbotapi.BotAPI, appURL, token string) error {
	wh, err := tgbotapi.NewWebhook(appURL + "/bot" + token)
	if err != nil {
		return err
	}
	if _, err := api.Request(wh); err != nil {
		return err
	}
	return nil
}
