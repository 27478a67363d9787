// Package telegram adapts the go-telegram-bot-api transport to the bot
// core: update sources in, reply payloads out.
package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/hws-labs/wetterbot/internal/bot"
)

// Sender implements bot.ReplySender over the Telegram Bot API.
type Sender struct {
	bot *tgbotapi.BotAPI
}

func NewSender(api *tgbotapi.BotAPI) *Sender {
	return &Sender{bot: api}
}

func (s *Sender) Send(reply bot.Reply) error {
	msg := tgbotapi.NewMessage(reply.ChatID, reply.Text)
	if reply.HTML {
		msg.ParseMode = tgbotapi.ModeHTML
	}
	if reply.ReplyTo != 0 {
		msg.ReplyToMessageID = reply.ReplyTo
	}
	_, err := s.bot.Send(msg)
	return err
}
