// internal/infra/telegram/client.go
package telegram

import (
	"io"

	"gopkg.in/telebot.v3"
)

// TelebotAdapter implements the Client interface using the gopkg.in/telebot.v3 library.
type TelebotAdapter struct {
	bot *telebot.Bot
}

func NewTelebotAdapter(b *telebot.Bot) *TelebotAdapter {
	return &TelebotAdapter{bot: b}
}

// SendMessage sends a text message to the specified chat.
func (tba *TelebotAdapter) SendMessage(recipientChatID int64, text string, options *telebot.SendOptions) error {
	if options == nil {
		options = &telebot.SendOptions{}
	}

	_, err := tba.bot.Send(&telebot.Chat{ID: recipientChatID}, text, options)
	return err
}

// SendPhoto uploads an image to the specified chat.
func (tba *TelebotAdapter) SendPhoto(recipientChatID int64, image io.Reader, caption string) error {
	photo := &telebot.Photo{File: telebot.FromReader(image), Caption: caption}
	_, err := tba.bot.Send(&telebot.Chat{ID: recipientChatID}, photo)
	return err
}
