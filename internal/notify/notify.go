// Package notify isolates the Telegram push transport from scheduling state.
package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Dispatcher struct {
	api *tgbotapi.BotAPI
}

func New(api *tgbotapi.BotAPI) *Dispatcher {
	return &Dispatcher{api: api}
}

// Send pushes one plain-text message to the owner's chat. Transport failures
// are returned, never panicked, so the caller can retry by re-evaluation.
func (d *Dispatcher) Send(userID int64, text string) error {
	msg := tgbotapi.NewMessage(userID, text)
	if _, err := d.api.Send(msg); err != nil {
		return fmt.Errorf("failed to push message: %w", err)
	}
	return nil
}
