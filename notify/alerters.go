package notify

import (
	"context"
	"fmt"
	"io"
	"log"

	"lounge-orders/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Message is the text shown for a new order
func Message(o models.Order) string {
	customer := "Guest"
	if o.CustomerName != nil && *o.CustomerName != "" {
		customer = *o.CustomerName
	}
	msg := fmt.Sprintf("🔔 New order from %s - $%.2f", customer, o.Subtotal)
	if o.Seating != nil && *o.Seating != "" {
		msg += " (" + *o.Seating + ")"
	}
	return msg
}

// LogAlerter rings the terminal bell and logs the order
type LogAlerter struct {
	Out  io.Writer
	Bell bool
}

func (a LogAlerter) Alert(_ context.Context, o models.Order) error {
	if a.Bell && a.Out != nil {
		if _, err := io.WriteString(a.Out, "\a"); err != nil {
			return err
		}
	}
	log.Println(Message(o))
	return nil
}

// Sender is the part of *tgbotapi.BotAPI the Telegram alerter needs
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type TelegramAlerter struct {
	Bot    Sender
	ChatID int64
}

// NewTelegramAlerter connects to the bot API with token
func NewTelegramAlerter(token string, chatID int64) (*TelegramAlerter, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &TelegramAlerter{Bot: bot, ChatID: chatID}, nil
}

func (a *TelegramAlerter) Alert(_ context.Context, o models.Order) error {
	if _, err := a.Bot.Send(tgbotapi.NewMessage(a.ChatID, Message(o))); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}

// Multi fans an alert out to every alerter and returns the first error
type Multi []Alerter

func (m Multi) Alert(ctx context.Context, o models.Order) error {
	var first error
	for _, a := range m {
		if err := a.Alert(ctx, o); err != nil && first == nil {
			first = err
		}
	}
	return first
}
