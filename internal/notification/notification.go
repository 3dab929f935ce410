package notification

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	// ParseModeHTML renders <b>, <a> and escaped entities.
	ParseModeHTML = tgbotapi.ModeHTML
)

// Message describes a reply to one chat.
type Message struct {
	ChatID    int64
	Text      string
	ParseMode string
}

// Notifier delivers replies to downstream systems.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}

// Sender is the subset of *tgbotapi.BotAPI used to deliver messages.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier sends replies through the Bot API.
type TelegramNotifier struct {
	sender Sender
}

// NewTelegramNotifier wraps a Bot API sender.
func NewTelegramNotifier(sender Sender) *TelegramNotifier {
	return &TelegramNotifier{sender: sender}
}

// Send posts message to its chat.
func (n *TelegramNotifier) Send(ctx context.Context, message Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(message.ChatID, message.Text)
	msg.ParseMode = message.ParseMode
	if _, err := n.sender.Send(msg); err != nil {
		return fmt.Errorf("send to chat %d: %w", message.ChatID, err)
	}
	return nil
}

// LoggerNotifier writes replies to the logger instead of delivering them.
// cmd/bot uses it in dry-run mode.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send writes the message to the structured logger.
func (n *LoggerNotifier) Send(_ context.Context, message Message) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.Info("notification", "chat_id", message.ChatID, "parse_mode", message.ParseMode, "text", message.Text)
	return nil
}
