package bot

import (
	"context"
	"log/slog"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/imei-relay/imei_relay/internal/notification"
)

const pollTimeoutSeconds = 60

// UpdateSource is the subset of *tgbotapi.BotAPI that delivers updates.
type UpdateSource interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Dispatcher long-polls for updates and handles each message on its own goroutine.
type Dispatcher struct {
	source   UpdateSource
	handler  *Handler
	notifier notification.Notifier
	logger   *slog.Logger
	wg       sync.WaitGroup
}

// NewDispatcher wires a dispatcher.
func NewDispatcher(source UpdateSource, handler *Handler, notifier notification.Notifier, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{source: source, handler: handler, notifier: notifier, logger: logger}
}

// Run polls until ctx is cancelled or the update channel closes, then waits
// for in-flight messages to finish.
func (d *Dispatcher) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeoutSeconds
	updates := d.source.GetUpdatesChan(u)

	defer d.wg.Wait()
	for {
		select {
		case <-ctx.Done():
			d.source.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			msg := update.Message
			d.wg.Add(1)
			go func() {
				defer d.wg.Done()
				d.dispatch(ctx, msg)
			}()
		}
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, msg *tgbotapi.Message) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("message handler panicked", "panic", r, "update_message_id", msg.MessageID)
		}
	}()

	in := toIncoming(msg)
	reply := d.handler.Handle(ctx, in)

	// Replies still go out during shutdown; the poller is already stopped.
	sendCtx := context.WithoutCancel(ctx)
	err := d.notifier.Send(sendCtx, notification.Message{
		ChatID:    in.ChatID,
		Text:      reply,
		ParseMode: notification.ParseModeHTML,
	})
	if err != nil {
		d.logger.Error("send reply", "chat_id", in.ChatID, "error", err)
	}
}

func toIncoming(msg *tgbotapi.Message) Incoming {
	in := Incoming{Text: msg.Text}
	if msg.From != nil {
		in.UserID = msg.From.ID
	}
	if msg.Chat != nil {
		in.ChatID = msg.Chat.ID
	}
	if msg.IsCommand() {
		in.Command = msg.Command()
	}
	return in
}
