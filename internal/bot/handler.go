package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/imei-relay/imei_relay/internal/imei"
	"github.com/imei-relay/imei_relay/internal/metrics"
)

const (
	outcomeDenied         = "denied"
	outcomePrompt         = "prompt"
	outcomeInvalid        = "invalid_identifier"
	outcomeTransportError = "transport_error"
	outcomeParseError     = "parse_error"
	outcomeSchemaError    = "schema_error"
	outcomeOK             = "ok"
)

// Incoming is a chat message reduced to what the handler needs.
type Incoming struct {
	UserID  int64
	ChatID  int64
	Text    string
	Command string
}

// Handler turns one incoming message into one reply. It holds no per-message
// state and may be called concurrently.
type Handler struct {
	allow   *AllowList
	gateway Gateway
	logger  *slog.Logger
	metrics *metrics.Bot
}

// NewHandler wires a message handler.
func NewHandler(allow *AllowList, gateway Gateway, logger *slog.Logger, m *metrics.Bot) (*Handler, error) {
	if allow == nil {
		return nil, fmt.Errorf("allow-list is required")
	}
	if gateway == nil {
		return nil, fmt.Errorf("gateway client is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{allow: allow, gateway: gateway, logger: logger, metrics: m}, nil
}

// Handle returns the HTML reply for in.
func (h *Handler) Handle(ctx context.Context, in Incoming) string {
	start := time.Now()
	reply, outcome, identifier := h.handle(ctx, in)

	elapsed := time.Since(start)
	h.metrics.IncrementOutcome(outcome)
	h.metrics.ObserveHandleLatency(elapsed)

	attrs := []any{
		slog.Int64("user_id", in.UserID),
		slog.String("outcome", outcome),
		slog.Duration("duration", elapsed),
	}
	if identifier != "" {
		attrs = append(attrs, slog.String("imei", imei.Mask(identifier)))
	}
	switch outcome {
	case outcomeOK, outcomePrompt:
		h.logger.Info("message handled", attrs...)
	case outcomeTransportError, outcomeParseError, outcomeSchemaError:
		h.logger.Error("message handled", attrs...)
	default:
		h.logger.Warn("message handled", attrs...)
	}
	return reply
}

func (h *Handler) handle(ctx context.Context, in Incoming) (reply, outcome, identifier string) {
	if !h.allow.Contains(in.UserID) {
		return MsgAccessDenied, outcomeDenied, ""
	}

	switch in.Command {
	case "start", "help":
		return MsgPrompt, outcomePrompt, ""
	}

	identifier = imei.Normalize(in.Text)
	if err := imei.ValidateBot(identifier); err != nil {
		return MsgInvalidIdentifier, outcomeInvalid, ""
	}

	body, err := h.gateway.Lookup(ctx, identifier)
	if err != nil {
		h.logger.Debug("gateway lookup failed", "error", err)
		return fmt.Sprintf(MsgRequestFailed, EscapeHTML(err.Error())), outcomeTransportError, identifier
	}

	result, err := ParseLookupResponse(body)
	if err != nil {
		return parseFailureReply(err), parseFailureOutcome(err), identifier
	}
	return Render(result.Properties), outcomeOK, identifier
}

func parseFailureReply(err error) string {
	switch {
	case errors.Is(err, ErrMalformedResponse):
		return MsgMalformedResponse
	case errors.Is(err, ErrDetailsMissing):
		return MsgDetailsMissing
	case errors.Is(err, ErrDetailsMalformed):
		return MsgDetailsMalformed
	case errors.Is(err, ErrPropertiesMissing):
		return MsgPropertiesMissing
	default:
		return MsgInternalError
	}
}

func parseFailureOutcome(err error) string {
	if errors.Is(err, ErrSchema) {
		return outcomeSchemaError
	}
	return outcomeParseError
}
