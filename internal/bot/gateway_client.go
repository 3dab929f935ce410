package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

//go:generate mockgen -source=gateway_client.go -destination=mocks/gateway.go -package=mocks Gateway

// Gateway performs identifier lookups on behalf of the bot.
type Gateway interface {
	Lookup(ctx context.Context, identifier string) ([]byte, error)
}

// TransportError reports a failed gateway exchange: a network failure or a
// non-2xx answer. Its message is shown to the user after escaping.
type TransportError struct {
	StatusCode int
	Body       string
	Underlying error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("gateway responded with status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("gateway request failed: %v", e.Underlying)
}

func (e *TransportError) Unwrap() error {
	return e.Underlying
}

type lookupRequest struct {
	IMEI  string `json:"imei"`
	Token string `json:"token"`
}

// GatewayClient calls POST /api/check-imei on the validation gateway.
type GatewayClient struct {
	url     string
	token   string
	timeout time.Duration
}

// NewGatewayClient builds a client for the gateway at url, authenticating with token.
func NewGatewayClient(url, token string, timeout time.Duration) *GatewayClient {
	return &GatewayClient{url: url, token: token, timeout: timeout}
}

// Lookup sends one request and returns the raw response body on a 2xx status.
func (c *GatewayClient) Lookup(ctx context.Context, identifier string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &TransportError{Underlying: err}
	}

	agent := fiber.Post(c.url)
	agent.JSON(lookupRequest{IMEI: identifier, Token: c.token})
	if c.timeout > 0 {
		agent.Timeout(c.timeout)
	}
	if err := agent.Parse(); err != nil {
		return nil, &TransportError{Underlying: err}
	}

	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, &TransportError{Underlying: errors.Join(errs...)}
	}
	if status < fiber.StatusOK || status >= fiber.StatusMultipleChoices {
		return nil, &TransportError{StatusCode: status, Body: string(body)}
	}
	return body, nil
}
