package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/imei-relay/imei_relay/internal/provider"

//go:generate mockgen -source=client.go -destination=mocks/checker.go -package=mocks Checker

// Checker represents a connector to the third-party device verification API.
type Checker interface {
	Check(ctx context.Context, deviceID string) (Response, error)
}

// Response is a successful (200) provider answer.
type Response struct {
	StatusCode int
	Body       json.RawMessage
}

// Config describes how to reach the provider.
type Config struct {
	URL       string
	Token     string
	ServiceID int
	Timeout   time.Duration
}

type checkRequest struct {
	DeviceID  string `json:"deviceId"`
	ServiceID int    `json:"serviceId"`
}

// Client calls the provider over HTTP using Fiber's fasthttp-backed agent.
// It issues exactly one request per Check and never retries.
type Client struct {
	cfg    Config
	tracer trace.Tracer
}

// NewClient builds a provider client.
func NewClient(cfg Config) *Client {
	return &Client{cfg: cfg, tracer: otel.Tracer(tracerName)}
}

// Check submits deviceID to the provider and returns the raw JSON body on 200.
func (c *Client) Check(ctx context.Context, deviceID string) (Response, error) {
	ctx, span := c.tracer.Start(ctx, "provider.Check", trace.WithAttributes(
		attribute.Int("provider.service_id", c.cfg.ServiceID),
	))
	defer span.End()

	// the agent has no context support, so only honour cancellation up front
	if err := ctx.Err(); err != nil {
		return Response{}, c.fail(span, &TransportError{Underlying: err})
	}

	agent := fiber.Post(c.cfg.URL)
	agent.Set(fiber.HeaderAuthorization, "Bearer "+c.cfg.Token)
	agent.JSON(checkRequest{DeviceID: deviceID, ServiceID: c.cfg.ServiceID})
	if c.cfg.Timeout > 0 {
		agent.Timeout(c.cfg.Timeout)
	}
	if err := agent.Parse(); err != nil {
		return Response{}, c.fail(span, &TransportError{Underlying: err})
	}

	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return Response{}, c.fail(span, &TransportError{Underlying: errors.Join(errs...)})
	}
	span.SetAttributes(attribute.Int("http.response.status_code", status))

	if status != http.StatusOK {
		return Response{}, c.fail(span, &UpstreamError{StatusCode: status, Body: string(body)})
	}
	if !json.Valid(body) {
		return Response{}, c.fail(span, ErrMalformedResponse)
	}

	return Response{StatusCode: status, Body: json.RawMessage(body)}, nil
}

func (c *Client) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
