package lookup

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/imei-relay/imei_relay/internal/imei"
	"github.com/imei-relay/imei_relay/internal/metrics"
	"github.com/imei-relay/imei_relay/internal/provider"
)

var (
	// ErrInvalidIdentifier is returned when the identifier is not 14 or 15 digits.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrUnauthorized is returned when the caller credential does not match the configured secret.
	ErrUnauthorized = errors.New("invalid token")
)

const (
	outcomeOK             = "ok"
	outcomeInvalid        = "invalid_identifier"
	outcomeUnauthorized   = "unauthorized"
	outcomeUpstreamError  = "upstream_error"
	outcomeTransportError = "transport_error"
)

// Result is the provider's successful answer, returned to the caller unchanged.
type Result struct {
	Body json.RawMessage
}

// Service validates lookup requests and forwards them to the provider.
type Service struct {
	checker provider.Checker
	secret  []byte
	logger  *slog.Logger
	metrics *metrics.Gateway
}

// NewService wires a lookup service. The secret is the credential callers must present.
func NewService(checker provider.Checker, secret string, logger *slog.Logger, m *metrics.Gateway) (*Service, error) {
	if checker == nil {
		return nil, fmt.Errorf("provider checker is required")
	}
	if secret == "" {
		return nil, fmt.Errorf("auth secret is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{checker: checker, secret: []byte(secret), logger: logger, metrics: m}, nil
}

// CheckIdentifier validates the identifier and credential, then performs exactly one
// provider call. Validation and auth failures never reach the network.
func (s *Service) CheckIdentifier(ctx context.Context, identifier, credential string) (Result, error) {
	if err := imei.ValidateGateway(identifier); err != nil {
		s.record(outcomeInvalid, identifier, nil)
		return Result{}, ErrInvalidIdentifier
	}
	if subtle.ConstantTimeCompare([]byte(credential), s.secret) != 1 {
		s.record(outcomeUnauthorized, identifier, nil)
		return Result{}, ErrUnauthorized
	}

	start := time.Now()
	resp, err := s.checker.Check(ctx, identifier)
	elapsed := time.Since(start)

	if err != nil {
		if ue, ok := provider.AsUpstream(err); ok {
			s.metrics.ObserveProviderLatency(strconv.Itoa(ue.StatusCode), elapsed)
			s.record(outcomeUpstreamError, identifier, err, slog.Int("provider_status", ue.StatusCode))
			return Result{}, err
		}
		s.metrics.ObserveProviderLatency("error", elapsed)
		s.record(outcomeTransportError, identifier, err)
		return Result{}, err
	}

	s.metrics.ObserveProviderLatency(strconv.Itoa(resp.StatusCode), elapsed)
	s.record(outcomeOK, identifier, nil, slog.Duration("provider_duration", elapsed))
	return Result{Body: resp.Body}, nil
}

func (s *Service) record(outcome, identifier string, err error, extra ...any) {
	s.metrics.IncrementOutcome(outcome)

	attrs := append([]any{
		slog.String("outcome", outcome),
		slog.String("imei", imei.Mask(identifier)),
	}, extra...)
	switch outcome {
	case outcomeOK:
		s.logger.Info("imei lookup completed", attrs...)
	case outcomeUpstreamError, outcomeTransportError:
		attrs = append(attrs, slog.Any("error", err))
		s.logger.Error("imei lookup failed", attrs...)
	default:
		s.logger.Warn("imei lookup rejected", attrs...)
	}
}
