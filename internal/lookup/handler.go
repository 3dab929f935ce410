package lookup

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/imei-relay/imei_relay/internal/provider"
)

// Handler exposes the identifier lookup endpoint.
type Handler struct {
	service *Service
}

// NewHandler constructs a lookup handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CheckIMEI validates the request and relays the provider answer.
func (h *Handler) CheckIMEI(c *fiber.Ctx) error {
	var req CheckRequest
	if len(c.Body()) == 0 {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Error: MsgMissingJSON})
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Error: MsgMissingJSON})
	}

	result, err := h.service.CheckIdentifier(c.UserContext(), req.IMEI, req.Token)
	if err != nil {
		if ue, ok := provider.AsUpstream(err); ok {
			return c.Status(ue.StatusCode).JSON(ErrorResponse{Error: MsgCheckFailed, Details: ue.Body})
		}
		switch {
		case errors.Is(err, ErrInvalidIdentifier):
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Error: MsgInvalidIdentifier})
		case errors.Is(err, ErrUnauthorized):
			return c.Status(http.StatusForbidden).JSON(ErrorResponse{Error: MsgInvalidToken})
		default:
			return c.Status(http.StatusBadGateway).JSON(ErrorResponse{Error: MsgProviderFailure})
		}
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(http.StatusOK).Send(result.Body)
}
