package handler

import (
	"net/http"

	"github.com/WiLayd/serverless-transport-task/internal/core/apperrors"
	"github.com/WiLayd/serverless-transport-task/internal/features/transports/domain"
	"github.com/WiLayd/serverless-transport-task/internal/features/transports/ports"

	"github.com/gofiber/fiber/v2"
)

// DefaultPageLimit is the page size used when the limit query is absent.
const DefaultPageLimit = 10

// TransportHandler handles HTTP requests for transports.
type TransportHandler struct {
	service ports.TransportService
}

// NewTransportHandler creates a new TransportHandler.
func NewTransportHandler(service ports.TransportService) *TransportHandler {
	return &TransportHandler{service: service}
}

// CreateTransportRequest represents the request body for creating a transport.
type CreateTransportRequest struct {
	LicensePlate  string      `json:"licensePlate"`
	Model         string      `json:"model"`
	Type          domain.Type `json:"type"`
	Capacity      float64     `json:"capacity"`
	PricePerKmEUR float64     `json:"pricePerKmEUR"`
}

// UpdateTransportRequest represents the request body for a partial update.
type UpdateTransportRequest struct {
	LicensePlate  *string        `json:"licensePlate"`
	Model         *string        `json:"model"`
	Type          *domain.Type   `json:"type"`
	Capacity      *float64       `json:"capacity"`
	PricePerKmEUR *float64       `json:"pricePerKmEUR"`
	Status        *domain.Status `json:"status"`
}

// TransportListResponse is the paginated list payload.
type TransportListResponse struct {
	Items            []domain.Transport `json:"items"`
	LastEvaluatedKey string             `json:"lastEvaluatedKey,omitempty"`
}

// Create handles POST /transports.
func (h *TransportHandler) Create(c *fiber.Ctx) error {
	if len(c.Body()) == 0 {
		return apperrors.Validation("Request body is missing")
	}

	var req CreateTransportRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Validation("Invalid request body")
	}

	transport, err := h.service.Create(c.Context(), ports.CreateTransportParams{
		LicensePlate:  req.LicensePlate,
		Model:         req.Model,
		Type:          req.Type,
		Capacity:      req.Capacity,
		PricePerKmEUR: req.PricePerKmEUR,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(transport)
}

// List handles GET /transports.
func (h *TransportHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", DefaultPageLimit)
	if limit < 1 {
		return apperrors.Validation("limit must be a positive integer")
	}

	items, next, err := h.service.List(c.Context(), int64(limit), c.Query("lastEvaluatedKey"))
	if err != nil {
		return err
	}

	return c.JSON(TransportListResponse{Items: items, LastEvaluatedKey: next})
}

// Update handles PATCH /transports/:id.
func (h *TransportHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return apperrors.Validation("transportId path parameter is required")
	}
	if len(c.Body()) == 0 {
		return apperrors.Validation("Request body is missing")
	}

	var req UpdateTransportRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Validation("Invalid request body")
	}

	transport, err := h.service.Update(c.Context(), id, ports.UpdateTransportParams{
		LicensePlate:  req.LicensePlate,
		Model:         req.Model,
		Type:          req.Type,
		Capacity:      req.Capacity,
		PricePerKmEUR: req.PricePerKmEUR,
		Status:        req.Status,
	})
	if err != nil {
		return err
	}

	return c.JSON(transport)
}

// Delete handles DELETE /transports/:id.
func (h *TransportHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return apperrors.Validation("transportId path parameter is required")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return err
	}

	return c.SendStatus(http.StatusNoContent)
}
