package handler

import (
	"net/http"

	"github.com/WiLayd/serverless-transport-task/internal/core/apperrors"
	"github.com/WiLayd/serverless-transport-task/internal/features/routes/domain"
	"github.com/WiLayd/serverless-transport-task/internal/features/routes/ports"
	transportdomain "github.com/WiLayd/serverless-transport-task/internal/features/transports/domain"

	"github.com/gofiber/fiber/v2"
)

// DefaultPageLimit is the page size used when the limit query is absent.
const DefaultPageLimit = 10

// RouteHandler handles HTTP requests for routes.
type RouteHandler struct {
	service ports.RouteService
}

// NewRouteHandler creates a new RouteHandler.
func NewRouteHandler(service ports.RouteService) *RouteHandler {
	return &RouteHandler{service: service}
}

// CreateRouteRequest represents the request body for creating a route.
type CreateRouteRequest struct {
	StartCity             string               `json:"startCity"`
	EndCity               string               `json:"endCity"`
	DistanceKm            float64              `json:"distanceKm"`
	DispatchDate          string               `json:"dispatchDate"`
	RequiredTransportType transportdomain.Type `json:"requiredTransportType"`
	ExpectedRevenueUSD    float64              `json:"expectedRevenueUSD"`
}

// UpdateRouteRequest represents the request body for a partial update.
type UpdateRouteRequest struct {
	StartCity             *string               `json:"startCity"`
	EndCity               *string               `json:"endCity"`
	DistanceKm            *float64              `json:"distanceKm"`
	DispatchDate          *string               `json:"dispatchDate"`
	CompletionDate        *string               `json:"completionDate"`
	RequiredTransportType *transportdomain.Type `json:"requiredTransportType"`
	ExpectedRevenueUSD    *float64              `json:"expectedRevenueUSD"`
	Status                *domain.Status        `json:"status"`
}

// AssignTransportRequest represents the request body for assigning a
// transport to a route.
type AssignTransportRequest struct {
	TransportID string `json:"transportId"`
}

// RouteListResponse is the paginated list payload.
type RouteListResponse struct {
	Items            []domain.Route `json:"items"`
	LastEvaluatedKey string         `json:"lastEvaluatedKey,omitempty"`
}

// Create handles POST /routes.
func (h *RouteHandler) Create(c *fiber.Ctx) error {
	if len(c.Body()) == 0 {
		return apperrors.Validation("Request body is missing")
	}

	var req CreateRouteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Validation("Invalid request body")
	}

	route, err := h.service.Create(c.Context(), ports.CreateRouteParams{
		StartCity:             req.StartCity,
		EndCity:               req.EndCity,
		DistanceKm:            req.DistanceKm,
		DispatchDate:          req.DispatchDate,
		RequiredTransportType: req.RequiredTransportType,
		ExpectedRevenueUSD:    req.ExpectedRevenueUSD,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(route)
}

// List handles GET /routes.
func (h *RouteHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", DefaultPageLimit)
	if limit < 1 {
		return apperrors.Validation("limit must be a positive integer")
	}

	items, next, err := h.service.List(c.Context(), int64(limit), c.Query("lastEvaluatedKey"))
	if err != nil {
		return err
	}

	return c.JSON(RouteListResponse{Items: items, LastEvaluatedKey: next})
}

// Update handles PATCH /routes/:id.
func (h *RouteHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return apperrors.Validation("routeId path parameter is required")
	}
	if len(c.Body()) == 0 {
		return apperrors.Validation("Request body is missing")
	}

	var req UpdateRouteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Validation("Invalid request body")
	}

	route, err := h.service.Update(c.Context(), id, ports.UpdateRouteParams{
		StartCity:             req.StartCity,
		EndCity:               req.EndCity,
		DistanceKm:            req.DistanceKm,
		DispatchDate:          req.DispatchDate,
		CompletionDate:        req.CompletionDate,
		RequiredTransportType: req.RequiredTransportType,
		ExpectedRevenueUSD:    req.ExpectedRevenueUSD,
		Status:                req.Status,
	})
	if err != nil {
		return err
	}

	return c.JSON(route)
}

// Delete handles DELETE /routes/:id.
func (h *RouteHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return apperrors.Validation("routeId path parameter is required")
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return err
	}

	return c.SendStatus(http.StatusNoContent)
}

// AssignTransport handles POST /routes/:id/assign.
func (h *RouteHandler) AssignTransport(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return apperrors.Validation("routeId path parameter is required.")
	}
	if len(c.Body()) == 0 {
		return apperrors.Validation("Request body is missing")
	}

	var req AssignTransportRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Validation("Invalid request body")
	}
	if req.TransportID == "" {
		return apperrors.Validation("transportId is required")
	}

	route, err := h.service.AssignTransport(c.Context(), id, req.TransportID)
	if err != nil {
		return err
	}

	return c.JSON(route)
}
