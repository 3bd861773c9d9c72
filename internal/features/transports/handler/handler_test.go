package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/WiLayd/serverless-transport-task/internal/core/apperrors"
	"github.com/WiLayd/serverless-transport-task/internal/core/server"
	"github.com/WiLayd/serverless-transport-task/internal/features/transports/domain"
	"github.com/WiLayd/serverless-transport-task/internal/features/transports/ports"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTransportService is a mock implementation of ports.TransportService
type MockTransportService struct {
	mock.Mock
}

func (m *MockTransportService) Create(ctx context.Context, params ports.CreateTransportParams) (*domain.Transport, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transport), args.Error(1)
}

func (m *MockTransportService) List(ctx context.Context, limit int64, cursor string) ([]domain.Transport, string, error) {
	args := m.Called(ctx, limit, cursor)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]domain.Transport), args.String(1), args.Error(2)
}

func (m *MockTransportService) Update(ctx context.Context, id string, params ports.UpdateTransportParams) (*domain.Transport, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transport), args.Error(1)
}

func (m *MockTransportService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func setupApp(service *MockTransportService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: server.ErrorHandler})
	h := NewTransportHandler(service)

	app.Post("/transports", h.Create)
	app.Get("/transports", h.List)
	app.Patch("/transports/:id", h.Update)
	app.Delete("/transports/:id", h.Delete)

	return app
}

func TestTransportHandler_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		service := new(MockTransportService)
		app := setupApp(service)

		created := &domain.Transport{ID: "t-1", LicensePlate: "AA 1234 BC", Type: domain.TypeTruck, Status: domain.StatusFree}
		service.On("Create", mock.Anything, mock.AnythingOfType("ports.CreateTransportParams")).Return(created, nil).Once()

		body := `{"licensePlate":"AA 1234 BC","model":"Volvo FH16","type":"TRUCK","capacity":24000,"pricePerKmEUR":1.8}`
		req := httptest.NewRequest(http.MethodPost, "/transports", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var got domain.Transport
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, "t-1", got.ID)
		service.AssertExpectations(t)
	})

	t.Run("MissingBody", func(t *testing.T) {
		service := new(MockTransportService)
		app := setupApp(service)

		req := httptest.NewRequest(http.MethodPost, "/transports", nil)
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		raw, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(raw), "Request body is missing")
		service.AssertNotCalled(t, "Create")
	})

	t.Run("ServiceValidationError", func(t *testing.T) {
		service := new(MockTransportService)
		app := setupApp(service)

		service.On("Create", mock.Anything, mock.Anything).
			Return(nil, apperrors.Validation("Invalid input parameters: capacity must be positive.")).Once()

		body := `{"licensePlate":"AA 1234 BC","type":"TRUCK","capacity":-1,"pricePerKmEUR":1.8}`
		req := httptest.NewRequest(http.MethodPost, "/transports", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestTransportHandler_List(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		service := new(MockTransportService)
		app := setupApp(service)

		items := []domain.Transport{{ID: "t-1"}, {ID: "t-2"}}
		service.On("List", mock.Anything, int64(2), "abc").Return(items, "next", nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/transports?limit=2&lastEvaluatedKey=abc", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got TransportListResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Len(t, got.Items, 2)
		assert.Equal(t, "next", got.LastEvaluatedKey)
		service.AssertExpectations(t)
	})

	t.Run("DefaultLimit", func(t *testing.T) {
		service := new(MockTransportService)
		app := setupApp(service)

		service.On("List", mock.Anything, int64(DefaultPageLimit), "").Return([]domain.Transport{}, "", nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/transports", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		service.AssertExpectations(t)
	})

	t.Run("InvalidLimit", func(t *testing.T) {
		service := new(MockTransportService)
		app := setupApp(service)

		req := httptest.NewRequest(http.MethodGet, "/transports?limit=0", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		service.AssertNotCalled(t, "List")
	})
}

func TestTransportHandler_Update(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		service := new(MockTransportService)
		app := setupApp(service)

		updated := &domain.Transport{ID: "t-1", LicensePlate: "BH 5678 AI"}
		service.On("Update", mock.Anything, "t-1", mock.AnythingOfType("ports.UpdateTransportParams")).Return(updated, nil).Once()

		body := `{"licensePlate":"BH 5678 AI"}`
		req := httptest.NewRequest(http.MethodPatch, "/transports/t-1", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		service.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		service := new(MockTransportService)
		app := setupApp(service)

		service.On("Update", mock.Anything, "missing", mock.Anything).
			Return(nil, apperrors.NotFound("Transport not found.")).Once()

		body := `{"licensePlate":"BH 5678 AI"}`
		req := httptest.NewRequest(http.MethodPatch, "/transports/missing", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestTransportHandler_Delete(t *testing.T) {
	service := new(MockTransportService)
	app := setupApp(service)

	service.On("Delete", mock.Anything, "t-1").Return(nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/transports/t-1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	service.AssertExpectations(t)
}
