package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/WiLayd/serverless-transport-task/internal/core/apperrors"
	"github.com/WiLayd/serverless-transport-task/internal/features/routes/domain"
	"github.com/WiLayd/serverless-transport-task/internal/features/routes/ports"
	transportdomain "github.com/WiLayd/serverless-transport-task/internal/features/transports/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRouteRepository is a mock implementation of ports.RouteRepository
type MockRouteRepository struct {
	mock.Mock
}

func (m *MockRouteRepository) Save(ctx context.Context, route *domain.Route) error {
	args := m.Called(ctx, route)
	return args.Error(0)
}

func (m *MockRouteRepository) Get(ctx context.Context, id string) (*domain.Route, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Route), args.Error(1)
}

func (m *MockRouteRepository) Update(ctx context.Context, id string, fields map[string]any) (*domain.Route, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Route), args.Error(1)
}

func (m *MockRouteRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRouteRepository) List(ctx context.Context, limit int64, cursor string) ([]domain.Route, string, error) {
	args := m.Called(ctx, limit, cursor)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]domain.Route), args.String(1), args.Error(2)
}

// MockTransportReader is a mock implementation of ports.TransportReader
type MockTransportReader struct {
	mock.Mock
}

func (m *MockTransportReader) Get(ctx context.Context, id string) (*transportdomain.Transport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transportdomain.Transport), args.Error(1)
}

// MockAssignmentWriter is a mock implementation of ports.AssignmentWriter
type MockAssignmentWriter struct {
	mock.Mock
}

func (m *MockAssignmentWriter) CommitAssignment(ctx context.Context, routeID, transportID string, cost ports.AssignmentCost) error {
	args := m.Called(ctx, routeID, transportID, cost)
	return args.Error(0)
}

// MockConverter is a mock implementation of the currency converter port.
type MockConverter struct {
	mock.Mock
}

func (m *MockConverter) Convert(ctx context.Context, costEUR decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, costEUR)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

type fixture struct {
	repo       *MockRouteRepository
	transports *MockTransportReader
	writer     *MockAssignmentWriter
	converter  *MockConverter
	service    *RouteServiceImpl
}

func newFixture() *fixture {
	f := &fixture{
		repo:       new(MockRouteRepository),
		transports: new(MockTransportReader),
		writer:     new(MockAssignmentWriter),
		converter:  new(MockConverter),
	}
	f.service = NewRouteService(f.repo, f.transports, f.writer, f.converter)
	return f
}

func pendingRoute() *domain.Route {
	return &domain.Route{
		ID:                    "r-1",
		StartCity:             "Odesa",
		EndCity:               "Krakow",
		DistanceKm:            1150,
		DispatchDate:          "2025-10-18T00:00:00Z",
		RequiredTransportType: transportdomain.TypeTruck,
		ExpectedRevenueUSD:    2500,
		Status:                domain.StatusPending,
	}
}

func freeTruck() *transportdomain.Transport {
	return &transportdomain.Transport{
		ID:            "t-1",
		LicensePlate:  "CE 9012 EH",
		Type:          transportdomain.TypeTruck,
		Capacity:      24000,
		PricePerKmEUR: 1.7,
		Status:        transportdomain.StatusFree,
	}
}

func TestRouteService_AssignTransport(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newFixture()

		f.repo.On("Get", mock.Anything, "r-1").Return(pendingRoute(), nil).Once()
		f.transports.On("Get", mock.Anything, "t-1").Return(freeTruck(), nil).Once()

		f.converter.On("Convert", ctx, mock.MatchedBy(func(d decimal.Decimal) bool {
			return d.Equal(decimal.NewFromFloat(1955))
		})).Return(decimal.NewFromFloat(2130.95), decimal.NewFromFloat(81132.5), nil).Once()

		f.writer.On("CommitAssignment", ctx, "r-1", "t-1",
			ports.AssignmentCost{EUR: 1955, USD: 2130.95, UAH: 81132.5}).Return(nil).Once()

		transportID := "t-1"
		costEUR := 1955.0
		updated := pendingRoute()
		updated.Status = domain.StatusInProgress
		updated.TransportID = &transportID
		updated.CostEUR = &costEUR
		f.repo.On("Get", mock.Anything, "r-1").Return(updated, nil).Once()

		route, err := f.service.AssignTransport(ctx, "r-1", "t-1")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusInProgress, route.Status)
		require.NotNil(t, route.TransportID)
		assert.Equal(t, "t-1", *route.TransportID)

		f.repo.AssertExpectations(t)
		f.writer.AssertExpectations(t)
		f.converter.AssertExpectations(t)
	})

	t.Run("RouteNotFound", func(t *testing.T) {
		f := newFixture()

		f.repo.On("Get", mock.Anything, "missing").Return(nil, domain.ErrNotFound).Once()
		f.transports.On("Get", mock.Anything, "t-1").Return(freeTruck(), nil).Once()

		_, err := f.service.AssignTransport(ctx, "missing", "t-1")
		requireAppError(t, err, http.StatusNotFound, "Route not found.")
		f.writer.AssertNotCalled(t, "CommitAssignment")
	})

	t.Run("TransportNotFound", func(t *testing.T) {
		f := newFixture()

		f.repo.On("Get", mock.Anything, "r-1").Return(pendingRoute(), nil).Once()
		f.transports.On("Get", mock.Anything, "missing").Return(nil, transportdomain.ErrNotFound).Once()

		_, err := f.service.AssignTransport(ctx, "r-1", "missing")
		requireAppError(t, err, http.StatusNotFound, "Transport not found.")
		f.writer.AssertNotCalled(t, "CommitAssignment")
	})

	t.Run("BothMissingReportsRouteFirst", func(t *testing.T) {
		f := newFixture()

		f.repo.On("Get", mock.Anything, "missing-route").Return(nil, domain.ErrNotFound).Once()
		f.transports.On("Get", mock.Anything, "missing-transport").Return(nil, transportdomain.ErrNotFound).Once()

		_, err := f.service.AssignTransport(ctx, "missing-route", "missing-transport")
		requireAppError(t, err, http.StatusNotFound, "Route not found.")
	})

	t.Run("RouteNotPending", func(t *testing.T) {
		f := newFixture()

		route := pendingRoute()
		route.Status = domain.StatusInProgress
		f.repo.On("Get", mock.Anything, "r-1").Return(route, nil).Once()
		f.transports.On("Get", mock.Anything, "t-1").Return(freeTruck(), nil).Once()

		_, err := f.service.AssignTransport(ctx, "r-1", "t-1")
		requireAppError(t, err, http.StatusBadRequest, "Route is not in PENDING state. Current state: IN_PROGRESS")
		f.converter.AssertNotCalled(t, "Convert")
		f.writer.AssertNotCalled(t, "CommitAssignment")
	})

	t.Run("TransportNotFree", func(t *testing.T) {
		f := newFixture()

		transport := freeTruck()
		transport.Status = transportdomain.StatusBusy
		f.repo.On("Get", mock.Anything, "r-1").Return(pendingRoute(), nil).Once()
		f.transports.On("Get", mock.Anything, "t-1").Return(transport, nil).Once()

		_, err := f.service.AssignTransport(ctx, "r-1", "t-1")
		requireAppError(t, err, http.StatusBadRequest, "Transport is not AVAILABLE. Current state: BUSY")
		f.writer.AssertNotCalled(t, "CommitAssignment")
	})

	t.Run("TypeMismatch", func(t *testing.T) {
		f := newFixture()

		car := freeTruck()
		car.Type = transportdomain.TypeCar
		f.repo.On("Get", mock.Anything, "r-1").Return(pendingRoute(), nil).Once()
		f.transports.On("Get", mock.Anything, "t-1").Return(car, nil).Once()

		_, err := f.service.AssignTransport(ctx, "r-1", "t-1")
		requireAppError(t, err, http.StatusBadRequest, "Transport type mismatch. Route requires TRUCK, but transport is CAR.")
		f.converter.AssertNotCalled(t, "Convert")
		f.writer.AssertNotCalled(t, "CommitAssignment")
	})

	t.Run("ConverterFailureLeavesRecordsUntouched", func(t *testing.T) {
		f := newFixture()

		f.repo.On("Get", mock.Anything, "r-1").Return(pendingRoute(), nil).Once()
		f.transports.On("Get", mock.Anything, "t-1").Return(freeTruck(), nil).Once()
		f.converter.On("Convert", ctx, mock.Anything).
			Return(decimal.Zero, decimal.Zero, apperrors.ServiceUnavailable("Could not connect to the currency conversion service.")).Once()

		_, err := f.service.AssignTransport(ctx, "r-1", "t-1")
		requireAppError(t, err, http.StatusBadGateway, "Could not connect to the currency conversion service.")
		f.writer.AssertNotCalled(t, "CommitAssignment")
	})

	t.Run("CommitConflict", func(t *testing.T) {
		f := newFixture()

		f.repo.On("Get", mock.Anything, "r-1").Return(pendingRoute(), nil).Once()
		f.transports.On("Get", mock.Anything, "t-1").Return(freeTruck(), nil).Once()
		f.converter.On("Convert", ctx, mock.Anything).
			Return(decimal.NewFromFloat(2130.95), decimal.NewFromFloat(81132.5), nil).Once()
		f.writer.On("CommitAssignment", ctx, "r-1", "t-1", mock.Anything).
			Return(domain.ErrAssignmentConflict).Once()

		_, err := f.service.AssignTransport(ctx, "r-1", "t-1")
		requireAppError(t, err, http.StatusBadRequest,
			"Assignment failed. The state of the route or transport has changed. Please try again.")
	})
}

func requireAppError(t *testing.T, err error, wantStatus int, wantMessage string) {
	t.Helper()

	require.Error(t, err)
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, wantStatus, appErr.StatusCode)
	assert.Equal(t, wantMessage, appErr.Message)
}

func TestRouteService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newFixture()

		f.repo.On("Save", ctx, mock.AnythingOfType("*domain.Route")).Return(nil).Once()

		route, err := f.service.Create(ctx, ports.CreateRouteParams{
			StartCity:             "Kyiv",
			EndCity:               "Lviv",
			DistanceKm:            540,
			DispatchDate:          "2025-11-20T09:00:00Z",
			RequiredTransportType: transportdomain.TypeTruck,
			ExpectedRevenueUSD:    1000,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, route.ID)
		assert.Equal(t, domain.StatusPending, route.Status)
		f.repo.AssertExpectations(t)
	})

	t.Run("InvalidDispatchDate", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.Create(ctx, ports.CreateRouteParams{
			StartCity:             "Kyiv",
			EndCity:               "Lviv",
			DistanceKm:            540,
			DispatchDate:          "yesterday",
			RequiredTransportType: transportdomain.TypeTruck,
		})
		require.Error(t, err)

		var appErr *apperrors.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
		f.repo.AssertNotCalled(t, "Save")
	})
}

func TestRouteService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("StatusEnumOnly", func(t *testing.T) {
		f := newFixture()

		status := domain.StatusCompleted
		completion := "2025-11-22T18:00:00Z"
		updated := pendingRoute()
		updated.Status = status

		f.repo.On("Update", ctx, "r-1", map[string]any{
			"status":         "COMPLETED",
			"completionDate": completion,
		}).Return(updated, nil).Once()

		route, err := f.service.Update(ctx, "r-1", ports.UpdateRouteParams{
			Status:         &status,
			CompletionDate: &completion,
		})
		require.NoError(t, err)
		assert.Equal(t, updated, route)
		f.repo.AssertExpectations(t)
	})

	t.Run("UnknownStatusRejected", func(t *testing.T) {
		f := newFixture()

		bad := domain.Status("PAUSED")
		_, err := f.service.Update(ctx, "r-1", ports.UpdateRouteParams{Status: &bad})
		require.Error(t, err)
		f.repo.AssertNotCalled(t, "Update")
	})

	t.Run("EmptyUpdate", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.Update(ctx, "r-1", ports.UpdateRouteParams{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "At least one field")
	})

	t.Run("NotFound", func(t *testing.T) {
		f := newFixture()

		city := "Odesa"
		f.repo.On("Update", ctx, "missing", mock.Anything).Return(nil, domain.ErrNotFound).Once()

		_, err := f.service.Update(ctx, "missing", ports.UpdateRouteParams{StartCity: &city})
		requireAppError(t, err, http.StatusNotFound, "Route not found.")
	})
}

func TestRouteService_Delete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.repo.On("Delete", ctx, "r-1").Return(nil).Once()

	assert.NoError(t, f.service.Delete(ctx, "r-1"))
	f.repo.AssertExpectations(t)
}

func TestRouteService_List(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	expected := []domain.Route{{ID: "r-1"}}
	f.repo.On("List", ctx, int64(10), "").Return(expected, "", nil).Once()

	items, next, err := f.service.List(ctx, 10, "")
	require.NoError(t, err)
	assert.Equal(t, expected, items)
	assert.Empty(t, next)
}

func TestRouteService_AssignTransport_StoreFailure(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.repo.On("Get", mock.Anything, "r-1").Return(nil, errors.New("store down")).Once()
	f.transports.On("Get", mock.Anything, "t-1").Return(freeTruck(), nil).Maybe()

	_, err := f.service.AssignTransport(ctx, "r-1", "t-1")
	require.Error(t, err)

	var appErr *apperrors.Error
	assert.False(t, errors.As(err, &appErr), "infrastructure failures are not client errors")
}
