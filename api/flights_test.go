package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Domenick1991/flightgds/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReservationUseCase struct {
	mock.Mock
}

func (m *MockReservationUseCase) Search(ctx context.Context, userID string, criteria domain.SearchCriteria) ([]domain.Offer, error) {
	args := m.Called(ctx, userID, criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Offer), args.Error(1)
}

func (m *MockReservationUseCase) Price(ctx context.Context, userID, offerID string) (*domain.PricedOffer, error) {
	args := m.Called(ctx, userID, offerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PricedOffer), args.Error(1)
}

func (m *MockReservationUseCase) Book(ctx context.Context, userID string, travelers []domain.Traveler) (*domain.Booking, error) {
	args := m.Called(ctx, userID, travelers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func newFlightRouter(service *MockReservationUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/api/flights")
	group.Use(RequireUser())
	NewFlightHandler(service).Register(group)
	return router
}

func TestFlightHandler_Search(t *testing.T) {
	service := &MockReservationUseCase{}
	router := newFlightRouter(service)

	criteria := domain.SearchCriteria{
		Origin:        "SYD",
		Destination:   "BKK",
		DepartureDate: "2024-06-01",
		Adults:        1,
	}
	service.On("Search", mock.Anything, "user-1", criteria).
		Return([]domain.Offer{}, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/flights/search?origin=SYD&destination=BKK&departureDate=2024-06-01&adults=1", nil)
	req.Header.Set("X-User-ID", "user-1")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	service.AssertExpectations(t)
}

func TestFlightHandler_Search_MissingUser(t *testing.T) {
	service := &MockReservationUseCase{}
	router := newFlightRouter(service)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/flights/search?origin=SYD&destination=BKK&departureDate=2024-06-01", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"missing user identity"}`, w.Body.String())
	service.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
}

func TestFlightHandler_Search_ValidationError(t *testing.T) {
	service := &MockReservationUseCase{}
	router := newFlightRouter(service)

	service.On("Search", mock.Anything, "user-1", mock.Anything).
		Return(nil, domain.NewValidationError("origin, destination and departure date are required")).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/flights/search?origin=SYD", nil)
	req.Header.Set("X-User-ID", "user-1")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"origin, destination and departure date are required","code":"VALIDATION"}`, w.Body.String())
}

func TestFlightHandler_Price(t *testing.T) {
	service := &MockReservationUseCase{}
	router := newFlightRouter(service)

	priced := &domain.PricedOffer{}
	service.On("Price", mock.Anything, "user-1", "2").Return(priced, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/flights/price", strings.NewReader(`{"flightOfferId":"2"}`))
	req.Header.Set("X-User-ID", "user-1")
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	service.AssertExpectations(t)
}

func TestFlightHandler_Price_StaleState(t *testing.T) {
	service := &MockReservationUseCase{}
	router := newFlightRouter(service)

	service.On("Price", mock.Anything, "user-1", "2").
		Return(nil, domain.NewStateError("no flight offers found, search again")).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/flights/price", strings.NewReader(`{"flightOfferId":"2"}`))
	req.Header.Set("X-User-ID", "user-1")
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"no flight offers found, search again","code":"STATE"}`, w.Body.String())
}

func TestFlightHandler_Book(t *testing.T) {
	service := &MockReservationUseCase{}
	router := newFlightRouter(service)

	travelers := []domain.Traveler{{FirstName: "Jorge", LastName: "Gonzales"}}
	booking := &domain.Booking{BookingID: "eJzTd9f3", UserID: "user-1", Status: domain.BookingStatusConfirmed}
	service.On("Book", mock.Anything, "user-1", travelers).Return(booking, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/flights/book",
		strings.NewReader(`{"travelers":[{"firstName":"Jorge","lastName":"Gonzales"}]}`))
	req.Header.Set("X-User-ID", "user-1")
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"bookingId":"eJzTd9f3"`)
	service.AssertExpectations(t)
}

func TestFlightHandler_Book_SegmentSoldOut(t *testing.T) {
	service := &MockReservationUseCase{}
	router := newFlightRouter(service)

	service.On("Book", mock.Anything, "user-1", mock.Anything).
		Return(nil, domain.NewUpstreamError("one or more selected flight segments are no longer available, search again and choose a fresh offer", 400, 34651)).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/flights/book",
		strings.NewReader(`{"travelers":[{"firstName":"Jorge","lastName":"Gonzales"}]}`))
	req.Header.Set("X-User-ID", "user-1")
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"vendor_code":34651`)
	assert.Contains(t, w.Body.String(), `"code":"UPSTREAM"`)
}

func TestSendError_UnknownError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	sendError(c, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}
