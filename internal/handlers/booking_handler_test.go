package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/omnifyfit/StudioBack/internal/middleware"
	"github.com/omnifyfit/StudioBack/internal/models"
	"github.com/omnifyfit/StudioBack/internal/services"
)

type stubBookingService struct {
	bookResult    *models.Booking
	bookErr       error
	cancelErr     error
	listResult    []models.BookingDetail
	listErr       error
	lastClientID  int64
	lastSessionID int64
	lastBookingID int64
}

func (s *stubBookingService) Book(_ context.Context, clientID int64, sessionID int64) (*models.Booking, error) {
	s.lastClientID = clientID
	s.lastSessionID = sessionID
	return s.bookResult, s.bookErr
}

func (s *stubBookingService) Cancel(_ context.Context, bookingID int64, clientID int64) error {
	s.lastBookingID = bookingID
	s.lastClientID = clientID
	return s.cancelErr
}

func (s *stubBookingService) ListByClient(_ context.Context, clientID int64) ([]models.BookingDetail, error) {
	s.lastClientID = clientID
	return s.listResult, s.listErr
}

func newBookingTestApp(service bookingApplicationService, role, userID string) *fiber.App {
	handler := &BookingHandler{service: service}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("role", role)
		c.Locals("user_id", userID)
		return c.Next()
	})

	client := app.Group("/client", middleware.RequireRole(models.RoleClient))
	client.Post("/booking", handler.Create)
	client.Get("/booking", handler.List)
	client.Delete("/booking/:id", handler.Delete)

	return app
}

func TestCreateBookingReturnsCreated(t *testing.T) {
	service := &stubBookingService{
		bookResult: &models.Booking{ID: 10, UserID: 42, SessionID: 5},
	}
	app := newBookingTestApp(service, models.RoleClient, "42")

	req := httptest.NewRequest(http.MethodPost, "/client/booking", strings.NewReader(`{"session_id": 5}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastClientID != 42 || service.lastSessionID != 5 {
		t.Fatalf("expected client 42 session 5, got %d/%d", service.lastClientID, service.lastSessionID)
	}
}

func TestCreateBookingRejectsNonClient(t *testing.T) {
	service := &stubBookingService{}
	app := newBookingTestApp(service, models.RoleInstructor, "42")

	req := httptest.NewRequest(http.MethodPost, "/client/booking", strings.NewReader(`{"session_id": 5}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestCreateBookingMapsCapacityExceeded(t *testing.T) {
	service := &stubBookingService{bookErr: services.ErrCapacityExceeded}
	app := newBookingTestApp(service, models.RoleClient, "42")

	req := httptest.NewRequest(http.MethodPost, "/client/booking", strings.NewReader(`{"session_id": 5}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCreateBookingMapsDuplicate(t *testing.T) {
	service := &stubBookingService{bookErr: services.ErrAlreadyBooked}
	app := newBookingTestApp(service, models.RoleClient, "42")

	req := httptest.NewRequest(http.MethodPost, "/client/booking", strings.NewReader(`{"session_id": 5}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCreateBookingMapsMissingSession(t *testing.T) {
	service := &stubBookingService{bookErr: services.ErrNotFound}
	app := newBookingTestApp(service, models.RoleClient, "42")

	req := httptest.NewRequest(http.MethodPost, "/client/booking", strings.NewReader(`{"session_id": 5}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestCreateBookingValidatesBody(t *testing.T) {
	service := &stubBookingService{}
	app := newBookingTestApp(service, models.RoleClient, "42")

	req := httptest.NewRequest(http.MethodPost, "/client/booking", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestDeleteBookingReturnsNoContent(t *testing.T) {
	service := &stubBookingService{}
	app := newBookingTestApp(service, models.RoleClient, "42")

	req := httptest.NewRequest(http.MethodDelete, "/client/booking/10", nil)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	if service.lastBookingID != 10 || service.lastClientID != 42 {
		t.Fatalf("expected booking 10 client 42, got %d/%d", service.lastBookingID, service.lastClientID)
	}
}

func TestDeleteBookingMapsForbidden(t *testing.T) {
	service := &stubBookingService{cancelErr: services.ErrForbidden}
	app := newBookingTestApp(service, models.RoleClient, "42")

	req := httptest.NewRequest(http.MethodDelete, "/client/booking/10", nil)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestListBookingsReturnsClientBookings(t *testing.T) {
	service := &stubBookingService{
		listResult: []models.BookingDetail{
			{Booking: models.Booking{ID: 1, UserID: 42, SessionID: 5}},
		},
	}
	app := newBookingTestApp(service, models.RoleClient, "42")

	req := httptest.NewRequest(http.MethodGet, "/client/booking", nil)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastClientID != 42 {
		t.Fatalf("expected client 42, got %d", service.lastClientID)
	}
}
