package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/omnifyfit/StudioBack/internal/models"
	"github.com/omnifyfit/StudioBack/internal/services"
)

type BookingHandler struct {
	service bookingApplicationService
}

type bookingApplicationService interface {
	Book(ctx context.Context, clientID int64, sessionID int64) (*models.Booking, error)
	Cancel(ctx context.Context, bookingID int64, clientID int64) error
	ListByClient(ctx context.Context, clientID int64) ([]models.BookingDetail, error)
}

func NewBookingHandler(service *services.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

type createBookingRequest struct {
	SessionID int64 `json:"session_id" validate:"required,gt=0"`
}

func (h *BookingHandler) Create(c *fiber.Ctx) error {
	clientID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationMessage(err)})
	}

	booking, err := h.service.Book(c.Context(), clientID, req.SessionID)
	if err != nil {
		return mapBookingError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Booking created successfully.",
		"booking": booking,
	})
}

func (h *BookingHandler) Delete(c *fiber.Ctx) error {
	clientID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	bookingID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || bookingID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	if err := h.service.Cancel(c.Context(), bookingID, clientID); err != nil {
		return mapBookingError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *BookingHandler) List(c *fiber.Ctx) error {
	clientID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	bookings, err := h.service.ListByClient(c.Context(), clientID)
	if err != nil {
		return mapBookingError(c, err)
	}
	return c.JSON(fiber.Map{"bookings": bookings})
}

func mapBookingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	case errors.Is(err, services.ErrAlreadyBooked):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "You have already booked this session."})
	case errors.Is(err, services.ErrCapacityExceeded):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Session is full. Maximum capacity reached."})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process booking request"})
	}
}
