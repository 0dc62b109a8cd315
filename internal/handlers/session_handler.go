package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/omnifyfit/StudioBack/internal/models"
	"github.com/omnifyfit/StudioBack/internal/services"
)

type SessionHandler struct {
	service scheduleApplicationService
}

type scheduleApplicationService interface {
	CreateRecurring(ctx context.Context, input services.CreateScheduleInput) ([]models.Session, error)
	Update(ctx context.Context, sessionID int64, input services.UpdateScheduleInput) (*models.Session, error)
	Delete(ctx context.Context, sessionID int64) error
	DeleteOwnedByInstructor(ctx context.Context, sessionID int64, instructorID int64) error
	List(ctx context.Context) ([]models.Session, error)
	ListByInstructor(ctx context.Context, instructorID int64) ([]models.Session, error)
}

func NewSessionHandler(service *services.ScheduleService) *SessionHandler {
	return &SessionHandler{service: service}
}

type createSessionRequest struct {
	ClassType       string   `json:"class_type" validate:"required"`
	DayOfWeek       []string `json:"day_of_week" validate:"required,min=1"`
	StartTime       string   `json:"start_time" validate:"required"`
	DurationMinutes int      `json:"duration_minutes" validate:"required,gt=0"`
	Capacity        int      `json:"capacity" validate:"required,gt=0"`
	InstructorEmail string   `json:"instructor_email" validate:"required,email"`
}

type updateSessionRequest struct {
	ClassType       *string  `json:"class_type"`
	DayOfWeek       []string `json:"day_of_week"`
	StartTime       *string  `json:"start_time"`
	DurationMinutes *int     `json:"duration_minutes" validate:"omitempty,gt=0"`
	Capacity        *int     `json:"capacity" validate:"omitempty,gt=0"`
	InstructorEmail *string  `json:"instructor_email" validate:"omitempty,email"`
}

func (h *SessionHandler) Create(c *fiber.Ctx) error {
	var req createSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationMessage(err)})
	}

	startTime, err := models.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	sessions, err := h.service.CreateRecurring(c.Context(), services.CreateScheduleInput{
		ClassType:       req.ClassType,
		DaysOfWeek:      req.DayOfWeek,
		StartTime:       startTime,
		DurationMinutes: req.DurationMinutes,
		Capacity:        req.Capacity,
		InstructorEmail: req.InstructorEmail,
	})
	if err != nil {
		return mapScheduleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Session created successfully.",
		"sessions": sessions,
	})
}

func (h *SessionHandler) Update(c *fiber.Ctx) error {
	sessionID, err := parseSessionID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session id"})
	}

	var req updateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationMessage(err)})
	}

	input := services.UpdateScheduleInput{
		ClassType:       req.ClassType,
		DaysOfWeek:      req.DayOfWeek,
		DurationMinutes: req.DurationMinutes,
		Capacity:        req.Capacity,
		InstructorEmail: req.InstructorEmail,
	}
	if req.StartTime != nil {
		startTime, err := models.ParseTimeOfDay(*req.StartTime)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		input.StartTime = &startTime
	}

	session, err := h.service.Update(c.Context(), sessionID, input)
	if err != nil {
		return mapScheduleError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Schedule updated successfully.",
		"session": session,
	})
}

func (h *SessionHandler) Delete(c *fiber.Ctx) error {
	sessionID, err := parseSessionID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session id"})
	}

	if err := h.service.Delete(c.Context(), sessionID); err != nil {
		return mapScheduleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *SessionHandler) List(c *fiber.Ctx) error {
	sessions, err := h.service.List(c.Context())
	if err != nil {
		return mapScheduleError(c, err)
	}
	return c.JSON(fiber.Map{"sessions": sessions})
}

// ListOwn returns the sessions owned by the calling instructor.
func (h *SessionHandler) ListOwn(c *fiber.Ctx) error {
	instructorID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	sessions, err := h.service.ListByInstructor(c.Context(), instructorID)
	if err != nil {
		return mapScheduleError(c, err)
	}
	return c.JSON(fiber.Map{"sessions": sessions})
}

// DeleteOwn lets the owning instructor delete a session and, transitively,
// every booking against it.
func (h *SessionHandler) DeleteOwn(c *fiber.Ctx) error {
	instructorID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	sessionID, err := parseSessionID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session id"})
	}

	if err := h.service.DeleteOwnedByInstructor(c.Context(), sessionID, instructorID); err != nil {
		return mapScheduleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func parseSessionID(c *fiber.Ctx) (int64, error) {
	sessionID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || sessionID <= 0 {
		return 0, strconv.ErrSyntax
	}
	return sessionID, nil
}

func mapScheduleError(c *fiber.Ctx, err error) error {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": validationErr.Messages})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process session request"})
	}
}
