package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/omnifyfit/StudioBack/internal/models"
	"github.com/omnifyfit/StudioBack/internal/repository"
)

type ClassTypeHandler struct {
	repo classTypeStore
}

type classTypeStore interface {
	List(ctx context.Context) ([]models.ClassType, error)
	Create(ctx context.Context, name, description string) (*models.ClassType, error)
}

func NewClassTypeHandler(repo *repository.ClassTypeRepository) *ClassTypeHandler {
	return &ClassTypeHandler{repo: repo}
}

type createClassTypeRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

func (h *ClassTypeHandler) List(c *fiber.Ctx) error {
	classTypes, err := h.repo.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to list class types"})
	}
	return c.JSON(fiber.Map{"class_types": classTypes})
}

func (h *ClassTypeHandler) Create(c *fiber.Ctx) error {
	var req createClassTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationMessage(err)})
	}

	classType, err := h.repo.Create(c.Context(), req.Name, req.Description)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"error": "Class type already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to create class type"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"class_type": classType})
}
