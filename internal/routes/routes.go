package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/omnifyfit/StudioBack/internal/config"
	"github.com/omnifyfit/StudioBack/internal/handlers"
	"github.com/omnifyfit/StudioBack/internal/middleware"
	"github.com/omnifyfit/StudioBack/internal/models"
	"github.com/omnifyfit/StudioBack/internal/repository"
	"github.com/omnifyfit/StudioBack/internal/services"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) {
	userRepo := repository.NewUserRepository(db)
	classTypeRepo := repository.NewClassTypeRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	scheduleService := services.NewScheduleService(db, sessionRepo, classTypeRepo, userRepo)
	bookingService := services.NewBookingService(db, bookingRepo)

	classTypeHandler := handlers.NewClassTypeHandler(classTypeRepo)
	sessionHandler := handlers.NewSessionHandler(scheduleService)
	bookingHandler := handlers.NewBookingHandler(bookingService)

	auth := middleware.AuthRequired(cfg.JWTSecret)

	app.Get("/classTypes", classTypeHandler.List)
	app.Post("/classTypes", auth, middleware.RequireRole(models.RoleAdmin), classTypeHandler.Create)

	admin := app.Group("/admin", auth, middleware.RequireRole(models.RoleAdmin))
	admin.Post("/session/create", sessionHandler.Create)
	admin.Put("/session/update/:id", sessionHandler.Update)
	admin.Delete("/session/delete/:id", sessionHandler.Delete)
	admin.Get("/session", sessionHandler.List)

	client := app.Group("/client", auth, middleware.RequireRole(models.RoleClient))
	client.Post("/booking", bookingHandler.Create)
	client.Get("/booking", bookingHandler.List)
	client.Delete("/booking/:id", bookingHandler.Delete)

	instructor := app.Group("/instructor", auth, middleware.RequireRole(models.RoleInstructor))
	instructor.Get("/booking", sessionHandler.ListOwn)
	instructor.Delete("/booking/:id", sessionHandler.DeleteOwn)
}
