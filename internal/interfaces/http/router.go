package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/matwana/logistics-api/internal/application/auth"
	"github.com/matwana/logistics-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	UserUC       *usecase.UserUseCase
	ParcelUC     *usecase.ParcelUseCase
	VehicleUC    *usecase.VehicleUseCase
	LocationUC   *usecase.LocationUseCase
	AssignmentUC *usecase.AssignmentUseCase
	LabelPDF     usecase.LabelPDFGenerator
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := app.Group("/auth")
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)

	// Registro de usuarios (público: los clientes se crean sin token)
	userHandler := NewUserHandler(deps.UserUC)
	app.Post("/users", userHandler.Create)

	// Rutas protegidas (requieren Bearer Token)
	protected := app.Group("/", AuthMiddleware(deps.JWTSecret))

	// Users (protegido salvo la creación)
	users := protected.Group("/users")
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Parcels (protegido; crear exige rol de staff)
	parcels := protected.Group("/parcels")
	parcelHandler := NewParcelHandler(deps.ParcelUC, deps.LabelPDF)
	parcels.Post("/", parcelHandler.Create)
	parcels.Get("/", parcelHandler.List)
	parcels.Get("/:id", parcelHandler.GetByID)
	parcels.Put("/:id", parcelHandler.Update)
	parcels.Delete("/:id", parcelHandler.Delete)
	parcels.Post("/:id/reprice", parcelHandler.Reprice)
	parcels.Get("/:id/label", parcelHandler.Label)

	// Vehicles (protegido)
	vehicles := protected.Group("/vehicles")
	vehicleHandler := NewVehicleHandler(deps.VehicleUC)
	vehicles.Post("/", vehicleHandler.Create)
	vehicles.Get("/", vehicleHandler.List)
	vehicles.Get("/:id", vehicleHandler.GetByID)
	vehicles.Put("/:id", vehicleHandler.Update)
	vehicles.Delete("/:id", vehicleHandler.Delete)

	// Locations / tabla de tarifas (protegido)
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Delete("/", locationHandler.DeleteAll)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Put("/:id", locationHandler.Update)
	locations.Delete("/:id", locationHandler.Delete)

	// Assignments por usuario (protegido)
	assignments := protected.Group("/assignments")
	assignmentHandler := NewAssignmentHandler(deps.AssignmentUC)
	assignments.Get("/:id", assignmentHandler.ParcelsForUser)
	assignments.Delete("/:id", assignmentHandler.DeleteForUser)
}
