package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/matwana/logistics-api/docs"
	"github.com/matwana/logistics-api/internal/application/auth"
	"github.com/matwana/logistics-api/internal/application/usecase"
	infrapdf "github.com/matwana/logistics-api/internal/infrastructure/pdf"
	"github.com/matwana/logistics-api/internal/infrastructure/postgres"
	httpRouter "github.com/matwana/logistics-api/internal/interfaces/http"
	"github.com/matwana/logistics-api/pkg/config"
	"github.com/matwana/logistics-api/pkg/logger"
	"github.com/matwana/logistics-api/pkg/metrics"
)

// @title        Matwana Logistics API
// @version      1.0
// @description  Seguimiento de paquetes: usuarios, tarifas, vehículos y asignaciones.
// @securityDefinitions.apikey Bearer
// @in   header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.InitSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("inicializar esquema")
	}

	userRepo := postgres.NewUserRepository(pool)
	parcelRepo := postgres.NewParcelRepository(pool)
	vehicleRepo := postgres.NewVehicleRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	assignmentRepo := postgres.NewAssignmentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:            cfg.JWT.Secret,
		ExpMinutes:        cfg.JWT.Expiration,
		RefreshExpMinutes: cfg.JWT.RefreshExpiration,
		Issuer:            cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo, txRunner)
	parcelUC := usecase.NewParcelUseCase(parcelRepo, userRepo, vehicleRepo, locationRepo, assignmentRepo, txRunner)
	vehicleUC := usecase.NewVehicleUseCase(vehicleRepo, locationRepo)
	locationUC := usecase.NewLocationUseCase(locationRepo)
	assignmentUC := usecase.NewAssignmentUseCase(assignmentRepo, parcelRepo, userRepo, locationRepo)

	labelPDF := infrapdf.NewMarotoLabelGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log))

	httpMetrics := metrics.NewHTTPMetrics(cfg.App.Name)
	app.Use(httpMetrics.Middleware())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Matwana Logistics API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		UserUC:       userUC,
		ParcelUC:     parcelUC,
		VehicleUC:    vehicleUC,
		LocationUC:   locationUC,
		AssignmentUC: assignmentUC,
		LabelPDF:     labelPDF,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
