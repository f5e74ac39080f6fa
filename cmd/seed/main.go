// seed crea el usuario admin inicial y una tabla de tarifas de ejemplo.
// Es idempotente: las filas que ya existen se dejan intactas.
//
// Uso: go run ./cmd/seed
// Variables de entorno: las mismas de la API, más ADMIN_PASSWORD (opcional).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/matwana/logistics-api/internal/domain/entity"
	"github.com/matwana/logistics-api/internal/domain/repository"
	"github.com/matwana/logistics-api/internal/domain/shipping"
	"github.com/matwana/logistics-api/internal/infrastructure/postgres"
	"github.com/matwana/logistics-api/pkg/config"
)

const (
	adminPhone      = "0700000000"
	defaultPassword = "changeme123"
)

// Tarifas de arranque (origen, destino, costo por kg).
var seedRates = []struct {
	origin      string
	destination string
	costPerKg   string
}{
	{"Nairobi", "Mombasa", "50"},
	{"Mombasa", "Nairobi", "50"},
	{"Nairobi", "Kisumu", "65"},
	{"Kisumu", "Nairobi", "65"},
	{"Nairobi", "Eldoret", "55"},
	{"Mombasa", "Kisumu", "90"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("cargar configuración: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("conexión a PostgreSQL: %v", err)
	}
	defer pool.Close()

	if err := postgres.InitSchema(ctx, pool); err != nil {
		fail("inicializar esquema: %v", err)
	}

	if err := seedAdmin(ctx, postgres.NewUserRepository(pool)); err != nil {
		fail("sembrar admin: %v", err)
	}
	if err := seedRateTable(ctx, postgres.NewLocationRepository(pool)); err != nil {
		fail("sembrar tarifas: %v", err)
	}

	fmt.Println("seed completado")
}

// seedAdmin crea el usuario admin si el teléfono aún no está registrado.
// La contraseña sale de ADMIN_PASSWORD o usa el valor por defecto.
func seedAdmin(ctx context.Context, users repository.UserRepository) error {
	existing, err := users.GetByPhoneNumber(ctx, adminPhone)
	if err != nil {
		return err
	}
	if existing != nil {
		fmt.Printf("admin ya existe (teléfono %s)\n", adminPhone)
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = defaultPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &entity.User{
		Name:         "Administrador",
		PhoneNumber:  adminPhone,
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}
	fmt.Printf("admin creado con id %d (teléfono %s)\n", admin.ID, adminPhone)
	return nil
}

// seedRateTable inserta las tarifas de arranque que no existan todavía.
func seedRateTable(ctx context.Context, locations repository.LocationRepository) error {
	created := 0
	for _, r := range seedRates {
		origin := shipping.CanonicalPlace(r.origin)
		destination := shipping.CanonicalPlace(r.destination)

		existing, err := locations.GetByRoute(ctx, origin, destination)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}

		cost, err := decimal.NewFromString(r.costPerKg)
		if err != nil {
			return fmt.Errorf("tarifa %s → %s: %w", origin, destination, err)
		}
		loc := &entity.Location{Origin: origin, Destination: destination, CostPerKg: cost}
		if err := locations.Create(ctx, loc); err != nil {
			return err
		}
		created++
	}
	fmt.Printf("tarifas creadas: %d (de %d)\n", created, len(seedRates))
	return nil
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
