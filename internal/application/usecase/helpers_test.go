package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/matwana/logistics-api/internal/application/usecase"
	"github.com/matwana/logistics-api/internal/domain/entity"
	"github.com/matwana/logistics-api/internal/infrastructure/memory"
)

// fixture agrupa el store en memoria y los casos de uso bajo prueba.
type fixture struct {
	store       *memory.Store
	repos       usecase.Repos
	users       *usecase.UserUseCase
	parcels     *usecase.ParcelUseCase
	vehicles    *usecase.VehicleUseCase
	locations   *usecase.LocationUseCase
	assignments *usecase.AssignmentUseCase
	sender      *entity.User
	recipient   *entity.User
	staff       *entity.User
	admin       *entity.User
}

// newFixture siembra dos clientes (remitente y destinatario), un usuario de
// customer_service, un admin y la tarifa Nairobi → Mombasa a 50 por kg.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	repos := store.Repos()
	tx := store.TxRunner()

	f := &fixture{
		store:       store,
		repos:       repos,
		users:       usecase.NewUserUseCase(repos.Users, tx),
		parcels:     usecase.NewParcelUseCase(repos.Parcels, repos.Users, repos.Vehicles, repos.Locations, repos.Assignments, tx),
		vehicles:    usecase.NewVehicleUseCase(repos.Vehicles, repos.Locations),
		locations:   usecase.NewLocationUseCase(repos.Locations),
		assignments: usecase.NewAssignmentUseCase(repos.Assignments, repos.Parcels, repos.Users, repos.Locations),
	}

	f.sender = seedUser(t, f, "Amina Otieno", "0711000001", entity.RoleCustomer)
	f.recipient = seedUser(t, f, "Brian Mwangi", "0711000002", entity.RoleCustomer)
	f.staff = seedUser(t, f, "Carol Wanjiru", "0711000003", entity.RoleCustomerService)
	f.admin = seedUser(t, f, "David Kimani", "0711000004", entity.RoleAdmin)

	rate := &entity.Location{
		Origin:      "Nairobi",
		Destination: "Mombasa",
		CostPerKg:   decimal.RequireFromString("50"),
	}
	require.NoError(t, repos.Locations.Create(ctx, rate))

	return f
}

func seedUser(t *testing.T, f *fixture, name, phone, role string) *entity.User {
	t.Helper()
	u := &entity.User{
		Name:         name,
		PhoneNumber:  phone,
		PasswordHash: "$2a$10$hash-irrelevante-para-estos-tests",
		Role:         role,
	}
	require.NoError(t, f.repos.Users.Create(context.Background(), u))
	return u
}
