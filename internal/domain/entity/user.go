package entity

import "time"

// Roles válidos para User.
const (
	RoleCustomer        = "customer"
	RoleCustomerService = "customer_service"
	RoleAdmin           = "admin"
)

// User representa un usuario del sistema: cliente, servicio al cliente o admin.
type User struct {
	ID           int64
	Name         string
	PhoneNumber  string // exactamente 10 dígitos, único
	Email        string // opcional, único si está presente
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // customer, customer_service, admin
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
