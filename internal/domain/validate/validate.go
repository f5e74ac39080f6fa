// Package validate contiene los validadores de campos del dominio logístico.
// Cada validador acumula todos los mensajes de las reglas incumplidas, en
// orden, y nunca corta en la primera violación. Las comprobaciones de
// autorización NO viven aquí: se resuelven antes, en la política RBAC.
package validate

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/matwana/logistics-api/internal/domain"
)

// Mensajes de validación reutilizados por creación y patch.
const (
	MsgNameTooShort     = "el nombre es obligatorio y debe tener al menos 2 caracteres"
	MsgPhoneInvalid     = "el teléfono debe tener exactamente 10 caracteres y solo dígitos"
	MsgEmailInvalid     = "el email debe contener @"
	MsgPasswordTooShort = "la contraseña debe tener al menos 8 caracteres"
	MsgRoleInvalid      = "el rol debe ser customer, customer_service o admin"

	MsgDescriptionRequired = "la descripción del paquete es obligatoria"
	MsgWeightInvalid       = "el peso debe ser mayor que cero"
	MsgOriginRequired      = "el origen es obligatorio"
	MsgDestinationRequired = "el destino es obligatorio"

	MsgNumberPlateRequired = "la placa del vehículo es obligatoria"
	MsgCapacityRequired    = "la capacidad del vehículo es obligatoria"

	MsgCostPerKgInvalid = "el costo por kg debe ser mayor que cero"
)

// Name exige longitud mínima de 2 caracteres.
func Name(name string, msgs []string) []string {
	if len(strings.TrimSpace(name)) < 2 {
		msgs = append(msgs, MsgNameTooShort)
	}
	return msgs
}

// PhoneNumber acepta p si y solo si tiene exactamente 10 caracteres y todos son dígitos.
func PhoneNumber(phone string, msgs []string) []string {
	if !isTenDigits(phone) {
		msgs = append(msgs, MsgPhoneInvalid)
	}
	return msgs
}

func isTenDigits(s string) bool {
	if len(s) != 10 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Email es opcional; si está presente debe contener "@".
func Email(email string, msgs []string) []string {
	if email != "" && !strings.Contains(email, "@") {
		msgs = append(msgs, MsgEmailInvalid)
	}
	return msgs
}

// Password exige longitud mínima de 8 caracteres (se hashea después de validar).
func Password(password string, msgs []string) []string {
	if len(password) < 8 {
		msgs = append(msgs, MsgPasswordTooShort)
	}
	return msgs
}

// Role valida el enum de roles. El vacío es válido: se aplica el default customer.
func Role(role string, msgs []string) []string {
	switch role {
	case "", "customer", "customer_service", "admin":
		return msgs
	}
	return append(msgs, MsgRoleInvalid)
}

// Weight exige peso estrictamente positivo.
func Weight(w decimal.Decimal, msgs []string) []string {
	if w.LessThanOrEqual(decimal.Zero) {
		msgs = append(msgs, MsgWeightInvalid)
	}
	return msgs
}

// CostPerKg exige costo estrictamente positivo.
func CostPerKg(c decimal.Decimal, msgs []string) []string {
	if c.LessThanOrEqual(decimal.Zero) {
		msgs = append(msgs, MsgCostPerKgInvalid)
	}
	return msgs
}

// Required acumula msg si el valor está vacío.
func Required(value, msg string, msgs []string) []string {
	if strings.TrimSpace(value) == "" {
		msgs = append(msgs, msg)
	}
	return msgs
}

// Finish convierte los mensajes acumulados en un *domain.ValidationError (nil si no hay).
func Finish(msgs []string) error {
	return domain.NewValidationError(msgs)
}
