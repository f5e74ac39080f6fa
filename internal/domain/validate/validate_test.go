package validate_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matwana/logistics-api/internal/domain"
	"github.com/matwana/logistics-api/internal/domain/validate"
)

// El teléfono se acepta si y solo si tiene exactamente 10 caracteres y todos
// son dígitos.
func TestPhoneNumber_ExactamenteDiezDigitos(t *testing.T) {
	cases := []struct {
		name  string
		phone string
		valid bool
	}{
		{"diez dígitos", "0712345678", true},
		{"otros diez dígitos", "0000000000", true},
		{"cinco dígitos", "12345", false},
		{"nueve dígitos", "071234567", false},
		{"once dígitos", "07123456789", false},
		{"con letra", "07123A5678", false},
		{"con guion", "0712-45678", false},
		{"con espacio", "071234567 ", false},
		{"vacío", "", false},
		{"con signo más", "+254712345", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msgs := validate.PhoneNumber(tc.phone, nil)
			if tc.valid {
				assert.Empty(t, msgs, "el teléfono %q debe ser válido", tc.phone)
			} else {
				assert.Contains(t, msgs, validate.MsgPhoneInvalid)
			}
		})
	}
}

// Los validadores acumulan todos los mensajes, no solo el primero.
func TestValidadores_AcumulanTodosLosMensajes(t *testing.T) {
	var msgs []string
	msgs = validate.Name("x", msgs)
	msgs = validate.PhoneNumber("123", msgs)
	msgs = validate.Email("sin-arroba", msgs)
	msgs = validate.Password("corta", msgs)
	msgs = validate.Role("superuser", msgs)

	require.Len(t, msgs, 5, "las cinco reglas incumplidas deben reportarse")
	assert.Equal(t, []string{
		validate.MsgNameTooShort,
		validate.MsgPhoneInvalid,
		validate.MsgEmailInvalid,
		validate.MsgPasswordTooShort,
		validate.MsgRoleInvalid,
	}, msgs, "los mensajes conservan el orden de evaluación")
}

func TestEmail_OpcionalPeroConArroba(t *testing.T) {
	assert.Empty(t, validate.Email("", nil), "email vacío es válido (opcional)")
	assert.Empty(t, validate.Email("ana@example.com", nil))
	assert.Contains(t, validate.Email("ana.example.com", nil), validate.MsgEmailInvalid)
}

func TestRole_VacioAplicaDefault(t *testing.T) {
	assert.Empty(t, validate.Role("", nil), "rol vacío es válido: se aplica el default")
	assert.Empty(t, validate.Role("customer", nil))
	assert.Empty(t, validate.Role("customer_service", nil))
	assert.Empty(t, validate.Role("admin", nil))
	assert.NotEmpty(t, validate.Role("root", nil))
}

func TestWeight_EstrictamentePositivo(t *testing.T) {
	assert.Empty(t, validate.Weight(decimal.RequireFromString("0.001"), nil))
	assert.Contains(t, validate.Weight(decimal.Zero, nil), validate.MsgWeightInvalid)
	assert.Contains(t, validate.Weight(decimal.RequireFromString("-4"), nil), validate.MsgWeightInvalid)
}

func TestCostPerKg_EstrictamentePositivo(t *testing.T) {
	assert.Empty(t, validate.CostPerKg(decimal.RequireFromString("50"), nil))
	assert.Contains(t, validate.CostPerKg(decimal.Zero, nil), validate.MsgCostPerKgInvalid)
}

func TestFinish_NilSinViolaciones(t *testing.T) {
	require.NoError(t, validate.Finish(nil))

	err := validate.Finish([]string{validate.MsgPhoneInvalid})
	require.Error(t, err)
	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, []string{validate.MsgPhoneInvalid}, ve.Messages)
}
