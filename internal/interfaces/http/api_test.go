package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/matwana/logistics-api/internal/application/auth"
	"github.com/matwana/logistics-api/internal/application/dto"
	"github.com/matwana/logistics-api/internal/application/usecase"
	"github.com/matwana/logistics-api/internal/domain/entity"
	"github.com/matwana/logistics-api/internal/infrastructure/memory"
	"github.com/matwana/logistics-api/internal/infrastructure/pdf"
	apphttp "github.com/matwana/logistics-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Servidor de test: la API completa sobre los repositorios en memoria
// ──────────────────────────────────────────────────────────────────────────────

type testServer struct {
	app      *fiber.App
	store    *memory.Store
	repos    usecase.Repos
	customer *entity.User
	staff    *entity.User
	admin    *entity.User
}

const testPassword = "password123"

// newTestServer levanta la API con los repos en memoria y siembra un cliente,
// un usuario de customer_service, un admin y la tarifa Nairobi → Mombasa.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store := memory.NewStore()
	repos := store.Repos()
	tx := store.TxRunner()

	jwtCfg := auth.JWTConfig{
		Secret:            testJWTSecret,
		ExpMinutes:        testExpMin,
		RefreshExpMinutes: testExpMin * 24,
		Issuer:            testIssuer,
	}

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:       auth.NewAuthUseCase(repos.Users, jwtCfg),
		UserUC:       usecase.NewUserUseCase(repos.Users, tx),
		ParcelUC:     usecase.NewParcelUseCase(repos.Parcels, repos.Users, repos.Vehicles, repos.Locations, repos.Assignments, tx),
		VehicleUC:    usecase.NewVehicleUseCase(repos.Vehicles, repos.Locations),
		LocationUC:   usecase.NewLocationUseCase(repos.Locations),
		AssignmentUC: usecase.NewAssignmentUseCase(repos.Assignments, repos.Parcels, repos.Users, repos.Locations),
		LabelPDF:     pdf.NewMarotoLabelGenerator(),
		JWTSecret:    testJWTSecret,
	})

	ts := &testServer{app: app, store: store, repos: repos}
	ts.customer = ts.seedUser(t, "Amina Otieno", "0711000001", entity.RoleCustomer)
	ts.staff = ts.seedUser(t, "Carol Wanjiru", "0711000003", entity.RoleCustomerService)
	ts.admin = ts.seedUser(t, "David Kimani", "0711000004", entity.RoleAdmin)

	require.NoError(t, ts.repos.Locations.Create(context.Background(), &entity.Location{
		Origin:      "Nairobi",
		Destination: "Mombasa",
		CostPerKg:   decimal.RequireFromString("50"),
	}))
	return ts
}

func (ts *testServer) seedUser(t *testing.T, name, phone, role string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	u := &entity.User{
		Name:         name,
		PhoneNumber:  phone,
		PasswordHash: string(hash),
		Role:         role,
	}
	require.NoError(t, ts.repos.Users.Create(context.Background(), u))
	return u
}

// login obtiene un access token real vía POST /auth/login.
func (ts *testServer) login(t *testing.T, phone string) string {
	t.Helper()
	resp := ts.do(t, http.MethodPost, "/auth/login", "", dto.LoginRequest{
		PhoneNumber: phone,
		Password:    testPassword,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "el login debe aceptar las credenciales sembradas")

	var out dto.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out.Tokens.AccessToken)
	require.NotEmpty(t, out.Tokens.RefreshToken)
	return "Bearer " + out.Tokens.AccessToken
}

// do lanza una petición contra la app; body nil omite el cuerpo.
func (ts *testServer) do(t *testing.T, method, path, authHeader string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeErr(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo completo: crear paquete con tarifa y consultar asignaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_CrearPaqueteConTarifa(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t, ts.staff.PhoneNumber)

	resp := ts.do(t, http.MethodPost, "/parcels", token, dto.CreateParcelRequest{
		Description: "Caja de repuestos",
		Weight:      decimal.RequireFromString("4"),
		Origin:      "nairobi",
		Destination: "MOMBASA",
		SenderID:    ts.customer.ID,
		RecipientID: ts.admin.ID,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out dto.ParcelResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, strings.HasPrefix(out.TrackingNumber, "MTW-"),
		"el número de rastreo generado lleva prefijo MTW-")
	require.True(t, out.ShippingCost.Valid)
	assert.True(t, out.ShippingCost.Decimal.Equal(decimal.RequireFromString("200")),
		"50/kg × 4 kg = 200, obtenido %s", out.ShippingCost.Decimal)
	assert.Equal(t, "Nairobi", out.Origin)
	assert.Equal(t, "Mombasa", out.Destination)

	// La creación deja una asignación para el staff actuante.
	resp = ts.do(t, http.MethodGet, fmt.Sprintf("/assignments/%d", ts.staff.ID), token, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var assigned []dto.ParcelResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&assigned))
	require.Len(t, assigned, 1)
	assert.Equal(t, out.ID, assigned[0].ID)
}

func TestAPI_CrearPaquete_CustomerRecibe403(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t, ts.customer.PhoneNumber)

	resp := ts.do(t, http.MethodPost, "/parcels", token, dto.CreateParcelRequest{
		Description: "Caja de repuestos",
		Weight:      decimal.RequireFromString("4"),
		Origin:      "Nairobi",
		Destination: "Mombasa",
		SenderID:    ts.customer.ID,
		RecipientID: ts.admin.ID,
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "acceso denegado para este rol", decodeErr(t, resp).Error)
}

func TestAPI_CrearPaquete_RutaSinTarifaRetorna400(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t, ts.staff.PhoneNumber)

	resp := ts.do(t, http.MethodPost, "/parcels", token, dto.CreateParcelRequest{
		Description: "Caja de repuestos",
		Weight:      decimal.RequireFromString("4"),
		Origin:      "Nairobi",
		Destination: "Kisumu",
		SenderID:    ts.customer.ID,
		RecipientID: ts.admin.ID,
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeErr(t, resp).Error, "Nairobi")
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro y proyección de usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_Signup_TelefonoInvalidoAcumulaErrores(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodPost, "/auth/signup", "", dto.SignupRequest{
		Name:        "Peter Njoroge",
		PhoneNumber: "12345",
		Password:    "password123",
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	out := decodeErr(t, resp)
	require.NotEmpty(t, out.Errors, "los errores de validación viajan como lista")
}

func TestAPI_Usuario_NuncaExponeElPassword(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodPost, "/auth/signup", "", dto.SignupRequest{
		Name:        "Peter Njoroge",
		PhoneNumber: "0722000001",
		Password:    "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	rawSignup, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.NotContains(t, strings.ToLower(string(rawSignup)), "password")

	var created dto.UserResponse
	require.NoError(t, json.Unmarshal(rawSignup, &created))
	assert.Equal(t, entity.RoleCustomer, created.Role, "el rol por defecto es customer")

	// El round-trip por GET tampoco filtra el hash.
	token := ts.login(t, ts.staff.PhoneNumber)
	resp = ts.do(t, http.MethodGet, fmt.Sprintf("/users/%d", created.ID), token, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	rawGet, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, strings.ToLower(string(rawGet)), "password")
}

func TestAPI_Login_CredencialesIncorrectasRetorna401(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodPost, "/auth/login", "", dto.LoginRequest{
		PhoneNumber: ts.customer.PhoneNumber,
		Password:    "password-equivocado",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "credenciales inválidas", decodeErr(t, resp).Error)
}

// ──────────────────────────────────────────────────────────────────────────────
// Protección de rutas y puertas por rol
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_RutasProtegidas_SinTokenRetorna401(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/parcels", "/users", "/vehicles", "/locations"} {
		resp := ts.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "GET %s sin token", path)
		resp.Body.Close()
	}
}

func TestAPI_Asignaciones_PuertasPorRol(t *testing.T) {
	ts := newTestServer(t)
	staffToken := ts.login(t, ts.staff.PhoneNumber)
	adminToken := ts.login(t, ts.admin.PhoneNumber)

	// Consultar las asignaciones de un customer es forbidden: no recibe ninguna.
	resp := ts.do(t, http.MethodGet, fmt.Sprintf("/assignments/%d", ts.customer.ID), staffToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// El borrado de asignaciones exige rol del usuario consultado = admin.
	resp = ts.do(t, http.MethodDelete, fmt.Sprintf("/assignments/%d", ts.staff.ID), adminToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Admin sin asignaciones: not found.
	resp = ts.do(t, http.MethodDelete, fmt.Sprintf("/assignments/%d", ts.admin.ID), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

// ──────────────────────────────────────────────────────────────────────────────
// Etiqueta PDF
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_EtiquetaPDF(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t, ts.staff.PhoneNumber)

	resp := ts.do(t, http.MethodPost, "/parcels", token, dto.CreateParcelRequest{
		Description: "Caja de repuestos",
		Weight:      decimal.RequireFromString("4"),
		Origin:      "Nairobi",
		Destination: "Mombasa",
		SenderID:    ts.customer.ID,
		RecipientID: ts.admin.ID,
	})
	var created dto.ParcelResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()

	resp = ts.do(t, http.MethodGet, fmt.Sprintf("/parcels/%d/label", created.ID), token, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), created.TrackingNumber)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")), "el cuerpo debe ser un documento PDF")
}
