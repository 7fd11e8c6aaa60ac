package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotizador-api/internal/application/auth"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Cotizador-api/internal/interfaces/http"
	"github.com/jhoicas/Cotizador-api/internal/testutil"
	"github.com/jhoicas/Cotizador-api/pkg/logger"
	pkgjwt "github.com/jhoicas/Cotizador-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret  = "test-secret-key-for-unit-tests"
	testAdminID    = "00000000-0000-0000-0000-000000000001"
	testEmployeeID = "00000000-0000-0000-0000-000000000002"
	testIssuer     = "cotizador-test"
	testExpMin     = 60
)

func testJWTConfig() auth.JWTConfig {
	return auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}
}

func seedUsers() *testutil.UserRepo {
	return testutil.NewUserRepo(
		&entity.User{ID: testAdminID, Name: "Admin", Email: "admin@test.com", Role: entity.RoleSuperAdmin, IsVerified: true},
		&entity.User{ID: testEmployeeID, Name: "Emp", Email: "emp@test.com", Role: entity.RoleEmployee, IsVerified: true},
	)
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para validar el JWT y cargar el usuario
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(users *testutil.UserRepo, allowedRoles ...entity.Role) *fiber.App {
	authUC := auth.NewAuthUseCase(users, nil, testJWTConfig(), logger.Nop())
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(authUC),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"ok":      true,
				"user_id": apphttp.GetUserID(c),
				"role":    apphttp.GetRole(c),
			})
		},
	)
	return app
}

// tokenFor genera un JWT para userID con el rol indicado en el claim.
func tokenFor(t *testing.T, userID string, role entity.Role) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, string(role), testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(seedUsers(), entity.RoleSuperAdmin)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_FormatoIncorrecto_Retorna401(t *testing.T) {
	app := buildTestApp(seedUsers(), entity.RoleSuperAdmin)
	resp := doRequest(t, app, "Token abc")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(seedUsers(), entity.RoleSuperAdmin)
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestAuthMiddleware_TokenExpirado_Retorna401(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testAdminID, string(entity.RoleSuperAdmin), testIssuer, -1)
	require.NoError(t, err)

	app := buildTestApp(seedUsers(), entity.RoleSuperAdmin)
	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Token válido pero el usuario ya no existe (eliminado después de emitir el token).
func TestAuthMiddleware_UsuarioEliminado_Retorna401(t *testing.T) {
	app := buildTestApp(seedUsers(), entity.RoleSuperAdmin)
	resp := doRequest(t, app, tokenFor(t, "99999999-0000-0000-0000-000000000000", entity.RoleSuperAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "UNAUTHORIZED")
}

func TestAuthMiddleware_CargaUsuarioEnLocals(t *testing.T) {
	app := buildTestApp(seedUsers(), entity.RoleSuperAdmin, entity.RoleEmployee)
	resp := doRequest(t, app, tokenFor(t, testEmployeeID, entity.RoleEmployee))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testEmployeeID, body["user_id"])
	assert.Equal(t, "Employee", body["role"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_SuperAdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(seedUsers(), entity.RoleSuperAdmin)
	resp := doRequest(t, app, tokenFor(t, testAdminID, entity.RoleSuperAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_EmployeeBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildTestApp(seedUsers(), entity.RoleSuperAdmin)
	resp := doRequest(t, app, tokenFor(t, testEmployeeID, entity.RoleEmployee))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

// El rol se toma de la base: un claim de rol falsificado no concede acceso.
func TestRequireRole_IgnoraRolDelToken(t *testing.T) {
	app := buildTestApp(seedUsers(), entity.RoleSuperAdmin)
	resp := doRequest(t, app, tokenFor(t, testEmployeeID, entity.RoleSuperAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequireRole_SinAuthMiddleware_Retorna401(t *testing.T) {
	app := fiber.New()
	app.Get("/protected", apphttp.RequireRole(entity.RoleSuperAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}
