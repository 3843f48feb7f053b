package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/attendly-api/internal/domain"
	"github.com/jhoicas/attendly-api/internal/domain/policy"
	apphttp "github.com/jhoicas/attendly-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/attendly-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testAdminID   = "00000000-0000-0000-0000-000000000009"
	testIssuer    = "attendly-test"
	testExpMin    = 60
)

// stubResolver resuelve actores desde un mapa fijo.
type stubResolver map[string]policy.Actor

func (s stubResolver) ResolveActor(_ context.Context, userID string) (policy.Actor, error) {
	a, ok := s[userID]
	if !ok {
		return policy.Actor{}, domain.ErrUnauthorized
	}
	return a, nil
}

var resolver = stubResolver{
	testUserID:  {UserID: testUserID, Email: "ana@example.com", LinkedEmployeeID: "e-1"},
	testAdminID: {UserID: testAdminID, Email: "admin@example.com", IsAdmin: true},
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware + ActorMiddleware para cargar el actor
//   - RequireAdmin en /admin
func buildTestApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	chain := []fiber.Handler{apphttp.AuthMiddleware(testJWTSecret), apphttp.ActorMiddleware(resolver)}

	app.Get("/protected", append(chain, func(c *fiber.Ctx) error {
		actor, _ := apphttp.GetActor(c)
		return c.JSON(fiber.Map{"user_id": apphttp.GetUserID(c), "is_admin": actor.IsAdmin})
	})...)
	app.Get("/admin", append(chain, apphttp.RequireAdmin(policy.NewRules(time.UTC)), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})...)
	return app
}

// bearer genera un JWT para userID.
func bearer(t *testing.T, userID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testIssuer, testExpMin, pkgjwt.Subject{UserID: userID})
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doGet(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var e struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(body, &e), string(body))
	return e.Code
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinHeader_Retorna401(t *testing.T) {
	resp := doGet(t, buildTestApp(), "/protected", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", errorCode(t, resp))
}

func TestAuthMiddleware_FormatoInvalido_Retorna401(t *testing.T) {
	resp := doGet(t, buildTestApp(), "/protected", "Token abc")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, resp))
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	resp := doGet(t, buildTestApp(), "/protected", "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, resp))
}

func TestAuthMiddleware_OtroSecreto_Retorna401(t *testing.T) {
	tok, err := pkgjwt.Generate("otro-secreto", testIssuer, testExpMin, pkgjwt.Subject{UserID: testUserID})
	require.NoError(t, err)

	resp := doGet(t, buildTestApp(), "/protected", "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_CargaActor(t *testing.T) {
	resp := doGet(t, buildTestApp(), "/protected", bearer(t, testUserID))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, false, body["is_admin"])
}

// Un token válido de un usuario que ya no existe no autentica.
func TestActorMiddleware_UsuarioDesconocido_Retorna401(t *testing.T) {
	resp := doGet(t, buildTestApp(), "/protected", bearer(t, "00000000-0000-0000-0000-0000000000ff"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, resp))
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireAdmin
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireAdmin_AdminPasa(t *testing.T) {
	resp := doGet(t, buildTestApp(), "/admin", bearer(t, testAdminID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireAdmin_EmpleadoBloqueado(t *testing.T) {
	resp := doGet(t, buildTestApp(), "/admin", bearer(t, testUserID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, string(policy.KindUnauthorized), errorCode(t, resp))
}

// ──────────────────────────────────────────────────────────────────────────────
// RequestID
// ──────────────────────────────────────────────────────────────────────────────

func TestRequestID_PropagaOGenera(t *testing.T) {
	app := fiber.New()
	app.Use(apphttp.RequestID())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString(apphttp.GetRequestID(c)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(apphttp.HeaderRequestID, "abc-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get(apphttp.HeaderRequestID))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Len(t, string(body), 36)
	assert.Equal(t, string(body), resp.Header.Get(apphttp.HeaderRequestID))
}
