//go:build integration

package router_test

// End-to-end flow against a throwaway MySQL container:
// login → registrar pieza → almacenar → salida → inventario + export.
// Run with: go test -tags integration ./internal/router/

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/mgfuentes-ct/OTech-respaldo/internal/config"
	"github.com/mgfuentes-ct/OTech-respaldo/internal/infra"
	"github.com/mgfuentes-ct/OTech-respaldo/internal/model"
	"github.com/mgfuentes-ct/OTech-respaldo/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"
	"golang.org/x/crypto/bcrypt"
)

func jsonBody(t *testing.T, v interface{}) *bytes.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func do(t *testing.T, method, rawURL, token string, body io.Reader) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, rawURL, body)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestFlujoCompleto(t *testing.T) {
	ctx := context.Background()

	container, err := tcmysql.Run(ctx, "mysql:8.0",
		tcmysql.WithDatabase("otech_test"),
		tcmysql.WithUsername("otech"),
		tcmysql.WithPassword("otech"),
	)
	require.NoError(t, err)
	defer func() { require.NoError(t, testcontainers.TerminateContainer(container)) }()

	dsn, err := container.ConnectionString(ctx, "charset=utf8mb4", "parseTime=True", "loc=Local")
	require.NoError(t, err)

	db, err := infra.NewDatabase(dsn)
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte("admin-e2e"), bcrypt.MinCost)
	require.NoError(t, err)
	admin := &model.Usuario{
		Username:     "admin",
		Nombre:       "Admin E2E",
		Email:        "admin@otech.local",
		PasswordHash: string(hash),
		Rol:          model.RolAdmin,
		Activo:       true,
	}
	require.NoError(t, db.Create(admin).Error)

	cfg := &config.Config{
		Env:                "development",
		JWTSecret:          "e2e-secret",
		JWTExpirationHours: 1,
		CodesStoragePath:   t.TempDir(),
	}
	srv := httptest.NewServer(router.New(cfg, db))
	defer srv.Close()

	// ── Login ────────────────────────────────────────────────────────────
	form := url.Values{"username": {"admin"}, "password": {"admin-e2e"}}
	resp, err := http.PostForm(srv.URL+"/login", form)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login struct {
		Token string `json:"token"`
	}
	decode(t, resp, &login)
	require.NotEmpty(t, login.Token)

	// Without a token the same routes are rejected.
	resp = do(t, http.MethodGet, srv.URL+"/inventario", "", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// ── Registrar pieza ──────────────────────────────────────────────────
	resp = do(t, http.MethodPost, srv.URL+"/registrar_pieza", login.Token, jsonBody(t, map[string]interface{}{
		"codigo_original": "PROD-E2E",
		"numero_serie":    "SN-E2E-001",
		"nombre_producto": "Fuente de poder E2E",
		"caja":            "C-99",
	}))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var registro struct {
		CodigoOtech string `json:"codigo_otech"`
		IDPieza     uint   `json:"id_pieza"`
	}
	decode(t, resp, &registro)
	assert.True(t, strings.HasPrefix(registro.CodigoOtech, "OTech-"))

	// Duplicate serial is refused.
	resp = do(t, http.MethodPost, srv.URL+"/registrar_pieza", login.Token, jsonBody(t, map[string]interface{}{
		"codigo_original": "PROD-E2E",
		"numero_serie":    "SN-E2E-001",
		"caja":            "C-99",
	}))
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// ── Almacenar y dar salida ───────────────────────────────────────────
	resp = do(t, http.MethodPost, srv.URL+"/cambiar_estado", login.Token, jsonBody(t, map[string]interface{}{
		"id_pieza":     registro.IDPieza,
		"nuevo_estado": model.EstadoAlmacenado,
	}))
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/registrar_salida", login.Token, jsonBody(t, map[string]interface{}{
		"id_pieza":      registro.IDPieza,
		"observaciones": "salida e2e",
	}))
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// ── Consultas ────────────────────────────────────────────────────────
	resp = do(t, http.MethodGet, srv.URL+"/piezas/"+registro.CodigoOtech, login.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var detalle struct {
		Estado        string `json:"estado"`
		UsuarioNombre string `json:"usuario_nombre"`
	}
	decode(t, resp, &detalle)
	assert.Equal(t, model.EstadoSalida, detalle.Estado)
	assert.Equal(t, "Admin E2E", detalle.UsuarioNombre)

	resp = do(t, http.MethodGet, fmt.Sprintf("%s/movimientos/%d", srv.URL, registro.IDPieza), login.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var movimientos []map[string]interface{}
	decode(t, resp, &movimientos)
	assert.Len(t, movimientos, 3) // entrada, cambio de estado, salida

	// Products registered through the API start with stock_minimo 0 and must
	// never raise an alert.
	resp = do(t, http.MethodGet, srv.URL+"/alertas/stock_bajo", login.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var alertas []map[string]interface{}
	decode(t, resp, &alertas)
	assert.Empty(t, alertas)

	resp = do(t, http.MethodGet, srv.URL+"/exportar/inventario", login.Token, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "inventario_otech_")
}

func TestRutasAdminRequierenRol(t *testing.T) {
	ctx := context.Background()

	container, err := tcmysql.Run(ctx, "mysql:8.0",
		tcmysql.WithDatabase("otech_test"),
		tcmysql.WithUsername("otech"),
		tcmysql.WithPassword("otech"),
	)
	require.NoError(t, err)
	defer func() { require.NoError(t, testcontainers.TerminateContainer(container)) }()

	dsn, err := container.ConnectionString(ctx, "charset=utf8mb4", "parseTime=True", "loc=Local")
	require.NoError(t, err)
	db, err := infra.NewDatabase(dsn)
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte("operador-e2e"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&model.Usuario{
		Username:     "operador",
		Nombre:       "Operador E2E",
		Email:        "operador@otech.local",
		PasswordHash: string(hash),
		Rol:          model.RolOperador,
		Activo:       true,
	}).Error)

	cfg := &config.Config{
		Env:                "development",
		JWTSecret:          "e2e-secret",
		JWTExpirationHours: 1,
		CodesStoragePath:   t.TempDir(),
	}
	srv := httptest.NewServer(router.New(cfg, db))
	defer srv.Close()

	resp, err := http.PostForm(srv.URL+"/login", url.Values{
		"username": {"operador"}, "password": {"operador-e2e"},
	})
	require.NoError(t, err)
	var login struct {
		Token string `json:"token"`
	}
	decode(t, resp, &login)

	resp = do(t, http.MethodGet, srv.URL+"/admin/listar_usuarios", login.Token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/registrar_salida", login.Token, jsonBody(t, map[string]interface{}{
		"id_pieza": 1,
	}))
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
