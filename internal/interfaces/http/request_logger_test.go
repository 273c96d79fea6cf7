package http_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/farmacia-pos/internal/interfaces/http"
)

func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var line map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &line))
		out = append(out, line)
	}
	return out
}

func TestRequestLogger_RegistraPeticion(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).With().Str("component", "http").Logger()

	app := fiber.New()
	app.Use(apphttp.RequestLogger(log))
	app.Get("/api/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/ping", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()

	lines := logLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "http", lines[0]["component"])
	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "GET", lines[0]["method"])
	assert.Equal(t, "/api/ping", lines[0]["url"])
	assert.EqualValues(t, http.StatusOK, lines[0]["status"])
	assert.Contains(t, lines[0], "latency")
}

func TestRequestLogger_ErrorDeClienteEnWarn(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(apphttp.RequestLogger(zerolog.New(&buf)))
	app.Get("/api/products", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/products", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	lines := logLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "warn", lines[0]["level"])
	assert.EqualValues(t, http.StatusUnauthorized, lines[0]["status"])
}
