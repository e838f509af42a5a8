package http_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/genxsop/genxsop/internal/interfaces/http"
	"github.com/genxsop/genxsop/pkg/logger"
)

func buildLoggedApp() *fiber.App {
	app := fiber.New()
	app.Use(apphttp.RequestLogger(logger.New(logger.Config{Level: "error"})))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})
	return app
}

func TestRequestLogger_GeneratesRequestID(t *testing.T) {
	app := buildLoggedApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	id := resp.Header.Get("X-Request-ID")
	require.NotEmpty(t, id)
	_, err = uuid.Parse(id)
	assert.NoError(t, err, "generated id %q is not a UUID", id)
}

func TestRequestLogger_KeepsClientRequestID(t *testing.T) {
	app := buildLoggedApp()

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Request-ID", "trace-me-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "trace-me-123", resp.Header.Get("X-Request-ID"))
}
