package hello

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myapp-blog/myapp/internal/web/route"
)

func TestRegister(t *testing.T) {
	app := fiber.New()
	routes := route.NewTable()

	require.NoError(t, Register(app, routes))

	entry, ok := routes.Lookup(Path)
	require.True(t, ok)
	assert.Equal(t, Endpoint, entry.Endpoint)
	assert.Equal(t, []string{fiber.MethodGet}, entry.Methods)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, Path, nil), -1)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Hello, World!", string(body))
}

func TestRegisterTwiceOnSameTable(t *testing.T) {
	routes := route.NewTable()

	require.NoError(t, Register(fiber.New(), routes))
	require.NoError(t, Register(fiber.New(), routes))
}
