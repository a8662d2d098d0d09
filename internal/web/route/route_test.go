package route

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func text(s string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendString(s)
	}
}

func get(t *testing.T, app *fiber.App, method, path string) (int, string) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(method, path, nil), -1)
	require.NoError(t, err)

	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(body)
}

func TestBlueprintRegistersRoutes(t *testing.T) {
	app := fiber.New()
	table := NewTable()

	auth := table.Blueprint(app, "auth", "/auth")
	require.NoError(t, auth.Route("login", "/login", []string{fiber.MethodGet, fiber.MethodPost}, text("login")))

	blog := table.Blueprint(app, "blog", "")
	require.NoError(t, blog.Get("index", "/", text("index")))
	require.NoError(t, blog.Post("delete", "/:id<int>/delete", text("delete")))

	status, body := get(t, app, http.MethodGet, "/auth/login")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "login", body)

	status, _ = get(t, app, http.MethodPost, "/auth/login")
	assert.Equal(t, http.StatusOK, status)

	status, body = get(t, app, http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "index", body)

	status, _ = get(t, app, http.MethodPost, "/3/delete")
	assert.Equal(t, http.StatusOK, status)

	status, _ = get(t, app, http.MethodGet, "/3/delete")
	assert.Equal(t, http.StatusMethodNotAllowed, status)

	entry, ok := table.Lookup("/auth/login")
	require.True(t, ok)
	assert.Equal(t, "auth.login", entry.Endpoint)
	assert.Equal(t, []string{fiber.MethodGet, fiber.MethodPost}, entry.Methods)
}

func TestAliasResolvesToSamePath(t *testing.T) {
	app := fiber.New()
	table := NewTable()

	blog := table.Blueprint(app, "blog", "")
	require.NoError(t, blog.Get("index", "/", text("index")))
	require.NoError(t, table.Alias("index", "/"))

	generic, err := table.URLFor("index")
	require.NoError(t, err)

	qualified, err := table.URLFor("blog.index")
	require.NoError(t, err)

	assert.Equal(t, "/", generic)
	assert.Equal(t, generic, qualified)
	assert.Equal(t, []string{"blog.index", "index"}, table.Endpoints())

	require.ErrorIs(t, table.Alias("index", "/missing"), ErrUnknownPath)
}

func TestURLFor(t *testing.T) {
	table := NewTable()

	require.NoError(t, table.Add("hello", "/hello", fiber.MethodGet))
	require.NoError(t, table.Add("blog.update", "/:id<int>/update", fiber.MethodGet, fiber.MethodPost))

	u, err := table.URLFor("hello")
	require.NoError(t, err)
	assert.Equal(t, "/hello", u)

	u, err = table.URLFor("blog.update", 7)
	require.NoError(t, err)
	assert.Equal(t, "/7/update", u)

	_, err = table.URLFor("blog.update")
	require.ErrorIs(t, err, ErrMissingParam)

	_, err = table.URLFor("nope")
	require.ErrorIs(t, err, ErrUnknownEndpoint)
}

func TestDuplicateEndpoint(t *testing.T) {
	table := NewTable()

	require.NoError(t, table.Add("hello", "/hello", fiber.MethodGet))
	require.NoError(t, table.Add("hello", "/hello", fiber.MethodHead))
	require.ErrorIs(t, table.Add("hello", "/other", fiber.MethodGet), ErrDuplicateEndpoint)

	entry, ok := table.Lookup("/hello")
	require.True(t, ok)
	assert.Equal(t, []string{fiber.MethodGet, fiber.MethodHead}, entry.Methods)
}
