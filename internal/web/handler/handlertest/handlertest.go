// Package handlertest holds fixtures shared by the handler tests.
package handlertest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	localauth "github.com/myapp-blog/myapp/internal/auth"
	"github.com/myapp-blog/myapp/internal/config"
	"github.com/myapp-blog/myapp/internal/db"
	"github.com/myapp-blog/myapp/internal/db/models"
	"github.com/myapp-blog/myapp/internal/web/handler"
	"github.com/myapp-blog/myapp/internal/web/route"
	"github.com/myapp-blog/myapp/internal/web/session"
)

// NoOpViews is a minimal Fiber Views engine. It writes the flash messages of
// the page if there are any, otherwise the template name followed by the
// logged in user.
type NoOpViews struct{}

// Load implements fiber.Views.
func (NoOpViews) Load() error { return nil }

// Render implements fiber.Views.
func (NoOpViews) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	m, _ := data.(fiber.Map)

	if flashes, ok := m["Flashes"].([]string); ok && len(flashes) > 0 {
		_, _ = io.WriteString(w, strings.Join(flashes, "\n"))
		return nil
	}

	_, _ = io.WriteString(w, name)

	if u, ok := m["User"].(*models.User); ok {
		_, _ = io.WriteString(w, " user="+u.Username)
	}

	return nil
}

// NewApp returns a Fiber app rendering with NoOpViews.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{Views: NoOpViews{}})
}

// NewDeps returns handler dependencies backed by a migrated temp sqlite database.
func NewDeps(t *testing.T) handler.Deps {
	t.Helper()

	cfg := config.Mapping{
		config.KeySecretKey: config.DevSecretKey,
		config.KeyDatabase:  filepath.Join(t.TempDir(), "test.sqlite"),
	}

	store := db.New(cfg)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate())

	return handler.Deps{
		Store:    store,
		Sessions: session.NewManager(config.DevSecretKey, session.DefaultCookieName, false),
		Routes:   route.NewTable(),
	}
}

// CreateUser registers a user directly in the database.
func CreateUser(t *testing.T, deps handler.Deps, username, password string) *models.User {
	t.Helper()

	conn, err := deps.Store.Get()
	require.NoError(t, err)

	u, err := localauth.NewLocalProvider(conn).Register(username, password)
	require.NoError(t, err)

	return u
}

// SessionCookie returns a signed session cookie for userID.
func SessionCookie(t *testing.T, deps handler.Deps, userID uint64) *http.Cookie {
	t.Helper()

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return deps.Sessions.Write(c, session.Data{UserID: userID})
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil), -1)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	for _, c := range resp.Cookies() {
		if c.Name == deps.Sessions.CookieName() {
			return c
		}
	}

	t.Fatal("session cookie not set")

	return nil
}

// Form builds a url encoded POST request.
func Form(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(fiber.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)

	return req
}

// Do runs req against app and returns status, body and location header.
func Do(t *testing.T, app *fiber.App, req *http.Request, cookies ...*http.Cookie) (int, string, string) {
	t.Helper()

	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(body), resp.Header.Get(fiber.HeaderLocation)
}
