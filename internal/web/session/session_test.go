package session

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(m *Manager) *fiber.App {
	app := fiber.New()

	app.Get("/write/:id", func(c *fiber.Ctx) error {
		id, _ := strconv.ParseUint(c.Params("id"), 10, 64)
		if err := m.Write(c, Data{UserID: id}); err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
		}

		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/read", func(c *fiber.Ctx) error {
		return c.SendString(strconv.FormatUint(m.Read(c).UserID, 10))
	})
	app.Get("/clear", func(c *fiber.Ctx) error {
		m.Clear(c)
		return c.SendStatus(fiber.StatusNoContent)
	})

	return app
}

func do(t *testing.T, app *fiber.App, path, cookie string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	return resp
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()

	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return string(b)
}

func sessionCookie(t *testing.T, resp *http.Response, name string) string {
	t.Helper()

	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Name + "=" + c.Value
		}
	}

	t.Fatalf("no %s cookie in response", name)

	return ""
}

func TestRoundTrip(t *testing.T) {
	m := NewManager("dev", "", false)
	app := newTestApp(m)

	resp := do(t, app, "/write/42", "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	cookie := sessionCookie(t, resp, DefaultCookieName)
	assert.Contains(t, strings.ToLower(resp.Header.Get("Set-Cookie")), "httponly")
	assert.NotContains(t, strings.ToLower(resp.Header.Get("Set-Cookie")), "secure")

	assert.Equal(t, "42", body(t, do(t, app, "/read", cookie)))
}

func TestSecureCookie(t *testing.T) {
	m := NewManager("dev", "sid", true)
	resp := do(t, newTestApp(m), "/write/1", "")

	assert.Equal(t, "sid", m.CookieName())
	assert.Contains(t, strings.ToLower(resp.Header.Get("Set-Cookie")), "secure")
}

func TestTamperedOrForeignCookieReadsEmpty(t *testing.T) {
	signer := newTestApp(NewManager("dev", "", false))
	cookie := sessionCookie(t, do(t, signer, "/write/42", ""), DefaultCookieName)

	other := newTestApp(NewManager("another-secret", "", false))
	assert.Equal(t, "0", body(t, do(t, other, "/read", cookie)))

	assert.Equal(t, "0", body(t, do(t, signer, "/read", DefaultCookieName+"=garbage")))
	assert.Equal(t, "0", body(t, do(t, signer, "/read", "")))
}

func TestClear(t *testing.T) {
	resp := do(t, newTestApp(NewManager("dev", "", false)), "/clear", "")

	setCookie := resp.Header.Get("Set-Cookie")
	assert.Contains(t, setCookie, DefaultCookieName+"=;")
	assert.Contains(t, setCookie, "expires=Thu, 01 Jan 1970 00:00:00 GMT")
}

func TestNoSecretKey(t *testing.T) {
	m := NewManager("", "", false)
	app := newTestApp(m)

	resp := do(t, app, "/write/1", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, ErrNoSecretKey.Error(), body(t, resp))

	assert.Equal(t, "0", body(t, do(t, app, "/read", DefaultCookieName+"=anything")))
}
