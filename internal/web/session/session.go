// Package session stores a small signed session in a cookie.
//
// The cookie value is signed (not encrypted) with the application's
// SECRET_KEY, so clients can read but not forge it.
package session

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gorilla/securecookie"
)

const (
	// DefaultCookieName is used if no SESSION_COOKIE_NAME is configured.
	DefaultCookieName = "session"

	sameSiteLax = "Lax"
)

// ErrNoSecretKey is returned by Write if the manager has no secret key.
var ErrNoSecretKey = errors.New("the session is unavailable because no secret key was set")

// Data is the content of a session.
type Data struct {
	UserID uint64 `json:"user_id,omitempty"`
}

// Manager reads and writes sessions for one application.
type Manager struct {
	codec  *securecookie.SecureCookie
	name   string
	secure bool
}

// NewManager creates a manager signing with secretKey. An empty key yields a
// manager that reads every session as empty and refuses to write.
func NewManager(secretKey, cookieName string, secure bool) *Manager {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}

	m := &Manager{name: cookieName, secure: secure}

	if secretKey != "" {
		m.codec = securecookie.New([]byte(secretKey), nil)
		m.codec.SetSerializer(securecookie.JSONEncoder{})
	}

	return m
}

// CookieName returns the name of the session cookie.
func (m *Manager) CookieName() string {
	return m.name
}

// Read decodes the session of the request. Missing, expired or tampered
// cookies read as an empty session.
func (m *Manager) Read(c *fiber.Ctx) Data {
	var d Data

	raw := c.Cookies(m.name)
	if raw == "" || m.codec == nil {
		return d
	}

	if err := m.codec.Decode(m.name, raw, &d); err != nil {
		return Data{}
	}

	return d
}

// Write replaces the session with d.
func (m *Manager) Write(c *fiber.Ctx, d Data) error {
	if m.codec == nil {
		return ErrNoSecretKey
	}

	encoded, err := m.codec.Encode(m.name, d)
	if err != nil {
		return err //nolint:wrapcheck
	}

	c.Cookie(&fiber.Cookie{
		Name:     m.name,
		Value:    encoded,
		Path:     "/",
		Secure:   m.secure,
		HTTPOnly: true,
		SameSite: sameSiteLax,
	})

	return nil
}

// Clear removes the session cookie.
func (m *Manager) Clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     m.name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0).UTC(),
		Secure:   m.secure,
		HTTPOnly: true,
		SameSite: sameSiteLax,
	})
}
