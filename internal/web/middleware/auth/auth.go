package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	localauth "github.com/myapp-blog/myapp/internal/auth"
	"github.com/myapp-blog/myapp/internal/db"
	"github.com/myapp-blog/myapp/internal/web/handler"
	"github.com/myapp-blog/myapp/internal/web/route"
	"github.com/myapp-blog/myapp/internal/web/session"
)

// LoginEndpoint is the endpoint anonymous users are sent to.
const LoginEndpoint = "auth.login"

// LoadUser loads the logged in user of the session, if any.
func LoadUser(store *db.Store, sessions *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), "/static") {
			return c.Next()
		}

		data := sessions.Read(c)
		if data.UserID == 0 {
			return c.Next()
		}

		conn, err := store.Get()
		if err != nil {
			return err
		}

		user, err := localauth.NewLocalProvider(conn).GetUserByID(data.UserID)
		if err != nil {
			if !errors.Is(err, localauth.ErrUserNotFound) {
				return err
			}

			// stale cookie of a deleted user
			log.Debug().Uint64("user_id", data.UserID).Msg("session user not found")

			return c.Next()
		}

		handler.SetCurrentUser(c, user)

		return c.Next()
	}
}

// LoginRequired redirects to the login page unless a user is logged in.
func LoginRequired(routes *route.Table) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if handler.CurrentUser(c) != nil {
			return c.Next()
		}

		loginURL, err := routes.URLFor(LoginEndpoint)
		if err != nil {
			return err
		}

		return c.Redirect(loginURL)
	}
}
