package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/myapp-blog/myapp/internal/db/models"
	"github.com/myapp-blog/myapp/internal/web/navigation"
)

// CurrentUser returns the logged in user of the request or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	u, _ := c.Locals(LocalsUser).(*models.User)
	return u
}

// SetCurrentUser stores the logged in user of the request.
func SetCurrentUser(c *fiber.Ctx, u *models.User) {
	c.Locals(LocalsUser, u)
}

// Render renders template into the base layout. The page, the current user
// and flash messages are added to data.
func Render(c *fiber.Ctx, template string, page *navigation.Page, data fiber.Map, flashes ...string) error {
	if data == nil {
		data = fiber.Map{}
	}

	data["Navigation"] = page
	data["Flashes"] = flashes

	if u := CurrentUser(c); u != nil {
		data["User"] = u
	}

	return c.Render(template, data, BaseLayout)
}
