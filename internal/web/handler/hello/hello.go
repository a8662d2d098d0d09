// Package hello serves the static greeting page.
package hello

import (
	"github.com/gofiber/fiber/v2"

	"github.com/myapp-blog/myapp/internal/web/route"
)

const (
	// Endpoint is the route name of the greeting.
	Endpoint = "hello"
	// Path is the path of the greeting.
	Path = "/hello"
	// Greeting is the response body.
	Greeting = "Hello, World!"
)

// Register adds the greeting route to app and routes.
func Register(app *fiber.App, routes *route.Table) error {
	if err := routes.Add(Endpoint, Path, fiber.MethodGet); err != nil {
		return err
	}

	app.Get(Path, Get)

	return nil
}

// Get writes the greeting.
func Get(c *fiber.Ctx) error {
	return c.SendString(Greeting)
}
