package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/myapp-blog/myapp/internal/db"
	"github.com/myapp-blog/myapp/internal/web/route"
	"github.com/myapp-blog/myapp/internal/web/session"
)

// Service is the interface of a blueprint: Init registers its routes on app.
type Service interface {
	Init(app *fiber.App) error
}

// Deps are the collaborators shared by all handlers of one application.
type Deps struct {
	Store    *db.Store
	Sessions *session.Manager
	Routes   *route.Table
}
