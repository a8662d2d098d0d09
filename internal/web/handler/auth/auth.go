// Package auth is the "auth" blueprint: registration, login and logout of
// local users.
package auth

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	localauth "github.com/myapp-blog/myapp/internal/auth"
	"github.com/myapp-blog/myapp/internal/web/handler"
	mwauth "github.com/myapp-blog/myapp/internal/web/middleware/auth"
	"github.com/myapp-blog/myapp/internal/web/navigation"
	"github.com/myapp-blog/myapp/internal/web/session"
)

const (
	// Name is the blueprint name.
	Name = "auth"
	// Prefix is the path prefix of the blueprint.
	Prefix = "/auth"

	// TemplateRegister is the registration form template.
	TemplateRegister = "auth/register"
	// TemplateLogin is the login form template.
	TemplateLogin = "auth/login"
)

// Credentials is the form posted to register and login.
type Credentials struct {
	Username string `form:"username" validate:"required,max=100"`
	Password string `form:"password" validate:"required"`
}

// Service is the auth blueprint.
type Service struct {
	deps      handler.Deps
	validator *validator.Validate
}

var _ handler.Service = (*Service)(nil)

// New creates the auth blueprint.
func New(deps handler.Deps) *Service {
	return &Service{
		deps:      deps,
		validator: validator.New(),
	}
}

// Init registers the blueprint routes and the user loading middleware.
func (s *Service) Init(app *fiber.App) error {
	if app == nil || s.deps.Store == nil || s.deps.Sessions == nil || s.deps.Routes == nil {
		return handler.ErrMissingDeps
	}

	bp := s.deps.Routes.Blueprint(app, Name, Prefix)
	bp.Use(mwauth.LoadUser(s.deps.Store, s.deps.Sessions))

	both := []string{fiber.MethodGet, fiber.MethodPost}

	if err := bp.Route("register", "/register", both, s.Register); err != nil {
		return err
	}

	if err := bp.Route("login", "/login", both, s.Login); err != nil {
		return err
	}

	return bp.Get("logout", "/logout", s.Logout)
}

// Register shows the registration form and creates the user on POST.
func (s *Service) Register(c *fiber.Ctx) error {
	page := navigation.NewPage("Register")

	if c.Method() != fiber.MethodPost {
		return handler.Render(c, TemplateRegister, page, nil)
	}

	in := new(Credentials)
	if err := c.BodyParser(in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.Render(c, TemplateRegister, page, fiber.Map{"Form": in}, handler.ValidationMessage(err))
	}

	conn, err := s.deps.Store.Get()
	if err != nil {
		return err
	}

	user, err := localauth.NewLocalProvider(conn).Register(in.Username, in.Password)
	if err != nil {
		if errors.Is(err, localauth.ErrUserExists) {
			msg := fmt.Sprintf("User %s is already registered.", in.Username)
			return handler.Render(c, TemplateRegister, page, fiber.Map{"Form": in}, msg)
		}

		return err
	}

	log.Info().Str("username", user.Username).Uint64("user_id", user.ID).Msg("user registered")

	return s.redirect(c, Name+".login")
}

// Login shows the login form and starts a session on POST.
func (s *Service) Login(c *fiber.Ctx) error {
	page := navigation.NewPage("Log In")

	if c.Method() != fiber.MethodPost {
		return handler.Render(c, TemplateLogin, page, nil)
	}

	in := new(Credentials)
	if err := c.BodyParser(in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	conn, err := s.deps.Store.Get()
	if err != nil {
		return err
	}

	user, err := localauth.NewLocalProvider(conn).Authenticate(in.Username, in.Password)

	var msg string

	switch {
	case errors.Is(err, localauth.ErrUserNotFound):
		msg = "Incorrect username."
	case errors.Is(err, localauth.ErrInvalidPassword):
		msg = "Incorrect password."
	case err != nil:
		return err
	}

	if msg != "" {
		log.Debug().Str("username", in.Username).Msg(msg)
		return handler.Render(c, TemplateLogin, page, fiber.Map{"Form": in}, msg)
	}

	s.deps.Sessions.Clear(c)

	if err := s.deps.Sessions.Write(c, session.Data{UserID: user.ID}); err != nil {
		return err
	}

	return s.redirect(c, "index")
}

// Logout clears the session.
func (s *Service) Logout(c *fiber.Ctx) error {
	s.deps.Sessions.Clear(c)
	return s.redirect(c, "index")
}

func (s *Service) redirect(c *fiber.Ctx, endpoint string) error {
	target, err := s.deps.Routes.URLFor(endpoint)
	if err != nil {
		return err
	}

	return c.Redirect(target)
}
