// Package blog is the "blog" blueprint: listing, writing, editing and
// deleting posts.
package blog

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/myapp-blog/myapp/internal/db/controller/post"
	"github.com/myapp-blog/myapp/internal/db/models"
	"github.com/myapp-blog/myapp/internal/web/handler"
	mwauth "github.com/myapp-blog/myapp/internal/web/middleware/auth"
	"github.com/myapp-blog/myapp/internal/web/navigation"
)

const (
	// Name is the blueprint name.
	Name = "blog"

	// TemplateIndex lists all posts.
	TemplateIndex = "blog/index"
	// TemplateCreate is the form for a new post.
	TemplateCreate = "blog/create"
	// TemplateUpdate is the form for editing a post.
	TemplateUpdate = "blog/update"

	msgTitleRequired = "Title is required."
)

// PostForm is the form posted to create and update.
type PostForm struct {
	Title string `form:"title" validate:"required,max=200"`
	Body  string `form:"body"`
}

// Service is the blog blueprint.
type Service struct {
	deps      handler.Deps
	validator *validator.Validate
}

var _ handler.Service = (*Service)(nil)

// New creates the blog blueprint.
func New(deps handler.Deps) *Service {
	return &Service{
		deps:      deps,
		validator: validator.New(),
	}
}

// Init registers the blueprint routes.
func (s *Service) Init(app *fiber.App) error {
	if app == nil || s.deps.Store == nil || s.deps.Routes == nil {
		return handler.ErrMissingDeps
	}

	bp := s.deps.Routes.Blueprint(app, Name, "")
	loginRequired := mwauth.LoginRequired(s.deps.Routes)
	both := []string{fiber.MethodGet, fiber.MethodPost}

	if err := bp.Get("index", handler.RootPath, s.Index); err != nil {
		return err
	}

	if err := bp.Route("create", "/create", both, loginRequired, s.Create); err != nil {
		return err
	}

	if err := bp.Route("update", "/:id<int>/update", both, loginRequired, s.Update); err != nil {
		return err
	}

	return bp.Post("delete", "/:id<int>/delete", loginRequired, s.Delete)
}

// Index lists all posts, newest first.
func (s *Service) Index(c *fiber.Ctx) error {
	conn, err := s.deps.Store.Get()
	if err != nil {
		return err
	}

	posts, err := post.List(conn)
	if err != nil {
		return err
	}

	return handler.Render(c, TemplateIndex, navigation.NewPage("Posts"), fiber.Map{
		"Posts":     posts,
		"CanCreate": handler.CurrentUser(c) != nil,
	})
}

// Create shows the form for a new post and stores it on POST.
func (s *Service) Create(c *fiber.Ctx) error {
	page := navigation.NewPage("New Post").Crumb("Posts", "/").Crumb("New Post", "")

	if c.Method() != fiber.MethodPost {
		return handler.Render(c, TemplateCreate, page, fiber.Map{"Form": new(PostForm)})
	}

	in, msg, err := s.parseForm(c)
	if err != nil {
		return err
	}

	if msg != "" {
		return handler.Render(c, TemplateCreate, page, fiber.Map{"Form": in}, msg)
	}

	conn, err := s.deps.Store.Get()
	if err != nil {
		return err
	}

	user := handler.CurrentUser(c)

	p, err := post.Create(conn, user.ID, in.Title, in.Body)
	if errors.Is(err, post.ErrTitleEmpty) {
		return handler.Render(c, TemplateCreate, page, fiber.Map{"Form": in}, msgTitleRequired)
	}

	if err != nil {
		return err
	}

	log.Info().Uint64("post_id", p.ID).Uint64("user_id", user.ID).Msg("post created")

	return s.redirectIndex(c)
}

// Update shows the form for an existing post and saves it on POST.
func (s *Service) Update(c *fiber.Ctx) error {
	p, err := s.getPost(c, true)
	if err != nil {
		return err
	}

	page := navigation.NewPage(fmt.Sprintf("Edit %q", p.Title)).
		Crumb("Posts", "/").
		Crumb("Edit", "")

	if c.Method() != fiber.MethodPost {
		return handler.Render(c, TemplateUpdate, page, fiber.Map{
			"Post": p,
			"Form": &PostForm{Title: p.Title, Body: p.Body},
		})
	}

	in, msg, err := s.parseForm(c)
	if err != nil {
		return err
	}

	if msg != "" {
		return handler.Render(c, TemplateUpdate, page, fiber.Map{"Post": p, "Form": in}, msg)
	}

	conn, err := s.deps.Store.Get()
	if err != nil {
		return err
	}

	err = post.Update(conn, p.ID, in.Title, in.Body)
	if errors.Is(err, post.ErrTitleEmpty) {
		return handler.Render(c, TemplateUpdate, page, fiber.Map{"Post": p, "Form": in}, msgTitleRequired)
	}

	if err != nil {
		return err
	}

	return s.redirectIndex(c)
}

// Delete removes a post of the logged in user.
func (s *Service) Delete(c *fiber.Ctx) error {
	p, err := s.getPost(c, true)
	if err != nil {
		return err
	}

	conn, err := s.deps.Store.Get()
	if err != nil {
		return err
	}

	if err := post.Delete(conn, p.ID); err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			return notFound(p.ID)
		}

		return err
	}

	log.Info().Uint64("post_id", p.ID).Msg("post deleted")

	return s.redirectIndex(c)
}

// getPost loads the post of the :id parameter. With checkAuthor the
// logged in user must have written it.
func (s *Service) getPost(c *fiber.Ctx, checkAuthor bool) (*models.Post, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return nil, fiber.ErrNotFound
	}

	conn, err := s.deps.Store.Get()
	if err != nil {
		return nil, err
	}

	p, err := post.Get(conn, uint64(id))
	if errors.Is(err, post.ErrPostNotFound) {
		return nil, notFound(uint64(id))
	}

	if err != nil {
		return nil, err
	}

	if checkAuthor {
		user := handler.CurrentUser(c)
		if user == nil || p.AuthorID != user.ID {
			return nil, fiber.ErrForbidden
		}
	}

	return p, nil
}

func (s *Service) parseForm(c *fiber.Ctx) (*PostForm, string, error) {
	in := new(PostForm)
	if err := c.BodyParser(in); err != nil {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := s.validator.Struct(in); err != nil {
		return in, handler.ValidationMessage(err), nil
	}

	return in, "", nil
}

func (s *Service) redirectIndex(c *fiber.Ctx) error {
	target, err := s.deps.Routes.URLFor("index")
	if err != nil {
		return err
	}

	return c.Redirect(target)
}

func notFound(id uint64) error {
	return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Post id %d doesn't exist.", id))
}
