// Package web builds the Fiber application: view engine, static files and
// the middleware shared by every blueprint.
package web

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/gofiber/template/html/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/myapp-blog/myapp/internal/config"
	"github.com/myapp-blog/myapp/internal/logger"
	fiberlog "github.com/myapp-blog/myapp/internal/logger/adapter/fiber"
	"github.com/myapp-blog/myapp/internal/web/htmlsanitize"
	"github.com/myapp-blog/myapp/internal/web/route"
)

const (
	// AppName is reported by fiber.
	AppName = "myapp"

	// MetricsPath serves the prometheus metrics if METRICS is enabled.
	MetricsPath = "/metrics"

	// templateDir is used instead of the embedded templates in DEBUG mode.
	templateDir = "./internal/web/templates"

	dateLayout = "2006-01-02"

	defaultShutdownTimeout = 10 * time.Second
)

// Service represents the web service.
type Service struct {
	App             *fiber.App
	cfg             config.Mapping
	ShutdownTimeout time.Duration
}

// New creates the Fiber app for cfg. Template helpers resolve URLs through routes.
func New(cfg config.Mapping, routes *route.Table, accessLog logger.Log) (*Service, error) {
	if cfg == nil || routes == nil {
		return nil, errors.New("config and routes must not be nil")
	}

	templates, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded templates: %w", err)
	}

	templateEngine := html.NewFileSystem(http.FS(templates), ".gohtml")

	// in debug mode, use local filesystem for templates
	if cfg.Bool(config.KeyDebug, false) {
		if _, err := os.Stat(templateDir); err == nil {
			templateEngine = html.New(templateDir, ".gohtml")
			templateEngine.ShouldReload = true

			log.Warn().Msg("debug mode enabled: using local filesystem for templates")
		}
	}

	templateEngine.AddFunc("url_for", routes.URLFor)
	templateEngine.AddFunc("sanitize", htmlsanitize.HTML)
	templateEngine.AddFunc("date", func(t time.Time) string {
		return t.Format(dateLayout)
	})

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        AppName,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			Views:          templateEngine,
			ErrorHandler:   NewErrorHandler(cfg.Bool(config.KeyTesting, false)),
		},
	)

	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))

	app.Use(fiberlog.New(fiberlog.Config{Config: accessLog}))

	// serve embedded static files
	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
				Browse:     false,
			},
		),
	)

	if cfg.Bool(config.KeyMetrics, false) {
		if err := routes.Add("metrics", MetricsPath, fiber.MethodGet); err != nil {
			return nil, err
		}

		app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))
	}

	return &Service{
		App:             app,
		cfg:             cfg,
		ShutdownTimeout: defaultShutdownTimeout,
	}, nil
}

// NewErrorHandler sends the message of a *fiber.Error as plain text. Other
// errors are logged and answered with a 500. With exposeErrors (TESTING) the
// 500 carries the error text, otherwise a generic message.
func NewErrorHandler(exposeErrors bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		msg := utils.StatusMessage(code)

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
			msg = e.Message
		} else {
			log.Error().Err(err).Str("path", c.Path()).Msg("request failed")

			if exposeErrors {
				msg = err.Error()
			}
		}

		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)

		return c.Status(code).SendString(msg)
	}
}

// Start listens on addr until the server fails or SIGINT/SIGTERM arrives,
// then shuts down gracefully.
func (s *Service) Start(addr string) error {
	errCh := make(chan error, 1)

	go func() {
		errCh <- s.App.Listen(addr)
	}()

	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	defer signal.Stop(irqSig)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	case sig := <-irqSig:
		log.Info().Msgf("shutdown request (signal: %v)", sig)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.ShutdownWithTimeout(s.ShutdownTimeout); err != nil {
		return err
	}

	log.Info().Msg("http server was stopped ... good bye...")

	return nil
}
