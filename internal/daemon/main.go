// Package daemon builds a fully configured application instance.
package daemon

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/myapp-blog/myapp/internal/config"
	"github.com/myapp-blog/myapp/internal/db"
	"github.com/myapp-blog/myapp/internal/logger"
	"github.com/myapp-blog/myapp/internal/web"
	"github.com/myapp-blog/myapp/internal/web/handler"
	authhandler "github.com/myapp-blog/myapp/internal/web/handler/auth"
	"github.com/myapp-blog/myapp/internal/web/handler/blog"
	"github.com/myapp-blog/myapp/internal/web/handler/hello"
	"github.com/myapp-blog/myapp/internal/web/route"
	"github.com/myapp-blog/myapp/internal/web/session"
)

const (
	// DefaultInstancePath is used when no instance path is given.
	DefaultInstancePath = "instance"

	// IndexEndpoint is the generic name of the front page.
	IndexEndpoint = "index"

	instanceDirPerm = 0o750
)

// Daemon is a configured application bound to one instance directory.
type Daemon struct {
	instancePath string
	cfg          config.Mapping
	routes       *route.Table
	store        *db.Store
	webService   *web.Service
}

type options struct {
	accessLog logger.Log
	debug     bool
}

// Option configures New.
type Option func(*options)

// WithAccessLog enables the access log middleware with cfg.
func WithAccessLog(cfg logger.Log) Option {
	return func(o *options) {
		o.accessLog = cfg
	}
}

// WithDebug sets DEBUG on top of the resolved configuration.
func WithDebug() Option {
	return func(o *options) {
		o.debug = true
	}
}

// New bootstraps an application for instancePath.
//
// Without override the configuration is the defaults merged with the
// instance config file and the env override. A non-nil override is used as
// the whole configuration. The instance directory is created if missing.
func New(instancePath string, override config.Mapping, opts ...Option) (*Daemon, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if instancePath == "" {
		instancePath = DefaultInstancePath
	}

	instancePath, err := filepath.Abs(instancePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve instance path")
	}

	cfg, err := config.Resolve(instancePath, override)
	if err != nil {
		return nil, err
	}

	if o.debug {
		cfg[config.KeyDebug] = true
	}

	routes := route.NewTable()

	webService, err := web.New(cfg, routes, o.accessLog)
	if err != nil {
		return nil, err
	}

	if err = ensureInstanceDir(instancePath); err != nil {
		return nil, err
	}

	if err = hello.Register(webService.App, routes); err != nil {
		return nil, err
	}

	store := db.New(cfg)
	store.Init(webService.App)

	if !cfg.Has(config.KeySecretKey) {
		log.Warn().Msg("SECRET_KEY is not set, logins are disabled")
	}

	deps := handler.Deps{
		Store: store,
		Sessions: session.NewManager(
			cfg.String(config.KeySecretKey, ""),
			cfg.String(config.KeySessionCookieName, session.DefaultCookieName),
			cfg.Bool(config.KeySessionCookieSecure, false),
		),
		Routes: routes,
	}

	for _, bp := range []handler.Service{authhandler.New(deps), blog.New(deps)} {
		if err = bp.Init(webService.App); err != nil {
			return nil, errors.Wrap(err, "failed to register blueprint")
		}
	}

	if err = routes.Alias(IndexEndpoint, handler.RootPath); err != nil {
		return nil, err
	}

	log.Debug().
		Str("instance", instancePath).
		Strs("endpoints", routes.Endpoints()).
		Msg("application created")

	return &Daemon{
		instancePath: instancePath,
		cfg:          cfg,
		routes:       routes,
		store:        store,
		webService:   webService,
	}, nil
}

// ensureInstanceDir creates path. An existing directory is fine.
func ensureInstanceDir(path string) error {
	err := os.MkdirAll(path, instanceDirPerm)
	if err == nil || errors.Is(err, fs.ErrExist) {
		return nil
	}

	return errors.Wrap(err, "failed to create instance directory")
}

// App returns the Fiber application.
func (d *Daemon) App() *fiber.App {
	return d.webService.App
}

// Config returns the resolved configuration.
func (d *Daemon) Config() config.Mapping {
	return d.cfg
}

// InstancePath returns the absolute instance directory.
func (d *Daemon) InstancePath() string {
	return d.instancePath
}

// Routes returns the route table.
func (d *Daemon) Routes() *route.Table {
	return d.routes
}

// Store returns the database store.
func (d *Daemon) Store() *db.Store {
	return d.store
}

// Start creates missing tables and serves on addr until a shutdown signal.
func (d *Daemon) Start(addr string) error {
	if err := d.store.Migrate(); err != nil {
		return err
	}

	log.Info().Str("addr", addr).Str("instance", d.instancePath).Msg("starting web service")

	return d.webService.Start(addr)
}

// Shutdown stops the web service and closes the database.
func (d *Daemon) Shutdown() error {
	err := d.webService.App.Shutdown()

	if errClose := d.store.Close(); errClose != nil && err == nil {
		err = errClose
	}

	return err
}
