// Package db owns the application's database connection and schema.
package db

import (
	"errors"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/myapp-blog/myapp/internal/config"
	"github.com/myapp-blog/myapp/internal/db/dialect"
	"github.com/myapp-blog/myapp/internal/db/models"
	"github.com/myapp-blog/myapp/internal/logger/adapter/stdlogger"
)

const slowQueryThreshold = 200 * time.Millisecond

// ErrStoreClosed is returned by Get after Close.
var ErrStoreClosed = errors.New("database store is closed")

// Store opens the configured database on first use and keeps the pool until Close.
type Store struct {
	engine   string
	database string

	mu     sync.Mutex
	db     *gorm.DB
	closed bool
}

// New creates a Store for the DATABASE_ENGINE and DATABASE settings of cfg.
// Nothing is opened until Get is called.
func New(cfg config.Mapping) *Store {
	return &Store{
		engine:   cfg.String(config.KeyDatabaseEngine, dialect.EngineSQLite),
		database: cfg.String(config.KeyDatabase, ""),
	}
}

// Init attaches the store to app: the pool is closed when the app shuts down.
func (s *Store) Init(app *fiber.App) {
	app.Hooks().OnShutdown(s.Close)
}

// Get returns the shared connection pool, opening it if needed.
func (s *Store) Get() (*gorm.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	if s.db != nil {
		return s.db, nil
	}

	d, err := dialect.Open(s.engine, s.database)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to configure database")
	}

	gdb, err := gorm.Open(d, &gorm.Config{
		Logger: gormlogger.New(stdlogger.New(), gormlogger.Config{
			SlowThreshold:             slowQueryThreshold,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to connect database")
	}

	if d.Name() == dialect.EngineSQLite {
		sqlDB, errDB := gdb.DB()
		if errDB != nil {
			return nil, pkgerrors.Wrap(errDB, "failed to get sql db")
		}

		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	}

	log.Debug().Str("engine", d.Name()).Msg("database opened")

	s.db = gdb

	return s.db, nil
}

// Close closes the pool. Closing twice or closing an unopened store is fine.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true

	if s.db == nil {
		return nil
	}

	sqlDB, err := s.db.DB()
	s.db = nil

	if err != nil {
		return pkgerrors.Wrap(err, "failed to get sql db")
	}

	return sqlDB.Close() //nolint:wrapcheck
}

// Migrate creates missing tables and columns. Existing data is kept.
func (s *Store) Migrate() error {
	gdb, err := s.Get()
	if err != nil {
		return err
	}

	if err = gdb.AutoMigrate(models.All()...); err != nil {
		return pkgerrors.Wrap(err, "failed to migrate database")
	}

	return nil
}

// InitSchema drops all tables and creates them again.
func (s *Store) InitSchema() error {
	gdb, err := s.Get()
	if err != nil {
		return err
	}

	all := models.All()

	// drop in reverse order so dependents go first
	for i := len(all) - 1; i >= 0; i-- {
		if err = gdb.Migrator().DropTable(all[i]); err != nil {
			return pkgerrors.Wrap(err, "failed to drop table")
		}
	}

	if err = gdb.AutoMigrate(all...); err != nil {
		return pkgerrors.Wrap(err, "failed to create tables")
	}

	return nil
}
