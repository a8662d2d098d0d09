// Package dialect turns the configured engine and database string into a gorm dialector.
package dialect

import (
	"errors"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Supported engines.
const (
	EngineSQLite   = "sqlite"
	EngineMySQL    = "mysql"
	EnginePostgres = "postgres"
)

var (
	// ErrUnknownEngine is returned for an engine other than sqlite, mysql or postgres.
	ErrUnknownEngine = errors.New("unknown database engine")

	// ErrEmptyDatabase is returned if no database path or dsn is configured.
	ErrEmptyDatabase = errors.New("database path or dsn can not be empty")
)

// Open returns the dialector for engine. For sqlite database is a file path
// (or ":memory:"), for mysql and postgres it is the driver dsn.
func Open(engine, database string) (gorm.Dialector, error) {
	if database == "" {
		return nil, ErrEmptyDatabase
	}

	switch strings.ToLower(engine) {
	case "", EngineSQLite, "sqlite3":
		return sqlite.Open(SQLiteDSN(database)), nil
	case EngineMySQL:
		return mysql.Open(database), nil
	case EnginePostgres, "postgresql":
		return postgres.Open(database), nil
	default:
		return nil, ErrUnknownEngine
	}
}

// SQLiteDSN enables foreign keys unless the path already carries query options.
func SQLiteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path
	}

	return path + "?_pragma=foreign_keys(1)"
}
