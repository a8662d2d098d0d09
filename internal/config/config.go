// Package config builds the application configuration from defaults,
// the instance config file, the environment and explicit overrides.
package config

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	// FileName is the name of the optional config file inside the instance directory.
	FileName = "config.toml"

	// DatabaseFileName is the default SQLite database file inside the instance directory.
	DatabaseFileName = "myapp.sqlite"

	// DevSecretKey is the development secret. Override it in production.
	DevSecretKey = "dev"

	// EnvJSON names the env var holding a JSON object merged over the file config.
	EnvJSON = "MYAPP_CONFIG_JSON"
)

// Known configuration keys.
const (
	KeySecretKey           = "SECRET_KEY"
	KeyDatabase            = "DATABASE"
	KeyDatabaseEngine      = "DATABASE_ENGINE"
	KeySessionCookieName   = "SESSION_COOKIE_NAME"
	KeySessionCookieSecure = "SESSION_COOKIE_SECURE"
	KeyDebug               = "DEBUG"
	KeyTesting             = "TESTING"
	KeyMetrics             = "METRICS"
)

// Defaults returns the seeded configuration for the given instance directory.
func Defaults(instancePath string) Mapping {
	return Mapping{
		KeySecretKey: DevSecretKey,
		KeyDatabase:  filepath.Join(instancePath, DatabaseFileName),
	}
}

// Resolve builds the configuration for an application bound to instancePath.
//
// A non-nil override replaces everything: no defaults, no file, no env.
// Otherwise the defaults are merged with the instance config file (if present)
// and the MYAPP_CONFIG_JSON env override.
func Resolve(instancePath string, override Mapping) (Mapping, error) {
	if override != nil {
		return override.Clone(), nil
	}

	if instancePath == "" {
		return nil, ErrInstancePathEmpty
	}

	file, err := LoadFile(filepath.Join(instancePath, FileName))
	if err != nil {
		return nil, err
	}

	env, err := FromEnv()
	if err != nil {
		return nil, err
	}

	return Merge(Defaults(instancePath), file, env), nil
}

// LoadFile reads a TOML config file. A missing file is not an error and yields nil.
// So is a path whose parent is not a directory, or a directory at path.
func LoadFile(path string) (Mapping, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to stat instance config file")
	}

	if info.IsDir() {
		return nil, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, "failed to read instance config file")
	}

	return upperKeys(v.AllSettings()), nil
}

// FromEnv decodes the JSON object in MYAPP_CONFIG_JSON. Unset yields nil.
func FromEnv() (Mapping, error) {
	raw := os.Getenv(EnvJSON)
	if raw == "" {
		return nil, nil
	}

	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, errors.Wrap(err, "failed to decode "+EnvJSON)
	}

	if m == nil {
		return nil, ErrEnvConfigNotObject
	}

	return Mapping(m), nil
}

// DumpTOML renders the mapping as TOML.
func DumpTOML(m Mapping) (string, error) {
	var buffer bytes.Buffer

	if err := toml.NewEncoder(&buffer).Encode(map[string]any(m)); err != nil {
		return "", errors.Wrap(err, "failed to encode config as toml")
	}

	return buffer.String(), nil
}

// DumpJSON renders the mapping as indented JSON.
func DumpJSON(m Mapping) (string, error) {
	var buffer bytes.Buffer

	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(m); err != nil {
		return "", errors.Wrap(err, "failed to encode config as json")
	}

	return buffer.String(), nil
}
