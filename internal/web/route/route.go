// Package route keeps an explicit table of the application's routes.
//
// Every route is keyed by its path and carries one endpoint name. Additional
// names can be attached to an existing path with Alias, so a generic name like
// "index" and a blueprint qualified name like "blog.index" resolve to the same
// URL. Blueprints group routes under a name and an optional path prefix.
package route

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
)

var (
	// ErrUnknownEndpoint is returned by URLFor for names that were never registered.
	ErrUnknownEndpoint = errors.New("unknown endpoint")

	// ErrUnknownPath is returned by Alias for paths that were never registered.
	ErrUnknownPath = errors.New("unknown path")

	// ErrMissingParam is returned by URLFor if fewer params than placeholders were given.
	ErrMissingParam = errors.New("missing url parameter")

	// ErrDuplicateEndpoint is returned when a name is registered twice for different paths.
	ErrDuplicateEndpoint = errors.New("endpoint already registered")
)

// Entry is one path of the table.
type Entry struct {
	Path     string
	Endpoint string
	Methods  []string
}

// Table maps paths to entries and names to paths.
type Table struct {
	mu     sync.RWMutex
	byPath map[string]*Entry
	names  map[string]string
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{
		byPath: make(map[string]*Entry),
		names:  make(map[string]string),
	}
}

// Add records endpoint at path for methods. Registering more methods for the
// same endpoint and path extends the entry.
func (t *Table) Add(endpoint, path string, methods ...string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if p, ok := t.names[endpoint]; ok && p != path {
		return fmt.Errorf("%w: %s", ErrDuplicateEndpoint, endpoint)
	}

	entry, ok := t.byPath[path]
	if !ok {
		entry = &Entry{Path: path, Endpoint: endpoint}
		t.byPath[path] = entry
	}

	for _, m := range methods {
		if !slices.Contains(entry.Methods, m) {
			entry.Methods = append(entry.Methods, m)
		}
	}

	t.names[endpoint] = path

	return nil
}

// Alias attaches name to an already registered path.
func (t *Table) Alias(name, path string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.byPath[path]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPath, path)
	}

	if p, ok := t.names[name]; ok && p != path {
		return fmt.Errorf("%w: %s", ErrDuplicateEndpoint, name)
	}

	t.names[name] = path

	return nil
}

// Lookup returns the entry registered for path.
func (t *Table) Lookup(path string) (Entry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, ok := t.byPath[path]
	if !ok {
		return Entry{}, false
	}

	out := *e
	out.Methods = slices.Clone(e.Methods)

	return out, true
}

// Endpoints returns all names, aliases included, sorted.
func (t *Table) Endpoints() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]string, 0, len(t.names))
	for name := range t.names {
		out = append(out, name)
	}

	sort.Strings(out)

	return out
}

// URLFor builds the URL of name. Path parameters (":id", ":id<int>") are
// replaced by params in order.
func (t *Table) URLFor(name string, params ...any) (string, error) {
	t.mu.RLock()
	path, ok := t.names[name]
	t.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownEndpoint, name)
	}

	segments := strings.Split(path, "/")
	next := 0

	for i, seg := range segments {
		if !strings.HasPrefix(seg, ":") {
			continue
		}

		if next >= len(params) {
			return "", fmt.Errorf("%w: %s for %s", ErrMissingParam, seg, name)
		}

		segments[i] = url.PathEscape(fmt.Sprint(params[next]))
		next++
	}

	return strings.Join(segments, "/"), nil
}

// Blueprint is a named group of routes sharing a path prefix.
type Blueprint struct {
	Name   string
	Prefix string

	app   *fiber.App
	table *Table
}

// Blueprint creates a blueprint registering its routes on app and in t.
func (t *Table) Blueprint(app *fiber.App, name, prefix string) *Blueprint {
	return &Blueprint{
		Name:   name,
		Prefix: strings.TrimSuffix(prefix, "/"),
		app:    app,
		table:  t,
	}
}

// Use adds app wide middleware, it runs for every route registered afterwards.
func (b *Blueprint) Use(handlers ...fiber.Handler) {
	for _, h := range handlers {
		b.app.Use(h)
	}
}

// Get registers a GET route.
func (b *Blueprint) Get(endpoint, path string, handlers ...fiber.Handler) error {
	return b.Route(endpoint, path, []string{fiber.MethodGet}, handlers...)
}

// Post registers a POST route.
func (b *Blueprint) Post(endpoint, path string, handlers ...fiber.Handler) error {
	return b.Route(endpoint, path, []string{fiber.MethodPost}, handlers...)
}

// Route registers handlers for methods at prefix+path as "<name>.<endpoint>".
func (b *Blueprint) Route(endpoint, path string, methods []string, handlers ...fiber.Handler) error {
	full := b.Prefix + path
	if full == "" {
		full = "/"
	}

	if err := b.table.Add(b.Name+"."+endpoint, full, methods...); err != nil {
		return err
	}

	for _, m := range methods {
		b.app.Add(m, full, handlers...)
	}

	return nil
}
