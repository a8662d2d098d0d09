package handler

import "errors"

// ErrMissingDeps is returned by Init if a required collaborator is nil.
var ErrMissingDeps = errors.New("app, store, sessions or routes is nil")
