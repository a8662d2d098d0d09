// Package auth implements local username/password accounts.
//
// Passwords are stored as Argon2id hashes (see models.HashPassword). The
// package knows nothing about http; sessions and the login flow live in the
// web handlers.
//
// Usage:
//
//	p := auth.NewLocalProvider(db)
//	user, err := p.Register("alice", "secret")
//	user, err = p.Authenticate("alice", "secret")
package auth
