// Package secret generates random strings for SECRET_KEY values.
package secret

import (
	"crypto/rand"
	"errors"

	pkgerrors "github.com/pkg/errors"
)

const (
	// DefaultLength gives ~190 bits of entropy with Alphabet.
	DefaultLength = 32

	// MinLength is the shortest secret New accepts.
	MinLength = 16

	// readChunk is how many random bytes are requested per read.
	readChunk = 64
)

// Alphabet is the set of characters a secret is built from.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// ErrTooShort is returned for lengths below MinLength.
var ErrTooShort = errors.New("secret length is too short")

// New returns a random string of length characters from Alphabet.
func New(length int) (string, error) {
	if length < MinLength {
		return "", pkgerrors.Wrapf(ErrTooShort, "%d < %d", length, MinLength)
	}

	// bytes above limit are rejected so every character is equally likely
	limit := 256 - (256 % len(Alphabet)) //nolint:mnd

	out := make([]byte, 0, length)
	buf := make([]byte, readChunk)

	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", pkgerrors.Wrap(err, "failed to read random bytes")
		}

		for _, b := range buf {
			if int(b) >= limit {
				continue
			}

			out = append(out, Alphabet[int(b)%len(Alphabet)])

			if len(out) == length {
				break
			}
		}
	}

	return string(out), nil
}
