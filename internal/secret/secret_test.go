package secret

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	for _, length := range []int{MinLength, DefaultLength, 100, 1000} {
		s, err := New(length)
		require.NoError(t, err)
		assert.Len(t, s, length)

		for _, r := range s {
			assert.True(t, strings.ContainsRune(Alphabet, r), "unexpected rune %q", r)
		}
	}
}

func TestNewIsRandom(t *testing.T) {
	seen := make(map[string]struct{})

	for i := 0; i < 100; i++ {
		s, err := New(DefaultLength)
		require.NoError(t, err)

		_, dup := seen[s]
		require.False(t, dup)

		seen[s] = struct{}{}
	}
}

func TestNewTooShort(t *testing.T) {
	_, err := New(MinLength - 1)
	require.ErrorIs(t, err, ErrTooShort)
}
