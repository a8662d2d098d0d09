package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestDefaults(t *testing.T) {
	instance := t.TempDir()

	cfg := Defaults(instance)

	assert.Len(t, cfg, 2)
	assert.Equal(t, DevSecretKey, cfg[KeySecretKey])
	assert.Equal(t, filepath.Join(instance, "myapp.sqlite"), cfg[KeyDatabase])
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		env      string
		override Mapping
		want     Mapping
	}{
		{
			name: "defaults without file",
			want: Mapping{KeySecretKey: "dev", KeyDatabase: "@/myapp.sqlite"},
		},
		{
			name: "file overrides defaults",
			file: "secret_key = \"prod\"\nEXTRA = 3\n",
			want: Mapping{KeySecretKey: "prod", KeyDatabase: "@/myapp.sqlite", "EXTRA": int64(3)},
		},
		{
			name: "env overrides file",
			file: "SECRET_KEY = \"prod\"\n",
			env:  `{"SECRET_KEY":"from-env","DATABASE":"/tmp/other.sqlite"}`,
			want: Mapping{KeySecretKey: "from-env", KeyDatabase: "/tmp/other.sqlite"},
		},
		{
			name:     "override replaces everything",
			file:     "SECRET_KEY = \"prod\"\n",
			env:      `{"SECRET_KEY":"from-env"}`,
			override: Mapping{"TESTING": true, KeyDatabase: "test.sqlite"},
			want:     Mapping{"TESTING": true, KeyDatabase: "test.sqlite"},
		},
		{
			name:     "empty override is still an override",
			file:     "SECRET_KEY = \"prod\"\n",
			override: Mapping{},
			want:     Mapping{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			instance := t.TempDir()

			if tt.file != "" {
				writeFile(t, filepath.Join(instance, FileName), tt.file)
			}

			t.Setenv(EnvJSON, tt.env)

			got, err := Resolve(instance, tt.override)
			require.NoError(t, err)

			want := Mapping{}
			for k, v := range tt.want {
				if s, ok := v.(string); ok && strings.HasPrefix(s, "@/") {
					v = filepath.Join(instance, strings.TrimPrefix(s, "@/"))
				}

				want[k] = v
			}

			assert.Equal(t, want, got)
		})
	}
}

func TestResolveOverrideIsCopied(t *testing.T) {
	override := Mapping{KeySecretKey: "x"}

	got, err := Resolve(t.TempDir(), override)
	require.NoError(t, err)

	got[KeySecretKey] = "changed"
	assert.Equal(t, "x", override[KeySecretKey])
}

func TestResolveErrors(t *testing.T) {
	t.Run("malformed file", func(t *testing.T) {
		instance := t.TempDir()
		writeFile(t, filepath.Join(instance, FileName), "SECRET_KEY = = =\n")

		_, err := Resolve(instance, nil)
		require.Error(t, err)
	})

	t.Run("malformed env", func(t *testing.T) {
		t.Setenv(EnvJSON, "{")

		_, err := Resolve(t.TempDir(), nil)
		require.Error(t, err)
	})

	t.Run("env is not an object", func(t *testing.T) {
		t.Setenv(EnvJSON, "null")

		_, err := Resolve(t.TempDir(), nil)
		require.ErrorIs(t, err, ErrEnvConfigNotObject)
	})

	t.Run("no instance path", func(t *testing.T) {
		_, err := Resolve("", nil)
		require.ErrorIs(t, err, ErrInstancePathEmpty)
	})
}

func TestLoadFileMissing(t *testing.T) {
	m, err := LoadFile(filepath.Join(t.TempDir(), FileName))

	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestLoadFileNotAFile(t *testing.T) {
	dir := t.TempDir()

	parent := filepath.Join(dir, "instance")
	require.NoError(t, os.WriteFile(parent, []byte("x"), 0o600))

	m, err := LoadFile(filepath.Join(parent, FileName))
	require.NoError(t, err)
	assert.Nil(t, m)

	asDir := filepath.Join(dir, FileName)
	require.NoError(t, os.Mkdir(asDir, 0o750))

	m, err = LoadFile(asDir)
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestMerge(t *testing.T) {
	a := Mapping{"A": 1, "B": 1}
	b := Mapping{"B": 2, "C": 2}

	got := Merge(a, nil, b)

	assert.Equal(t, Mapping{"A": 1, "B": 2, "C": 2}, got)
	assert.Equal(t, Mapping{"A": 1, "B": 1}, a, "inputs must stay untouched")
}

func TestAccessors(t *testing.T) {
	m := Mapping{
		"S":     "text",
		"N":     42,
		"B":     true,
		"BS":    "true",
		"BAD":   []int{1},
		"EMPTY": nil,
	}

	assert.Equal(t, "text", m.String("S", "fb"))
	assert.Equal(t, "42", m.String("N", "fb"))
	assert.Equal(t, "fb", m.String("MISSING", "fb"))
	assert.Equal(t, "fb", m.String("EMPTY", "fb"))
	assert.True(t, m.Bool("B", false))
	assert.True(t, m.Bool("BS", false))
	assert.True(t, m.Bool("BAD", true))
	assert.False(t, m.Bool("MISSING", false))
	assert.True(t, m.Has("EMPTY"))
	assert.False(t, m.Has("MISSING"))
}

func TestDump(t *testing.T) {
	cfg := Mapping{KeySecretKey: "dev", KeyDatabase: "/x/myapp.sqlite"}

	tomlStr, err := DumpTOML(cfg)
	require.NoError(t, err)
	assert.Contains(t, tomlStr, `SECRET_KEY = "dev"`)

	jsonStr, err := DumpJSON(cfg)
	require.NoError(t, err)
	assert.Contains(t, jsonStr, `"DATABASE": "/x/myapp.sqlite"`)
}
