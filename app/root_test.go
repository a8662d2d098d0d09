package app

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myapp-blog/myapp/internal/config"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-level", "error"))

	err := cmd.Execute()

	return out.String(), err
}

func TestRootCommands(t *testing.T) {
	cmd := newRootCmd()

	names := make([]string, 0)
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}

	for _, want := range []string{"start", "init-db", "config", "gen-secret"} {
		assert.Contains(t, names, want)
	}

	for _, flag := range []string{flagInstance, flagLogLevel, flagLogPretty, flagLogDir} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestInitDB(t *testing.T) {
	t.Setenv(config.EnvJSON, "")

	instance := t.TempDir()

	out, err := run(t, "init-db", "--instance", instance)
	require.NoError(t, err)
	assert.Equal(t, "Initialized the database.\n", out)
	assert.FileExists(t, filepath.Join(instance, config.DatabaseFileName))

	// running it again starts over
	_, err = run(t, "init-db", "--instance", instance)
	require.NoError(t, err)
}

func TestConfigCommand(t *testing.T) {
	t.Setenv(config.EnvJSON, "")

	instance := t.TempDir()

	out, err := run(t, "config", "--instance", instance)
	require.NoError(t, err)
	assert.Contains(t, out, `SECRET_KEY = "dev"`)
	assert.Contains(t, out, "myapp.sqlite")

	out, err = run(t, "config", "--instance", instance, "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"SECRET_KEY": "dev"`)
}

func TestInstanceFromEnv(t *testing.T) {
	t.Setenv(config.EnvJSON, "")

	instance := t.TempDir()
	t.Setenv("MYAPP_INSTANCE", instance)

	out, err := run(t, "config", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, instance)
}

func TestGenSecret(t *testing.T) {
	out, err := run(t, "gen-secret", "--length", "20")
	require.NoError(t, err)
	assert.Len(t, strings.TrimSpace(out), 20)

	_, err = run(t, "gen-secret", "--length", "4")
	require.Error(t, err)
}

func TestInvalidLogLevel(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"gen-secret", "--log-level", "loud"})

	require.Error(t, cmd.Execute())
}
