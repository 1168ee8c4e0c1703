package commands

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

// NewForTests creates an App wired to the given collector instead of the real
// hardware sources.
func NewForTests(t *testing.T, c snapshotCache, args ...string) *App {
	t.Helper()

	a, err := New()
	require.NoError(t, err, "Setup: could not create app")

	a.newCollector = func() snapshotCache { return c }
	a.cmd.SetArgs(args)

	return a
}

// SetOut redirects the command output for tests.
func (a *App) SetOut(w io.Writer) {
	a.cmd.SetOut(w)
}

// Config returns the current app configuration.
func (a *App) Config() appConfig {
	return a.config
}

// AppConfig is exported for tests.
type AppConfig = appConfig
