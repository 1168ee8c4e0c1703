// Package testutils provides helper functions for testing
package testutils

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
)

// FlagInfo describes one expected flag on a cobra command.
type FlagInfo struct {
	Short      string
	DefValue   string
	Persistent bool
}

// AssertFlags checks that every flag in want is registered on cmd with the
// expected shorthand and default value.
func AssertFlags(t *testing.T, cmd *cobra.Command, want map[string]FlagInfo) {
	t.Helper()

	for name, info := range want {
		var flag *pflag.Flag
		if info.Persistent {
			flag = cmd.PersistentFlags().Lookup(name)
		} else {
			flag = cmd.Flags().Lookup(name)
		}
		if !assert.NotNil(t, flag, "flag %q should be registered", name) {
			continue
		}
		assert.Equal(t, info.Short, flag.Shorthand, "flag %q shorthand", name)
		assert.Equal(t, info.DefValue, flag.DefValue, "flag %q default", name)
	}
}
