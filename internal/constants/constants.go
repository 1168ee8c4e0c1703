// Package constants is responsible for defining the constants used in the application.
package constants

import (
	"log/slog"
	"time"
)

const (
	// CmdName is the name of the command line tool.
	CmdName = "hwqc"

	// DefaultLogLevel is the default log level selected without any verbosity flags.
	DefaultLogLevel = slog.LevelWarn

	// DefaultBridgeAddr is the default listen address of the snapshot bridge.
	DefaultBridgeAddr = "127.0.0.1:8765"

	// DefaultPushInterval is the default cadence of bridge pushes to a
	// connected viewer.
	DefaultPushInterval = time.Second

	// DefaultStaticTTL is the staleness threshold of the identity facts.
	DefaultStaticTTL = 60 * time.Second

	// DefaultFastInterval is the refresh cadence of the utilisation figures.
	DefaultFastInterval = 100 * time.Millisecond

	// DefaultSlowInterval is the minimum spacing of CPU and memory refreshes.
	DefaultSlowInterval = time.Second
)
