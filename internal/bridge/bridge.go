// Package bridge pushes hardware snapshots to a local QC viewer over
// WebSocket. Every viewer gets one snapshot immediately on connect, then one
// per push interval until it disconnects or the bridge shuts down.
package bridge

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/ubuntu/decorate"

	"github.com/hwqc/hwqc/internal/collector/sysinfo"
	"github.com/hwqc/hwqc/internal/constants"
)

// Snapshotter provides the current hardware record.
type Snapshotter interface {
	Snapshot() (sysinfo.Snapshot, error)
}

// Bridge is an abstraction of the viewer bridge component.
type Bridge struct {
	source   Snapshotter
	addr     string
	interval time.Duration

	upgrader websocket.Upgrader
	viewers  atomic.Int32
}

type options struct {
	// Private member exported for tests.
	interval time.Duration
}

// Options represents an optional function to override Bridge default values.
type Options func(*options)

// New returns a new Bridge serving snapshots from source on addr.
func New(source Snapshotter, addr string, args ...Options) *Bridge {
	opts := options{
		interval: constants.DefaultPushInterval,
	}
	for _, opt := range args {
		opt(&opts)
	}

	return &Bridge{
		source:   source,
		addr:     addr,
		interval: opts.interval,
		upgrader: websocket.Upgrader{
			// The viewer is a local application, not a browser page.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Serve listens on the configured address and serves viewer connections
// until ctx is cancelled. It blocks.
func (b *Bridge) Serve(ctx context.Context) (err error) {
	defer decorate.OnError(&err, "bridge serve failed")

	ln, err := net.Listen("tcp", b.addr)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		b.serveViewer(ctx, w, r)
	})
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(sCtx); err != nil {
			slog.Warn("Bridge shutdown did not finish cleanly", "error", err)
		}
	}()

	slog.Info("Bridge listening", "addr", ln.Addr())
	if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// serveViewer upgrades one viewer connection and runs its push loop.
func (b *Bridge) serveViewer(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("Failed to upgrade viewer connection", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()

	slog.Info("Viewer connected", "remote", conn.RemoteAddr(), "viewers", b.viewers.Add(1))
	defer func() {
		slog.Info("Viewer disconnected", "remote", conn.RemoteAddr(), "viewers", b.viewers.Add(-1))
	}()

	// Control frames are only processed while reading. The viewer never
	// sends data, so the read loop doubles as disconnect detection.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := b.push(conn); err != nil {
		slog.Warn("Failed to push first snapshot", "remote", conn.RemoteAddr(), "error", err)
		return
	}

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			data := websocket.FormatCloseMessage(websocket.CloseGoingAway, "bridge shutting down")
			_ = conn.WriteControl(websocket.CloseMessage, data, time.Now().Add(time.Second))
			return
		case <-gone:
			return
		case <-ticker.C:
			if err := b.push(conn); err != nil {
				slog.Debug("Failed to push snapshot", "remote", conn.RemoteAddr(), "error", err)
				return
			}
		}
	}
}

func (b *Bridge) push(conn *websocket.Conn) error {
	snap, err := b.source.Snapshot()
	if err != nil {
		return err
	}
	return conn.WriteJSON(snap)
}
