// Package collector is the implementation of the snapshot cache component.
// It maintains the hardware record in two tiers: identity facts refreshed on
// demand with a TTL, and utilisation figures refreshed by a background loop.
// Readers always get one coherent merged snapshot.
package collector

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/ubuntu/decorate"

	"github.com/hwqc/hwqc/internal/collector/sysinfo"
	"github.com/hwqc/hwqc/internal/collector/sysinfo/adapters"
	"github.com/hwqc/hwqc/internal/constants"
)

var (
	// ErrNotInitialized is returned when reading from a collector that was
	// never initialized.
	ErrNotInitialized = errors.New("collector has not been initialized")
	// ErrAlreadyInitialized is returned by a second Initialize call.
	ErrAlreadyInitialized = errors.New("collector has already been initialized")
	// ErrNotRunning is returned when shutting down a collector that is not
	// running.
	ErrNotRunning = errors.New("collector is not running")
)

// Source provides one hardware category per call. Implementations may fail
// or panic freely: the collector replaces any failed category with its
// documented default and never propagates the failure to readers.
type Source interface {
	DeviceID() (string, error)
	DeviceName() (string, error)
	Motherboard() (sysinfo.Motherboard, error)
	GPUs() ([]sysinfo.GPU, error)
	AudioDevices() ([]sysinfo.AudioDevice, error)
	CPUs() ([]sysinfo.CPU, error)
	Memory() (sysinfo.Memory, error)
	Volumes() ([]sysinfo.Volume, error)
	Network() (sysinfo.Network, error)
	Battery() (sysinfo.Battery, error)
}

type timeProvider interface {
	Now() time.Time
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time {
	return time.Now()
}

type state int

const (
	created state = iota
	running
	stopped
)

// staticTier holds the identity facts. They change only on hardware or
// firmware events, so they are refreshed lazily at read time.
type staticTier struct {
	deviceID    string
	deviceName  string
	motherboard sysinfo.Motherboard
	gpus        []sysinfo.GPU
	audio       []sysinfo.AudioDevice
}

// dynamicTier holds the utilisation figures refreshed by the background
// loop. CPU and memory are gated to the slow interval because the CPU usage
// measurement itself blocks for a sampling window.
type dynamicTier struct {
	cpus    []sysinfo.CPU
	memory  sysinfo.Memory
	storage []sysinfo.Volume
	network sysinfo.Network
	battery sysinfo.Battery
}

// Collector is an abstraction of the snapshot cache component.
type Collector struct {
	source       Source
	clock        timeProvider
	staticTTL    time.Duration
	fastInterval time.Duration
	slowInterval time.Duration

	// mu guards the tiers and the lifecycle state. Sources are never
	// invoked while it is held.
	mu       sync.Mutex
	static   staticTier
	dynamic  dynamicTier
	staticAt time.Time
	state    state

	cancel context.CancelFunc
	done   chan struct{}
}

type options struct {
	// Private members exported for tests.
	source       Source
	timeProvider timeProvider
	staticTTL    time.Duration
	fastInterval time.Duration
	slowInterval time.Duration
}

// Options represents an optional function to override Collector default values.
type Options func(*options)

// New returns a new Collector in the created state. Reads return the
// category defaults until Initialize has run.
func New(args ...Options) *Collector {
	opts := options{
		source:       adapters.New(),
		timeProvider: realTimeProvider{},
		staticTTL:    constants.DefaultStaticTTL,
		fastInterval: constants.DefaultFastInterval,
		slowInterval: constants.DefaultSlowInterval,
	}
	for _, opt := range args {
		opt(&opts)
	}

	snap := sysinfo.Default()
	return &Collector{
		source:       opts.source,
		clock:        opts.timeProvider,
		staticTTL:    opts.staticTTL,
		fastInterval: opts.fastInterval,
		slowInterval: opts.slowInterval,

		static: staticTier{
			deviceID:    snap.DeviceID,
			deviceName:  snap.DeviceName,
			motherboard: snap.Motherboard,
			gpus:        snap.GPUs,
			audio:       snap.Audio,
		},
		dynamic: dynamicTier{
			cpus:    snap.CPUs,
			memory:  snap.Memory,
			storage: snap.Storage,
			network: snap.Network,
			battery: snap.Battery,
		},
	}
}

// Initialize collects both tiers once and starts the background refresh
// loop. The loop stops when ctx is cancelled or Shutdown is called.
func (c *Collector) Initialize(ctx context.Context) (err error) {
	defer decorate.OnError(&err, "collector initialize failed")

	c.mu.Lock()
	if c.state != created {
		c.mu.Unlock()
		return ErrAlreadyInitialized
	}
	c.state = running
	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	c.cancel = cancel
	c.done = done
	c.mu.Unlock()

	slog.Debug("Initializing collector",
		"staticTTL", c.staticTTL, "fastInterval", c.fastInterval, "slowInterval", c.slowInterval)

	st := c.collectStatic()
	dyn := c.collectDynamic(true)

	c.mu.Lock()
	c.static = st
	c.staticAt = c.clock.Now()
	c.dynamic = dyn
	c.mu.Unlock()

	go c.refreshLoop(loopCtx, done)
	return nil
}

// Snapshot returns the current merged hardware record. When the static tier
// is older than the TTL it is re-collected first; the sources run without
// the lock held, and the result is only published if no concurrent reader
// refreshed in the meantime.
func (c *Collector) Snapshot() (sysinfo.Snapshot, error) {
	c.mu.Lock()
	switch c.state {
	case created:
		c.mu.Unlock()
		return sysinfo.Snapshot{}, ErrNotInitialized
	case stopped:
		// Serve the last cached record, without refreshing.
		snap := c.merged()
		c.mu.Unlock()
		return snap, nil
	}
	if c.clock.Now().Sub(c.staticAt) < c.staticTTL {
		snap := c.merged()
		c.mu.Unlock()
		return snap, nil
	}
	c.mu.Unlock()

	st := c.collectStatic()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == running && c.clock.Now().Sub(c.staticAt) >= c.staticTTL {
		c.static = st
		c.staticAt = c.clock.Now()
	}
	return c.merged(), nil
}

// Notify delivers one immediate snapshot to fn.
func (c *Collector) Notify(fn func(sysinfo.Snapshot)) error {
	snap, err := c.Snapshot()
	if err != nil {
		return err
	}
	fn(snap)
	return nil
}

// Shutdown stops the background refresh loop and waits for the in-flight
// iteration to finish. The cached record stays readable afterwards.
func (c *Collector) Shutdown() (err error) {
	defer decorate.OnError(&err, "collector shutdown failed")

	c.mu.Lock()
	if c.state != running {
		c.mu.Unlock()
		return ErrNotRunning
	}
	c.state = stopped
	cancel, done := c.cancel, c.done
	c.mu.Unlock()

	cancel()
	<-done
	slog.Debug("Collector stopped")
	return nil
}

// refreshLoop re-collects the dynamic tier on every tick until ctx is
// cancelled.
func (c *Collector) refreshLoop(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(c.fastInterval)
	defer ticker.Stop()

	lastSlow := c.clock.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		lastSlow = c.refreshDynamic(lastSlow)
	}
}

// refreshDynamic runs one refresh iteration. The storage, network and
// battery categories are collected every call; CPU and memory only when the
// slow interval has elapsed since lastSlow. Returns the new lastSlow.
func (c *Collector) refreshDynamic(lastSlow time.Time) time.Time {
	now := c.clock.Now()
	slow := now.Sub(lastSlow) >= c.slowInterval

	dyn := c.collectDynamic(slow)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.dynamic.storage = dyn.storage
	c.dynamic.network = dyn.network
	c.dynamic.battery = dyn.battery
	if slow {
		c.dynamic.cpus = dyn.cpus
		c.dynamic.memory = dyn.memory
		return now
	}
	return lastSlow
}

func (c *Collector) collectStatic() staticTier {
	return staticTier{
		deviceID:    collect("deviceId", c.source.DeviceID, sysinfo.Unavailable),
		deviceName:  collect("deviceName", c.source.DeviceName, sysinfo.Unavailable),
		motherboard: collect("motherboard", c.source.Motherboard, sysinfo.DefaultMotherboard()),
		gpus:        collect("gpu", c.source.GPUs, []sysinfo.GPU{}),
		audio:       collect("audio", c.source.AudioDevices, []sysinfo.AudioDevice{}),
	}
}

func (c *Collector) collectDynamic(includeSlow bool) dynamicTier {
	dyn := dynamicTier{
		storage: collect("storage", c.source.Volumes, []sysinfo.Volume{}),
		network: collect("network", c.source.Network, sysinfo.DefaultNetwork()),
		battery: collect("battery", c.source.Battery, sysinfo.DefaultBattery()),
	}
	if includeSlow {
		dyn.cpus = collect("cpu", c.source.CPUs, []sysinfo.CPU{})
		dyn.memory = collect("memory", c.source.Memory, sysinfo.DefaultMemory())
	}
	return dyn
}

// collect invokes one source method and shields the caller from its failure
// modes: an error or a panic is logged and replaced by the category default.
func collect[T any](category string, fn func() (T, error), fallback T) (out T) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Source panicked", "category", category, "panic", r)
			out = fallback
		}
	}()

	v, err := fn()
	if err != nil {
		slog.Error("Failed to collect category", "category", category, "error", err)
		return fallback
	}
	return v
}

// merged assembles the consumer-visible record from both tiers. Callers must
// hold mu.
func (c *Collector) merged() sysinfo.Snapshot {
	return sysinfo.Snapshot{
		DeviceID:    c.static.deviceID,
		DeviceName:  c.static.deviceName,
		Motherboard: c.static.motherboard,
		GPUs:        c.static.gpus,
		Audio:       c.static.audio,

		CPUs:    c.dynamic.cpus,
		Memory:  c.dynamic.memory,
		Storage: c.dynamic.storage,
		Network: c.dynamic.network,
		Battery: c.dynamic.battery,
	}
}
