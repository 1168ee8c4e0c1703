package collector_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hwqc/hwqc/internal/collector"
	"github.com/hwqc/hwqc/internal/collector/sysinfo"
)

type testSource struct {
	mu        sync.Mutex
	calls     map[string]int
	failing   map[string]bool
	panicking map[string]bool
}

func newTestSource() *testSource {
	return &testSource{
		calls:     make(map[string]int),
		failing:   make(map[string]bool),
		panicking: make(map[string]bool),
	}
}

func (s *testSource) track(category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[category]++
	if s.panicking[category] {
		panic("source exploded")
	}
	if s.failing[category] {
		return errors.New("source failed")
	}
	return nil
}

func (s *testSource) count(category string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[category]
}

func (s *testSource) DeviceID() (string, error) {
	if err := s.track("deviceId"); err != nil {
		return "", err
	}
	return "1a2b3c4d-5e6f-7a8b-9c0d-1e2f3a4b5c6d", nil
}

func (s *testSource) DeviceName() (string, error) {
	if err := s.track("deviceName"); err != nil {
		return "", err
	}
	return "qc-bench-03", nil
}

func (s *testSource) Motherboard() (sysinfo.Motherboard, error) {
	if err := s.track("motherboard"); err != nil {
		return sysinfo.Motherboard{}, err
	}
	return sysinfo.Motherboard{
		Product:      "PRIME B550-PLUS",
		Manufacturer: "ASUSTeK COMPUTER INC.",
		BIOSVersion:  "2803",
		BIOSSerial:   "210987654321",
		BoardSerial:  "MB-7741-0042",
	}, nil
}

func (s *testSource) GPUs() ([]sysinfo.GPU, error) {
	if err := s.track("gpu"); err != nil {
		return nil, err
	}
	return []sysinfo.GPU{{Name: "GeForce RTX 4060", DriverVersion: "551.23", VRAM: "8.00"}}, nil
}

func (s *testSource) AudioDevices() ([]sysinfo.AudioDevice, error) {
	if err := s.track("audio"); err != nil {
		return nil, err
	}
	return []sysinfo.AudioDevice{{Name: "Realtek High Definition Audio", Manufacturer: "Realtek"}}, nil
}

func (s *testSource) CPUs() ([]sysinfo.CPU, error) {
	if err := s.track("cpu"); err != nil {
		return nil, err
	}
	return []sysinfo.CPU{{Name: "AMD Ryzen 7 5800X 8-Core Processor", Cores: 8, Threads: 16, ClockSpeedMHz: 3800, UsagePercent: 7.25}}, nil
}

func (s *testSource) Memory() (sysinfo.Memory, error) {
	if err := s.track("memory"); err != nil {
		return sysinfo.Memory{}, err
	}
	return sysinfo.Memory{TotalGB: 32, AvailableGB: 24, UsedGB: 8, Percent: 25, Slots: []sysinfo.MemorySlot{}, TotalCapacity: "32 GB"}, nil
}

func (s *testSource) Volumes() ([]sysinfo.Volume, error) {
	if err := s.track("storage"); err != nil {
		return nil, err
	}
	return []sysinfo.Volume{{Drive: "C:", Type: sysinfo.DriveLocal, SizeGB: 931.51, FreeGB: 420.77, Model: "Samsung SSD 980 PRO 1TB", Interface: "SCSI"}}, nil
}

func (s *testSource) Network() (sysinfo.Network, error) {
	if err := s.track("network"); err != nil {
		return sysinfo.Network{}, err
	}
	return sysinfo.Network{
		Ethernet: []sysinfo.NetworkAdapter{{Name: "enp4s0", MACAddress: "aa:bb:cc:dd:ee:ff", IPAddress: "192.168.1.20", Status: sysinfo.Connected}},
		WLAN:     []sysinfo.NetworkAdapter{},
	}, nil
}

func (s *testSource) Battery() (sysinfo.Battery, error) {
	if err := s.track("battery"); err != nil {
		return sysinfo.Battery{}, err
	}
	return sysinfo.Battery{Percent: 80, PowerPlugged: false, IsDesktop: false}, nil
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Unix(1_750_000_000, 0)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// quietCadence keeps the background loop out of the way so tests can drive
// refreshes deterministically.
func quietCadence() collector.Options {
	return collector.WithCadence(time.Hour, time.Hour)
}

func newForTests(t *testing.T, src *testSource, clock *testClock, args ...collector.Options) *collector.Collector {
	t.Helper()

	opts := append([]collector.Options{
		collector.WithSource(src),
		collector.WithTimeProvider(clock),
		quietCadence(),
	}, args...)
	return collector.New(opts...)
}

func TestSnapshotBeforeInitialize(t *testing.T) {
	t.Parallel()

	c := newForTests(t, newTestSource(), newTestClock())

	_, err := c.Snapshot()
	require.ErrorIs(t, err, collector.ErrNotInitialized, "Snapshot should refuse to run before Initialize")
}

func TestDoubleInitialize(t *testing.T) {
	t.Parallel()

	c := newForTests(t, newTestSource(), newTestClock())

	require.NoError(t, c.Initialize(context.Background()), "Setup: first Initialize should succeed")
	t.Cleanup(func() { _ = c.Shutdown() })

	err := c.Initialize(context.Background())
	require.ErrorIs(t, err, collector.ErrAlreadyInitialized, "second Initialize should be refused")
}

func TestShutdownLifecycle(t *testing.T) {
	t.Parallel()

	c := newForTests(t, newTestSource(), newTestClock())

	require.ErrorIs(t, c.Shutdown(), collector.ErrNotRunning, "Shutdown before Initialize should be refused")

	require.NoError(t, c.Initialize(context.Background()))
	require.NoError(t, c.Shutdown(), "first Shutdown should succeed")
	require.ErrorIs(t, c.Shutdown(), collector.ErrNotRunning, "second Shutdown should be refused")

	err := c.Initialize(context.Background())
	require.ErrorIs(t, err, collector.ErrAlreadyInitialized, "a stopped collector should not restart")
}

func TestInitializeCollectsBothTiers(t *testing.T) {
	t.Parallel()

	src := newTestSource()
	c := newForTests(t, src, newTestClock())

	require.NoError(t, c.Initialize(context.Background()))
	t.Cleanup(func() { _ = c.Shutdown() })

	snap, err := c.Snapshot()
	require.NoError(t, err)

	assert.Equal(t, "1a2b3c4d-5e6f-7a8b-9c0d-1e2f3a4b5c6d", snap.DeviceID)
	assert.Equal(t, "qc-bench-03", snap.DeviceName)
	assert.Equal(t, "PRIME B550-PLUS", snap.Motherboard.Product)
	require.Len(t, snap.GPUs, 1)
	require.Len(t, snap.CPUs, 1)
	require.Len(t, snap.Storage, 1)
	assert.Equal(t, uint(80), snap.Battery.Percent)

	for _, category := range []string{"deviceId", "deviceName", "motherboard", "gpu", "audio", "cpu", "memory", "storage", "network", "battery"} {
		assert.Equal(t, 1, src.count(category), "Initialize should collect category %q exactly once", category)
	}
}

func TestCategoryFailureFallsBackToDefault(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		failing   []string
		panicking []string

		check func(t *testing.T, snap sysinfo.Snapshot)
	}{
		"Motherboard error": {
			failing: []string{"motherboard"},
			check: func(t *testing.T, snap sysinfo.Snapshot) {
				t.Helper()
				assert.Equal(t, sysinfo.DefaultMotherboard(), snap.Motherboard)
				assert.Equal(t, "qc-bench-03", snap.DeviceName, "other categories should be unaffected")
			},
		},
		"Device identity error": {
			failing: []string{"deviceId"},
			check: func(t *testing.T, snap sysinfo.Snapshot) {
				t.Helper()
				assert.Equal(t, "N/A", snap.DeviceID)
			},
		},
		"GPU panic": {
			panicking: []string{"gpu"},
			check: func(t *testing.T, snap sysinfo.Snapshot) {
				t.Helper()
				assert.NotNil(t, snap.GPUs)
				assert.Empty(t, snap.GPUs, "a panicking category should fall back to an empty list")
				require.Len(t, snap.CPUs, 1, "other categories should be unaffected")
			},
		},
		"Battery panic": {
			panicking: []string{"battery"},
			check: func(t *testing.T, snap sysinfo.Snapshot) {
				t.Helper()
				assert.Equal(t, sysinfo.DefaultBattery(), snap.Battery)
			},
		},
		"Memory error": {
			failing: []string{"memory"},
			check: func(t *testing.T, snap sysinfo.Snapshot) {
				t.Helper()
				assert.Equal(t, sysinfo.DefaultMemory(), snap.Memory)
			},
		},
		"Network error and storage panic": {
			failing:   []string{"network"},
			panicking: []string{"storage"},
			check: func(t *testing.T, snap sysinfo.Snapshot) {
				t.Helper()
				assert.Equal(t, sysinfo.DefaultNetwork(), snap.Network)
				assert.NotNil(t, snap.Storage)
				assert.Empty(t, snap.Storage)
			},
		},
		"Every category fails": {
			failing: []string{"deviceId", "deviceName", "motherboard", "gpu", "audio", "cpu", "memory", "storage", "network", "battery"},
			check: func(t *testing.T, snap sysinfo.Snapshot) {
				t.Helper()
				assert.Equal(t, sysinfo.Default(), snap, "an all-failing source should produce the default snapshot")
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			src := newTestSource()
			for _, category := range tc.failing {
				src.failing[category] = true
			}
			for _, category := range tc.panicking {
				src.panicking[category] = true
			}

			c := newForTests(t, src, newTestClock())
			require.NoError(t, c.Initialize(context.Background()), "Initialize should never fail on source errors")
			t.Cleanup(func() { _ = c.Shutdown() })

			snap, err := c.Snapshot()
			require.NoError(t, err, "Snapshot should never fail on source errors")
			tc.check(t, snap)
		})
	}
}

func TestStaticTierTTL(t *testing.T) {
	t.Parallel()

	src := newTestSource()
	clock := newTestClock()
	c := newForTests(t, src, clock, collector.WithStaticTTL(60*time.Second))

	require.NoError(t, c.Initialize(context.Background()))
	t.Cleanup(func() { _ = c.Shutdown() })

	_, err := c.Snapshot()
	require.NoError(t, err)
	_, err = c.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 1, src.count("motherboard"), "reads within the TTL should not re-collect the static tier")

	clock.advance(59 * time.Second)
	_, err = c.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 1, src.count("motherboard"), "a read just inside the TTL should serve the cache")

	clock.advance(time.Second)
	_, err = c.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 2, src.count("motherboard"), "a read at the TTL boundary should refresh the static tier")

	_, err = c.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 2, src.count("motherboard"), "the refresh should reset the TTL")
}

func TestStaticRefreshDoesNotTouchDynamicTier(t *testing.T) {
	t.Parallel()

	src := newTestSource()
	clock := newTestClock()
	c := newForTests(t, src, clock)

	require.NoError(t, c.Initialize(context.Background()))
	t.Cleanup(func() { _ = c.Shutdown() })

	clock.advance(2 * time.Minute)
	_, err := c.Snapshot()
	require.NoError(t, err)

	assert.Equal(t, 2, src.count("gpu"), "static categories should refresh")
	assert.Equal(t, 1, src.count("cpu"), "dynamic categories should not be collected on the read path")
	assert.Equal(t, 1, src.count("storage"), "dynamic categories should not be collected on the read path")
}

func TestRefreshDynamicCadence(t *testing.T) {
	t.Parallel()

	src := newTestSource()
	clock := newTestClock()
	c := newForTests(t, src, clock, collector.WithCadence(100*time.Millisecond, time.Second))

	require.NoError(t, c.Initialize(context.Background()))
	require.NoError(t, c.Shutdown(), "Setup: stop the loop so iterations can be driven by hand")

	lastSlow := clock.Now()

	// Fast tick: only storage, network and battery refresh.
	clock.advance(100 * time.Millisecond)
	lastSlow = c.RefreshDynamic(lastSlow)
	assert.Equal(t, 2, src.count("storage"))
	assert.Equal(t, 2, src.count("network"))
	assert.Equal(t, 2, src.count("battery"))
	assert.Equal(t, 1, src.count("cpu"), "cpu should stay gated below the slow interval")
	assert.Equal(t, 1, src.count("memory"), "memory should stay gated below the slow interval")

	// More fast ticks up to just below the slow interval.
	for range 8 {
		clock.advance(100 * time.Millisecond)
		lastSlow = c.RefreshDynamic(lastSlow)
	}
	assert.Equal(t, 1, src.count("cpu"), "cpu should stay gated until a full second has elapsed")

	// The tick that crosses the slow interval refreshes cpu and memory too.
	clock.advance(100 * time.Millisecond)
	lastSlow = c.RefreshDynamic(lastSlow)
	assert.Equal(t, 2, src.count("cpu"))
	assert.Equal(t, 2, src.count("memory"))
	assert.Equal(t, 11, src.count("storage"), "fast categories should refresh on every tick")

	// The gate re-arms from the slow refresh.
	clock.advance(100 * time.Millisecond)
	c.RefreshDynamic(lastSlow)
	assert.Equal(t, 2, src.count("cpu"))
}

func TestShutdownStopsRefreshing(t *testing.T) {
	t.Parallel()

	src := newTestSource()
	c := collector.New(
		collector.WithSource(src),
		collector.WithTimeProvider(newTestClock()),
		collector.WithCadence(time.Millisecond, time.Hour),
	)

	require.NoError(t, c.Initialize(context.Background()))

	// Let the loop run a little.
	require.Eventually(t, func() bool { return src.count("storage") > 2 }, time.Second, time.Millisecond,
		"the background loop should refresh the dynamic tier")

	require.NoError(t, c.Shutdown(), "Shutdown should join the in-flight iteration")

	settled := src.count("storage")
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, settled, src.count("storage"), "no refresh should run after Shutdown returns")
}

func TestSnapshotAfterShutdownServesCache(t *testing.T) {
	t.Parallel()

	src := newTestSource()
	clock := newTestClock()
	c := newForTests(t, src, clock)

	require.NoError(t, c.Initialize(context.Background()))

	before, err := c.Snapshot()
	require.NoError(t, err)
	require.NoError(t, c.Shutdown())

	calls := src.count("motherboard")
	clock.advance(time.Hour)

	after, err := c.Snapshot()
	require.NoError(t, err, "reads after Shutdown should serve the cache")
	assert.Equal(t, before, after, "the cached record should be unchanged")
	assert.Equal(t, calls, src.count("motherboard"), "no source should be invoked after Shutdown")
}

func TestContextCancelStopsLoop(t *testing.T) {
	t.Parallel()

	src := newTestSource()
	ctx, cancel := context.WithCancel(context.Background())
	c := collector.New(
		collector.WithSource(src),
		collector.WithTimeProvider(newTestClock()),
		collector.WithCadence(time.Millisecond, time.Hour),
	)

	require.NoError(t, c.Initialize(ctx))
	require.Eventually(t, func() bool { return src.count("storage") > 2 }, time.Second, time.Millisecond)

	cancel()
	require.Eventually(t, func() bool {
		settled := src.count("storage")
		time.Sleep(10 * time.Millisecond)
		return settled == src.count("storage")
	}, time.Second, 10*time.Millisecond, "cancelling the context should stop the loop")

	require.NoError(t, c.Shutdown(), "Shutdown should still succeed after the context was cancelled")
}

func TestNotify(t *testing.T) {
	t.Parallel()

	c := newForTests(t, newTestSource(), newTestClock())

	require.ErrorIs(t, c.Notify(func(sysinfo.Snapshot) {}), collector.ErrNotInitialized,
		"Notify should refuse to run before Initialize")

	require.NoError(t, c.Initialize(context.Background()))
	t.Cleanup(func() { _ = c.Shutdown() })

	var got sysinfo.Snapshot
	require.NoError(t, c.Notify(func(snap sysinfo.Snapshot) { got = snap }))
	assert.Equal(t, "qc-bench-03", got.DeviceName, "Notify should deliver the current snapshot")
}

func TestConcurrentSnapshots(t *testing.T) {
	t.Parallel()

	src := newTestSource()
	clock := newTestClock()
	c := newForTests(t, src, clock)

	require.NoError(t, c.Initialize(context.Background()))
	t.Cleanup(func() { _ = c.Shutdown() })

	clock.advance(2 * time.Minute)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap, err := c.Snapshot()
			assert.NoError(t, err)
			assert.Equal(t, "qc-bench-03", snap.DeviceName)
		}()
	}
	wg.Wait()
}
