// Package connectivity tracks whether the backend is reachable.
// The monitor is a passive observer: it never retries requests, it only
// reports the last observed state to whoever asks.
package connectivity

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rentafleet/fleetapi-go/internal/logging"
)

// ProbeFunc checks whether the backend is reachable. A nil error means
// the network path works.
type ProbeFunc func(ctx context.Context) error

const probeTimeout = 3 * time.Second

// Monitor holds the process-wide online/offline state.
//
// It starts online and stays online until a probe says otherwise
// (fail-open): a broken or missing probe must not block all traffic.
type Monitor struct {
	probe  ProbeFunc
	log    logging.Logger
	online atomic.Bool

	mu        sync.Mutex
	listeners map[int]func(bool)
	nextID    int
}

func New(probe ProbeFunc, log logging.Logger) *Monitor {
	if log == nil {
		log = logging.Discard()
	}
	m := &Monitor{
		probe:     probe,
		log:       log,
		listeners: make(map[int]func(bool)),
	}
	m.online.Store(true)
	return m
}

// HTTPProbe reports the backend reachable when a HEAD against baseURL
// yields any HTTP response at all. Status codes do not matter here; a 404
// still proves the network path works.
//
// A baseURL that cannot form a request at all yields a nil probe: such a
// probe can never observe the network, and a monitor without a probe
// keeps its fail-open online state rather than flipping offline forever.
func HTTPProbe(baseURL string, client *http.Client) ProbeFunc {
	if client == nil {
		client = &http.Client{Timeout: probeTimeout}
	}
	if _, err := http.NewRequest(http.MethodHead, baseURL, nil); err != nil {
		return nil
	}
	return func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, baseURL, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		resp.Body.Close()
		return nil
	}
}

func (m *Monitor) IsOnline() bool {
	return m.online.Load()
}

// OnChange registers a listener called on every online/offline flip.
// The returned function unsubscribes it.
func (m *Monitor) OnChange(fn func(online bool)) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

// Watch probes reachability every interval until ctx is cancelled.
// Without a probe the monitor keeps its fail-open online state.
func (m *Monitor) Watch(ctx context.Context, interval time.Duration) {
	if m.probe == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, probeTimeout)
			err := m.probe(pctx)
			cancel()
			m.setOnline(err == nil)
		case <-ctx.Done():
			return
		}
	}
}

func (m *Monitor) setOnline(online bool) {
	if m.online.Swap(online) == online {
		return
	}
	m.log.Info(context.Background(), "connectivity changed", "online", online)

	m.mu.Lock()
	fns := make([]func(bool), 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(online)
	}
}
