package metrics

import "sync/atomic"

// MetricID identifies a lifecycle counter.
type MetricID uint8

const (
	// MetricSaveSuccess counts saves that passed validation and committed.
	MetricSaveSuccess MetricID = iota
	// MetricSaveValidationFailed counts saves rejected by the validation gate.
	MetricSaveValidationFailed
	// MetricSaveExternalError counts saves aborted by resolver or store errors.
	MetricSaveExternalError
	// MetricSessionCreated counts first successful saves.
	MetricSessionCreated
	// MetricSessionUpdated counts successful saves after the first.
	MetricSessionUpdated
	// MetricSessionDestroyed counts destroy calls that committed.
	MetricSessionDestroyed
	// MetricCallbackInvocations counts individual hook executions.
	MetricCallbackInvocations

	// MetricIDCount is the number of defined metric IDs.
	MetricIDCount
)

// Config controls metric collection.
type Config struct {
	Enabled bool
}

// Metrics holds atomic lifecycle counters. A nil or disabled instance is a
// no-op on every method.
type Metrics struct {
	enabled  bool
	counters [MetricIDCount]atomic.Uint64
}

// New creates a [Metrics] instance. When cfg.Enabled is false all operations
// are no-ops.
func New(cfg Config) *Metrics {
	return &Metrics{enabled: cfg.Enabled}
}

// Inc increments a counter by one.
func (m *Metrics) Inc(id MetricID) {
	m.Add(id, 1)
}

// Add increments a counter by n.
func (m *Metrics) Add(id MetricID, n uint64) {
	if m == nil || !m.enabled || id >= MetricIDCount {
		return
	}
	m.counters[id].Add(n)
}

// Get returns the current value of a counter.
func (m *Metrics) Get(id MetricID) uint64 {
	if m == nil || !m.enabled || id >= MetricIDCount {
		return 0
	}
	return m.counters[id].Load()
}

// Snapshot is a point-in-time copy of all counters.
type Snapshot struct {
	Counters [MetricIDCount]uint64
}

// Snapshot copies every counter at once. Individual counters are read
// atomically; the set as a whole is not a consistent cut.
func (m *Metrics) Snapshot() Snapshot {
	var snap Snapshot
	if m == nil || !m.enabled {
		return snap
	}
	for i := range m.counters {
		snap.Counters[i] = m.counters[i].Load()
	}
	return snap
}
