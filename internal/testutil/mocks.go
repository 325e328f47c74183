package testutil

import (
	"rosterd/internal/models"
	"rosterd/internal/providers"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu               sync.Mutex
	Requests         int
	SweepRuns        int
	NewsSwept        int
	WarningsIssued   int
	ReprimandsIssued int
	Dismissals       int
	RosterTotals     map[string]int
	NewsTotal        int
	CommandsTotal    int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{RosterTotals: make(map[string]int)}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits()                                    {}
func (m *MockMetrics) IncCacheMisses()                                  {}
func (m *MockMetrics) ObserveSweepDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SweepRuns++
}
func (m *MockMetrics) AddNewsSwept(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NewsSwept += count
}
func (m *MockMetrics) IncWarningsIssued() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WarningsIssued++
}
func (m *MockMetrics) IncReprimandsIssued() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReprimandsIssued++
}
func (m *MockMetrics) IncDismissals() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Dismissals++
}
func (m *MockMetrics) SetRosterTotal(category string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RosterTotals[category] = count
}
func (m *MockMetrics) SetNewsTotal(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NewsTotal = count
}
func (m *MockMetrics) SetCommandsTotal(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CommandsTotal = count
}

// MockRoleMarker implements services.RoleMarker and records transitions.
type MockRoleMarker struct {
	mu    sync.Mutex
	Calls []string
	Err   error
}

func (m *MockRoleMarker) record(call string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, call)
	return m.Err
}

func (m *MockRoleMarker) SetLeaderMarker(id string) error { return m.record("leader:" + id) }
func (m *MockRoleMarker) SetDeputyMarker(id string) error { return m.record("deputy:" + id) }
func (m *MockRoleMarker) RemoveMarker(category models.Category, id string) error {
	return m.record("remove:" + string(category) + ":" + id)
}
func (m *MockRoleMarker) ApplyTier1(id string) error    { return m.record("tier1:" + id) }
func (m *MockRoleMarker) ApplyTier2(id string) error    { return m.record("tier2:" + id) }
func (m *MockRoleMarker) ClearAllTiers(id string) error { return m.record("clear:" + id) }
