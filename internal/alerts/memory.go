package alerts

import (
	"context"
	"sync"
	"time"
)

// MemoryPublisher collects alerts in memory. For tests and local runs.
type MemoryPublisher struct {
	mu     sync.Mutex
	alerts []Alert
}

// NewMemoryPublisher creates an empty in-memory publisher.
func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{}
}

// Publish appends the alert.
func (p *MemoryPublisher) Publish(_ context.Context, alert Alert) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alerts = append(p.alerts, alert)
	return nil
}

// Close is a no-op.
func (p *MemoryPublisher) Close() error {
	return nil
}

// Alerts returns a copy of everything published so far.
func (p *MemoryPublisher) Alerts() []Alert {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Alert, len(p.alerts))
	copy(out, p.alerts)
	return out
}

// MemoryDeduper is a process-local Deduper. TTLs are honored against the
// wall clock, which is sufficient for tests.
type MemoryDeduper struct {
	mu   sync.Mutex
	sent map[string]time.Time
}

// NewMemoryDeduper creates an empty in-memory deduper.
func NewMemoryDeduper() *MemoryDeduper {
	return &MemoryDeduper{sent: make(map[string]time.Time)}
}

// MarkSent claims the key until its TTL lapses.
func (d *MemoryDeduper) MarkSent(_ context.Context, key string, ttl time.Duration) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if expiry, ok := d.sent[key]; ok && time.Now().Before(expiry) {
		return false, nil
	}
	d.sent[key] = time.Now().Add(ttl)
	return true, nil
}
