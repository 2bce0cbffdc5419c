package stablevec

import (
	"sync/atomic"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Collectors are called synchronously from the mutating operation; keep them cheap.
//
// Every element that becomes mapped is counted by exactly one RecordInsert,
// whichever insertion method put it there. Positional insertions (InsertAt,
// InsertAtArbitraryIndex and Set on an unmapped index) additionally call
// RecordInsertAt, also when they fail. Set on a mapped index replaces the
// element in place and records nothing.
type MetricsCollector interface {
	// RecordInsert is called after each successful insertion.
	// reused is true when the element went into a previously freed slot.
	RecordInsert(reused bool)

	// RecordInsertAt is called after each positional insertion attempt.
	// grown is the number of slots appended to the backing array.
	RecordInsertAt(grown int, err error)

	// RecordRemove is called after each removal (including retain removals).
	RecordRemove(err error)

	// RecordLookupMiss is called after each failed lookup.
	RecordLookupMiss()

	// RecordClear is called after each clear.
	RecordClear(dropped int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordInsert(bool)        {}
func (NoopMetricsCollector) RecordInsertAt(int, error) {}
func (NoopMetricsCollector) RecordRemove(error)        {}
func (NoopMetricsCollector) RecordLookupMiss()         {}
func (NoopMetricsCollector) RecordClear(int)           {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	InsertCount     atomic.Int64
	ReuseCount      atomic.Int64
	InsertAtCount   atomic.Int64
	InsertAtErrors  atomic.Int64
	GrownSlots      atomic.Int64
	RemoveCount     atomic.Int64
	RemoveErrors    atomic.Int64
	LookupMisses    atomic.Int64
	ClearCount      atomic.Int64
	ClearedElements atomic.Int64
}

// RecordInsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInsert(reused bool) {
	b.InsertCount.Add(1)
	if reused {
		b.ReuseCount.Add(1)
	}
}

// RecordInsertAt implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInsertAt(grown int, err error) {
	b.InsertAtCount.Add(1)
	if err != nil {
		b.InsertAtErrors.Add(1)
		return
	}
	b.GrownSlots.Add(int64(grown))
}

// RecordRemove implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRemove(err error) {
	b.RemoveCount.Add(1)
	if err != nil {
		b.RemoveErrors.Add(1)
	}
}

// RecordLookupMiss implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLookupMiss() {
	b.LookupMisses.Add(1)
}

// RecordClear implements MetricsCollector.
func (b *BasicMetricsCollector) RecordClear(dropped int) {
	b.ClearCount.Add(1)
	b.ClearedElements.Add(int64(dropped))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		InsertCount:     b.InsertCount.Load(),
		ReuseCount:      b.ReuseCount.Load(),
		InsertAtCount:   b.InsertAtCount.Load(),
		InsertAtErrors:  b.InsertAtErrors.Load(),
		GrownSlots:      b.GrownSlots.Load(),
		RemoveCount:     b.RemoveCount.Load(),
		RemoveErrors:    b.RemoveErrors.Load(),
		LookupMisses:    b.LookupMisses.Load(),
		ClearCount:      b.ClearCount.Load(),
		ClearedElements: b.ClearedElements.Load(),
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	InsertCount     int64
	ReuseCount      int64
	InsertAtCount   int64
	InsertAtErrors  int64
	GrownSlots      int64
	RemoveCount     int64
	RemoveErrors    int64
	LookupMisses    int64
	ClearCount      int64
	ClearedElements int64
}
