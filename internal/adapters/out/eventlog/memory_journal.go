package eventlog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/ports"
	"kitchen/internal/pkg/errs"
)

// MemoryJournal keeps records in process memory. It is the journal used by
// tests and by EVENT_STORE=memory.
type MemoryJournal struct {
	mu       sync.Mutex
	records  map[kernel.Topic][]ports.EventRecord
	versions map[kernel.Topic]map[string]int
	now      func() time.Time
}

func NewMemoryJournal() *MemoryJournal {
	return &MemoryJournal{
		records:  make(map[kernel.Topic][]ports.EventRecord),
		versions: make(map[kernel.Topic]map[string]int),
		now:      time.Now,
	}
}

func (j *MemoryJournal) Append(_ context.Context, record ports.EventRecord, expectedVersion int) (ports.EventRecord, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	streams, ok := j.versions[record.Topic]
	if !ok {
		streams = make(map[string]int)
		j.versions[record.Topic] = streams
	}

	current := streams[record.AggregateRef]
	if expectedVersion != kernel.AnyVersion && expectedVersion != current {
		return ports.EventRecord{}, errs.NewVersionIsInvalidErrorWithCause("version",
			fmt.Errorf("expected %d, %s %s is at %d", expectedVersion, record.Topic, record.AggregateRef, current))
	}

	record.Seq = int64(len(j.records[record.Topic]) + 1)
	record.Version = current + 1
	record.RecordedAt = j.now().UTC()
	record.Payload = append([]byte(nil), record.Payload...)

	j.records[record.Topic] = append(j.records[record.Topic], record)
	streams[record.AggregateRef] = record.Version

	return record, nil
}

func (j *MemoryJournal) Load(_ context.Context, topic kernel.Topic) ([]ports.EventRecord, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	records := make([]ports.EventRecord, len(j.records[topic]))
	copy(records, j.records[topic])
	return records, nil
}

func (j *MemoryJournal) LoadStream(_ context.Context, topic kernel.Topic, aggregateRef string) ([]ports.EventRecord, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	records := make([]ports.EventRecord, 0, j.versions[topic][aggregateRef])
	for _, r := range j.records[topic] {
		if r.AggregateRef == aggregateRef {
			records = append(records, r)
		}
	}
	return records, nil
}
