package ports

import (
	"context"
	"time"

	"kitchen/internal/core/domain/model/kernel"
)

// EventRecord is an event as the journal stores it.
type EventRecord struct {
	Topic        kernel.Topic
	Seq          int64 // position within Topic, assigned by the journal
	AggregateRef string
	Version      int // position within the aggregate stream, 1-based
	EventType    string
	Payload      []byte
	RecordedAt   time.Time
}

// EventJournal is the durable, append-only store behind the event log.
type EventJournal interface {
	// Append stores record as the next event of its aggregate stream. When
	// expectedVersion is not kernel.AnyVersion and the stream does not hold
	// exactly that many events, nothing is stored and the error wraps
	// errs.ErrVersionIsInvalid. The returned record carries Seq, Version and
	// RecordedAt.
	Append(ctx context.Context, record EventRecord, expectedVersion int) (EventRecord, error)

	// Load returns every record of topic in append order.
	Load(ctx context.Context, topic kernel.Topic) ([]EventRecord, error)

	// LoadStream returns the records of one aggregate in append order.
	LoadStream(ctx context.Context, topic kernel.Topic, aggregateRef string) ([]EventRecord, error)
}
