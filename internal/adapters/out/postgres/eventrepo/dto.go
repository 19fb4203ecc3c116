// Package eventrepo stores the event journal in PostgreSQL through GORM.
// One row is one event; a unique index on (topic, aggregate_ref, version)
// turns a lost optimistic-concurrency race into a constraint violation.
package eventrepo

import (
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/ports"
)

// EventDTO is the row layout of the events table.
type EventDTO struct {
	Seq          int64     `gorm:"primaryKey;autoIncrement"`
	Topic        string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_events_stream_version,priority:1"`
	AggregateRef string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_events_stream_version,priority:2"`
	Version      int       `gorm:"not null;uniqueIndex:idx_events_stream_version,priority:3"`
	EventType    string    `gorm:"type:varchar(128);not null"`
	Payload      []byte    `gorm:"type:jsonb;not null"`
	RecordedAt   time.Time `gorm:"not null"`
}

func (EventDTO) TableName() string {
	return "events"
}

func fromRecord(r ports.EventRecord) EventDTO {
	return EventDTO{
		Topic:        r.Topic.String(),
		AggregateRef: r.AggregateRef,
		Version:      r.Version,
		EventType:    r.EventType,
		Payload:      r.Payload,
		RecordedAt:   r.RecordedAt,
	}
}

func toRecord(dto EventDTO) ports.EventRecord {
	return ports.EventRecord{
		Topic:        kernel.Topic(dto.Topic),
		Seq:          dto.Seq,
		AggregateRef: dto.AggregateRef,
		Version:      dto.Version,
		EventType:    dto.EventType,
		Payload:      dto.Payload,
		RecordedAt:   dto.RecordedAt.UTC(),
	}
}
