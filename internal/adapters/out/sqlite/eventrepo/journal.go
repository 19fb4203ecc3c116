package eventrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/ports"
	"kitchen/internal/pkg/errs"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
	topic         TEXT    NOT NULL,
	seq           INTEGER NOT NULL,
	aggregate_ref TEXT    NOT NULL,
	version       INTEGER NOT NULL,
	event_type    TEXT    NOT NULL,
	payload       BLOB    NOT NULL,
	recorded_at   INTEGER NOT NULL,
	PRIMARY KEY (topic, seq),
	UNIQUE (topic, aggregate_ref, version)
);
CREATE INDEX IF NOT EXISTS events_stream_idx ON events (topic, aggregate_ref, version);
`

var _ ports.EventJournal = &Journal{}

// Journal stores the event log in a single SQLite file.
type Journal struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating when needed) the journal at path and applies the schema.
func Open(path string) (*Journal, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errs.NewValueIsRequiredError("path")
	}

	// modernc.org/sqlite reads pragmas only from _pragma. Writers begin
	// IMMEDIATE and queue on busy_timeout.
	dsn := filepath.Clean(path) +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=foreign_keys(1)" +
		"&_pragma=busy_timeout(5000)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_txlock=immediate"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite journal: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite journal: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Journal{db: db, now: time.Now}, nil
}

func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

func (j *Journal) Append(ctx context.Context, record ports.EventRecord, expectedVersion int) (ports.EventRecord, error) {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return ports.EventRecord{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var current int
	if err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) FROM events WHERE topic = ? AND aggregate_ref = ?`,
		string(record.Topic), record.AggregateRef,
	).Scan(&current); err != nil {
		return ports.EventRecord{}, fmt.Errorf("read stream version: %w", err)
	}

	if expectedVersion != kernel.AnyVersion && expectedVersion != current {
		return ports.EventRecord{}, versionConflict(record, expectedVersion, current)
	}

	if err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) + 1 FROM events WHERE topic = ?`,
		string(record.Topic),
	).Scan(&record.Seq); err != nil {
		return ports.EventRecord{}, fmt.Errorf("read topic seq: %w", err)
	}

	record.Version = current + 1
	record.RecordedAt = time.UnixMilli(toMillis(j.now())).UTC()

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO events (topic, seq, aggregate_ref, version, event_type, payload, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(record.Topic), record.Seq, record.AggregateRef, record.Version,
		record.EventType, record.Payload, toMillis(record.RecordedAt),
	); err != nil {
		if isConstraintError(err) {
			return ports.EventRecord{}, versionConflict(record, expectedVersion, current)
		}
		return ports.EventRecord{}, fmt.Errorf("insert event: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return ports.EventRecord{}, fmt.Errorf("commit: %w", err)
	}

	return record, nil
}

func (j *Journal) Load(ctx context.Context, topic kernel.Topic) ([]ports.EventRecord, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT topic, seq, aggregate_ref, version, event_type, payload, recorded_at
		 FROM events WHERE topic = ? ORDER BY seq`,
		string(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", topic, err)
	}
	return scanRecords(rows)
}

func (j *Journal) LoadStream(ctx context.Context, topic kernel.Topic, aggregateRef string) ([]ports.EventRecord, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT topic, seq, aggregate_ref, version, event_type, payload, recorded_at
		 FROM events WHERE topic = ? AND aggregate_ref = ? ORDER BY seq`,
		string(topic), aggregateRef,
	)
	if err != nil {
		return nil, fmt.Errorf("query %s %s: %w", topic, aggregateRef, err)
	}
	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]ports.EventRecord, error) {
	defer rows.Close()

	var records []ports.EventRecord
	for rows.Next() {
		var (
			r          ports.EventRecord
			topic      string
			recordedAt int64
		)
		if err := rows.Scan(&topic, &r.Seq, &r.AggregateRef, &r.Version, &r.EventType, &r.Payload, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		r.Topic = kernel.Topic(topic)
		r.RecordedAt = time.UnixMilli(recordedAt).UTC()
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return records, nil
}

func versionConflict(record ports.EventRecord, expected, current int) error {
	return errs.NewVersionIsInvalidErrorWithCause("version",
		fmt.Errorf("expected %d, %s %s is at %d", expected, record.Topic, record.AggregateRef, current))
}

func isConstraintError(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT || code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}
