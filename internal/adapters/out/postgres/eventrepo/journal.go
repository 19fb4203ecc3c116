package eventrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/ports"
	"kitchen/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

var _ ports.EventJournal = &GormJournal{}

// GormJournal implements ports.EventJournal using GORM. Seq is a table-wide
// identity, so it orders records within a topic without being dense.
type GormJournal struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormJournal(db *gorm.DB) *GormJournal {
	return &GormJournal{db: db, now: time.Now}
}

// Migrate creates or updates the events table.
func (j *GormJournal) Migrate(ctx context.Context) error {
	return j.db.WithContext(ctx).AutoMigrate(&EventDTO{})
}

func (j *GormJournal) Append(ctx context.Context, record ports.EventRecord, expectedVersion int) (ports.EventRecord, error) {
	err := j.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current int
		if err := tx.Model(&EventDTO{}).
			Where("topic = ? AND aggregate_ref = ?", record.Topic.String(), record.AggregateRef).
			Select("COALESCE(MAX(version), 0)").
			Scan(&current).Error; err != nil {
			return err
		}

		if expectedVersion != kernel.AnyVersion && expectedVersion != current {
			return versionConflict(record, expectedVersion, current)
		}

		record.Version = current + 1
		record.RecordedAt = j.now().UTC().Truncate(time.Microsecond)

		dto := fromRecord(record)
		if err := tx.Create(&dto).Error; err != nil {
			if isUniqueViolation(err) {
				return versionConflict(record, expectedVersion, current)
			}
			return err
		}

		record.Seq = dto.Seq
		return nil
	})
	if err != nil {
		return ports.EventRecord{}, err
	}

	return record, nil
}

func (j *GormJournal) Load(ctx context.Context, topic kernel.Topic) ([]ports.EventRecord, error) {
	var dtos []EventDTO
	if err := j.db.WithContext(ctx).
		Where("topic = ?", topic.String()).
		Order("seq").
		Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toRecords(dtos), nil
}

func (j *GormJournal) LoadStream(ctx context.Context, topic kernel.Topic, aggregateRef string) ([]ports.EventRecord, error) {
	var dtos []EventDTO
	if err := j.db.WithContext(ctx).
		Where("topic = ? AND aggregate_ref = ?", topic.String(), aggregateRef).
		Order("seq").
		Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toRecords(dtos), nil
}

func toRecords(dtos []EventDTO) []ports.EventRecord {
	records := make([]ports.EventRecord, 0, len(dtos))
	for _, dto := range dtos {
		records = append(records, toRecord(dto))
	}
	return records
}

func versionConflict(record ports.EventRecord, expected, current int) error {
	return errs.NewVersionIsInvalidErrorWithCause("version",
		fmt.Errorf("expected %d, %s %s is at %d", expected, record.Topic, record.AggregateRef, current))
}

// isUniqueViolation covers both a raw driver error and one translated by
// gorm.Config.TranslateError.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
