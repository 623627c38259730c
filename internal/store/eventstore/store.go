package eventstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"marketlens/internal/decision"
	"marketlens/internal/ledger"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// Store persists admitted event identities and decision records using
// Gorm + SQLite.
type Store struct {
	db *gorm.DB
}

func New(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("event store: database path cannot be empty")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&cache=shared", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&EventModel{}, &DecisionModel{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// InsertEvent is the atomic first-writer-wins insert backing the
// admission ledger. Returns false when the identity already exists.
func (s *Store) InsertEvent(ctx context.Context, rec ledger.EventRecord) (bool, error) {
	row := EventModel{
		EventID:   rec.EventID,
		Symbol:    rec.Symbol,
		EventType: rec.EventType,
		BarTime:   rec.BarTime,
		Payload:   rec.Payload,
	}
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "event_id"}}, DoNothing: true}).
		Create(&row)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// SaveDecision appends one decision record. Records are immutable; a
// conflicting event_id insert is an error, not an update.
func (s *Store) SaveDecision(ctx context.Context, rec *decision.DecisionRecord) error {
	if rec == nil {
		return fmt.Errorf("event store: nil decision record")
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("event store: marshal record: %w", err)
	}
	row := DecisionModel{
		EventID:  rec.EventID,
		TraceID:  rec.TraceID,
		Symbol:   rec.Symbol,
		Decision: string(rec.Decision),
		Reason:   rec.Reason,
		BarTime:  rec.BarTime,
		Record:   raw,
	}
	if rec.PScore != nil {
		row.PScore = rec.PScore.Value
	}
	return s.db.WithContext(ctx).Create(&row).Error
}

// RecentDecisions lists decision rows newest-first, optionally filtered
// by symbol. Serves the audit endpoint.
func (s *Store) RecentDecisions(ctx context.Context, symbol string, limit int) ([]DecisionModel, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	q := s.db.WithContext(ctx).Model(&DecisionModel{}).Order("id DESC").Limit(limit)
	if symbol = strings.TrimSpace(symbol); symbol != "" {
		q = q.Where("symbol = ?", symbol)
	}
	var rows []DecisionModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
