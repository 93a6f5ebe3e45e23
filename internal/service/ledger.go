package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/myfiorentina/progetto-fitness/internal/models"
)

// DefaultHistoryLimit is the number of entries returned by the history read.
const DefaultHistoryLimit = 50

// PersistResult is the outcome of writing one item. Err is nil on success.
type PersistResult struct {
	EntryID      uint
	RowsAffected int64
	Err          error
}

// LedgerService writes and reads the meal ledger
type LedgerService struct {
	db     *gorm.DB
	now    func() time.Time
	logger logrus.FieldLogger
}

// NewLedgerService creates a new LedgerService instance
func NewLedgerService(db *gorm.DB, logger logrus.FieldLogger) *LedgerService {
	return &LedgerService{
		db:     db,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger.WithField("component", "ledger"),
	}
}

// WithClock replaces the clock used to stamp meal_time.
func (s *LedgerService) WithClock(now func() time.Time) *LedgerService {
	s.now = now
	return s
}

// Persist inserts a single row for item. Store errors are returned in the
// result, never as a panic or a separate error value.
func (s *LedgerService) Persist(ctx context.Context, item models.FoodItem) PersistResult {
	entry := models.NewMealEntry(item, s.now())

	tx := s.db.WithContext(ctx).Create(entry)
	if tx.Error != nil {
		s.logger.WithError(tx.Error).WithField("food_name", entry.FoodName).Warn("failed to save ledger entry")
		return PersistResult{Err: fmt.Errorf("failed to save %q: %w", entry.FoodName, tx.Error)}
	}

	s.logger.WithFields(logrus.Fields{"food_name": entry.FoodName, "id": entry.ID}).Debug("saved ledger entry")
	return PersistResult{EntryID: entry.ID, RowsAffected: tx.RowsAffected}
}

// RecentEntries returns up to limit entries, newest meal_time first. Limits
// outside 1..DefaultHistoryLimit become DefaultHistoryLimit.
func (s *LedgerService) RecentEntries(ctx context.Context, limit int) ([]models.MealEntry, error) {
	if limit <= 0 || limit > DefaultHistoryLimit {
		limit = DefaultHistoryLimit
	}

	var entries []models.MealEntry
	err := s.db.WithContext(ctx).
		Order("meal_time DESC").
		Order("id DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, &Error{
			Kind:    KindHistoryUnavailable,
			Cause:   "failed to query meal history",
			Details: []string{err.Error()},
			Err:     err,
		}
	}

	if entries == nil {
		entries = []models.MealEntry{}
	}
	return entries, nil
}
