package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ItemFailure records an item whose calories were counted but whose row
// could not be written.
type ItemFailure struct {
	Index    int    `json:"index"`
	FoodName string `json:"food_name"`
	Detail   string `json:"detail"`
}

// IngestResult is the folded outcome of one meal submission.
type IngestResult struct {
	TotalCalories decimal.Decimal
	Persisted     int
	Skipped       int
	Failures      []ItemFailure
}

// FormattedTotal renders the total with two decimals, e.g. "550.00".
func (r *IngestResult) FormattedTotal() string {
	return r.TotalCalories.StringFixed(2)
}

// IngestService coordinates extraction and persistence for a submission.
type IngestService struct {
	extractor NutritionExtractor
	writer    LedgerWriter
	logger    logrus.FieldLogger
}

// NewIngestService creates a new IngestService instance
func NewIngestService(extractor NutritionExtractor, writer LedgerWriter, logger logrus.FieldLogger) *IngestService {
	return &IngestService{
		extractor: extractor,
		writer:    writer,
		logger:    logger.WithField("component", "ingest"),
	}
}

// Ingest extracts the items in mealText and writes each one that carries a
// name and a numeric calorie estimate, in order. Write failures do not stop the loop.
// When any write failed, the result is returned together with a
// KindPersistenceFailed error; rows already written stay written.
func (s *IngestService) Ingest(ctx context.Context, mealText string) (*IngestResult, error) {
	if strings.TrimSpace(mealText) == "" {
		return nil, &Error{Kind: KindInvalidInput, Cause: "no meal text provided", Err: ErrEmptyMealText}
	}

	items, err := s.extractor.Extract(ctx, mealText)
	if err != nil {
		return nil, extractionFailed(err.Error(), err)
	}

	result := &IngestResult{TotalCalories: decimal.Zero}
	for i, item := range items {
		if !item.HasCalories() || !item.HasName() {
			result.Skipped++
			continue
		}

		result.TotalCalories = result.TotalCalories.Add(decimal.NewFromFloat(item.Nutrition.Calories.Value))

		persisted := s.writer.Persist(ctx, item)
		if persisted.Err != nil {
			result.Failures = append(result.Failures, ItemFailure{
				Index:    i,
				FoodName: string(item.Name),
				Detail:   persisted.Err.Error(),
			})
			continue
		}
		result.Persisted++
	}

	log := s.logger.WithFields(logrus.Fields{
		"items":     len(items),
		"persisted": result.Persisted,
		"skipped":   result.Skipped,
		"total":     result.FormattedTotal(),
	})

	if len(result.Failures) > 0 {
		details := make([]string, len(result.Failures))
		for i, f := range result.Failures {
			details[i] = f.Detail
		}
		log.WithField("failed", len(result.Failures)).Warn("meal ingested with persistence failures")
		return result, &Error{
			Kind:    KindPersistenceFailed,
			Cause:   fmt.Sprintf("%d of %d items could not be saved", len(result.Failures), len(result.Failures)+result.Persisted),
			Details: details,
		}
	}

	log.Info("meal ingested")
	return result, nil
}
