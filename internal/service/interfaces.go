package service

import (
	"context"

	"github.com/myfiorentina/progetto-fitness/internal/models"
)

// TextGenerator is the external text-generation service.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// NutritionExtractor turns free-form meal text into food items.
type NutritionExtractor interface {
	Extract(ctx context.Context, mealText string) ([]models.FoodItem, error)
}

// LedgerWriter appends one food item to the meal ledger.
type LedgerWriter interface {
	Persist(ctx context.Context, item models.FoodItem) PersistResult
}

// HistoryReader reads the newest ledger entries.
type HistoryReader interface {
	RecentEntries(ctx context.Context, limit int) ([]models.MealEntry, error)
}

// MealIngester runs the whole pipeline for one submission.
type MealIngester interface {
	Ingest(ctx context.Context, mealText string) (*IngestResult, error)
}
