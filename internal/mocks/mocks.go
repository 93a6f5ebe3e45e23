package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/myfiorentina/progetto-fitness/internal/models"
	"github.com/myfiorentina/progetto-fitness/internal/service"
)

// MockTextGenerator is a mock implementation of the model client
type MockTextGenerator struct {
	mock.Mock
}

// GenerateText mocks the GenerateText method
func (m *MockTextGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// MockNutritionExtractor is a mock implementation of the nutrition extractor
type MockNutritionExtractor struct {
	mock.Mock
}

// Extract mocks the Extract method
func (m *MockNutritionExtractor) Extract(ctx context.Context, mealText string) ([]models.FoodItem, error) {
	args := m.Called(ctx, mealText)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FoodItem), args.Error(1)
}

// MockLedgerWriter is a mock implementation of the ledger writer
type MockLedgerWriter struct {
	mock.Mock
}

// Persist mocks the Persist method
func (m *MockLedgerWriter) Persist(ctx context.Context, item models.FoodItem) service.PersistResult {
	args := m.Called(ctx, item)
	return args.Get(0).(service.PersistResult)
}

// MockHistoryReader is a mock implementation of the history reader
type MockHistoryReader struct {
	mock.Mock
}

// RecentEntries mocks the RecentEntries method
func (m *MockHistoryReader) RecentEntries(ctx context.Context, limit int) ([]models.MealEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MealEntry), args.Error(1)
}

// MockMealIngester is a mock implementation of the ingestion orchestrator
type MockMealIngester struct {
	mock.Mock
}

// Ingest mocks the Ingest method
func (m *MockMealIngester) Ingest(ctx context.Context, mealText string) (*service.IngestResult, error) {
	args := m.Called(ctx, mealText)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.IngestResult), args.Error(1)
}
