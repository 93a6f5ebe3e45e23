package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/myfiorentina/progetto-fitness/config"
	"github.com/myfiorentina/progetto-fitness/internal/models"
)

const nutritionPromptTemplate = `Given the following text describing a meal in %[1]s, perform these steps:
1. Extract every food item and its quantity.
2. For every food item, estimate these nutrition values: calories (calories), protein in grams (protein_g), total fat in grams (fat_total_g) and total carbohydrates in grams (carbohydrates_total_g).
Respond ONLY with a valid JSON object. The object must have a key "items" holding an array of objects. Every object must have the keys "name" (in %[1]s), "quantity", and a key "nutrition" holding an object with the estimated values.
Example: for "a plate of pasta with pesto", respond with {"items": [{"name": "pasta with pesto", "quantity": "180g", "nutrition": {"calories": 550, "protein_g": 15, "fat_total_g": 30, "carbohydrates_total_g": 55}}]}.
Do not add any text or explanation before or after the JSON.
Text: "%[2]s"`

// BuildNutritionPrompt embeds mealText verbatim into the extraction prompt.
func BuildNutritionPrompt(locale, mealText string) string {
	if locale == "" {
		locale = config.DefaultMealLocale
	}
	return fmt.Sprintf(nutritionPromptTemplate, locale, mealText)
}

// NutritionService turns meal descriptions into food items via the model.
type NutritionService struct {
	generator TextGenerator
	locale    string
	logger    logrus.FieldLogger
}

// NewNutritionService creates a new NutritionService instance
func NewNutritionService(generator TextGenerator, locale string, logger logrus.FieldLogger) *NutritionService {
	return &NutritionService{
		generator: generator,
		locale:    locale,
		logger:    logger.WithField("component", "nutrition"),
	}
}

// Extract prompts the model once and parses its answer. Every failure is
// reported as KindExtractionFailed with a readable cause.
func (s *NutritionService) Extract(ctx context.Context, mealText string) ([]models.FoodItem, error) {
	raw, err := s.generator.GenerateText(ctx, BuildNutritionPrompt(s.locale, mealText))
	if err != nil {
		return nil, extractionFailed(fmt.Sprintf("model call failed: %v", err), err)
	}

	items, err := ParseNutritionResponse(raw)
	if err != nil {
		s.logger.WithError(err).Debugf("unusable model response: %q", raw)
		return nil, extractionFailed(err.Error(), err)
	}

	s.logger.WithField("items", len(items)).Debug("extracted food items")
	return items, nil
}

// ParseNutritionResponse reads the items array out of raw model output.
// Elements that cannot be decoded are kept as empty items so that they are
// skipped downstream rather than failing the whole response.
func ParseNutritionResponse(raw string) ([]models.FoodItem, error) {
	obj, err := ExtractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(obj, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedStructuredData, err)
	}

	rawItems, ok := envelope["items"]
	if !ok {
		return nil, ErrNoItemsExtracted
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(rawItems, &elements); err != nil || elements == nil {
		return nil, ErrNoItemsExtracted
	}

	items := make([]models.FoodItem, len(elements))
	for i, element := range elements {
		var item models.FoodItem
		if err := json.Unmarshal(element, &item); err == nil {
			items[i] = item
		}
	}

	return items, nil
}

func extractionFailed(cause string, err error) error {
	var tagged *Error
	if errors.As(err, &tagged) && tagged.Kind == KindExtractionFailed {
		return tagged
	}
	return &Error{Kind: KindExtractionFailed, Cause: cause, Err: err}
}
