package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// NutrientValue is a nutrition estimate as reported by the model. Valid is
// false when the field was absent, null or not a JSON number.
type NutrientValue struct {
	Value float64
	Valid bool
}

// Number returns a valid NutrientValue holding v.
func Number(v float64) NutrientValue {
	return NutrientValue{Value: v, Valid: true}
}

// UnmarshalJSON never fails: anything other than a JSON number leaves the
// value invalid.
func (n *NutrientValue) UnmarshalJSON(data []byte) error {
	*n = NutrientValue{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		n.Value = num
		n.Valid = true
	}
	return nil
}

func (n NutrientValue) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// OrZero returns the value, or 0 when it is not valid.
func (n NutrientValue) OrZero() float64 {
	if !n.Valid {
		return 0
	}
	return n.Value
}

// Nutrition holds the four per-item estimates requested from the model.
type Nutrition struct {
	Calories            NutrientValue `json:"calories"`
	ProteinG            NutrientValue `json:"protein_g"`
	FatTotalG           NutrientValue `json:"fat_total_g"`
	CarbohydratesTotalG NutrientValue `json:"carbohydrates_total_g"`
}

// UnmarshalJSON treats a nutrition value that is not an object as empty.
func (n *Nutrition) UnmarshalJSON(data []byte) error {
	type plain Nutrition
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		*n = Nutrition{}
		return nil
	}
	*n = Nutrition(p)
	return nil
}

// FreeText accepts either a JSON string or a bare scalar such as a number,
// keeping the model's text as-is.
type FreeText string

func (t *FreeText) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*t = ""
		return nil
	}

	var str string
	if err := json.Unmarshal(trimmed, &str); err == nil {
		*t = FreeText(str)
		return nil
	}

	*t = FreeText(trimmed)
	return nil
}

// FoodItem is one food extracted from a meal description.
type FoodItem struct {
	Name      FreeText  `json:"name"`
	Quantity  FreeText  `json:"quantity"`
	Nutrition Nutrition `json:"nutrition"`
}

// HasCalories reports whether the item carries a numeric calorie estimate.
// Items without one are neither counted nor persisted.
func (f FoodItem) HasCalories() bool {
	return f.Nutrition.Calories.Valid
}

// HasName reports whether the item names a food. Nameless items are skipped
// like items without calories.
func (f FoodItem) HasName() bool {
	return strings.TrimSpace(string(f.Name)) != ""
}
