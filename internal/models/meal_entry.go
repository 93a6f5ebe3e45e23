package models

import "time"

// MealEntry is one persisted row of the meal ledger.
type MealEntry struct {
	ID                  uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	MealTime            time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"meal_time"`
	FoodName            string    `gorm:"type:text;not null" json:"food_name"`
	Quantity            string    `gorm:"type:text" json:"quantity"`
	Calories            float64   `gorm:"not null" json:"calories"`
	ProteinG            float64   `gorm:"column:protein_g;not null" json:"protein_g"`
	FatTotalG           float64   `gorm:"column:fat_total_g;not null" json:"fat_total_g"`
	CarbohydratesTotalG float64   `gorm:"column:carbohydrates_total_g;not null" json:"carbohydrates_total_g"`
}

// TableName specifies the table name for MealEntry
func (MealEntry) TableName() string {
	return "meal_entries"
}

// NewMealEntry maps an extracted item to a ledger row. Missing or
// non-numeric estimates become 0.
func NewMealEntry(item FoodItem, mealTime time.Time) *MealEntry {
	return &MealEntry{
		MealTime:            mealTime,
		FoodName:            string(item.Name),
		Quantity:            string(item.Quantity),
		Calories:            item.Nutrition.Calories.OrZero(),
		ProteinG:            item.Nutrition.ProteinG.OrZero(),
		FatTotalG:           item.Nutrition.FatTotalG.OrZero(),
		CarbohydratesTotalG: item.Nutrition.CarbohydratesTotalG.OrZero(),
	}
}
