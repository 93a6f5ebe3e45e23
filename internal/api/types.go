package api

// ProcessMealRequest is the body of POST /meals.
type ProcessMealRequest struct {
	Text string `json:"text" binding:"required"`
}

// ProcessMealResponse is returned when every extracted item was handled.
type ProcessMealResponse struct {
	Message       string `json:"message"`
	TotalCalories string `json:"totalCalories"`
	ItemsSaved    int    `json:"itemsSaved"`
	ItemsSkipped  int    `json:"itemsSkipped"`
}

// ErrorResponse is the body of every JSON failure.
type ErrorResponse struct {
	Error         string      `json:"error"`
	Details       interface{} `json:"details,omitempty"`
	TotalCalories string      `json:"totalCalories,omitempty"`
	ItemsSaved    *int        `json:"itemsSaved,omitempty"`
}
