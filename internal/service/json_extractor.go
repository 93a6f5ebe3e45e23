package service

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSONObject returns the span from the first '{' to the last '}' in
// text, provided it parses as JSON.
//
// The scan is greedy, not brace-balanced: prose containing a stray '}' after
// the object widens the span and the parse then fails.
func ExtractJSONObject(text string) (json.RawMessage, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return nil, ErrNoStructuredData
	}

	span := text[start : end+1]
	var probe interface{}
	if err := json.Unmarshal([]byte(span), &probe); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedStructuredData, err)
	}

	return json.RawMessage(span), nil
}
