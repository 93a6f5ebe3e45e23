package service

import (
	"errors"
	"fmt"
)

// Kind classifies the outcome of a pipeline operation for the HTTP layer.
type Kind string

const (
	KindInvalidInput       Kind = "InvalidInput"
	KindExtractionFailed   Kind = "ExtractionFailed"
	KindPersistenceFailed  Kind = "PersistenceFailed"
	KindHistoryUnavailable Kind = "HistoryUnavailable"
)

var (
	// ErrNoStructuredData is returned when model output holds no {...} span.
	ErrNoStructuredData = errors.New("no structured data found in model response")
	// ErrMalformedStructuredData is returned when the {...} span is not valid JSON.
	ErrMalformedStructuredData = errors.New("malformed structured data in model response")
	// ErrNoItemsExtracted is returned when the parsed object has no items array.
	ErrNoItemsExtracted = errors.New("no items extracted from model response")
	// ErrEmptyMealText is returned for empty or whitespace-only submissions.
	ErrEmptyMealText = errors.New("meal text is empty")
)

// Error is the tagged failure returned by the ingestion and history paths.
type Error struct {
	Kind    Kind
	Cause   string
	Details []string
	Err     error
}

func (e *Error) Error() string {
	if e.Cause == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind carried by err, or "" if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
