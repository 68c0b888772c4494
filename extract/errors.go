package extract

import "errors"

var (
	// ErrRecognizerRequired is returned when an OCR recognizer is not provided.
	ErrRecognizerRequired = errors.New("recognizer required")
)
