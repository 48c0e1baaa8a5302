package annotations

import "errors"

// Errors returned while reading an export. Check with errors.Is.
var (
	// ErrMalformedInput is returned when the document is not well-formed XML
	ErrMalformedInput = errors.New("malformed annotation input")

	// ErrSchema is returned when a required attribute is absent, e.g. <image> without name
	ErrSchema = errors.New("annotation schema violation")

	// ErrMalformedBox is returned when a calving box has missing or non-numeric coordinates
	ErrMalformedBox = errors.New("malformed bounding box")
)
