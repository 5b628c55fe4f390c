package curve

import "errors"

var (
	// ErrEmptyDomain indicates a sampling domain that yields fewer than two points.
	ErrEmptyDomain = errors.New("curve: empty sampling domain")

	// ErrFamilyMismatch indicates a spec handed to a generator of another family.
	ErrFamilyMismatch = errors.New("curve: spec family does not match generator")
)
