package domain

import "errors"

var (
	// Project errors
	ErrProjectNotFound  = errors.New("project not found")
	ErrInvalidProjectID = errors.New("invalid project ID")

	// Filter errors
	ErrInvalidDate   = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidFilter = errors.New("invalid date filter")

	// Snapshot errors
	ErrSnapshotNotFound = errors.New("daily snapshot not found")

	// Sanitizer rejections. These never leave the engine as errors;
	// they label why a raw value was coerced to zero.
	ErrNotNumeric     = errors.New("value is not a finite number")
	ErrRepeatedDigits = errors.New("value looks like a repeated-digit artifact")
	ErrOutOfRange     = errors.New("value exceeds sanity ceiling")
)
