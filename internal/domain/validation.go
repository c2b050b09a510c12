package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxProjectIDLength bounds project identifiers accepted at the API edge.
const MaxProjectIDLength = 64

var projectIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateProjectID validates a project identifier.
func ValidateProjectID(id string) error {
	id = strings.TrimSpace(id)

	if id == "" {
		return fmt.Errorf("%w: id cannot be empty", ErrInvalidProjectID)
	}

	if len(id) > MaxProjectIDLength {
		return fmt.Errorf("%w: id exceeds %d characters", ErrInvalidProjectID, MaxProjectIDLength)
	}

	if !projectIDRegex.MatchString(id) {
		return fmt.Errorf("%w: id contains forbidden characters", ErrInvalidProjectID)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int, error) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset, nil
}
