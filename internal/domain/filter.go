package domain

import (
	"fmt"
	"strings"
	"time"
)

// FilterKind selects how transaction dates are constrained.
type FilterKind int

const (
	// FilterAll applies no date constraint (cumulative view).
	FilterAll FilterKind = iota
	// FilterDay matches a single calendar day.
	FilterDay
	// FilterRange matches an inclusive [From, To] span.
	FilterRange
	// FilterBefore matches every day strictly before From.
	FilterBefore
)

func (k FilterKind) String() string {
	switch k {
	case FilterDay:
		return "day"
	case FilterRange:
		return "range"
	case FilterBefore:
		return "before"
	default:
		return "all"
	}
}

// Filter is a date constraint applied uniformly to every transaction source.
type Filter struct {
	Kind FilterKind
	From time.Time
	To   time.Time
}

// AllTime returns the cumulative filter.
func AllTime() Filter {
	return Filter{Kind: FilterAll}
}

// OnDay returns a filter for exactly one day.
func OnDay(day time.Time) Filter {
	d := Day(day)
	return Filter{Kind: FilterDay, From: d, To: d}
}

// Between returns an inclusive range filter. Callers validate ordering with
// Validate or by going through ParseFilter.
func Between(from, to time.Time) Filter {
	return Filter{Kind: FilterRange, From: Day(from), To: Day(to)}
}

// Before returns a strict less-than filter.
func Before(day time.Time) Filter {
	return Filter{Kind: FilterBefore, From: Day(day)}
}

// IsCumulative reports whether the filter spans all history.
func (f Filter) IsCumulative() bool {
	return f.Kind == FilterAll
}

// StartDate is the first day covered by a Day or Range filter, and the
// exclusive bound of a Before filter. Zero for cumulative filters.
func (f Filter) StartDate() time.Time {
	if f.Kind == FilterAll {
		return time.Time{}
	}
	return f.From
}

// Bounds returns the inclusive lower bound, inclusive upper bound and
// exclusive upper bound of the filter. A nil pointer means unbounded.
func (f Filter) Bounds() (from, to, before *time.Time) {
	switch f.Kind {
	case FilterDay, FilterRange:
		lo, hi := f.From, f.To
		return &lo, &hi, nil
	case FilterBefore:
		b := f.From
		return nil, nil, &b
	default:
		return nil, nil, nil
	}
}

// Validate rejects inverted ranges.
func (f Filter) Validate() error {
	if f.Kind == FilterRange && f.To.Before(f.From) {
		return fmt.Errorf("%w: dateTo %s is before dateFrom %s", ErrInvalidFilter, FormatDate(f.To), FormatDate(f.From))
	}
	return nil
}

func (f Filter) String() string {
	switch f.Kind {
	case FilterDay:
		return "day:" + FormatDate(f.From)
	case FilterRange:
		return "range:" + FormatDate(f.From) + ".." + FormatDate(f.To)
	case FilterBefore:
		return "before:" + FormatDate(f.From)
	default:
		return "all"
	}
}

// ParseFilter builds a filter from the optional query values used by the
// API. A single date wins over a range; a range needs both bounds.
func ParseFilter(date, dateFrom, dateTo string) (Filter, error) {
	date = strings.TrimSpace(date)
	dateFrom = strings.TrimSpace(dateFrom)
	dateTo = strings.TrimSpace(dateTo)

	if date != "" {
		d, err := ParseDate(date)
		if err != nil {
			return Filter{}, err
		}
		return OnDay(d), nil
	}

	if dateFrom == "" && dateTo == "" {
		return AllTime(), nil
	}

	if dateFrom == "" || dateTo == "" {
		return Filter{}, fmt.Errorf("%w: dateFrom and dateTo must be provided together", ErrInvalidFilter)
	}

	from, err := ParseDate(dateFrom)
	if err != nil {
		return Filter{}, err
	}

	to, err := ParseDate(dateTo)
	if err != nil {
		return Filter{}, err
	}

	f := Between(from, to)
	if err := f.Validate(); err != nil {
		return Filter{}, err
	}

	return f, nil
}
