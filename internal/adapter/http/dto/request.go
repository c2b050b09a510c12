package dto

import (
	"net/url"
	"strconv"
)

// SummaryQuery holds the optional period parameters of summary endpoints.
type SummaryQuery struct {
	Date     string
	DateFrom string
	DateTo   string
}

// SummaryQueryFromValues reads date, dateFrom and dateTo.
func SummaryQueryFromValues(v url.Values) SummaryQuery {
	return SummaryQuery{
		Date:     v.Get("date"),
		DateFrom: v.Get("dateFrom"),
		DateTo:   v.Get("dateTo"),
	}
}

// PageQuery holds limit/offset paging parameters. Zero means default.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageQueryFromValues reads limit and offset, ignoring malformed values.
func PageQueryFromValues(v url.Values) PageQuery {
	return PageQuery{
		Limit:  atoiOrZero(v.Get("limit")),
		Offset: atoiOrZero(v.Get("offset")),
	}
}

func atoiOrZero(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return i
}
