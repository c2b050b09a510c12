package dto

import (
	"net/url"
	"testing"
)

func TestSummaryQueryFromValues(t *testing.T) {
	v := url.Values{}
	v.Set("date", "2024-01-02")
	v.Set("dateFrom", "2024-01-01")

	got := SummaryQueryFromValues(v)
	want := SummaryQuery{Date: "2024-01-02", DateFrom: "2024-01-01"}

	if got != want {
		t.Fatalf("SummaryQueryFromValues() = %+v, want %+v", got, want)
	}
}

func TestPageQueryFromValues(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  PageQuery
	}{
		{name: "empty", query: "", want: PageQuery{}},
		{name: "both", query: "limit=10&offset=20", want: PageQuery{Limit: 10, Offset: 20}},
		{name: "malformed", query: "limit=ten&offset=-", want: PageQuery{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("parse query: %v", err)
			}
			if got := PageQueryFromValues(v); got != tt.want {
				t.Fatalf("PageQueryFromValues() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
