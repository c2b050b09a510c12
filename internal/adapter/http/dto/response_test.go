package dto

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ayemen27/siteledger/internal/domain"
)

func TestSummaryFromDomain(t *testing.T) {
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	project := &domain.Project{ID: "p1", Name: "Tower", Status: domain.ProjectStatusActive}
	totals := domain.PeriodTotals{
		MaterialExpenses: decimal.NewFromInt(1200),
		Counts:           domain.SourceCounts{MaterialPurchases: 1},
	}

	s := domain.NewFinancialSummary(project, domain.OnDay(day), totals, decimal.NewFromInt(5000), day).WithDate(day)
	resp := SummaryFromDomain(s)

	if resp.Date != "2024-01-02" || resp.Period != "day:2024-01-02" {
		t.Fatalf("unexpected date fields: %q %q", resp.Date, resp.Period)
	}
	if !resp.TotalBalance.Equal(decimal.NewFromInt(3800)) || !resp.CashBalance.Equal(decimal.NewFromInt(-1200)) {
		t.Fatalf("unexpected balances: %+v", resp)
	}
	if resp.Counts.MaterialPurchases != 1 {
		t.Fatalf("unexpected counts: %+v", resp.Counts)
	}

	body, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	for _, want := range []string{`"projectId":"p1"`, `"totalBalance":"3800"`, `"carriedForwardBalance":"5000"`} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("expected %s in %s", want, body)
		}
	}
}

func TestSummaryFromDomain_NoDate(t *testing.T) {
	s := domain.NewFinancialSummary(&domain.Project{ID: "p1"}, domain.AllTime(), domain.PeriodTotals{}, decimal.Zero, time.Now())

	body, err := json.Marshal(SummaryFromDomain(s))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if strings.Contains(string(body), `"date"`) {
		t.Fatalf("cumulative summary should omit date: %s", body)
	}
}

func TestSnapshotsFromDomain(t *testing.T) {
	snaps := []*domain.DailySnapshot{{
		ID:               "snap-1",
		ProjectID:        "p1",
		Date:             time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		RemainingBalance: decimal.RequireFromString("3800.50"),
	}}

	resp := SnapshotsFromDomain(snaps)
	if len(resp) != 1 || resp[0].Date != "2024-01-02" || resp[0].RemainingBalance.String() != "3800.5" {
		t.Fatalf("unexpected snapshot response: %+v", resp[0])
	}
}
