package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestMaterialContribution(t *testing.T) {
	d := decimal.NewFromInt

	tests := []struct {
		name       string
		typ        PurchaseType
		total      decimal.Decimal
		paid       decimal.Decimal
		wantCash   decimal.Decimal
		wantCredit decimal.Decimal
	}{
		{name: "cash uses paid amount", typ: PurchaseCash, total: d(1200), paid: d(1000), wantCash: d(1000), wantCredit: decimal.Zero},
		{name: "cash without paid falls back to total", typ: PurchaseCash, total: d(1200), paid: decimal.Zero, wantCash: d(1200), wantCredit: decimal.Zero},
		{name: "credit is unpaid remainder", typ: PurchaseCredit, total: d(1000), paid: d(400), wantCash: decimal.Zero, wantCredit: d(600)},
		{name: "credit never counts as cash", typ: PurchaseCredit, total: d(800), paid: d(800), wantCash: decimal.Zero, wantCredit: decimal.Zero},
		{name: "unknown type ignored", typ: PurchaseUnknown, total: d(500), paid: d(500), wantCash: decimal.Zero, wantCredit: decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cash, credit := MaterialContribution(tt.typ, tt.total, tt.paid)
			if !cash.Equal(tt.wantCash) {
				t.Fatalf("expected cash %s, got %s", tt.wantCash, cash)
			}
			if !credit.Equal(tt.wantCredit) {
				t.Fatalf("expected credit %s, got %s", tt.wantCredit, credit)
			}
		})
	}
}

func TestParsePurchaseType(t *testing.T) {
	cases := map[string]PurchaseType{
		"نقداً":   PurchaseCash,
		"نقد":     PurchaseCash,
		" Cash ":  PurchaseCash,
		"آجل":     PurchaseCredit,
		"اجل":     PurchaseCredit,
		"credit":  PurchaseCredit,
		"barter":  PurchaseUnknown,
		"":        PurchaseUnknown,
	}

	for label, want := range cases {
		if got := ParsePurchaseType(label); got != want {
			t.Fatalf("label %q: expected %q, got %q", label, want, got)
		}
	}
}

func TestSourceKindFlow(t *testing.T) {
	income := 0
	for _, k := range AllSourceKinds() {
		if k.Flow() == FlowIncome {
			income++
		}
	}
	if income != 2 {
		t.Fatalf("expected 2 income sources, got %d", income)
	}
	if SourceOutgoingProjectTransfers.Flow() != FlowExpense {
		t.Fatalf("outgoing transfers must be an expense")
	}
}
