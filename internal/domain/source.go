package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// SourceKind identifies one transaction stream feeding the ledger.
type SourceKind string

const (
	SourceFundTransfers            SourceKind = "fund_transfers"
	SourceIncomingProjectTransfers SourceKind = "incoming_project_transfers"
	SourceOutgoingProjectTransfers SourceKind = "outgoing_project_transfers"
	SourceWorkerWages              SourceKind = "worker_wages"
	SourceMaterialPurchases        SourceKind = "material_purchases"
	SourceTransportation           SourceKind = "transportation_expenses"
	SourceWorkerTransfers          SourceKind = "worker_transfers"
	SourceMiscExpenses             SourceKind = "worker_misc_expenses"
)

// Flow is the direction in which a source moves project cash.
type Flow int

const (
	FlowIncome Flow = iota
	FlowExpense
)

// Flow returns the cash direction of the source.
func (k SourceKind) Flow() Flow {
	switch k {
	case SourceFundTransfers, SourceIncomingProjectTransfers:
		return FlowIncome
	default:
		return FlowExpense
	}
}

// AllSourceKinds lists every stream the aggregator expects to be wired.
func AllSourceKinds() []SourceKind {
	return []SourceKind{
		SourceFundTransfers,
		SourceIncomingProjectTransfers,
		SourceOutgoingProjectTransfers,
		SourceWorkerWages,
		SourceMaterialPurchases,
		SourceTransportation,
		SourceWorkerTransfers,
		SourceMiscExpenses,
	}
}

// SourceTotals is what a reader returns for one project and filter. Amounts
// are the aggregate text as produced by storage, unsanitized; "" means NULL.
type SourceTotals struct {
	Kind  SourceKind
	Count int64
	Total string

	// Material purchases only: credit exposure (total - paid) and its row count.
	Credit      string
	CreditCount int64

	// Attendance only: distinct paid attendance days and worker counts.
	Days          int64
	Workers       int64
	ActiveWorkers int64
}

// PurchaseType classifies a material purchase.
type PurchaseType string

const (
	PurchaseCash    PurchaseType = "cash"
	PurchaseCredit  PurchaseType = "credit"
	PurchaseUnknown PurchaseType = ""
)

// Stored purchase_type labels. Legacy rows use the Arabic forms.
var (
	cashPurchaseLabels   = []string{"نقداً", "نقد", "cash"}
	creditPurchaseLabels = []string{"آجل", "اجل", "credit"}
)

// PurchaseTypeLabels returns every stored label that maps to t.
func PurchaseTypeLabels(t PurchaseType) []string {
	switch t {
	case PurchaseCash:
		return append([]string(nil), cashPurchaseLabels...)
	case PurchaseCredit:
		return append([]string(nil), creditPurchaseLabels...)
	default:
		return nil
	}
}

// ParsePurchaseType maps a stored label to its purchase type.
func ParsePurchaseType(label string) PurchaseType {
	label = strings.ToLower(strings.TrimSpace(label))
	for _, l := range cashPurchaseLabels {
		if label == l {
			return PurchaseCash
		}
	}
	for _, l := range creditPurchaseLabels {
		if label == l {
			return PurchaseCredit
		}
	}
	return PurchaseUnknown
}

// MaterialContribution splits one purchase row into its cash and credit
// parts. Cash rows contribute the paid amount, or the total when nothing was
// recorded as paid. Credit rows contribute the unpaid remainder as exposure.
func MaterialContribution(t PurchaseType, totalAmount, paidAmount decimal.Decimal) (cash, credit decimal.Decimal) {
	switch t {
	case PurchaseCash:
		if paidAmount.IsPositive() {
			return paidAmount, decimal.Zero
		}
		return totalAmount, decimal.Zero
	case PurchaseCredit:
		return decimal.Zero, totalAmount.Sub(paidAmount)
	default:
		return decimal.Zero, decimal.Zero
	}
}
