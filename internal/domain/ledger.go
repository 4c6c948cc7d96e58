package domain

import "github.com/shopspring/decimal"

// LedgerTotalLabel marks the synthetic ledger row holding column sums.
const LedgerTotalLabel = "Total"

// PaymentRecord is one agent's line in the merged payment ledger: the
// payment earned under each report and their sum. Absent reports
// contribute zero.
type PaymentRecord struct {
	DSAMobile           string          `json:"dsa_mobile"`
	QualifiedPayment    decimal.Decimal `json:"qualified_payment"`
	NoOnboardingPayment decimal.Decimal `json:"no_onboarding_payment"`
	TotalPayment        decimal.Decimal `json:"total_payment"`
}

// PaymentLedger merges both reports' payments per agent. Records are
// sorted ascending by agent identifier with the synthetic Total record
// appended last; a ledger is built fresh per run and never mutated.
type PaymentLedger struct {
	Records []PaymentRecord `json:"records"`
}

// GrandTotal returns the synthetic total record, or false when the ledger
// is empty.
func (l *PaymentLedger) GrandTotal() (PaymentRecord, bool) {
	if len(l.Records) == 0 {
		return PaymentRecord{}, false
	}
	last := l.Records[len(l.Records)-1]
	if last.DSAMobile != LedgerTotalLabel {
		return PaymentRecord{}, false
	}
	return last, true
}

// AgentRecords returns the ledger rows without the synthetic total.
func (l *PaymentLedger) AgentRecords() []PaymentRecord {
	if _, ok := l.GrandTotal(); ok {
		return l.Records[:len(l.Records)-1]
	}
	return l.Records
}
