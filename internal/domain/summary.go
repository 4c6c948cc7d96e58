package domain

import "github.com/shopspring/decimal"

// AgentSummary is the per-agent performance line over the onboarded
// customer universe, independent of report eligibility. Conversion rates
// are percentages rounded to two decimals with the customer count floored
// at one to keep the division defined. ReportedDeposits carries the
// optional conversion feed's pre-aggregated count and is nil when the
// feed is absent or silent about the agent.
type AgentSummary struct {
	DSAMobile         string          `json:"dsa_mobile"`
	CustomerCount     int             `json:"customer_count"`
	Depositors        int             `json:"customers_who_deposited"`
	TicketBuyers      int             `json:"customers_who_bought_ticket"`
	Scanners          int             `json:"customers_who_did_scan"`
	TotalTicketAmount decimal.Decimal `json:"total_ticket_amount"`
	TotalScanAmount   decimal.Decimal `json:"total_scan_amount"`
	ReportedDeposits  *int            `json:"reported_deposit_count,omitempty"`
	DepositRate       decimal.Decimal `json:"deposit_conversion_rate"`
	TicketRate        decimal.Decimal `json:"ticket_conversion_rate"`
	ScanRate          decimal.Decimal `json:"scan_conversion_rate"`
}

// ConversionRate computes part/whole as a percentage rounded to two
// decimals, flooring the denominator at one.
func ConversionRate(part, whole int) decimal.Decimal {
	if whole < 1 {
		whole = 1
	}
	return decimal.NewFromInt(int64(part)).
		Div(decimal.NewFromInt(int64(whole))).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}
