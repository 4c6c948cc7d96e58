package domain

import "github.com/shopspring/decimal"

// ReportKind names one of the two compensation reports.
type ReportKind string

const (
	// ReportQualified pays agents for onboarded customers who deposited
	// and spent (report 1).
	ReportQualified ReportKind = "qualified_customers"
	// ReportNoOnboarding pays agents for deposit-attributed customers the
	// onboarding feed never declared (report 2).
	ReportNoOnboarding ReportKind = "no_onboarding_customers"
)

// CustomerRow is one customer's line in a per-agent report. The activity
// numbers are 0/1 flags in the qualified report and raw transaction counts
// in the no-onboarding report; the running fields accumulate them in
// ascending customer order for audit.
type CustomerRow struct {
	DSAMobile      string          `json:"dsa_mobile"`
	CustomerMobile string          `json:"customer_mobile"`
	FullName       string          `json:"full_name"`
	BoughtTicket   int             `json:"bought_ticket"`
	TicketAmount   decimal.Decimal `json:"ticket_amount"`
	DidScan        int             `json:"did_scan"`
	ScanAmount     decimal.Decimal `json:"scan_amount"`
	Deposited      int             `json:"deposited"`
	OnboardedBy    string          `json:"onboarded_by"`
	Status         MatchStatus     `json:"match_status"`

	RunningCustomers int `json:"customer_count_so_far"`
	RunningDeposits  int `json:"deposit_count_so_far"`
	RunningTickets   int `json:"ticket_count_so_far"`
	RunningScans     int `json:"scan_count_so_far"`
}

// AgentTotals owns an agent's aggregate figures exactly once; exports
// attach them to the agent's first row and leave detail rows blank.
type AgentTotals struct {
	CustomerCount int             `json:"customer_count"`
	DepositCount  int             `json:"deposit_count"`
	TicketCount   int             `json:"ticket_count"`
	ScanCount     int             `json:"scan_count"`
	Payment       decimal.Decimal `json:"payment"`
}

// AgentReport is one agent's eligible customers, sorted by customer
// identifier ascending, plus the agent-level totals.
type AgentReport struct {
	DSAMobile string        `json:"dsa_mobile"`
	Rows      []CustomerRow `json:"rows"`
	Totals    AgentTotals   `json:"totals"`
}

// Report is one complete rule-engine output: every paying agent in
// ascending identifier order under a single per-customer rate.
type Report struct {
	Kind   ReportKind      `json:"kind"`
	Rate   decimal.Decimal `json:"rate"`
	Agents []AgentReport   `json:"agents"`
}

// TotalPayment sums the payment owed across every agent in the report.
func (r *Report) TotalPayment() decimal.Decimal {
	total := decimal.Zero
	for _, a := range r.Agents {
		total = total.Add(a.Totals.Payment)
	}
	return total
}

// CustomerCount sums the eligible customers across every agent.
func (r *Report) CustomerCount() int {
	n := 0
	for _, a := range r.Agents {
		n += a.Totals.CustomerCount
	}
	return n
}
