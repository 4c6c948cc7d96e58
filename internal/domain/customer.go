package domain

import "github.com/shopspring/decimal"

// UnknownName is the display name substituted when no source carries a
// usable name for a customer.
const UnknownName = "Unknown"

// Activity holds the aggregated outcome of one activity type (deposit,
// ticket, scan) for one canonical customer identifier.
type Activity struct {
	// Sum of the parsed row amounts; unparseable cells contribute zero.
	Sum decimal.Decimal
	// Count of rows that survived the transaction-type filter.
	Count int
	// PositiveCount of surviving rows whose amount parsed above zero.
	PositiveCount int
}

// Active reports whether the aggregated amount is positive.
func (a Activity) Active() bool {
	return a.Sum.IsPositive()
}

// Customer is the reconciled view of one canonical customer identifier
// across every source dataset.
type Customer struct {
	Mobile       string          `json:"customer_mobile"`
	FullName     string          `json:"full_name"`
	OnboardedBy  string          `json:"onboarded_by"` // canonical agent, "" when never onboarded
	Deposited    bool            `json:"deposited"`
	DepositCount int             `json:"deposit_count"`
	BoughtTicket bool            `json:"bought_ticket"`
	TicketAmount decimal.Decimal `json:"ticket_amount"`
	TicketCount  int             `json:"ticket_count"`
	DidScan      bool            `json:"did_scan"`
	ScanAmount   decimal.Decimal `json:"scan_amount"`
	ScanCount    int             `json:"scan_count"`
}

// Onboarded reports whether any onboarding record declared an agent for
// this customer.
func (c *Customer) Onboarded() bool {
	return c.OnboardedBy != ""
}
