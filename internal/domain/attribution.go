package domain

// MatchStatus classifies how a customer's deposit-authoring agent relates
// to the agent declared by the onboarding feed.
type MatchStatus string

const (
	// MatchStatusMatch means the onboarding-declared agent equals the
	// deposit-authoring agent.
	MatchStatusMatch MatchStatus = "MATCH"
	// MatchStatusMismatch means both agents exist but disagree.
	MatchStatusMismatch MatchStatus = "MISMATCH"
	// MatchStatusNoOnboarding means no onboarding record exists for the
	// customer at all.
	MatchStatusNoOnboarding MatchStatus = "NO ONBOARDING"
)

// NotOnboarded is the placeholder rendered for the onboarding agent of a
// customer no onboarding record declares.
const NotOnboarded = "NOT ONBOARDED"

// AttributionRecord assigns a customer to the agent that authored their
// deposits and records how that assignment squares with the onboarding
// feed. Exactly one record exists per customer with at least one credit
// deposit authored by a distinct agent; the first authoring agent in
// stable deposit order wins ownership.
type AttributionRecord struct {
	CustomerMobile string      `json:"customer_mobile"`
	DSAMobile      string      `json:"dsa_mobile"`    // deposit-authoring owner
	OnboardedBy    string      `json:"onboarded_by"`  // declared agent, "" when absent
	Status         MatchStatus `json:"match_status"`
	FullName       string      `json:"full_name"`
	DepositCount   int         `json:"deposit_count"` // credit rows authored by a distinct agent
	TicketCount    int         `json:"ticket_count"`  // debit ticket rows for the customer
	ScanCount      int         `json:"scan_count"`    // debit scan rows for the customer
}

// OnboardedByLabel renders the declared agent or the NotOnboarded
// placeholder used in exported rows.
func (r *AttributionRecord) OnboardedByLabel() string {
	if r.OnboardedBy == "" {
		return NotOnboarded
	}
	return r.OnboardedBy
}
