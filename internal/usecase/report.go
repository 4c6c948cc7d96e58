package usecase

import (
	"sort"

	"github.com/shopspring/decimal"

	"dsa-reconciler/internal/domain"
)

// reportCandidate is one customer as the eligibility rules see them: the
// agent a payment would go to plus the activity evidence. Qualified
// candidates come from the onboarded universe, no-onboarding candidates
// from the attribution records; fields the other side lacks stay zero.
type reportCandidate struct {
	agent        string
	customer     string
	name         string
	onboardedBy  string
	status       domain.MatchStatus
	deposits     int
	tickets      int
	scans        int
	ticketAmount decimal.Decimal
	scanAmount   decimal.Decimal
}

// reportRule is one compensation scheme: which candidates earn their
// agent the flat per-customer rate, and what the row-level activity
// numbers mean for that report.
type reportRule struct {
	kind       domain.ReportKind
	rate       decimal.Decimal
	eligible   func(reportCandidate) bool
	rowNumbers func(reportCandidate) (bought, scanned, deposited int)
}

// qualifiedRule pays for onboarded customers who deposited and spent a
// positive amount on tickets or scans. Row numbers are 0/1 flags.
func qualifiedRule(rate decimal.Decimal) reportRule {
	return reportRule{
		kind: domain.ReportQualified,
		rate: rate,
		eligible: func(c reportCandidate) bool {
			return c.onboardedBy != "" && c.deposits > 0 &&
				(c.ticketAmount.IsPositive() || c.scanAmount.IsPositive())
		},
		rowNumbers: func(c reportCandidate) (int, int, int) {
			return boolFlag(c.ticketAmount.IsPositive()), boolFlag(c.scanAmount.IsPositive()), boolFlag(c.deposits > 0)
		},
	}
}

// noOnboardingRule pays for deposit-attributed customers the onboarding
// feed never declared, provided they also bought a ticket or scanned.
// Row numbers are raw transaction counts.
func noOnboardingRule(rate decimal.Decimal) reportRule {
	return reportRule{
		kind: domain.ReportNoOnboarding,
		rate: rate,
		eligible: func(c reportCandidate) bool {
			return c.status == domain.MatchStatusNoOnboarding && c.deposits > 0 &&
				(c.tickets > 0 || c.scans > 0)
		},
		rowNumbers: func(c reportCandidate) (int, int, int) {
			return c.tickets, c.scans, c.deposits
		},
	}
}

// buildReport filters the candidates through the rule, groups survivors
// by agent and renders per-agent row sets with running counters, totals
// and the payment. Agents and the customers under them sort ascending by
// identifier so repeated runs produce identical output.
func buildReport(rule reportRule, candidates []reportCandidate) *domain.Report {
	byAgent := make(map[string][]reportCandidate)
	for _, c := range candidates {
		if c.agent == "" || !rule.eligible(c) {
			continue
		}
		byAgent[c.agent] = append(byAgent[c.agent], c)
	}

	agents := make([]string, 0, len(byAgent))
	for agent := range byAgent {
		agents = append(agents, agent)
	}
	sort.Strings(agents)

	report := &domain.Report{Kind: rule.kind, Rate: rule.rate}
	for _, agent := range agents {
		group := byAgent[agent]
		sort.Slice(group, func(i, j int) bool { return group[i].customer < group[j].customer })

		ar := domain.AgentReport{DSAMobile: agent}
		var deposits, tickets, scans int
		for i, c := range group {
			bought, scanned, deposited := rule.rowNumbers(c)
			deposits += deposited
			tickets += bought
			scans += scanned
			ar.Rows = append(ar.Rows, domain.CustomerRow{
				DSAMobile:        agent,
				CustomerMobile:   c.customer,
				FullName:         c.name,
				BoughtTicket:     bought,
				TicketAmount:     c.ticketAmount,
				DidScan:          scanned,
				ScanAmount:       c.scanAmount,
				Deposited:        deposited,
				OnboardedBy:      c.onboardedBy,
				Status:           c.status,
				RunningCustomers: i + 1,
				RunningDeposits:  deposits,
				RunningTickets:   tickets,
				RunningScans:     scans,
			})
		}
		ar.Totals = domain.AgentTotals{
			CustomerCount: len(group),
			DepositCount:  deposits,
			TicketCount:   tickets,
			ScanCount:     scans,
			Payment:       rule.rate.Mul(decimal.NewFromInt(int64(len(group)))),
		}
		report.Agents = append(report.Agents, ar)
	}
	return report
}

// qualifiedCandidates projects the onboarded universe into rule input;
// the paying agent is the onboarding agent.
func qualifiedCandidates(customers []domain.Customer) []reportCandidate {
	out := make([]reportCandidate, 0, len(customers))
	for _, c := range customers {
		out = append(out, reportCandidate{
			agent:        c.OnboardedBy,
			customer:     c.Mobile,
			name:         c.FullName,
			onboardedBy:  c.OnboardedBy,
			deposits:     c.DepositCount,
			tickets:      c.TicketCount,
			scans:        c.ScanCount,
			ticketAmount: c.TicketAmount,
			scanAmount:   c.ScanAmount,
		})
	}
	return out
}

// noOnboardingCandidates projects the attribution records into rule
// input; the paying agent is the deposit-authoring owner.
func noOnboardingCandidates(records map[string]*domain.AttributionRecord) []reportCandidate {
	out := make([]reportCandidate, 0, len(records))
	for _, rec := range records {
		out = append(out, reportCandidate{
			agent:       rec.DSAMobile,
			customer:    rec.CustomerMobile,
			name:        rec.FullName,
			onboardedBy: rec.OnboardedBy,
			status:      rec.Status,
			deposits:    rec.DepositCount,
			tickets:     rec.TicketCount,
			scans:       rec.ScanCount,
		})
	}
	return out
}

func boolFlag(b bool) int {
	if b {
		return 1
	}
	return 0
}
