package usecase

import (
	"sort"

	"github.com/shopspring/decimal"

	"dsa-reconciler/internal/domain"
)

// reconcilePayments merges both reports into the flat payment ledger. A
// report that could not be built contributes zero to its column. The
// synthetic total row is always appended, even over an empty union, so
// downstream consumers can rely on its presence.
func reconcilePayments(qualified, noOnboarding *domain.Report) *domain.PaymentLedger {
	qualifiedBy := paymentsByAgent(qualified)
	noOnboardingBy := paymentsByAgent(noOnboarding)

	seen := make(map[string]bool, len(qualifiedBy)+len(noOnboardingBy))
	var agents []string
	for agent := range qualifiedBy {
		if !seen[agent] {
			seen[agent] = true
			agents = append(agents, agent)
		}
	}
	for agent := range noOnboardingBy {
		if !seen[agent] {
			seen[agent] = true
			agents = append(agents, agent)
		}
	}
	sort.Strings(agents)

	ledger := &domain.PaymentLedger{}
	totalQualified, totalNoOnboarding := decimal.Zero, decimal.Zero
	for _, agent := range agents {
		q := qualifiedBy[agent]
		n := noOnboardingBy[agent]
		totalQualified = totalQualified.Add(q)
		totalNoOnboarding = totalNoOnboarding.Add(n)
		ledger.Records = append(ledger.Records, domain.PaymentRecord{
			DSAMobile:           agent,
			QualifiedPayment:    q,
			NoOnboardingPayment: n,
			TotalPayment:        q.Add(n),
		})
	}
	ledger.Records = append(ledger.Records, domain.PaymentRecord{
		DSAMobile:           domain.LedgerTotalLabel,
		QualifiedPayment:    totalQualified,
		NoOnboardingPayment: totalNoOnboarding,
		TotalPayment:        totalQualified.Add(totalNoOnboarding),
	})
	return ledger
}

func paymentsByAgent(r *domain.Report) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	if r == nil {
		return out
	}
	for _, a := range r.Agents {
		out[a.DSAMobile] = a.Totals.Payment
	}
	return out
}
