package usecase

import (
	"dsa-reconciler/internal/domain"
	"dsa-reconciler/internal/tabular"
)

// activityColumns names the resolved columns of one activity dataset.
// An empty string means the table has no accepted column for that field.
type activityColumns struct {
	customer  string
	amount    string
	name      string
	typ       string
	timestamp string
}

// depositColumns extends activityColumns with the fields only the deposit
// feed carries: the authoring agent and the transaction identifier used
// for stable ordering.
type depositColumns struct {
	activityColumns
	agent string
	txnID string
}

// aggregateActivity folds an already filtered activity table into
// per-customer totals. Every surviving record counts; amounts that fail
// to parse contribute zero, and a missing amount column leaves sums at
// zero without dropping the counts.
func aggregateActivity(t *tabular.Table, customerCol, amountCol, callingCode string) map[string]domain.Activity {
	out := make(map[string]domain.Activity)
	for _, row := range t.Rows {
		mobile := domain.NormalizeMobile(t.Value(row, customerCol), callingCode)
		if mobile == "" {
			continue
		}
		act := out[mobile]
		act.Count++
		if amountCol != "" {
			if amount, ok := tabular.ParseAmount(t.Value(row, amountCol)); ok {
				act.Sum = act.Sum.Add(amount)
				if amount.IsPositive() {
					act.PositiveCount++
				}
			}
		}
		out[mobile] = act
	}
	return out
}

// harvestNames records the first usable display name per customer from
// one table into names. Earlier sources are never overwritten, so calling
// this in source priority order resolves name conflicts.
func harvestNames(names map[string]string, t *tabular.Table, customerCol, nameCol, callingCode string) {
	if t == nil || customerCol == "" || nameCol == "" {
		return
	}
	for _, row := range t.Rows {
		mobile := domain.NormalizeMobile(t.Value(row, customerCol), callingCode)
		if mobile == "" {
			continue
		}
		if _, ok := names[mobile]; ok {
			continue
		}
		if name := t.Value(row, nameCol); name != "" {
			names[mobile] = name
		}
	}
}

func displayName(names map[string]string, mobile string) string {
	if name, ok := names[mobile]; ok {
		return name
	}
	return domain.UnknownName
}

// onboardingIndex maps each canonical customer to the agent their first
// onboarding record declares, which may be empty when the record carries
// no referrer. The returned order preserves first appearance in the feed.
func onboardingIndex(t *tabular.Table, customerCol, agentCol, callingCode string) (map[string]string, []string) {
	agents := make(map[string]string)
	var order []string
	for _, row := range t.Rows {
		mobile := domain.NormalizeMobile(t.Value(row, customerCol), callingCode)
		if mobile == "" {
			continue
		}
		if _, ok := agents[mobile]; ok {
			continue
		}
		agents[mobile] = domain.NormalizeMobile(t.Value(row, agentCol), callingCode)
		order = append(order, mobile)
	}
	return agents, order
}

// assembleCustomers builds the reconciled customer view for everyone the
// onboarding feed declares, in feed order.
func assembleCustomers(order []string, onboardedBy, names map[string]string, deposits, tickets, scans map[string]domain.Activity) []domain.Customer {
	out := make([]domain.Customer, 0, len(order))
	for _, mobile := range order {
		dep := deposits[mobile]
		tik := tickets[mobile]
		scn := scans[mobile]
		out = append(out, domain.Customer{
			Mobile:       mobile,
			FullName:     displayName(names, mobile),
			OnboardedBy:  onboardedBy[mobile],
			Deposited:    dep.Count > 0,
			DepositCount: dep.Count,
			BoughtTicket: tik.Active(),
			TicketAmount: tik.Sum,
			TicketCount:  tik.Count,
			DidScan:      scn.Active(),
			ScanAmount:   scn.Sum,
			ScanCount:    scn.Count,
		})
	}
	return out
}
