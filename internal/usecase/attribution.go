package usecase

import (
	"sort"

	"dsa-reconciler/internal/domain"
	"dsa-reconciler/internal/tabular"
)

// buildAttribution walks the credit deposits and assigns each customer to
// the first distinct agent that authored a deposit for them. Rows are
// visited in transaction-identifier order when the feed carries one, so
// ownership does not depend on export row order. Self-deposits neither
// create nor feed a record.
func buildAttribution(deposits *tabular.Table, cols depositColumns, onboardedBy map[string]string, callingCode string) map[string]*domain.AttributionRecord {
	rows := deposits.Rows
	if cols.txnID != "" {
		rows = append([][]string(nil), rows...)
		sort.SliceStable(rows, func(i, j int) bool {
			return deposits.Value(rows[i], cols.txnID) < deposits.Value(rows[j], cols.txnID)
		})
	}

	records := make(map[string]*domain.AttributionRecord)
	for _, row := range rows {
		customer := domain.NormalizeMobile(deposits.Value(row, cols.customer), callingCode)
		agent := domain.NormalizeMobile(deposits.Value(row, cols.agent), callingCode)
		if customer == "" || agent == "" || customer == agent {
			continue
		}

		rec, ok := records[customer]
		if !ok {
			declared := onboardedBy[customer]
			rec = &domain.AttributionRecord{
				CustomerMobile: customer,
				DSAMobile:      agent,
				OnboardedBy:    declared,
				Status:         classify(declared, agent),
			}
			records[customer] = rec
		}
		rec.DepositCount++
	}
	return records
}

// classify compares the onboarding-declared agent with the deposit owner.
func classify(declared, owner string) domain.MatchStatus {
	switch {
	case declared == "":
		return domain.MatchStatusNoOnboarding
	case declared == owner:
		return domain.MatchStatusMatch
	default:
		return domain.MatchStatusMismatch
	}
}

// countActivityInto bumps a counter on the attribution record of every
// table row whose customer owns one. Rows for unattributed customers are
// ignored.
func countActivityInto(records map[string]*domain.AttributionRecord, t *tabular.Table, customerCol, callingCode string, bump func(*domain.AttributionRecord)) {
	if customerCol == "" {
		return
	}
	for _, row := range t.Rows {
		mobile := domain.NormalizeMobile(t.Value(row, customerCol), callingCode)
		if rec, ok := records[mobile]; ok {
			bump(rec)
		}
	}
}
