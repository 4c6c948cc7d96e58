package usecase

import (
	"sort"

	"dsa-reconciler/internal/domain"
	"dsa-reconciler/internal/schema"
	"dsa-reconciler/internal/tabular"
)

// buildSummary aggregates the onboarded universe per declaring agent and
// merges the conversion feed's reported deposit counts where present.
// Customers whose onboarding record declares no agent are left out; they
// have nobody to be summarized under.
func buildSummary(customers []domain.Customer, reported map[string]int) []domain.AgentSummary {
	byAgent := make(map[string]*domain.AgentSummary)
	for i := range customers {
		c := &customers[i]
		if c.OnboardedBy == "" {
			continue
		}
		s, ok := byAgent[c.OnboardedBy]
		if !ok {
			s = &domain.AgentSummary{DSAMobile: c.OnboardedBy}
			byAgent[c.OnboardedBy] = s
		}
		s.CustomerCount++
		if c.Deposited {
			s.Depositors++
		}
		if c.BoughtTicket {
			s.TicketBuyers++
		}
		if c.DidScan {
			s.Scanners++
		}
		s.TotalTicketAmount = s.TotalTicketAmount.Add(c.TicketAmount)
		s.TotalScanAmount = s.TotalScanAmount.Add(c.ScanAmount)
	}

	agents := make([]string, 0, len(byAgent))
	for agent := range byAgent {
		agents = append(agents, agent)
	}
	sort.Strings(agents)

	out := make([]domain.AgentSummary, 0, len(agents))
	for _, agent := range agents {
		s := byAgent[agent]
		if count, ok := reported[agent]; ok {
			c := count
			s.ReportedDeposits = &c
		}
		s.DepositRate = domain.ConversionRate(s.Depositors, s.CustomerCount)
		s.TicketRate = domain.ConversionRate(s.TicketBuyers, s.CustomerCount)
		s.ScanRate = domain.ConversionRate(s.Scanners, s.CustomerCount)
		out = append(out, *s)
	}
	return out
}

// reportedDeposits reads the optional conversion feed into agent to
// count. The feed is advisory; when its columns cannot be resolved the
// whole feed is ignored with a warning rather than failing anything.
func (e *Engine) reportedDeposits(t *tabular.Table) map[string]int {
	if t == nil {
		return nil
	}
	agentCol, err := e.mapping.Resolve(t, schema.DatasetConversion, schema.FieldAgentID)
	if err != nil {
		e.logger.Warn("conversion feed ignored", "error", err)
		return nil
	}
	countCol, err := e.mapping.Resolve(t, schema.DatasetConversion, schema.FieldDepositCount)
	if err != nil {
		e.logger.Warn("conversion feed ignored", "error", err)
		return nil
	}

	out := make(map[string]int)
	for _, row := range t.Rows {
		agent := domain.NormalizeMobile(t.Value(row, agentCol), e.cfg.CallingCode)
		if agent == "" {
			continue
		}
		// Later rows win, matching how the feed itself is produced.
		if n, ok := tabular.ParseAmount(t.Value(row, countCol)); ok {
			out[agent] = int(n.IntPart())
		}
	}
	return out
}
