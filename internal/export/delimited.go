package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"dsa-reconciler/internal/domain"
)

var ledgerHeader = []string{"dsa_mobile", "qualified_payment", "no_onboarding_payment", "total_payment"}

// WriteSummaryCSV writes the per-agent summary as a comma-separated file.
// Amounts and rates keep their exact decimal rendering; the workbook is
// the place for display rounding.
func WriteSummaryCSV(path string, summary []domain.AgentSummary) error {
	records := [][]string{summaryHeader}
	for _, s := range summary {
		reported := ""
		if s.ReportedDeposits != nil {
			reported = strconv.Itoa(*s.ReportedDeposits)
		}
		records = append(records, []string{
			s.DSAMobile,
			strconv.Itoa(s.CustomerCount),
			strconv.Itoa(s.Depositors),
			strconv.Itoa(s.TicketBuyers),
			strconv.Itoa(s.Scanners),
			s.TotalTicketAmount.String(),
			s.TotalScanAmount.String(),
			reported,
			s.DepositRate.String(),
			s.TicketRate.String(),
			s.ScanRate.String(),
		})
	}
	return writeDelimited(path, ',', records)
}

// WriteAnalysisTSV writes the no-onboarding report as a tab-separated
// file, one row per customer with the agent totals on the first row of
// each agent's block, mirroring the workbook sheet.
func WriteAnalysisTSV(path string, r *domain.Report) error {
	if r == nil {
		return fmt.Errorf("no-onboarding report was not built")
	}
	records := [][]string{analysisHeader}
	for _, agent := range r.Agents {
		for i, row := range agent.Rows {
			record := []string{
				row.DSAMobile, row.CustomerMobile, row.FullName,
				strconv.Itoa(row.BoughtTicket), strconv.Itoa(row.DidScan), strconv.Itoa(row.Deposited),
				onboardedByLabel(row.OnboardedBy), string(row.Status),
				strconv.Itoa(row.RunningDeposits), strconv.Itoa(row.RunningTickets), strconv.Itoa(row.RunningScans),
			}
			records = append(records, append(record, totalsStrings(agent.Totals, i == 0)...))
		}
	}
	return writeDelimited(path, '\t', records)
}

// WriteLedgerCSV writes the merged payment ledger with its synthetic
// Total row last.
func WriteLedgerCSV(path string, l *domain.PaymentLedger) error {
	records := [][]string{ledgerHeader}
	for _, rec := range l.Records {
		records = append(records, []string{
			rec.DSAMobile,
			rec.QualifiedPayment.String(),
			rec.NoOnboardingPayment.String(),
			rec.TotalPayment.String(),
		})
	}
	return writeDelimited(path, ',', records)
}

func totalsStrings(t domain.AgentTotals, first bool) []string {
	if !first {
		return []string{"", "", "", "", ""}
	}
	return []string{
		strconv.Itoa(t.CustomerCount),
		strconv.Itoa(t.DepositCount),
		strconv.Itoa(t.TicketCount),
		strconv.Itoa(t.ScanCount),
		t.Payment.String(),
	}
}

func writeDelimited(path string, comma rune, records [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	writer.Comma = comma
	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
