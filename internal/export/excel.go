// Package export renders a run's results into the artifacts the payment
// operators consume: two Excel workbooks, delimited flat files and the
// merged payment ledger. Column names and sheet layouts follow the
// established downstream contract; change them only together with the
// people reading these files.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"dsa-reconciler/internal/domain"
	"dsa-reconciler/internal/tabular"
	"dsa-reconciler/internal/usecase"
)

// Sheet names of the qualified workbook.
const (
	SheetQualified      = "Qualified_Customers"
	SheetSummary        = "DSA_Summary"
	SheetAllCustomers   = "All_Customers"
	SheetTicketDetails  = "Ticket_Details"
	SheetScanDetails    = "Scan_Details"
	SheetDepositDetails = "Deposit_Details"
)

// SheetAnalysis is the single sheet of the analysis workbook.
const SheetAnalysis = "DSA_Analysis"

var (
	qualifiedHeader = []string{
		"dsa_mobile", "customer_mobile", "full_name",
		"bought_ticket", "ticket_amount", "did_scan", "scan_amount", "deposited",
		"Deposits So Far", "Tickets So Far", "Scans So Far",
		"Customer Count", "Deposit Count", "Ticket Count", "Scan To Send Count", "Payment",
	}
	analysisHeader = []string{
		"dsa_mobile", "customer_mobile", "full_name",
		"bought_ticket", "did_scan", "deposited", "onboarded_by", "match_status",
		"Deposits So Far", "Tickets So Far", "Scans So Far",
		"Customer Count", "Deposit Count", "Ticket Count", "Scan To Send Count", "Payment",
	}
	summaryHeader = []string{
		"dsa_mobile", "Customer_Count", "Customers_who_deposited",
		"Customers_who_bought_ticket", "Customers_who_did_scan",
		"Total_Ticket_Amount", "Total_Scan_Amount", "deposit_count",
		"Deposit_Conversion_Rate", "Ticket_Conversion_Rate", "Scan_Conversion_Rate",
	}
	customersHeader = []string{
		"dsa_mobile", "customer_mobile", "full_name",
		"bought_ticket", "ticket_amount", "did_scan", "scan_amount", "deposited",
	}
)

// WriteQualifiedWorkbook writes the full qualified-customers workbook:
// the report itself, the per-agent summary, the reconciled customer
// universe and the three audit detail sheets.
func WriteQualifiedWorkbook(path string, res *usecase.Result) error {
	if res.Qualified == nil {
		return fmt.Errorf("qualified report was not built: %w", res.QualifiedErr)
	}

	book := excelize.NewFile()
	defer book.Close()
	book.SetSheetName(book.GetSheetName(0), SheetQualified)

	if err := writeSheet(book, SheetQualified, qualifiedHeader, qualifiedRows(res.Qualified)); err != nil {
		return err
	}
	if err := writeSheet(book, SheetSummary, summaryHeader, summaryRows(res.Summary)); err != nil {
		return err
	}
	if err := writeSheet(book, SheetAllCustomers, customersHeader, customerRows(res.Customers)); err != nil {
		return err
	}
	if err := writeTableSheet(book, SheetTicketDetails, res.Details.Tickets); err != nil {
		return err
	}
	if err := writeTableSheet(book, SheetScanDetails, res.Details.Scans); err != nil {
		return err
	}
	if err := writeTableSheet(book, SheetDepositDetails, res.Details.Deposits); err != nil {
		return err
	}

	if err := book.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

// WriteAnalysisWorkbook writes the no-onboarding analysis workbook.
func WriteAnalysisWorkbook(path string, res *usecase.Result) error {
	if res.NoOnboarding == nil {
		return fmt.Errorf("no-onboarding report was not built: %w", res.NoOnboardingErr)
	}

	book := excelize.NewFile()
	defer book.Close()
	book.SetSheetName(book.GetSheetName(0), SheetAnalysis)

	if err := writeSheet(book, SheetAnalysis, analysisHeader, analysisRows(res.NoOnboarding)); err != nil {
		return err
	}

	if err := book.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

// qualifiedRows renders the qualified report: flags and amounts per row,
// running counters for audit, the totals block on each agent's first row.
func qualifiedRows(r *domain.Report) [][]any {
	var rows [][]any
	for _, agent := range r.Agents {
		for i, row := range agent.Rows {
			cells := []any{
				row.DSAMobile, row.CustomerMobile, row.FullName,
				row.BoughtTicket, row.TicketAmount.InexactFloat64(),
				row.DidScan, row.ScanAmount.InexactFloat64(),
				row.Deposited,
				row.RunningDeposits, row.RunningTickets, row.RunningScans,
			}
			rows = append(rows, append(cells, totalsBlock(agent.Totals, i == 0)...))
		}
	}
	return rows
}

// analysisRows renders the no-onboarding report: raw counts per row plus
// the attribution verdict.
func analysisRows(r *domain.Report) [][]any {
	var rows [][]any
	for _, agent := range r.Agents {
		for i, row := range agent.Rows {
			cells := []any{
				row.DSAMobile, row.CustomerMobile, row.FullName,
				row.BoughtTicket, row.DidScan, row.Deposited,
				onboardedByLabel(row.OnboardedBy), string(row.Status),
				row.RunningDeposits, row.RunningTickets, row.RunningScans,
			}
			rows = append(rows, append(cells, totalsBlock(agent.Totals, i == 0)...))
		}
	}
	return rows
}

// totalsBlock fills the five agent-total columns on the first row of an
// agent's set and leaves them blank on detail rows.
func totalsBlock(t domain.AgentTotals, first bool) []any {
	if !first {
		return []any{nil, nil, nil, nil, nil}
	}
	return []any{t.CustomerCount, t.DepositCount, t.TicketCount, t.ScanCount, t.Payment.InexactFloat64()}
}

func onboardedByLabel(agent string) string {
	if agent == "" {
		return domain.NotOnboarded
	}
	return agent
}

func summaryRows(summary []domain.AgentSummary) [][]any {
	var rows [][]any
	for _, s := range summary {
		reported := any(nil)
		if s.ReportedDeposits != nil {
			reported = *s.ReportedDeposits
		}
		rows = append(rows, []any{
			s.DSAMobile, s.CustomerCount, s.Depositors, s.TicketBuyers, s.Scanners,
			s.TotalTicketAmount.InexactFloat64(), s.TotalScanAmount.InexactFloat64(),
			reported,
			s.DepositRate.InexactFloat64(), s.TicketRate.InexactFloat64(), s.ScanRate.InexactFloat64(),
		})
	}
	return rows
}

func customerRows(customers []domain.Customer) [][]any {
	var rows [][]any
	for _, c := range customers {
		rows = append(rows, []any{
			c.OnboardedBy, c.Mobile, c.FullName,
			boolCell(c.BoughtTicket), c.TicketAmount.InexactFloat64(),
			boolCell(c.DidScan), c.ScanAmount.InexactFloat64(),
			boolCell(c.Deposited),
		})
	}
	return rows
}

func boolCell(b bool) int {
	if b {
		return 1
	}
	return 0
}

// writeTableSheet dumps a cleaned source table verbatim for audit.
func writeTableSheet(book *excelize.File, sheet string, t *tabular.Table) error {
	rows := make([][]any, 0, t.Len())
	for _, row := range t.Rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = v
		}
		rows = append(rows, cells)
	}
	return writeSheet(book, sheet, t.Headers, rows)
}

func writeSheet(book *excelize.File, sheet string, header []string, rows [][]any) error {
	idx, err := book.GetSheetIndex(sheet)
	if err != nil {
		return fmt.Errorf("failed to look up sheet %s: %w", sheet, err)
	}
	if idx < 0 {
		if _, err := book.NewSheet(sheet); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}
	}

	headerCells := make([]any, len(header))
	for i, h := range header {
		headerCells[i] = h
	}
	if err := book.SetSheetRow(sheet, "A1", &headerCells); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", sheet, err)
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d of %s: %w", i+2, sheet, err)
		}
		if err := book.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+2, sheet, err)
		}
	}
	return nil
}
