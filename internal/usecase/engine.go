package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"dsa-reconciler/internal/config"
	"dsa-reconciler/internal/domain"
	"dsa-reconciler/internal/schema"
	"dsa-reconciler/internal/tabular"
)

// Engine orchestrates one generation run: load the exports, clean them,
// derive the customer universe and attribution records, then evaluate both
// compensation reports plus the summary and ledger.
type Engine struct {
	repo    TableRepository
	cfg     config.Config
	mapping schema.Mapping
	logger  *slog.Logger
}

// Option configures an Engine beyond its required dependencies.
type Option func(*Engine)

// WithLogger replaces the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithMapping replaces the default column mapping, for exporter versions
// the built-in candidate lists do not cover yet.
func WithMapping(m schema.Mapping) Option {
	return func(e *Engine) { e.mapping = m }
}

// NewEngine creates a new instance of the engine.
func NewEngine(repo TableRepository, cfg config.Config, opts ...Option) *Engine {
	e := &Engine{
		repo:    repo,
		cfg:     cfg,
		mapping: schema.Default(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Sources names the input files for one run. ConversionPath is optional;
// leave it empty to skip the feed.
type Sources struct {
	OnboardingPath string
	DepositPath    string
	TicketPath     string
	ScanPath       string
	ConversionPath string
}

// DateRange bounds the activity window. A zero Start or End leaves that
// side open; the zero range means all time.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Active reports whether any bound is set.
func (r DateRange) Active() bool {
	return !r.Start.IsZero() || !r.End.IsZero()
}

// Contains reports whether ts falls inside the range. End is treated as a
// whole day, so an End of 2025-06-30 keeps timestamps through the end of
// that day.
func (r DateRange) Contains(ts time.Time) bool {
	if !r.Start.IsZero() && ts.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && !ts.Before(r.End.AddDate(0, 0, 1)) {
		return false
	}
	return true
}

// Label renders the window for report headers.
func (r DateRange) Label() string {
	switch {
	case !r.Active():
		return "All Time"
	case r.Start.IsZero():
		return "through " + r.End.Format(time.DateOnly)
	case r.End.IsZero():
		return "from " + r.Start.Format(time.DateOnly)
	default:
		return r.Start.Format(time.DateOnly) + " to " + r.End.Format(time.DateOnly)
	}
}

// Result is the full output of one generation run. A report that could
// not be built is nil with its error kept alongside; everything else is
// still populated so one bad dataset never empties the whole run.
type Result struct {
	RunID       uuid.UUID
	GeneratedAt time.Time
	Range       DateRange

	// Customers is the reconciled onboarded universe in feed order.
	Customers []domain.Customer

	Qualified       *domain.Report
	QualifiedErr    error
	NoOnboarding    *domain.Report
	NoOnboardingErr error

	Summary []domain.AgentSummary
	Ledger  *domain.PaymentLedger

	Details Details
}

// Details carries the cleaned per-transaction tables backing the audit
// sheets: exactly the rows that fed the computation.
type Details struct {
	Deposits *tabular.Table
	Tickets  *tabular.Table
	Scans    *tabular.Table
}

// Generate performs one full run over the named sources.
func (e *Engine) Generate(ctx context.Context, src Sources, window DateRange) (*Result, error) {
	// Step 1: Data Ingestion
	onboarding, err := e.repo.LoadDataset(ctx, schema.DatasetOnboarding, src.OnboardingPath)
	if err != nil {
		return nil, fmt.Errorf("could not load onboarding data: %w", err)
	}
	deposits, err := e.repo.LoadDataset(ctx, schema.DatasetDeposit, src.DepositPath)
	if err != nil {
		return nil, fmt.Errorf("could not load deposit data: %w", err)
	}
	tickets, err := e.repo.LoadDataset(ctx, schema.DatasetTicket, src.TicketPath)
	if err != nil {
		return nil, fmt.Errorf("could not load ticket data: %w", err)
	}
	scans, err := e.repo.LoadDataset(ctx, schema.DatasetScan, src.ScanPath)
	if err != nil {
		return nil, fmt.Errorf("could not load scan data: %w", err)
	}
	var conversion *tabular.Table
	if src.ConversionPath != "" {
		conversion, err = e.repo.LoadDataset(ctx, schema.DatasetConversion, src.ConversionPath)
		if err != nil {
			e.logger.Warn("conversion feed unavailable, reported deposit counts stay blank", "error", err)
			conversion = nil
		}
	}
	e.logger.Info("datasets loaded",
		"onboarding", onboarding.Len(),
		"deposits", deposits.Len(),
		"tickets", tickets.Len(),
		"scans", scans.Len(),
		"window", window.Label())

	// Step 2: Cleaning and Windowing
	c := e.clean(onboarding, deposits, tickets, scans, window)
	if c.qualifiedErr != nil {
		e.logger.Error("qualified report cannot be built", "error", c.qualifiedErr)
	}
	if c.noOnboardingErr != nil {
		e.logger.Error("no-onboarding report cannot be built", "error", c.noOnboardingErr)
	}

	result := &Result{
		RunID:           uuid.New(),
		GeneratedAt:     time.Now().UTC(),
		Range:           window,
		QualifiedErr:    c.qualifiedErr,
		NoOnboardingErr: c.noOnboardingErr,
		Details:         Details{Deposits: c.deposits, Tickets: c.tickets, Scans: c.scans},
	}

	// Step 3: Identity Derivation
	names := make(map[string]string)
	var onboardedBy map[string]string
	var order []string
	if c.onbCustomer != "" && c.onbAgent != "" {
		harvestNames(names, c.onboarding, c.onbCustomer, c.onbName, e.cfg.CallingCode)
		onboardedBy, order = onboardingIndex(c.onboarding, c.onbCustomer, c.onbAgent, e.cfg.CallingCode)
	}
	harvestNames(names, c.deposits, c.depositCols.customer, c.depositCols.name, e.cfg.CallingCode)
	harvestNames(names, c.tickets, c.ticketCols.customer, c.ticketCols.name, e.cfg.CallingCode)
	harvestNames(names, c.scans, c.scanCols.customer, c.scanCols.name, e.cfg.CallingCode)

	// Step 4: Activity Aggregation
	var depositAgg, ticketAgg, scanAgg map[string]domain.Activity
	if c.depositCols.customer != "" {
		depositAgg = aggregateActivity(c.deposits, c.depositCols.customer, c.depositCols.amount, e.cfg.CallingCode)
	}
	if c.ticketCols.customer != "" {
		ticketAgg = aggregateActivity(c.tickets, c.ticketCols.customer, c.ticketCols.amount, e.cfg.CallingCode)
	}
	if c.scanCols.customer != "" {
		scanAgg = aggregateActivity(c.scans, c.scanCols.customer, c.scanCols.amount, e.cfg.CallingCode)
	}

	// Step 5: Deposit Attribution
	var records map[string]*domain.AttributionRecord
	if c.noOnboardingErr == nil {
		records = buildAttribution(c.deposits, c.depositCols, onboardedBy, e.cfg.CallingCode)
		countActivityInto(records, c.tickets, c.ticketCols.customer, e.cfg.CallingCode,
			func(r *domain.AttributionRecord) { r.TicketCount++ })
		countActivityInto(records, c.scans, c.scanCols.customer, e.cfg.CallingCode,
			func(r *domain.AttributionRecord) { r.ScanCount++ })
		for _, rec := range records {
			rec.FullName = displayName(names, rec.CustomerMobile)
		}
	}

	// Step 6: Report Evaluation
	if c.qualifiedErr == nil {
		result.Customers = assembleCustomers(order, onboardedBy, names, depositAgg, ticketAgg, scanAgg)
		result.Qualified = buildReport(qualifiedRule(e.cfg.QualifiedRate), qualifiedCandidates(result.Customers))
	}
	if c.noOnboardingErr == nil {
		result.NoOnboarding = buildReport(noOnboardingRule(e.cfg.NoOnboardingRate), noOnboardingCandidates(records))
	}

	// Step 7: Summary and Payment Reconciliation
	if c.qualifiedErr == nil {
		result.Summary = buildSummary(result.Customers, e.reportedDeposits(conversion))
	}
	result.Ledger = reconcilePayments(result.Qualified, result.NoOnboarding)

	if total, ok := result.Ledger.GrandTotal(); ok {
		e.logger.Info("run complete",
			"run_id", result.RunID,
			"customers", len(result.Customers),
			"qualified_payment", total.QualifiedPayment,
			"no_onboarding_payment", total.NoOnboardingPayment,
			"total_payment", total.TotalPayment)
	}
	return result, nil
}
