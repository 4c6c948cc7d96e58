package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"dsa-reconciler/internal/config"
	"dsa-reconciler/internal/domain"
	"dsa-reconciler/internal/export"
	"dsa-reconciler/internal/gateway"
	"dsa-reconciler/internal/usecase"
)

var rootCmd = &cobra.Command{
	Use:   "dsareport",
	Short: "Generate DSA compensation reports from activity exports",
	Long: `Reconcile the onboarding, deposit, ticket and scan exports into the
two DSA compensation reports, the per-agent summary and the merged
payment ledger.

The four dataset flags are required; the conversion feed is optional
and only fills the reported deposit counts of the summary. Dates bound
the activity window and are inclusive on both ends.`,
	RunE:         run,
	SilenceUsage: true,
}

var flags struct {
	onboarding string
	deposit    string
	ticket     string
	scan       string
	conversion string

	start    string
	end      string
	lastDays int
	out      string

	rateQualified    string
	rateNoOnboarding string
	strictTypes      bool
	verbose          bool
	quiet            bool
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&flags.onboarding, "onboarding", "", "Path to the onboarding export, CSV or XLSX (required)")
	f.StringVar(&flags.deposit, "deposit", "", "Path to the deposit export, CSV or XLSX (required)")
	f.StringVar(&flags.ticket, "ticket", "", "Path to the ticket export, CSV or XLSX (required)")
	f.StringVar(&flags.scan, "scan", "", "Path to the scan-to-send export, CSV or XLSX (required)")
	f.StringVar(&flags.conversion, "conversion", "", "Path to the optional conversion feed")
	f.StringVar(&flags.start, "start", "", "Start of the activity window (YYYY-MM-DD)")
	f.StringVar(&flags.end, "end", "", "End of the activity window, inclusive (YYYY-MM-DD)")
	f.IntVar(&flags.lastDays, "last", 0, "Shorthand window: the last N days up to today (e.g. 7 or 30)")
	f.StringVar(&flags.out, "out", "", "Directory the artifacts are written to (default current directory)")
	f.StringVar(&flags.rateQualified, "rate-qualified", "", "Payment per qualified customer")
	f.StringVar(&flags.rateNoOnboarding, "rate-no-onboarding", "", "Payment per attributed customer without onboarding")
	f.BoolVar(&flags.strictTypes, "strict-types", false, "Fail a report instead of counting every row when a transaction type column is missing")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")
	f.BoolVarP(&flags.quiet, "quiet", "q", false, "Log warnings and errors only")

	for _, name := range []string{"onboarding", "deposit", "ticket", "scan"} {
		cobra.CheckErr(rootCmd.MarkFlagRequired(name))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	level := slog.LevelInfo
	if flags.verbose {
		level = slog.LevelDebug
	}
	if flags.quiet {
		level = slog.LevelWarn
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	window, err := parseWindow(flags.start, flags.end, flags.lastDays)
	if err != nil {
		return err
	}

	repo := gateway.NewFileTableRepository()
	engine := usecase.NewEngine(repo, cfg, usecase.WithLogger(logger))

	result, err := engine.Generate(cmd.Context(), usecase.Sources{
		OnboardingPath: flags.onboarding,
		DepositPath:    flags.deposit,
		TicketPath:     flags.ticket,
		ScanPath:       flags.scan,
		ConversionPath: flags.conversion,
	}, window)
	if err != nil {
		return fmt.Errorf("report generation failed: %w", err)
	}

	envelope, err := writeArtifacts(cfg.OutputDir, result)
	if err != nil {
		return err
	}

	output, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render run summary: %w", err)
	}
	fmt.Println(string(output))
	return nil
}

// buildConfig layers the command line over the environment: flags win,
// environment variables fill the rest, defaults last.
func buildConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.FromEnv()
	if flags.out != "" {
		cfg.OutputDir = flags.out
	}
	if flags.rateQualified != "" {
		rate, err := decimal.NewFromString(flags.rateQualified)
		if err != nil {
			return cfg, fmt.Errorf("could not parse qualified rate %q: %w", flags.rateQualified, err)
		}
		cfg.QualifiedRate = rate
	}
	if flags.rateNoOnboarding != "" {
		rate, err := decimal.NewFromString(flags.rateNoOnboarding)
		if err != nil {
			return cfg, fmt.Errorf("could not parse no-onboarding rate %q: %w", flags.rateNoOnboarding, err)
		}
		cfg.NoOnboardingRate = rate
	}
	if cmd.Flags().Changed("strict-types") {
		cfg.PermissiveTypeFallback = !flags.strictTypes
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func parseWindow(start, end string, lastDays int) (usecase.DateRange, error) {
	var window usecase.DateRange
	if lastDays > 0 {
		if start != "" || end != "" {
			return window, fmt.Errorf("--last cannot be combined with --start or --end")
		}
		today := time.Now().UTC().Truncate(24 * time.Hour)
		window.Start = today.AddDate(0, 0, -lastDays)
		window.End = today
		return window, nil
	}

	var err error
	if start != "" {
		window.Start, err = time.Parse(time.DateOnly, start)
		if err != nil {
			return window, fmt.Errorf("could not parse start date %q: %w", start, err)
		}
	}
	if end != "" {
		window.End, err = time.Parse(time.DateOnly, end)
		if err != nil {
			return window, fmt.Errorf("could not parse end date %q: %w", end, err)
		}
	}
	if window.Start.After(window.End) && !window.End.IsZero() {
		return window, fmt.Errorf("start date %s is after end date %s", start, end)
	}
	return window, nil
}

// runEnvelope is the machine-readable run summary printed to stdout.
type runEnvelope struct {
	RunID        uuid.UUID       `json:"run_id"`
	GeneratedAt  time.Time       `json:"generated_at"`
	Window       string          `json:"window"`
	Qualified    reportStatus    `json:"qualified_customers"`
	NoOnboarding reportStatus    `json:"no_onboarding_customers"`
	TotalPayment decimal.Decimal `json:"total_payment"`
	Ledger       string          `json:"payment_ledger"`
}

type reportStatus struct {
	Built     bool            `json:"built"`
	Error     string          `json:"error,omitempty"`
	Agents    int             `json:"agents"`
	Customers int             `json:"customers"`
	Payment   decimal.Decimal `json:"payment"`
	Artifacts []string        `json:"artifacts,omitempty"`
}

// writeArtifacts renders every artifact a built report backs, named the
// way the downstream archive expects: one timestamp shared per run.
func writeArtifacts(dir string, res *usecase.Result) (*runEnvelope, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create output directory %s: %w", dir, err)
	}
	stamp := res.GeneratedAt.Format("20060102_150405")

	envelope := &runEnvelope{
		RunID:       res.RunID,
		GeneratedAt: res.GeneratedAt,
		Window:      res.Range.Label(),
	}

	var qualifiedArtifacts []string
	if res.Qualified != nil {
		workbook := filepath.Join(dir, "DSA_Performance_Report_"+stamp+".xlsx")
		if err := export.WriteQualifiedWorkbook(workbook, res); err != nil {
			return nil, err
		}
		summary := filepath.Join(dir, "DSA_Summary_"+stamp+".csv")
		if err := export.WriteSummaryCSV(summary, res.Summary); err != nil {
			return nil, err
		}
		qualifiedArtifacts = []string{workbook, summary}
	}
	envelope.Qualified = status(res.Qualified, res.QualifiedErr, qualifiedArtifacts)

	var analysisArtifacts []string
	if res.NoOnboarding != nil {
		workbook := filepath.Join(dir, "DSA_Detailed_Analysis_"+stamp+".xlsx")
		if err := export.WriteAnalysisWorkbook(workbook, res); err != nil {
			return nil, err
		}
		flat := filepath.Join(dir, "DSA_Analysis_"+stamp+".tsv")
		if err := export.WriteAnalysisTSV(flat, res.NoOnboarding); err != nil {
			return nil, err
		}
		analysisArtifacts = []string{workbook, flat}
	}
	envelope.NoOnboarding = status(res.NoOnboarding, res.NoOnboardingErr, analysisArtifacts)

	ledger := filepath.Join(dir, "DSA_Payments_"+stamp+".csv")
	if err := export.WriteLedgerCSV(ledger, res.Ledger); err != nil {
		return nil, err
	}
	envelope.Ledger = ledger
	if total, ok := res.Ledger.GrandTotal(); ok {
		envelope.TotalPayment = total.TotalPayment
	}
	return envelope, nil
}

func status(r *domain.Report, err error, artifacts []string) reportStatus {
	s := reportStatus{Artifacts: artifacts}
	if err != nil {
		s.Error = err.Error()
	}
	if r == nil {
		return s
	}
	s.Built = true
	s.Agents = len(r.Agents)
	s.Customers = r.CustomerCount()
	s.Payment = r.TotalPayment()
	return s
}
