// Package config carries the tunable business constants so main and the
// engine stay lean. Defaults match the compensation scheme in force;
// everything is overridable by environment and again by CLI flags.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"dsa-reconciler/internal/domain"
)

// Named payment rates. The no-onboarding channel pays less than the
// qualified channel because attribution there rests on deposit authorship
// alone.
var (
	// DefaultQualifiedRate is paid per qualified onboarded customer.
	DefaultQualifiedRate = decimal.NewFromInt(40)
	// DefaultNoOnboardingRate is paid per eligible customer acquired
	// outside the onboarding feed.
	DefaultNoOnboardingRate = decimal.NewFromInt(25)
)

// Default transaction-type code sets.
var (
	DefaultCreditTypes = []string{"CR"}
	DefaultDebitTypes  = []string{"DR"}
)

// TicketEntity is the entity flag a ticket row must carry to count as a
// customer purchase (compared case-insensitively).
const TicketEntity = "customer"

// Config is the engine's full tunable surface.
type Config struct {
	QualifiedRate    decimal.Decimal
	NoOnboardingRate decimal.Decimal
	CallingCode      string
	CreditTypes      []string // accepted type codes for deposits
	DebitTypes       []string // accepted type codes for ticket/scan spend
	// PermissiveTypeFallback accepts every row of a dataset whose
	// transaction-type column cannot be resolved. Exporters disagree on
	// shipping the column, so this defaults on; each activation is logged
	// because it can over-count activity.
	PermissiveTypeFallback bool
	OutputDir              string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		QualifiedRate:          DefaultQualifiedRate,
		NoOnboardingRate:       DefaultNoOnboardingRate,
		CallingCode:            domain.DefaultCallingCode,
		CreditTypes:            append([]string(nil), DefaultCreditTypes...),
		DebitTypes:             append([]string(nil), DefaultDebitTypes...),
		PermissiveTypeFallback: true,
		OutputDir:              ".",
	}
}

// FromEnv builds a Config from environment variables over the defaults.
// Unparseable values keep their default.
func FromEnv() Config {
	cfg := Default()

	if v := os.Getenv("DSA_RATE_QUALIFIED"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			cfg.QualifiedRate = d
		}
	}
	if v := os.Getenv("DSA_RATE_NO_ONBOARDING"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			cfg.NoOnboardingRate = d
		}
	}
	if v := os.Getenv("DSA_CALLING_CODE"); v != "" {
		cfg.CallingCode = v
	}
	if v := os.Getenv("DSA_CREDIT_TYPES"); v != "" {
		cfg.CreditTypes = splitCodes(v)
	}
	if v := os.Getenv("DSA_DEBIT_TYPES"); v != "" {
		cfg.DebitTypes = splitCodes(v)
	}
	if v := os.Getenv("DSA_STRICT_TYPE_FILTER"); v == "true" {
		cfg.PermissiveTypeFallback = false
	}
	if v := os.Getenv("DSA_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}

	return cfg
}

// Validate rejects rate combinations the compensation scheme forbids.
func (c Config) Validate() error {
	if !c.QualifiedRate.IsPositive() {
		return fmt.Errorf("qualified rate must be positive, got %s", c.QualifiedRate)
	}
	if !c.NoOnboardingRate.IsPositive() {
		return fmt.Errorf("no-onboarding rate must be positive, got %s", c.NoOnboardingRate)
	}
	if c.NoOnboardingRate.GreaterThanOrEqual(c.QualifiedRate) {
		return fmt.Errorf("no-onboarding rate %s must stay below the qualified rate %s",
			c.NoOnboardingRate, c.QualifiedRate)
	}
	return nil
}

func splitCodes(v string) []string {
	parts := strings.Split(v, ",")
	codes := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			codes = append(codes, p)
		}
	}
	return codes
}
