package usecase

import (
	"strings"

	"dsa-reconciler/internal/config"
	"dsa-reconciler/internal/schema"
	"dsa-reconciler/internal/tabular"
)

// cleaned holds the four datasets after header repair, column resolution
// and row filtering, plus the first resolution failure charged to each
// report. A report whose error is set is skipped downstream; the other
// one still runs on whatever resolved.
type cleaned struct {
	onboarding *tabular.Table
	deposits   *tabular.Table
	tickets    *tabular.Table
	scans      *tabular.Table

	onbCustomer string
	onbAgent    string
	onbName     string

	depositCols depositColumns
	ticketCols  activityColumns
	scanCols    activityColumns

	qualifiedErr    error
	noOnboardingErr error
}

// clean resolves every dataset's columns and applies the row filters in
// fixed order: header repair, entity filter, transaction-type filter,
// date window. Resolution failures do not stop the pass; they are routed
// to the report that needs the missing column.
func (e *Engine) clean(onboarding, deposits, tickets, scans *tabular.Table, window DateRange) *cleaned {
	c := &cleaned{onboarding: onboarding}
	var err error

	// Onboarding identity columns feed both reports and the summary.
	c.onbCustomer, err = e.mapping.Resolve(onboarding, schema.DatasetOnboarding, schema.FieldCustomerID)
	c.chargeBoth(err)
	c.onbAgent, err = e.mapping.Resolve(onboarding, schema.DatasetOnboarding, schema.FieldAgentID)
	c.chargeBoth(err)
	c.onbName, _ = e.mapping.ResolveOptional(onboarding, schema.DatasetOnboarding, schema.FieldName)

	// Deposits: the customer column feeds both reports, the authoring
	// agent only the no-onboarding side.
	c.depositCols.customer, err = e.mapping.Resolve(deposits, schema.DatasetDeposit, schema.FieldCustomerID)
	c.chargeBoth(err)
	c.depositCols.agent, err = e.mapping.Resolve(deposits, schema.DatasetDeposit, schema.FieldAgentID)
	firstErr(&c.noOnboardingErr, err)
	c.depositCols.amount, _ = e.mapping.ResolveOptional(deposits, schema.DatasetDeposit, schema.FieldAmount)
	c.depositCols.name, _ = e.mapping.ResolveOptional(deposits, schema.DatasetDeposit, schema.FieldName)
	c.depositCols.txnID, _ = e.mapping.ResolveOptional(deposits, schema.DatasetDeposit, schema.FieldTxnID)
	c.depositCols.timestamp, _ = e.mapping.ResolveOptional(deposits, schema.DatasetDeposit, schema.FieldTimestamp)
	c.depositCols.typ, err = e.resolveTypeColumn(deposits, schema.DatasetDeposit)
	c.chargeBoth(err)
	deposits = filterByType(deposits, c.depositCols.typ, e.cfg.CreditTypes)
	c.deposits = e.filterByDate(deposits, schema.DatasetDeposit, c.depositCols.timestamp, window)

	// Tickets: one exporter version ships this file with a data row where
	// the header belongs; repair before resolving anything against it.
	if schema.RepairTicketHeader(tickets) {
		e.logger.Warn("repaired mangled ticket header", "columns", tickets.Width())
	}
	c.ticketCols.customer, err = e.mapping.Resolve(tickets, schema.DatasetTicket, schema.FieldCustomerID)
	c.chargeBoth(err)
	c.ticketCols.amount, err = e.mapping.Resolve(tickets, schema.DatasetTicket, schema.FieldAmount)
	firstErr(&c.qualifiedErr, err)
	c.ticketCols.name, _ = e.mapping.ResolveOptional(tickets, schema.DatasetTicket, schema.FieldName)
	c.ticketCols.timestamp, _ = e.mapping.ResolveOptional(tickets, schema.DatasetTicket, schema.FieldTimestamp)
	c.ticketCols.typ, err = e.resolveTypeColumn(tickets, schema.DatasetTicket)
	c.chargeBoth(err)
	if entityCol, ok := e.mapping.ResolveOptional(tickets, schema.DatasetTicket, schema.FieldEntity); ok {
		src := tickets
		tickets = src.Filter(func(row []string) bool {
			return strings.EqualFold(src.Value(row, entityCol), config.TicketEntity)
		})
	}
	tickets = filterByType(tickets, c.ticketCols.typ, e.cfg.DebitTypes)
	c.tickets = e.filterByDate(tickets, schema.DatasetTicket, c.ticketCols.timestamp, window)

	// Scans.
	c.scanCols.customer, err = e.mapping.Resolve(scans, schema.DatasetScan, schema.FieldCustomerID)
	c.chargeBoth(err)
	c.scanCols.amount, err = e.mapping.Resolve(scans, schema.DatasetScan, schema.FieldAmount)
	firstErr(&c.qualifiedErr, err)
	c.scanCols.name, _ = e.mapping.ResolveOptional(scans, schema.DatasetScan, schema.FieldName)
	c.scanCols.timestamp, _ = e.mapping.ResolveOptional(scans, schema.DatasetScan, schema.FieldTimestamp)
	c.scanCols.typ, err = e.resolveTypeColumn(scans, schema.DatasetScan)
	c.chargeBoth(err)
	scans = filterByType(scans, c.scanCols.typ, e.cfg.DebitTypes)
	c.scans = e.filterByDate(scans, schema.DatasetScan, c.scanCols.timestamp, window)

	return c
}

func (c *cleaned) chargeBoth(err error) {
	firstErr(&c.qualifiedErr, err)
	firstErr(&c.noOnboardingErr, err)
}

func firstErr(dst *error, err error) {
	if *dst == nil && err != nil {
		*dst = err
	}
}

// resolveTypeColumn applies the permissive fallback policy: a missing
// transaction-type column either degrades to counting every row, logged
// because it can over-count activity, or fails the dependent reports when
// strict filtering is configured.
func (e *Engine) resolveTypeColumn(t *tabular.Table, ds schema.Dataset) (string, error) {
	col, err := e.mapping.Resolve(t, ds, schema.FieldType)
	if err == nil {
		return col, nil
	}
	if e.cfg.PermissiveTypeFallback {
		e.logger.Warn("transaction type column missing, counting every row", "dataset", ds)
		return "", nil
	}
	return "", err
}

// filterByType keeps records whose type cell equals one of the accepted
// codes. An empty column name means the permissive fallback accepted the
// whole table.
func filterByType(t *tabular.Table, typeCol string, accepted []string) *tabular.Table {
	if typeCol == "" {
		return t
	}
	return t.Filter(func(row []string) bool {
		v := t.Value(row, typeCol)
		for _, code := range accepted {
			if v == code {
				return true
			}
		}
		return false
	})
}

// filterByDate drops records outside the window. While a window is active
// records with unparseable timestamps are dropped too; with no window the
// table passes through untouched, bad timestamps and all.
func (e *Engine) filterByDate(t *tabular.Table, ds schema.Dataset, timestampCol string, window DateRange) *tabular.Table {
	if !window.Active() {
		return t
	}
	if timestampCol == "" {
		e.logger.Warn("no timestamp column, date window not applied", "dataset", ds)
		return t
	}
	before := t.Len()
	out := t.Filter(func(row []string) bool {
		ts, ok := tabular.ParseDate(t.Value(row, timestampCol))
		if !ok {
			return false
		}
		return window.Contains(ts)
	})
	if dropped := before - out.Len(); dropped > 0 {
		e.logger.Debug("date window applied", "dataset", ds, "kept", out.Len(), "dropped", dropped)
	}
	return out
}
