// Package schema centralizes column discovery for the five source
// datasets. Exporter headers are inconsistent across versions, so every
// logical field carries an ordered list of accepted column names; one
// generic resolver consults the declarative mapping and new exporter
// variants get added here and nowhere else.
package schema

import (
	"fmt"

	"dsa-reconciler/internal/tabular"
)

// Dataset names one of the source feeds.
type Dataset string

const (
	DatasetOnboarding Dataset = "Onboarding"
	DatasetDeposit    Dataset = "Deposit"
	DatasetTicket     Dataset = "Ticket"
	DatasetScan       Dataset = "Scan"
	DatasetConversion Dataset = "Conversion"
)

// Field names a logical column independent of exporter spelling.
type Field string

const (
	FieldCustomerID   Field = "customer identifier"
	FieldAgentID      Field = "agent identifier"
	FieldName         Field = "display name"
	FieldType         Field = "transaction type"
	FieldAmount       Field = "amount"
	FieldEntity       Field = "entity type"
	FieldTxnID        Field = "transaction id"
	FieldTimestamp    Field = "timestamp"
	FieldDepositCount Field = "deposit count"
)

// Mapping is the dataset → field → ordered candidate columns table.
type Mapping map[Dataset]map[Field][]string

// Default returns the mapping covering every exporter version seen so
// far. Order is priority order; matching is exact on trimmed headers.
func Default() Mapping {
	return Mapping{
		DatasetOnboarding: {
			FieldCustomerID: {"Mobile", "Customer Mobile"},
			FieldAgentID:    {"Customer Referrer Mobile", "Referrer Mobile"},
			FieldName:       {"full_name", "Full Name", "Name"},
			FieldTimestamp:  {"Created At", "Registration Date", "created_at"},
		},
		DatasetDeposit: {
			FieldCustomerID: {"customer_mobile", "Customer Mobile", "Mobile", "User Identifier"},
			FieldAgentID:    {"Created By", "created_by"},
			FieldType:       {"Transaction Type", "transaction_type"},
			FieldAmount:     {"Amount", "amount"},
			FieldName:       {"Full Name", "full_name"},
			FieldTxnID:      {"Transaction ID", "transaction_id"},
			FieldTimestamp:  {"Created At", "created_at"},
		},
		DatasetTicket: {
			FieldCustomerID: {"created_by", "user_id", "User Identifier"},
			FieldEntity:     {"entity_name"},
			FieldType:       {"transaction_type", "Transaction Type"},
			FieldAmount:     {"amount", "Amount"},
			FieldName:       {"full_name", "Full Name"},
			FieldTxnID:      {"transaction_id"},
			FieldTimestamp:  {"created_at", "Created At"},
		},
		DatasetScan: {
			FieldCustomerID: {"Created By", "Customer Mobile", "Mobile", "User Identifier"},
			FieldType:       {"Transaction Type", "transaction_type"},
			FieldAmount:     {"Amount", "amount"},
			FieldName:       {"Full Name", "full_name"},
			FieldTimestamp:  {"Created At", "created_at"},
		},
		DatasetConversion: {
			FieldAgentID:      {"Agent Mobile", "dsa_mobile"},
			FieldDepositCount: {"Deposit Count", "deposit_count"},
		},
	}
}

// Candidates returns the accepted column names for a field, in priority
// order.
func (m Mapping) Candidates(ds Dataset, f Field) []string {
	return m[ds][f]
}

// Resolve returns the first accepted column present in the table. The
// lookup is pure and case/whitespace-sensitive (headers were trimmed at
// ingest). A miss returns a *MissingColumnError naming the dataset and
// the columns actually present; the caller decides whether that fails the
// dependent report or degrades to a default value.
func (m Mapping) Resolve(t *tabular.Table, ds Dataset, f Field) (string, error) {
	candidates := m.Candidates(ds, f)
	for _, c := range candidates {
		if t.Has(c) {
			return c, nil
		}
	}
	return "", &MissingColumnError{
		Dataset:    ds,
		Field:      f,
		Candidates: candidates,
		Present:    append([]string(nil), t.Headers...),
	}
}

// ResolveOptional is Resolve for fields whose absence is an accepted
// exporter variation rather than an error.
func (m Mapping) ResolveOptional(t *tabular.Table, ds Dataset, f Field) (string, bool) {
	col, err := m.Resolve(t, ds, f)
	return col, err == nil
}

// MissingColumnError reports a required logical field that no accepted
// column satisfies. It aborts only the report depending on the dataset.
type MissingColumnError struct {
	Dataset    Dataset
	Field      Field
	Candidates []string
	Present    []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s data: no %s column (accepted: %v; present: %v)",
		e.Dataset, e.Field, e.Candidates, e.Present)
}
