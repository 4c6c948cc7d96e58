package schema

import "dsa-reconciler/internal/tabular"

// ticketExportWidth is the column count of the ticket exporter revision
// that ships without a usable header row.
const ticketExportWidth = 29

// ticketExportHeader is that revision's known column layout.
var ticketExportHeader = []string{
	"user_id", "transaction_id", "sub_transaction_id", "entity_name",
	"full_name", "created_by", "status", "internal_status", "service_name",
	"product_name", "transaction_type", "amount", "before_balance", "after_balance",
	"ucp_name", "wallet_name", "pouch_name", "reference", "error_code", "error_message",
	"vendor_transaction_id", "vendor_response_code", "vendor_message", "slug", "remarks",
	"created_at", "business_hierarchy", "parent_user_id", "parent_full_name",
}

// RepairTicketHeader fixes a 29-column ticket export that shipped without
// a header row, which the reader detects by the absence of created_by.
// The row consumed as the header is really the first transaction, so it
// is pushed back into the data before the known layout is applied.
// Healthy exports of any width are left alone.
func RepairTicketHeader(t *tabular.Table) bool {
	if t.Width() != ticketExportWidth || t.Has("created_by") {
		return false
	}
	displaced := append([]string(nil), t.Headers...)
	t.Rows = append([][]string{displaced}, t.Rows...)
	t.SetHeaders(ticketExportHeader)
	return true
}
