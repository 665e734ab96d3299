// Package endpoints holds the backend path tables: every logical operation
// maps to a fixed path or a path builder. Paths are relative to the API
// base URL.
package endpoints

import (
	"net/url"
	"strings"
)

// Auth paths.
const (
	Login    = "/auth/login"
	Register = "/auth/register"
	Verify   = "/auth/verify"
	Me       = "/auth/me"
)

// Fixed paths that do not belong to a collection.
const (
	DocumentsUpload = "/documents/upload"
	DashboardStats  = "/dashboard/stats"
)

// Collection builds the paths of one REST collection.
type Collection string

// Collections of the procurement backend.
const (
	Vendors        Collection = "/vendors"
	Requisitions   Collection = "/requisitions"
	RFQs           Collection = "/rfqs"
	Quotations     Collection = "/quotations"
	PurchaseOrders Collection = "/purchase-orders"
	Documents      Collection = "/documents"
)

// List returns the collection path.
func (c Collection) List() string { return string(c) }

// Item returns the path of the item with the given id.
func (c Collection) Item(id string) string {
	return join(string(c), url.PathEscape(id))
}

// Action returns the path of a custom action on an item, for example
// /vendors/42/approve.
func (c Collection) Action(id, action string) string {
	return join(string(c), url.PathEscape(id), action)
}

// Nested returns the path of a sub-collection of an item, for example
// /rfqs/7/quotations.
func (c Collection) Nested(id string, sub Collection) string {
	return join(string(c), url.PathEscape(id), strings.TrimPrefix(string(sub), "/"))
}

// Item actions.
const (
	ActionApprove      = "approve"
	ActionReject       = "reject"
	ActionBlacklist    = "blacklist"
	ActionSubmit       = "submit"
	ActionPublish      = "publish"
	ActionClose        = "close"
	ActionSelectVendor = "select-vendor"
	ActionCompare      = "compare"
	ActionIssue        = "issue"
	ActionCancel       = "cancel"
)

// QuotationsForRFQ returns the path listing the quotations received for an RFQ.
func QuotationsForRFQ(rfqID string) string {
	return RFQs.Nested(rfqID, Quotations)
}

// CompareQuotations returns the path of the quotation comparison for an RFQ.
func CompareQuotations(rfqID string) string {
	return join(QuotationsForRFQ(rfqID), ActionCompare)
}

func join(parts ...string) string {
	return "/" + strings.Join(trim(parts), "/")
}

func trim(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.Trim(p, "/"); p != "" {
			out = append(out, p)
		}
	}
	return out
}
