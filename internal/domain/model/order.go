package model

import (
	"fmt"
	"regexp"
	"strings"
)

// OrderStatus describes the order lifecycle.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusCompleted  OrderStatus = "Completed"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// OrderHandle describes an order created by the lifecycle engine. The
// canonical record lives inside the store-channel message identified by
// MessageID; the handle is an in-memory reference to it.
type OrderHandle struct {
	ID          int64
	Requester   string
	Description string
	MessageID   string
}

// UpdateResult reports the outcome of a status update.
type UpdateResult struct {
	OrderID int64
	Status  OrderStatus
}

// transitions maps button codes and free-text status names to canonical
// labels. Any status is reachable from any other; the table only validates
// the label itself.
var transitions = map[string]OrderStatus{
	"p":          OrderStatusProcessing,
	"d":          OrderStatusCompleted,
	"c":          OrderStatusCancelled,
	"pending":    OrderStatusPending,
	"processing": OrderStatusProcessing,
	"done":       OrderStatusCompleted,
	"completed":  OrderStatusCompleted,
	"cancel":     OrderStatusCancelled,
	"cancelled":  OrderStatusCancelled,
}

// CanonicalStatus resolves a transition code or free-text status name to
// its canonical label. Names are matched case-insensitively.
func CanonicalStatus(codeOrName string) (OrderStatus, bool) {
	status, ok := transitions[strings.ToLower(strings.TrimSpace(codeOrName))]
	return status, ok
}

// statusToken locates the delimited status field inside a record. The same
// delimiter is used when the record is first rendered, so write and rewrite
// always agree.
var statusToken = regexp.MustCompile(`Status: \*\*[^*]*\*\*`)

// RenderRecord produces the canonical store-channel record text. The
// "Order #<id>" marker and the bold-delimited status token are load-bearing:
// the resolver finds records by the former and rewrites the latter.
func RenderRecord(id int64, requester, description string) string {
	return fmt.Sprintf("**Order #%d**\nUser: <@%s>\nItem: %s\nStatus: **%s**",
		id, requester, description, OrderStatusPending)
}

// RenderAck produces the advisory acknowledgment sent back to the requester
// at creation time. It is never read back or updated.
func RenderAck(id int64, description string) string {
	return fmt.Sprintf("Order received\nOrder: **#%d**\nItem: %s\nStatus: **%s**",
		id, description, OrderStatusPending)
}

// OrderMarker returns the literal lookup marker embedded in a record.
func OrderMarker(id int64) string {
	return fmt.Sprintf("Order #%d", id)
}

// ContainsOrderMarker reports whether text carries the marker for id. The
// marker must not be followed by another digit, so order 1 never matches
// the record of order 10.
func ContainsOrderMarker(text string, id int64) bool {
	marker := OrderMarker(id)
	for offset := 0; ; {
		i := strings.Index(text[offset:], marker)
		if i < 0 {
			return false
		}
		end := offset + i + len(marker)
		if end >= len(text) || text[end] < '0' || text[end] > '9' {
			return true
		}
		offset = end
	}
}

// RewriteStatus replaces the status token inside a record with the new
// label, leaving every other byte unchanged. Returns false when the record
// carries no status token and cannot be rewritten.
func RewriteStatus(text string, status OrderStatus) (string, bool) {
	loc := statusToken.FindStringIndex(text)
	if loc == nil {
		return text, false
	}
	return text[:loc[0]] + "Status: **" + string(status) + "**" + text[loc[1]:], true
}
