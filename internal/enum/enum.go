package enum

// ── Order lifecycle (CHECK constrained in DB) ──

const (
	OrderStatusPending   = "pending"
	OrderStatusAccepted  = "accepted"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// ── Order item fulfillment (CHECK constrained in DB) ──
// "completed" means the full requested quantity was fulfilled from inventory
// at placement time; "pending" means some quantity remains backordered.

const (
	OrderItemStatusCompleted = "completed"
	OrderItemStatusPending   = "pending"
)

// IsValidOrderStatus reports whether s is a known order status.
func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusAccepted,
		OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}
