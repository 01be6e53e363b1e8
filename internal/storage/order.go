package storage

import "time"

// OrderStatus is the order lifecycle as this engine sees it. Every status
// change goes through CanTransition, there are no ad-hoc string checks.
type OrderStatus string

const (
	// StatusPending orders wait for material allocation.
	StatusPending OrderStatus = "pending"
	// StatusAdjustmentCancelled orders were cancelled by a deficit
	// adjustment and can be restored.
	StatusAdjustmentCancelled OrderStatus = "adjustment_cancelled"
	// StatusPreparing orders were committed; their material is consumed.
	StatusPreparing OrderStatus = "preparing"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAdjustmentCancelled, StatusPreparing:
		return true
	}
	return false
}

// CanTransition reports whether the lifecycle allows moving to the given
// status. Preparing is terminal for this engine.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	switch s {
	case StatusPending:
		return to == StatusAdjustmentCancelled || to == StatusPreparing
	case StatusAdjustmentCancelled:
		return to == StatusPending
	default:
		return false
	}
}

// PendingOrder is one order row, one unit of one product. Seq is the
// monotonically increasing admission number; adjustments cancel from the
// highest Seq down.
type PendingOrder struct {
	ID          string      `json:"id"`
	Seq         int64       `json:"seq"`
	ProductCode string      `json:"product_code"`
	Status      OrderStatus `json:"status"`
	CreatedAT   time.Time   `json:"created_at"`
}
