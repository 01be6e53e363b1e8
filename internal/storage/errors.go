package storage

import "errors"

// ErrInsufficientStock is returned by the mysql layer when a conditional
// stock decrement finds less stock than requested. The allocation service
// maps it into its own taxonomy.
var ErrInsufficientStock = errors.New("insufficient material stock")

// ErrStatusConflict is returned when an order status flip matched fewer rows
// than expected, i.e. a concurrent operator already moved the orders.
var ErrStatusConflict = errors.New("order status changed concurrently")
