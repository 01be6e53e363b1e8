package mysql

import (
	"context"
	"fmt"
	"strings"
	"supply-golang/internal/storage"
	"time"
)

func (s *Storage) GetPendingOrders(ctx context.Context) ([]*storage.PendingOrder, error) {
	const op = "storage.mysql.GetPendingOrders"

	stmt := `SELECT id, seq, product_code, status, created_at FROM orders WHERE status = ? ORDER BY seq`

	return s.queryOrders(ctx, op, stmt, string(storage.StatusPending))
}

// GetOrders is the listing feed for the UI: optional status and date range.
func (s *Storage) GetOrders(ctx context.Context, status storage.OrderStatus, from, to time.Time) ([]*storage.PendingOrder, error) {
	const op = "storage.mysql.GetOrders"

	stmt := `SELECT id, seq, product_code, status, created_at FROM orders WHERE created_at >= ? AND created_at < ?`
	args := []interface{}{from, to}

	if status != "" {
		stmt += ` AND status = ?`
		args = append(args, string(status))
	}
	stmt += ` ORDER BY seq`

	return s.queryOrders(ctx, op, stmt, args...)
}

func (s *Storage) queryOrders(ctx context.Context, op string, stmt string, args ...interface{}) ([]*storage.PendingOrder, error) {
	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var orders []*storage.PendingOrder
	for rows.Next() {
		var o storage.PendingOrder
		if err := rows.Scan(&o.ID, &o.Seq, &o.ProductCode, &o.Status, &o.CreatedAT); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		orders = append(orders, &o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return orders, nil
}

// CancelOrders flips pending orders to adjustment_cancelled in one statement.
// The status guard makes the flip a no-op for rows a concurrent operator
// already moved; the count of actually flipped rows comes back to the caller.
func (s *Storage) CancelOrders(ctx context.Context, orderIDs []string) (int, error) {
	const op = "storage.mysql.CancelOrders"

	return s.flipStatus(ctx, op, orderIDs, storage.StatusPending, storage.StatusAdjustmentCancelled)
}

// RestoreOrders is the reverse flip. Ids that are not adjustment_cancelled
// are silently skipped, which makes restore idempotent per order id.
func (s *Storage) RestoreOrders(ctx context.Context, orderIDs []string) (int, error) {
	const op = "storage.mysql.RestoreOrders"

	return s.flipStatus(ctx, op, orderIDs, storage.StatusAdjustmentCancelled, storage.StatusPending)
}

func (s *Storage) flipStatus(ctx context.Context, op string, orderIDs []string, from, to storage.OrderStatus) (int, error) {
	if len(orderIDs) == 0 {
		return 0, nil
	}
	if !from.CanTransition(to) {
		return 0, fmt.Errorf("%s: illegal transition %s -> %s", op, from, to)
	}

	stmt := fmt.Sprintf(`UPDATE orders SET status = ? WHERE status = ? AND id IN (%s)`, placeholders(len(orderIDs)))

	args := []interface{}{string(to), string(from)}
	for _, id := range orderIDs {
		args = append(args, id)
	}

	res, err := s.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return int(affected), nil
}

// TransferToPreparation is the one path that consumes material stock.
// Everything runs in a single transaction: every order must still be pending
// and every debit must pass the stock guard, otherwise the whole commit
// rolls back and nothing moved.
func (s *Storage) TransferToPreparation(ctx context.Context, orderIDs []string, debits []storage.MaterialDebit) error {
	const op = "storage.mysql.TransferToPreparation"

	if len(orderIDs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin tx: %w", op, err)
	}
	defer tx.Rollback()

	stmtOrders := fmt.Sprintf(`UPDATE orders SET status = ? WHERE status = ? AND id IN (%s)`, placeholders(len(orderIDs)))

	args := []interface{}{string(storage.StatusPreparing), string(storage.StatusPending)}
	for _, id := range orderIDs {
		args = append(args, id)
	}

	res, err := tx.ExecContext(ctx, stmtOrders, args...)
	if err != nil {
		return fmt.Errorf("%s: update orders: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if int(affected) != len(orderIDs) {
		return fmt.Errorf("%s: expected %d orders, moved %d: %w", op, len(orderIDs), affected, storage.ErrStatusConflict)
	}

	stmtStock := `UPDATE materials SET current_stock = current_stock - ? WHERE code = ? AND current_stock >= ?`

	for _, d := range debits {
		if d.Quantity <= 0 {
			continue
		}
		res, err := tx.ExecContext(ctx, stmtStock, d.Quantity, d.MaterialCode, d.Quantity)
		if err != nil {
			return fmt.Errorf("%s: debit %s: %w", op, d.MaterialCode, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if affected == 0 {
			return fmt.Errorf("%s: debit %s by %d: %w", op, d.MaterialCode, d.Quantity, storage.ErrInsufficientStock)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}

	return nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
