package allocation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"supply-golang/internal/storage"
)

type TransferResult struct {
	TransferredCount int `json:"transferred_count"`
}

// TransferToPreparation moves pending orders to the preparing stage and
// consumes material stock, the only operation that does. All-or-nothing:
// any non-excluded material still in deficit rejects the whole commit
// before anything moves, and the storage transaction rolls back on any
// stock guard failure.
//
// Each material is debited by the demand of the transferred orders minus
// its applied substitution quantity: the alternate's ledger was already
// charged at apply time, the alternate genuinely ships instead.
func (s *Service) TransferToPreparation(ctx context.Context, excludeMaterialCodes []string) (*TransferResult, error) {
	const op = "service.allocation.TransferToPreparation"

	// Commit reads and writes many materials and orders together, so it
	// serializes against every other mutation.
	s.mu.Lock()
	defer s.mu.Unlock()

	groups, orders, mappings, err := s.snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	excluded := make(map[string]bool, len(excludeMaterialCodes))
	for _, code := range excludeMaterialCodes {
		excluded[code] = true
	}

	var blocked []string
	for _, group := range groups {
		if excluded[group.MaterialCode] {
			continue
		}
		if AppliedRemaining(group, s.allowance(group.MaterialCode)) < 0 {
			blocked = append(blocked, group.MaterialCode)
		}
	}
	if len(blocked) > 0 {
		sort.Strings(blocked)
		return nil, fmt.Errorf("%s: %w", op, &CommitBlockedError{MaterialCodes: blocked})
	}

	// Orders touching an excluded material stay pending; products without
	// any mapping are not this engine's to move.
	var orderIDs []string
	required := make(map[string]int)
	for _, order := range orders {
		if order.Status != storage.StatusPending {
			continue
		}
		orderMappings := mappings[order.ProductCode]
		if len(orderMappings) == 0 {
			continue
		}

		skip := false
		for _, mapping := range orderMappings {
			if excluded[mapping.MaterialCode] {
				skip = true
				break
			}
		}
		if skip {
			continue
		}

		orderIDs = append(orderIDs, order.ID)
		for _, mapping := range orderMappings {
			required[mapping.MaterialCode] += mapping.QuantityPerUnit
		}
	}

	if len(orderIDs) == 0 {
		return &TransferResult{TransferredCount: 0}, nil
	}

	var debits []storage.MaterialDebit
	codes := make([]string, 0, len(required))
	for code := range required {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		qty := required[code]
		if allowance := s.allowance(code); allowance != nil {
			covered := allowance.AppliedQuantity
			if covered > qty {
				covered = qty
			}
			qty -= covered
		}
		debits = append(debits, storage.MaterialDebit{MaterialCode: code, Quantity: qty})
	}

	if err := s.storage.TransferToPreparation(ctx, orderIDs, debits); err != nil {
		if errors.Is(err, storage.ErrInsufficientStock) {
			return nil, fmt.Errorf("%s: %w", op, ErrInsufficientStockForCommit)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// The committed materials' applied allowances are consumed with the
	// commit; a still-pending proposal survives it.
	for _, code := range codes {
		s.consumeAllowance(code)
	}

	return &TransferResult{TransferredCount: len(orderIDs)}, nil
}

type RestoreResult struct {
	Restored int `json:"restored"`
}

// RestoreOrders moves adjustment-cancelled orders back to pending. No stock
// changes, none was ever deducted for a cancelled order. Restoring an
// already-pending order is a no-op, not an error.
func (s *Service) RestoreOrders(ctx context.Context, orderIDs []string) (*RestoreResult, error) {
	const op = "service.allocation.RestoreOrders"

	s.mu.RLock()
	defer s.mu.RUnlock()

	restored, err := s.storage.RestoreOrders(ctx, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &RestoreResult{Restored: restored}, nil
}
