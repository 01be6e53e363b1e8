package allocation

import (
	"context"
	"fmt"
	"sort"
	"supply-golang/internal/storage"
)

type AdjustmentResult struct {
	Adjusted          bool     `json:"adjusted"`
	CancelledOrderIDs []string `json:"cancelled_order_ids"`
	StillDeficit      bool     `json:"still_deficit"`
}

// ExecuteAdjustment cancels pending orders of the selected products until
// the material's adjusted remaining stock reaches zero or the selection is
// exhausted. Cancellation order is strictly descending admission sequence:
// the most recently admitted orders bear the cost first, earlier orders
// keep their place. Cancellation removes demand only, stock is never
// touched here.
func (s *Service) ExecuteAdjustment(ctx context.Context, materialCode string, selectedProductCodes []string) (*AdjustmentResult, error) {
	const op = "service.allocation.ExecuteAdjustment"

	s.mu.RLock()
	defer s.mu.RUnlock()

	lock := s.materialLock(materialCode)
	lock.Lock()
	defer lock.Unlock()

	groups, orders, mappings, err := s.snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var group *storage.MaterialGroup
	for _, g := range groups {
		if g.MaterialCode == materialCode {
			group = g
			break
		}
	}
	if group == nil {
		return nil, fmt.Errorf("%s: material %s has no pending demand: %w", op, materialCode, ErrNothingToCancel)
	}

	adjusted := AdjustedRemaining(group, s.allowance(materialCode))
	if adjusted >= 0 {
		return nil, fmt.Errorf("%s: material %s is not in deficit: %w", op, materialCode, ErrNothingToCancel)
	}

	selected := make(map[string]bool, len(selectedProductCodes))
	for _, code := range selectedProductCodes {
		selected[code] = true
	}

	// Eligible orders: pending, selected product, product maps to this
	// material. Each carries the demand one cancellation frees.
	type candidate struct {
		order *storage.PendingOrder
		frees int
	}
	var candidates []candidate
	for _, order := range orders {
		if order.Status != storage.StatusPending || !selected[order.ProductCode] {
			continue
		}
		for _, mapping := range mappings[order.ProductCode] {
			if mapping.MaterialCode == materialCode {
				candidates = append(candidates, candidate{order: order, frees: mapping.QuantityPerUnit})
				break
			}
		}
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%s: selection is empty for material %s: %w", op, materialCode, ErrNothingToCancel)
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].order.Seq > candidates[j].order.Seq
	})

	var cancelledIDs []string
	for _, c := range candidates {
		if adjusted >= 0 {
			break
		}
		cancelledIDs = append(cancelledIDs, c.order.ID)
		adjusted += c.frees
	}

	affected, err := s.storage.CancelOrders(ctx, cancelledIDs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if affected != len(cancelledIDs) {
		return nil, fmt.Errorf("%s: cancelled %d of %d: %w", op, affected, len(cancelledIDs), storage.ErrStatusConflict)
	}

	return &AdjustmentResult{
		Adjusted:          true,
		CancelledOrderIDs: cancelledIDs,
		StillDeficit:      adjusted < 0,
	}, nil
}
