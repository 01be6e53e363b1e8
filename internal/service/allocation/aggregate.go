package allocation

import (
	"sort"
	"supply-golang/internal/storage"
)

// BuildMaterialGroups computes per-material demand from the pending-order
// set and the product -> material fan-out. Pure, single pass over the
// orders; products without a mapping entry contribute nothing and their
// orders stay untouched. Output is sorted by material code, rollups by
// product code, order ids by admission order, so the same inputs always
// produce the same view.
func BuildMaterialGroups(orders []*storage.PendingOrder, mappings map[string][]storage.MaterialMapping, materials []*storage.Material) []*storage.MaterialGroup {
	byMaterial := make(map[string]*storage.Material, len(materials))
	for _, m := range materials {
		byMaterial[m.Code] = m
	}

	type rollupKey struct {
		material string
		product  string
	}

	groups := make(map[string]*storage.MaterialGroup)
	rollups := make(map[rollupKey]*storage.ProductRollup)

	for _, order := range orders {
		if order.Status != storage.StatusPending {
			continue
		}
		for _, mapping := range mappings[order.ProductCode] {
			group, ok := groups[mapping.MaterialCode]
			if !ok {
				group = &storage.MaterialGroup{MaterialCode: mapping.MaterialCode}
				if m, ok := byMaterial[mapping.MaterialCode]; ok {
					group.MaterialName = m.Name
					group.Kind = m.Kind
					group.CurrentStock = m.CurrentStock
				}
				groups[mapping.MaterialCode] = group
			}

			key := rollupKey{material: mapping.MaterialCode, product: order.ProductCode}
			rollup, ok := rollups[key]
			if !ok {
				rollup = &storage.ProductRollup{
					ProductCode:     order.ProductCode,
					QuantityPerUnit: mapping.QuantityPerUnit,
				}
				rollups[key] = rollup
			}

			rollup.OrderCount++
			rollup.RequiredMaterial += mapping.QuantityPerUnit
			rollup.OrderIDs = append(rollup.OrderIDs, order.ID)

			group.TotalRequired += mapping.QuantityPerUnit
		}
	}

	result := make([]*storage.MaterialGroup, 0, len(groups))
	for code, group := range groups {
		for key, rollup := range rollups {
			if key.material == code {
				group.Products = append(group.Products, *rollup)
			}
		}
		sort.Slice(group.Products, func(i, j int) bool {
			return group.Products[i].ProductCode < group.Products[j].ProductCode
		})

		group.RemainingStock = group.CurrentStock - group.TotalRequired
		group.IsDeficit = group.RemainingStock < 0

		result = append(result, group)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].MaterialCode < result[j].MaterialCode
	})

	return result
}

// AdjustedRemaining evaluates one group against its substitution allowance.
// The pending quantity only moves the displayed remaining; the applied
// quantity was already charged to the alternate's ledger and keeps counting
// until the commit consumes it. Re-evaluated on every read, never stored.
func AdjustedRemaining(group *storage.MaterialGroup, allowance *storage.SubstitutionAllowance) int {
	remaining := group.CurrentStock - group.TotalRequired
	if allowance == nil {
		return remaining
	}
	return remaining + allowance.AppliedQuantity + allowance.AlternateQuantity
}

// AppliedRemaining is the commit gate's view of a group: only quantity
// already charged to an alternate's ledger counts. A proposal that was
// never applied moves the displayed remaining but must not unblock a
// commit, no stock backs it yet.
func AppliedRemaining(group *storage.MaterialGroup, allowance *storage.SubstitutionAllowance) int {
	remaining := group.CurrentStock - group.TotalRequired
	if allowance == nil {
		return remaining
	}
	return remaining + allowance.AppliedQuantity
}
