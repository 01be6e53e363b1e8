package storage

// ProductRollup aggregates all pending orders of one product inside a
// material group: how many orders, how much material each one needs and
// which order ids back the numbers.
type ProductRollup struct {
	ProductCode      string   `json:"product_code"`
	OrderCount       int      `json:"order_count"`
	QuantityPerUnit  int      `json:"quantity_per_unit"`
	RequiredMaterial int      `json:"required_material"`
	OrderIDs         []string `json:"order_ids"`
}

// MaterialGroup is the per-material demand picture: the ledger side
// (current stock) against the sum of pending demand, with the per-product
// breakdown.
type MaterialGroup struct {
	MaterialCode   string          `json:"material_code"`
	MaterialName   string          `json:"material_name"`
	Kind           MaterialKind    `json:"kind"`
	CurrentStock   int             `json:"current_stock"`
	TotalRequired  int             `json:"total_required"`
	RemainingStock int             `json:"remaining_stock"`
	IsDeficit      bool            `json:"is_deficit"`
	Products       []ProductRollup `json:"products"`
}

// SubstitutionAllowance is the transient substitution state of one
// material. AlternateQuantity is the proposed, not yet charged part;
// AppliedQuantity has already been charged to the alternate's ledger and
// offsets the material's debit at commit time.
type SubstitutionAllowance struct {
	MaterialCode          string `json:"material_code"`
	AlternateMaterialCode string `json:"alternate_material_code"`
	AlternateQuantity     int    `json:"alternate_quantity"`
	AppliedQuantity       int    `json:"applied_quantity"`
	Applied               bool   `json:"applied"`
}

// MaterialDebit is one stock deduction inside the commit transaction.
type MaterialDebit struct {
	MaterialCode string
	Quantity     int
}
