package storage

// MaterialKind classifies a material on the ledger. Only raw and
// semi-finished materials are eligible as substitution alternates;
// sub-materials (packaging and consumables) are used as-is.
type MaterialKind string

const (
	KindRaw  MaterialKind = "raw"
	KindSemi MaterialKind = "semi"
	KindSub  MaterialKind = "sub"
)

func (k MaterialKind) CanSubstitute() bool {
	return k == KindRaw || k == KindSemi
}

type Material struct {
	Code         string       `json:"code"`
	Name         string       `json:"name"`
	Kind         MaterialKind `json:"kind"`
	CurrentStock int          `json:"current_stock"`
}

// MaterialMapping is one line of a product's bill of materials: the
// material and how much of it one unit of the product consumes.
type MaterialMapping struct {
	MaterialCode    string `json:"material_code"`
	QuantityPerUnit int    `json:"quantity_per_unit"`
}

type UpdateMaterialStock struct {
	Code         string `json:"code"`
	CurrentStock int    `json:"current_stock"`
}
