package mysql

import (
	"context"
	"fmt"
	"supply-golang/internal/storage"
)

// GetProductMappings loads the whole product -> material fan-out keyed by
// product code. The mapping table is owned by the catalog; read-only here.
func (s *Storage) GetProductMappings(ctx context.Context) (map[string][]storage.MaterialMapping, error) {
	const op = "storage.mysql.GetProductMappings"

	stmt := `SELECT product_code, material_code, quantity_per_unit FROM product_materials ORDER BY product_code, sort`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	mappings := make(map[string][]storage.MaterialMapping)
	for rows.Next() {
		var productCode string
		var m storage.MaterialMapping
		if err := rows.Scan(&productCode, &m.MaterialCode, &m.QuantityPerUnit); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		mappings[productCode] = append(mappings[productCode], m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return mappings, nil
}

func (s *Storage) GetProductMaterialMapping(ctx context.Context, productCode string) ([]storage.MaterialMapping, error) {
	const op = "storage.mysql.GetProductMaterialMapping"

	stmt := `SELECT material_code, quantity_per_unit FROM product_materials WHERE product_code = ? ORDER BY sort`

	rows, err := s.db.QueryContext(ctx, stmt, productCode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var mappings []storage.MaterialMapping
	for rows.Next() {
		var m storage.MaterialMapping
		if err := rows.Scan(&m.MaterialCode, &m.QuantityPerUnit); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		mappings = append(mappings, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return mappings, nil
}
