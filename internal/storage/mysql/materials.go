package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"supply-golang/internal/storage"
)

func (s *Storage) GetMaterials(ctx context.Context) ([]*storage.Material, error) {
	const op = "storage.mysql.GetMaterials"

	stmt := `SELECT code, name, kind, current_stock FROM materials ORDER BY code`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var materials []*storage.Material
	for rows.Next() {
		var m storage.Material
		if err := rows.Scan(&m.Code, &m.Name, &m.Kind, &m.CurrentStock); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		materials = append(materials, &m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return materials, nil
}

func (s *Storage) GetMaterial(ctx context.Context, code string) (*storage.Material, error) {
	const op = "storage.mysql.GetMaterial"

	stmt := `SELECT code, name, kind, current_stock FROM materials WHERE code = ?`

	var m storage.Material
	err := s.db.QueryRowContext(ctx, stmt, code).Scan(&m.Code, &m.Name, &m.Kind, &m.CurrentStock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: material %s: %w", op, code, err)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &m, nil
}

// DecrementMaterialStock subtracts qty from one material with a stock guard.
// The guard in the WHERE clause is what keeps current_stock from ever going
// negative under concurrent applies.
func (s *Storage) DecrementMaterialStock(ctx context.Context, code string, qty int) error {
	const op = "storage.mysql.DecrementMaterialStock"

	stmt := `UPDATE materials SET current_stock = current_stock - ? WHERE code = ? AND current_stock >= ?`

	res, err := s.db.ExecContext(ctx, stmt, qty, code, qty)
	if err != nil {
		return fmt.Errorf("%s: material %s: %w", op, code, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: material %s: %w", op, code, storage.ErrInsufficientStock)
	}

	return nil
}

func (s *Storage) UpdateMaterialsStock(ctx context.Context, updates []storage.UpdateMaterialStock) error {
	const op = "storage.mysql.UpdateMaterialsStock"

	stmt := `UPDATE materials SET current_stock = ? WHERE code = ?`

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin tx: %w", op, err)
	}
	defer tx.Rollback()

	prepared, err := tx.PrepareContext(ctx, stmt)
	if err != nil {
		return fmt.Errorf("%s: prepare: %w", op, err)
	}
	defer prepared.Close()

	for _, u := range updates {
		if u.CurrentStock < 0 {
			return fmt.Errorf("%s: material %s: negative stock %d", op, u.Code, u.CurrentStock)
		}
		if _, err := prepared.ExecContext(ctx, u.CurrentStock, u.Code); err != nil {
			return fmt.Errorf("%s: material %s: %w", op, u.Code, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}

	return nil
}
