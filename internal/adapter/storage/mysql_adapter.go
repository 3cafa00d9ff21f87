package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rl1809/warung-pos/internal/core/domain"
)

// catalogRecord names the single row in the catalog table that holds the
// JSON product array. Mirrors the Redis layout: one record, wholesale
// reads and writes.
const catalogRecord = "products"

type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

func (m *MySQLAdapter) Load(ctx context.Context) ([]domain.Product, error) {
	var data []byte
	err := m.db.QueryRowContext(ctx, `
		SELECT data FROM catalog WHERE name = ?`, catalogRecord,
	).Scan(&data)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return products, nil
}

func (m *MySQLAdapter) Save(ctx context.Context, products []domain.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	_, err = m.db.ExecContext(ctx, `
		INSERT INTO catalog (name, data, updated_at)
		VALUES (?, ?, NOW())
		ON DUPLICATE KEY UPDATE data = VALUES(data), updated_at = NOW()`,
		catalogRecord, data,
	)
	if err != nil {
		return fmt.Errorf("upsert catalog: %w", err)
	}
	return nil
}
