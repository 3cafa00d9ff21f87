package storage

import (
	"context"
	"database/sql"
	"os"
	"reflect"
	"testing"

	_ "github.com/go-sql-driver/mysql"

	"github.com/rl1809/warung-pos/internal/core/domain"
)

func getMySQLDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(localhost:3306)/warungpos?parseTime=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	// Schema for the single-record catalog table.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS catalog (
			name VARCHAR(64) PRIMARY KEY,
			data MEDIUMTEXT NOT NULL,
			updated_at DATETIME NOT NULL
		)`)
	if err != nil {
		t.Fatalf("schema setup failed: %v", err)
	}

	return db
}

func TestMySQLLoad_NoRecord(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	adapter := NewMySQLAdapter(db)

	db.ExecContext(ctx, `DELETE FROM catalog WHERE name = ?`, catalogRecord)

	products, err := adapter.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if products != nil {
		t.Errorf("expected nil for missing record, got %+v", products)
	}
}

func TestMySQLSaveLoad_RoundTrip(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	adapter := NewMySQLAdapter(db)

	db.ExecContext(ctx, `DELETE FROM catalog WHERE name = ?`, catalogRecord)

	want := testProducts()
	if err := adapter.Save(ctx, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := adapter.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round-trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestMySQLSave_UpsertsSingleRecord(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	adapter := NewMySQLAdapter(db)

	db.ExecContext(ctx, `DELETE FROM catalog WHERE name = ?`, catalogRecord)

	if err := adapter.Save(ctx, testProducts()); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}
	replacement := []domain.Product{
		{ID: "9", Name: "Aqua Botol 600ml", Price: 4000, Category: "Minuman"},
	}
	if err := adapter.Save(ctx, replacement); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	// Still exactly one row.
	var count int
	db.QueryRowContext(ctx, `SELECT COUNT(*) FROM catalog WHERE name = ?`, catalogRecord).Scan(&count)
	if count != 1 {
		t.Errorf("expected 1 catalog record, got %d", count)
	}

	got, err := adapter.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "9" {
		t.Errorf("expected wholesale overwrite, got %+v", got)
	}
}

func TestMySQLLoad_CorruptRecord(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	adapter := NewMySQLAdapter(db)

	_, err := db.ExecContext(ctx, `
		INSERT INTO catalog (name, data, updated_at) VALUES (?, '{not json', NOW())
		ON DUPLICATE KEY UPDATE data = VALUES(data)`, catalogRecord)
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	defer db.ExecContext(ctx, `DELETE FROM catalog WHERE name = ?`, catalogRecord)

	if _, err := adapter.Load(ctx); err == nil {
		t.Error("expected decode error for corrupt record")
	}
}
