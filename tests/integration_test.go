package tests

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rl1809/warung-pos/internal/adapter/printer"
	"github.com/rl1809/warung-pos/internal/adapter/storage"
	"github.com/rl1809/warung-pos/internal/core/receipt"
	"github.com/rl1809/warung-pos/internal/core/service"
	"github.com/rl1809/warung-pos/internal/port"
)

func getRedisRepo(t *testing.T) (*storage.RedisAdapter, func()) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	rdb.Del(context.Background(), "warung:catalog")
	return storage.NewRedisAdapter(rdb), func() {
		rdb.Del(context.Background(), "warung:catalog")
		rdb.Close()
	}
}

func getMySQLRepo(t *testing.T) (*storage.MySQLAdapter, func()) {
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

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS catalog (
			name VARCHAR(64) PRIMARY KEY,
			data MEDIUMTEXT NOT NULL,
			updated_at DATETIME NOT NULL
		)`)
	if err != nil {
		t.Fatalf("schema setup failed: %v", err)
	}

	db.Exec(`DELETE FROM catalog`)
	return storage.NewMySQLAdapter(db), func() {
		db.Exec(`DELETE FROM catalog`)
		db.Close()
	}
}

func runCatalogSuite(t *testing.T, repo port.CatalogRepository) {
	ctx := context.Background()
	svc := service.NewCatalogService(repo, zap.NewNop())

	// First load seeds the default catalog.
	seeded, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(seeded) != 5 {
		t.Fatalf("expected 5 seeded products, got %d", len(seeded))
	}

	// save(load()) round-trip is idempotent.
	loaded, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := repo.Save(ctx, loaded); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	again, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(loaded, again) {
		t.Error("expected identical catalog after save(load())")
	}

	// Editing one product leaves every other entry untouched.
	updated, err := svc.Update(ctx, "2", service.ProductInput{
		Name:     "Kopi Good Day Sachet",
		Price:    5500,
		Category: "Minuman",
		Image:    seeded[1].Image,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Price != 5500 {
		t.Errorf("expected price 5500, got %d", updated.Price)
	}

	after, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	for i, p := range after {
		if p.ID == "2" {
			continue
		}
		if p != seeded[i] {
			t.Errorf("product %s changed by unrelated update", p.ID)
		}
	}

	// Delete removes exactly one entry.
	if err := svc.Delete(ctx, "4"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	remaining, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(remaining) != 4 {
		t.Errorf("expected 4 products after delete, got %d", len(remaining))
	}
}

func TestCatalog_Redis(t *testing.T) {
	repo, cleanup := getRedisRepo(t)
	defer cleanup()
	runCatalogSuite(t, repo)
}

func TestCatalog_MySQL(t *testing.T) {
	repo, cleanup := getMySQLRepo(t)
	defer cleanup()
	runCatalogSuite(t, repo)
}

func TestCheckout_EndToEnd(t *testing.T) {
	repo, cleanup := getRedisRepo(t)
	defer cleanup()

	ctx := context.Background()
	logger := zap.NewNop()

	catalog := service.NewCatalogService(repo, logger)
	cart := service.NewCartService()
	formatter := receipt.NewFormatter(receipt.Header{
		Name:       "Warung Madura",
		Tagline:    "Online 24 Jam",
		Address:    "Jl. Digital No. 1, Cloud City",
		FooterNote: "Barang yang dibeli tidak dapat dikembalikan",
	})

	receiptDir := t.TempDir()
	sink, err := printer.NewFileSink(receiptDir, logger)
	if err != nil {
		t.Fatalf("NewFileSink failed: %v", err)
	}
	checkout := service.NewCheckoutService(cart, formatter, sink, logger)

	products, err := catalog.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	cart.Add(products[0]) // Indomie Goreng 3500
	cart.Add(products[0])
	cart.Add(products[1]) // Kopi Good Day 5000

	order, doc, err := checkout.Confirm(ctx, 20000)
	if err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}
	if order.Total != 12000 || order.Change != 8000 {
		t.Errorf("unexpected totals: %+v", order)
	}

	// The receipt landed on disk under its unique filename.
	if !strings.HasPrefix(doc.Filename, "struk-warung-madura-") {
		t.Errorf("unexpected receipt filename %q", doc.Filename)
	}
	data, err := os.ReadFile(filepath.Join(receiptDir, doc.Filename))
	if err != nil {
		t.Fatalf("expected receipt on disk: %v", err)
	}
	if len(data) == 0 || !strings.HasPrefix(string(data[:4]), "%PDF") {
		t.Error("expected PDF receipt contents")
	}

	if cart.ItemCount() != 0 {
		t.Error("expected cart cleared after sale")
	}

	// The completed order left no trace in storage: only the catalog
	// record exists.
	stored, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(stored) != 5 {
		t.Errorf("expected catalog untouched by checkout, got %d products", len(stored))
	}
}
