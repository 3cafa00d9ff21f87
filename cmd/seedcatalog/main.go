// Command seedcatalog writes the default product catalog into the
// configured storage backend. Useful for first-time setup and for
// resetting a demo register.
package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"

	"github.com/rl1809/warung-pos/internal/adapter/storage"
	"github.com/rl1809/warung-pos/internal/config"
	"github.com/rl1809/warung-pos/internal/core/service"
	"github.com/rl1809/warung-pos/internal/port"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (empty for defaults + env)")
	force := flag.Bool("force", false, "overwrite an existing catalog")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, closeStorage, err := openRepo(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open storage: %v", err)
	}
	defer closeStorage()

	existing, err := repo.Load(ctx)
	if err != nil {
		log.Fatalf("failed to load catalog: %v", err)
	}
	if existing != nil && !*force {
		log.Printf("catalog already has %d products; use -force to overwrite", len(existing))
		return
	}

	seed := service.DefaultCatalog()
	if err := repo.Save(ctx, seed); err != nil {
		log.Fatalf("failed to save catalog: %v", err)
	}
	log.Printf("seeded %d products into %s", len(seed), cfg.Storage.Backend)
}

func openRepo(ctx context.Context, cfg config.Config) (port.CatalogRepository, func(), error) {
	if cfg.Storage.Backend == config.BackendMySQL {
		db, err := sql.Open("mysql", cfg.Storage.MySQLDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return storage.NewMySQLAdapter(db), func() { db.Close() }, nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.Storage.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, nil, err
	}
	return storage.NewRedisAdapter(rdb), func() { rdb.Close() }, nil
}
