package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rl1809/warung-pos/internal/core/domain"
	"github.com/rl1809/warung-pos/internal/port"
)

var (
	ErrInvalidProduct  = errors.New("product name and positive price are required")
	ErrProductNotFound = errors.New("product not found")
)

// ProductInput carries the admin form fields for create and update.
type ProductInput struct {
	Name     string
	Price    int
	Category string
	Image    string
}

// CatalogService performs admin CRUD over the persisted catalog. Every
// mutation is persisted immediately and wholesale; there is no batching
// and no transaction across mutations.
type CatalogService struct {
	repo   port.CatalogRepository
	logger *zap.Logger

	mu  sync.Mutex
	now func() time.Time
}

func NewCatalogService(repo port.CatalogRepository, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// List returns the catalog, seeding and persisting the default products on
// the first-ever load. An explicitly saved empty catalog stays empty.
func (s *CatalogService) List(ctx context.Context) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// ListByCategory filters the catalog by one category facet.
func (s *CatalogService) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (s *CatalogService) Create(ctx context.Context, input ProductInput) (domain.Product, error) {
	if input.Name == "" || input.Price <= 0 {
		return domain.Product{}, ErrInvalidProduct
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.load(ctx)
	if err != nil {
		return domain.Product{}, err
	}

	product := domain.Product{
		ID:       strconv.FormatInt(s.now().UnixNano(), 10),
		Name:     input.Name,
		Price:    input.Price,
		Category: normalizeCategory(input.Category),
		Image:    normalizeImage(input.Image),
	}

	if err := s.repo.Save(ctx, append(products, product)); err != nil {
		return domain.Product{}, fmt.Errorf("persist catalog: %w", err)
	}

	s.logger.Info("product created",
		zap.String("product_id", product.ID),
		zap.String("name", product.Name),
		zap.Int("price", product.Price))
	return product, nil
}

// Update mutates exactly the product with the given identity and leaves
// every other entry untouched.
func (s *CatalogService) Update(ctx context.Context, id string, input ProductInput) (domain.Product, error) {
	if input.Name == "" || input.Price <= 0 {
		return domain.Product{}, ErrInvalidProduct
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.load(ctx)
	if err != nil {
		return domain.Product{}, err
	}

	for i, p := range products {
		if p.ID != id {
			continue
		}

		products[i].Name = input.Name
		products[i].Price = input.Price
		products[i].Category = normalizeCategory(input.Category)
		products[i].Image = normalizeImage(input.Image)

		if err := s.repo.Save(ctx, products); err != nil {
			return domain.Product{}, fmt.Errorf("persist catalog: %w", err)
		}

		s.logger.Info("product updated", zap.String("product_id", id))
		return products[i], nil
	}

	return domain.Product{}, ErrProductNotFound
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.load(ctx)
	if err != nil {
		return err
	}

	remaining := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.ID != id {
			remaining = append(remaining, p)
		}
	}
	if len(remaining) == len(products) {
		return ErrProductNotFound
	}

	if err := s.repo.Save(ctx, remaining); err != nil {
		return fmt.Errorf("persist catalog: %w", err)
	}

	s.logger.Info("product deleted", zap.String("product_id", id))
	return nil
}

// load seeds the default catalog when no record has ever been written.
// Callers hold the lock.
func (s *CatalogService) load(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if products != nil {
		return products, nil
	}

	seed := DefaultCatalog()
	if err := s.repo.Save(ctx, seed); err != nil {
		return nil, fmt.Errorf("seed catalog: %w", err)
	}
	s.logger.Info("seeded default catalog", zap.Int("products", len(seed)))
	return seed, nil
}

func normalizeCategory(category string) string {
	if !domain.ValidCategory(category) {
		return domain.DefaultCategory
	}
	return category
}

func normalizeImage(image string) string {
	if image == "" {
		return domain.PlaceholderImage
	}
	return image
}

// DefaultCatalog is the fixed five-product catalog persisted on first use.
func DefaultCatalog() []domain.Product {
	return []domain.Product{
		{
			ID:       "1",
			Name:     "Indomie Goreng",
			Price:    3500,
			Category: "Makanan",
			Image:    "https://upload.wikimedia.org/wikipedia/commons/thumb/a/a7/Indomie_Goreng.jpg/640px-Indomie_Goreng.jpg",
		},
		{
			ID:       "2",
			Name:     "Kopi Good Day",
			Price:    5000,
			Category: "Minuman",
			Image:    "https://images.tokopedia.net/img/cache/700/VqbcmM/2021/10/27/9cc70901-3b7a-4543-8858-3e869979372d.jpg",
		},
		{
			ID:       "3",
			Name:     "Telur Ayam (1kg)",
			Price:    28000,
			Category: "Sembako",
			Image:    "https://images.tokopedia.net/img/cache/700/VqbcmM/2022/6/22/b0234215-35d7-4053-85c4-f8f74c4a5c4e.jpg",
		},
		{
			ID:       "4",
			Name:     "Aqua Botol 600ml",
			Price:    4000,
			Category: "Minuman",
			Image:    "https://images.tokopedia.net/img/cache/700/hDjmkQ/2023/2/8/81e23516-8526-4f44-8980-353915853189.jpg",
		},
		{
			ID:       "5",
			Name:     "Marlboro Merah",
			Price:    42000,
			Category: "Rokok",
			Image:    "https://images.tokopedia.net/img/cache/700/VqbcmM/2021/3/10/e2770d35-65d7-4441-92a5-929110339740.jpg",
		},
	}
}
