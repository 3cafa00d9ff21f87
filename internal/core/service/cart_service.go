package service

import (
	"sync"

	"github.com/rl1809/warung-pos/internal/core/domain"
)

// CartService holds the register's current, uncommitted selection. Items
// are keyed by product identity and kept in insertion order for display.
// There are no error conditions: invalid deltas are clamped and unknown
// identities are ignored, tolerating stale references from the UI.
type CartService struct {
	mu    sync.Mutex
	items []domain.CartItem
	index map[string]int
}

func NewCartService() *CartService {
	return &CartService{
		index: make(map[string]int),
	}
}

// Add inserts the product with quantity 1, or increments the existing
// entry. Product fields are copied at add-time so later catalog edits do
// not affect the cart.
func (s *CartService) Add(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.index[p.ID]; ok {
		s.items[i].Quantity++
		return
	}

	s.index[p.ID] = len(s.items)
	s.items = append(s.items, domain.CartItem{Product: p, Quantity: 1})
}

// UpdateQuantity applies a delta, clamping at zero; an item whose quantity
// reaches zero is removed entirely, never retained at zero.
func (s *CartService) UpdateQuantity(id string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return
	}

	quantity := s.items[i].Quantity + delta
	if quantity <= 0 {
		s.removeAt(i)
		return
	}
	s.items[i].Quantity = quantity
}

// Remove deletes an item unconditionally; absent identities are a no-op.
func (s *CartService) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.index[id]; ok {
		s.removeAt(i)
	}
}

// Items returns a copy of the cart in insertion order.
func (s *CartService) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]domain.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

func (s *CartService) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, item := range s.items {
		total += item.LineTotal()
	}
	return total
}

// ItemCount sums quantities across the cart, for the badge display.
func (s *CartService) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

func (s *CartService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.index = make(map[string]int)
}

// removeAt deletes by position and reindexes; callers hold the lock.
func (s *CartService) removeAt(i int) {
	delete(s.index, s.items[i].ID)
	s.items = append(s.items[:i], s.items[i+1:]...)
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j].ID] = j
	}
}
