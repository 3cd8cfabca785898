package services

import (
	"context"
	"slices"
	"sync"
	"time"

	"techshop/models"
	"techshop/repositories"
)

// CartService owns one shopping cart. Every mutation is written through to the repository
// before it becomes visible; a failed write leaves the cart as it was.
type CartService struct {
	mu    sync.RWMutex
	repo  *repositories.ListRepository[models.CartItem]
	items []models.CartItem
}

// NewCartService loads the persisted cart, dropping lines that could never be valid.
func NewCartService(ctx context.Context, repo *repositories.ListRepository[models.CartItem]) *CartService {
	items := slices.DeleteFunc(repo.Load(ctx), func(item models.CartItem) bool {
		return item.Quantity <= 0
	})
	return &CartService{repo: repo, items: items}
}

func (s *CartService) commit(ctx context.Context, next []models.CartItem) error {
	if err := s.repo.Save(ctx, next); err != nil {
		return err
	}
	s.items = next
	return nil
}

func (s *CartService) Items() []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

// AddToCart increments the line for product in place, or appends a new line with quantity 1.
func (s *CartService) AddToCart(ctx context.Context, product models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.Clone(s.items)
	idx := slices.IndexFunc(next, func(item models.CartItem) bool { return item.ID == product.ID })
	if idx >= 0 {
		next[idx].Quantity++
	} else {
		next = append(next, models.CartItem{Product: product, Quantity: 1})
	}
	return s.commit(ctx, next)
}

// RemoveFromCart drops the line for id. Unknown ids are ignored.
func (s *CartService) RemoveFromCart(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remove(ctx, id)
}

func (s *CartService) remove(ctx context.Context, id int64) error {
	next := slices.DeleteFunc(slices.Clone(s.items), func(item models.CartItem) bool {
		return item.ID == id
	})
	if len(next) == len(s.items) {
		return nil
	}
	return s.commit(ctx, next)
}

// UpdateQuantity sets the quantity for id; zero or less removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		return s.remove(ctx, id)
	}

	idx := slices.IndexFunc(s.items, func(item models.CartItem) bool { return item.ID == id })
	if idx < 0 {
		return nil
	}
	next := slices.Clone(s.items)
	next[idx].Quantity = quantity
	return s.commit(ctx, next)
}

// ClearCart empties the cart and erases its stored record.
func (s *CartService) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Clear(ctx); err != nil {
		return err
	}
	s.items = []models.CartItem{}
	return nil
}

func (s *CartService) GetTotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

func (s *CartService) GetTotalPrice() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0.0
	for _, item := range s.items {
		total += item.LineTotal()
	}
	return total
}

func (s *CartService) IsInCart(id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.ContainsFunc(s.items, func(item models.CartItem) bool { return item.ID == id })
}

func (s *CartService) Summary(cartID string) models.CartSummary {
	return models.CartSummary{
		CartID:     cartID,
		Items:      s.Items(),
		TotalItems: s.GetTotalItems(),
		TotalPrice: s.GetTotalPrice(),
	}
}

// CartRegistry hands out one CartService per cart id. The empty id selects the default cart,
// stored under the base key; other carts are stored under base:id. Carts not used for idleTTL
// are dropped from memory and reloaded from the store on their next request.
type CartRegistry struct {
	mu       sync.Mutex
	store    repositories.RecordStore
	baseKey  string
	idleTTL  time.Duration
	carts    map[string]*CartService
	lastSeen map[string]time.Time
}

func NewCartRegistry(store repositories.RecordStore, baseKey string, idleTTL time.Duration) *CartRegistry {
	return &CartRegistry{
		store:    store,
		baseKey:  baseKey,
		idleTTL:  idleTTL,
		carts:    make(map[string]*CartService),
		lastSeen: make(map[string]time.Time),
	}
}

func (r *CartRegistry) Cart(ctx context.Context, cartID string) *CartService {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	r.evictIdle(now)
	r.lastSeen[cartID] = now

	if cart, ok := r.carts[cartID]; ok {
		return cart
	}

	key := r.baseKey
	if cartID != "" {
		key = r.baseKey + ":" + cartID
	}
	cart := NewCartService(ctx, repositories.NewListRepository[models.CartItem](r.store, key))
	r.carts[cartID] = cart
	return cart
}

// Len reports how many carts are held in memory.
func (r *CartRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.carts)
}

func (r *CartRegistry) evictIdle(now time.Time) {
	if r.idleTTL <= 0 {
		return
	}
	cutoff := now.Add(-r.idleTTL)
	for id, seen := range r.lastSeen {
		if seen.Before(cutoff) {
			delete(r.carts, id)
			delete(r.lastSeen, id)
		}
	}
}
