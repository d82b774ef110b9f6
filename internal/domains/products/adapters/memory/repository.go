package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Apurer/go-gin-backoffice/internal/domains/products/domain"
	"github.com/Apurer/go-gin-backoffice/internal/domains/products/ports"
	"github.com/Apurer/go-gin-backoffice/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory product store used when no database is configured.
type Repository struct {
	mu       sync.RWMutex
	products map[int64]*storedProduct
	nextID   int64
	now      func() time.Time
}

type storedProduct struct {
	product  domain.Product
	metadata projection.Metadata
}

// NewRepository constructs an empty in-memory store.
func NewRepository() *Repository {
	return &Repository{
		products: map[int64]*storedProduct{},
		now:      time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

func (r *Repository) Create(_ context.Context, product *domain.Product) (*projection.Projection[*domain.Product], error) {
	if product == nil {
		return nil, errors.New("cannot create nil product")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	timestamp := r.now()
	stored := &storedProduct{
		product:  *product,
		metadata: projection.Metadata{CreatedAt: timestamp, UpdatedAt: timestamp},
	}
	stored.product.ID = r.nextID
	r.products[stored.product.ID] = stored
	return stored.project(), nil
}

func (r *Repository) Update(_ context.Context, product *domain.Product) error {
	if product == nil {
		return errors.New("cannot update nil product")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.products[product.ID]
	if !ok {
		return ports.ErrNotFound
	}
	entry.product = *product
	entry.metadata.UpdatedAt = r.now()
	return nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*projection.Projection[*domain.Product], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return entry.project(), nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

// List returns products in insertion order.
func (r *Repository) List(_ context.Context) ([]*projection.Projection[*domain.Product], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*projection.Projection[*domain.Product], 0, len(r.products))
	for _, entry := range r.products {
		list = append(list, entry.project())
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Entity.ID < list[j].Entity.ID })
	return list, nil
}

func (s *storedProduct) project() *projection.Projection[*domain.Product] {
	clone := s.product
	return projection.New(&clone, s.metadata.CreatedAt, s.metadata.UpdatedAt)
}

// Seed stores product under its own id, keeping later ids above it.
func (r *Repository) Seed(product domain.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	timestamp := r.now()
	r.products[product.ID] = &storedProduct{
		product:  product,
		metadata: projection.Metadata{CreatedAt: timestamp, UpdatedAt: timestamp},
	}
	if product.ID > r.nextID {
		r.nextID = product.ID
	}
}

// Reset drops every product and restarts ids at 1.
func (r *Repository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = map[int64]*storedProduct{}
	r.nextID = 0
}
