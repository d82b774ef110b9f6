package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Apurer/go-gin-backoffice/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-backoffice/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-backoffice/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order store.
type Repository struct {
	mu     sync.RWMutex
	orders map[int64]*storedOrder
	nextID int64
	now    func() time.Time
}

type storedOrder struct {
	order    domain.Order
	metadata projection.Metadata
}

func NewRepository() *Repository {
	return &Repository{
		orders: map[int64]*storedOrder{},
		now:    time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

func (r *Repository) Create(_ context.Context, order *domain.Order) (*projection.Projection[*domain.Order], error) {
	if order == nil {
		return nil, errors.New("cannot create nil order")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	timestamp := r.now()
	stored := &storedOrder{
		order:    *order,
		metadata: projection.Metadata{CreatedAt: timestamp, UpdatedAt: timestamp},
	}
	stored.order.ID = r.nextID
	r.orders[stored.order.ID] = stored
	return stored.project(), nil
}

func (r *Repository) Update(_ context.Context, order *domain.Order) error {
	if order == nil {
		return errors.New("cannot update nil order")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.orders[order.ID]
	if !ok {
		return ports.ErrNotFound
	}
	entry.order = *order
	entry.metadata.UpdatedAt = r.now()
	return nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*projection.Projection[*domain.Order], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return entry.project(), nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

func (r *Repository) List(_ context.Context) ([]*projection.Projection[*domain.Order], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*projection.Projection[*domain.Order], 0, len(r.orders))
	for _, entry := range r.orders {
		list = append(list, entry.project())
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Entity.ID < list[j].Entity.ID })
	return list, nil
}

func (s *storedOrder) project() *projection.Projection[*domain.Order] {
	clone := s.order
	return projection.New(&clone, s.metadata.CreatedAt, s.metadata.UpdatedAt)
}

// Seed stores order under its own id, keeping later ids above it.
func (r *Repository) Seed(order domain.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	timestamp := r.now()
	r.orders[order.ID] = &storedOrder{
		order:    order,
		metadata: projection.Metadata{CreatedAt: timestamp, UpdatedAt: timestamp},
	}
	if order.ID > r.nextID {
		r.nextID = order.ID
	}
}

// Reset drops every order and restarts ids at 1.
func (r *Repository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = map[int64]*storedOrder{}
	r.nextID = 0
}
