package repository

import (
	"context"
	"puredrop/internal/models"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps owners and orders in process memory. It backs the
// "memory://" database URL used for local runs and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	owners map[string]models.ShopOwner // phone -> owner
	orders map[string]models.Order     // id -> order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		owners: make(map[string]models.ShopOwner),
		orders: make(map[string]models.Order),
	}
}

func (s *MemoryStore) Owners() OwnerRepository {
	return &memoryOwnerRepository{store: s}
}

func (s *MemoryStore) Orders() OrderRepository {
	return &memoryOrderRepository{store: s}
}

type memoryOwnerRepository struct {
	store *MemoryStore
}

func (r *memoryOwnerRepository) Create(_ context.Context, owner *models.ShopOwner) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.owners[owner.Phone]; exists {
		return ErrDuplicate
	}
	now := time.Now().UTC()
	if owner.ID == "" {
		owner.ID = uuid.NewString()
	}
	owner.CreatedAt = now
	owner.UpdatedAt = now
	r.store.owners[owner.Phone] = *owner
	return nil
}

func (r *memoryOwnerRepository) GetByPhone(_ context.Context, phone string) (*models.ShopOwner, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	owner, ok := r.store.owners[phone]
	if !ok {
		return nil, ErrNotFound
	}
	return &owner, nil
}

func (r *memoryOwnerRepository) Update(_ context.Context, owner *models.ShopOwner) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.owners[owner.Phone]
	if !ok {
		return ErrNotFound
	}
	stored.ShopName = owner.ShopName
	stored.OwnerName = owner.OwnerName
	stored.Address = owner.Address
	stored.Location = owner.Location
	stored.ShopImage = owner.ShopImage
	stored.Stock = owner.Stock
	stored.UpdatedAt = time.Now().UTC()
	r.store.owners[owner.Phone] = stored

	owner.UpdatedAt = stored.UpdatedAt
	return nil
}

type memoryOrderRepository struct {
	store *MemoryStore
}

func (r *memoryOrderRepository) Create(_ context.Context, order *models.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	r.store.orders[order.ID] = *order
	return nil
}

func (r *memoryOrderRepository) GetByID(_ context.Context, id string) (*models.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidID
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	order, ok := r.store.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &order, nil
}

func (r *memoryOrderRepository) ListByShop(_ context.Context, shopPhone string, filter models.OrderFilter) ([]models.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	orders := []models.Order{}
	for _, order := range r.store.orders {
		if order.ShopPhone != shopPhone {
			continue
		}
		if filter.Status != "" && order.DeliveryStatus != filter.Status {
			continue
		}
		orders = append(orders, order)
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (r *memoryOrderRepository) UpdateStatus(_ context.Context, id string, status models.DeliveryStatus) (*models.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidID
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	order, ok := r.store.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	order.DeliveryStatus = status
	r.store.orders[id] = order
	return &order, nil
}
