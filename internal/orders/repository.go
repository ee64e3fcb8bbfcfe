package orders

import (
	"fmt"

	"github.com/thangamari27/zenmart/internal/models"
	"github.com/thangamari27/zenmart/internal/storage"
)

// Repository defines the interface for order data access.
type Repository interface {
	GetAll() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	GetByOwner(ownerID string) ([]models.Order, error)
	Create(order *models.Order) error
	Update(order *models.Order) error
	Delete(id string) error
}

// StoreRepository keeps the order collection under the userOrders storage
// key, writing the whole collection through on every change. The adapter
// swallows storage failures, so only missing orders surface as errors.
type StoreRepository struct {
	storage storage.Store
}

// NewStoreRepository creates a new instance of StoreRepository.
func NewStoreRepository(st storage.Store) *StoreRepository {
	return &StoreRepository{storage: st}
}

func (r *StoreRepository) load() []models.Order {
	var orders []models.Order
	r.storage.Get(storage.KeyOrders, &orders)
	return orders
}

// GetAll returns all orders.
func (r *StoreRepository) GetAll() ([]models.Order, error) {
	return r.load(), nil
}

// GetByID returns an order by its ID.
func (r *StoreRepository) GetByID(id string) (*models.Order, error) {
	for _, o := range r.load() {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
}

// GetByOwner returns all orders belonging to ownerID.
func (r *StoreRepository) GetByOwner(ownerID string) ([]models.Order, error) {
	owned := make([]models.Order, 0)
	for _, o := range r.load() {
		if o.OwnerID == ownerID {
			owned = append(owned, o)
		}
	}
	return owned, nil
}

// Create appends a new order to the collection.
func (r *StoreRepository) Create(order *models.Order) error {
	orders := append(r.load(), *order)
	r.storage.Set(storage.KeyOrders, orders)
	return nil
}

// Update replaces an existing order.
func (r *StoreRepository) Update(order *models.Order) error {
	orders := r.load()
	for i, o := range orders {
		if o.ID == order.ID {
			orders[i] = *order
			r.storage.Set(storage.KeyOrders, orders)
			return nil
		}
	}
	return fmt.Errorf("order with ID %s: %w", order.ID, ErrNotFound)
}

// Delete removes an order by its ID.
func (r *StoreRepository) Delete(id string) error {
	orders := r.load()
	for i, o := range orders {
		if o.ID == id {
			orders = append(orders[:i], orders[i+1:]...)
			r.storage.Set(storage.KeyOrders, orders)
			return nil
		}
	}
	return fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
}
