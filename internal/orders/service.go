package orders

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/thangamari27/zenmart/internal/models"
)

// TaxRate is the flat tax applied to the cart subtotal at checkout.
const TaxRate = 0.10

// EventPublisher publishes order lifecycle events to the message broker.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// Service handles business logic related to orders.
type Service struct {
	repo      Repository
	publisher EventPublisher
	validate  *validator.Validate
}

// NewService creates a new order Service. publisher may be nil, in which
// case event publication is skipped.
func NewService(repo Repository, publisher EventPublisher) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		validate:  validator.New(),
	}
}

// Checkout creates a pending order from the cart line snapshots and the
// chosen shipping address. The order total is subtotal plus tax. An
// order.created event is published after the order is stored; a publish
// failure is logged, never surfaced.
func (s *Service) Checkout(ownerID string, lines []models.CartLine, address models.Address) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrValidation)
	}
	if err := s.validate.Struct(address); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var subtotal float64
	items := make([]models.CartLine, len(lines))
	copy(items, lines)
	for _, line := range items {
		subtotal += line.Price * float64(line.Quantity)
	}
	tax := subtotal * TaxRate

	now := time.Now()
	order := &models.Order{
		ID:              uuid.New().String(),
		OwnerID:         ownerID,
		Items:           items,
		Subtotal:        subtotal,
		Tax:             tax,
		Total:           subtotal + tax,
		Status:          models.OrderPending,
		ShippingAddress: address,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.publishEvent("order.created", map[string]interface{}{
		"order_id": order.ID,
		"owner_id": order.OwnerID,
		"status":   order.Status,
		"total":    order.Total,
	})

	return order, nil
}

// GetAll retrieves all orders, for the admin order screens.
func (s *Service) GetAll() ([]models.Order, error) {
	return s.repo.GetAll()
}

// GetByID retrieves a single order by its ID.
func (s *Service) GetByID(id string) (*models.Order, error) {
	return s.repo.GetByID(id)
}

// ListByOwner retrieves ownerID's orders, optionally filtered by status.
// An empty status means all statuses.
func (s *Service) ListByOwner(ownerID, status string) ([]models.Order, error) {
	owned, err := s.repo.GetByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	if status == "" {
		return owned, nil
	}
	filtered := make([]models.Order, 0, len(owned))
	for _, o := range owned {
		if o.Status == status {
			filtered = append(filtered, o)
		}
	}
	return filtered, nil
}

// Cancel cancels ownerID's order. Customers may cancel only while the
// order is still pending; an order the caller does not own reads as not
// found.
func (s *Service) Cancel(ownerID, orderID string) error {
	order, err := s.repo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order.OwnerID != ownerID {
		return fmt.Errorf("order with ID %s: %w", orderID, ErrNotFound)
	}
	if order.Status != models.OrderPending {
		return fmt.Errorf("order %s is %s: %w", orderID, order.Status, ErrNotCancellable)
	}
	return s.setStatus(order, models.OrderCancelled)
}

// SetStatus moves an order to any valid status. Admin only; the handler
// layer enforces the role.
func (s *Service) SetStatus(orderID, status string) error {
	if !models.ValidOrderStatus(status) {
		return fmt.Errorf("%w: invalid order status %q", ErrValidation, status)
	}
	order, err := s.repo.GetByID(orderID)
	if err != nil {
		return err
	}
	return s.setStatus(order, status)
}

func (s *Service) setStatus(order *models.Order, status string) error {
	order.Status = status
	order.UpdatedAt = time.Now()
	if err := s.repo.Update(order); err != nil {
		return fmt.Errorf("failed to update order status for order %s: %w", order.ID, err)
	}

	s.publishEvent("order.status.changed", map[string]interface{}{
		"order_id": order.ID,
		"owner_id": order.OwnerID,
		"status":   order.Status,
	})
	return nil
}

// Delete removes an order entirely. Admin only.
func (s *Service) Delete(orderID string) error {
	return s.repo.Delete(orderID)
}

func (s *Service) publishEvent(routingKey string, payload map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("orders: failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.publisher.Publish("order", routingKey, body); err != nil {
		log.Printf("orders: failed to publish %s event: %v", routingKey, err)
	}
}
