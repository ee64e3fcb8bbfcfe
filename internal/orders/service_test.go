package orders_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/thangamari27/zenmart/internal/models"
	"github.com/thangamari27/zenmart/internal/orders"
	"github.com/thangamari27/zenmart/internal/storage"
)

// MockPublisher is a mock implementation of orders.EventPublisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(exchange, routingKey string, body []byte) error {
	args := m.Called(exchange, routingKey, body)
	return args.Error(0)
}

func testLines() []models.CartLine {
	return []models.CartLine{
		{ProductID: "p1", Name: "Product p1", Price: 100, Quantity: 2},
		{ProductID: "p2", Name: "Product p2", Price: 50, Quantity: 1},
	}
}

func testAddress() models.Address {
	return models.Address{
		Name:    "Demo User",
		Street:  "12 MG Road",
		City:    "Chennai",
		State:   "TN",
		ZipCode: "600001",
		Country: "India",
	}
}

func newService() (*orders.Service, *MockPublisher) {
	publisher := new(MockPublisher)
	repo := orders.NewStoreRepository(storage.NewMemoryStore())
	return orders.NewService(repo, publisher), publisher
}

func TestCheckout_CreatesPendingOrder(t *testing.T) {
	service, publisher := newService()
	publisher.On("Publish", "order", "order.created", mock.Anything).Return(nil).Once()

	order, err := service.Checkout("user-1", testLines(), testAddress())
	assert.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "user-1", order.OwnerID)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, 250.0, order.Subtotal)
	assert.InDelta(t, 25.0, order.Tax, 0.001)
	assert.InDelta(t, 275.0, order.Total, 0.001)
	assert.Len(t, order.Items, 2)
	publisher.AssertExpectations(t)

	// The order is persisted for the owner.
	owned, err := service.ListByOwner("user-1", "")
	assert.NoError(t, err)
	assert.Len(t, owned, 1)
}

func TestCheckout_EmptyCart(t *testing.T) {
	service, publisher := newService()

	_, err := service.Checkout("user-1", nil, testAddress())
	assert.ErrorIs(t, err, orders.ErrValidation)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckout_IncompleteAddress(t *testing.T) {
	service, _ := newService()

	addr := testAddress()
	addr.ZipCode = ""
	_, err := service.Checkout("user-1", testLines(), addr)
	assert.ErrorIs(t, err, orders.ErrValidation)

	owned, err := service.ListByOwner("user-1", "")
	assert.NoError(t, err)
	assert.Empty(t, owned)
}

func TestCheckout_PublishFailureIsNotFatal(t *testing.T) {
	service, publisher := newService()
	publisher.On("Publish", "order", "order.created", mock.Anything).
		Return(assert.AnError).Once()

	order, err := service.Checkout("user-1", testLines(), testAddress())
	assert.NoError(t, err)
	assert.NotNil(t, order)
	publisher.AssertExpectations(t)
}

func TestListByOwner_StatusFilterAndScoping(t *testing.T) {
	service, publisher := newService()
	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	first, err := service.Checkout("user-1", testLines(), testAddress())
	assert.NoError(t, err)
	_, err = service.Checkout("user-1", testLines(), testAddress())
	assert.NoError(t, err)
	_, err = service.Checkout("user-2", testLines(), testAddress())
	assert.NoError(t, err)

	assert.NoError(t, service.SetStatus(first.ID, models.OrderShipped))

	owned, err := service.ListByOwner("user-1", "")
	assert.NoError(t, err)
	assert.Len(t, owned, 2)

	shipped, err := service.ListByOwner("user-1", models.OrderShipped)
	assert.NoError(t, err)
	assert.Len(t, shipped, 1)
	assert.Equal(t, first.ID, shipped[0].ID)
}

func TestCancel_OnlyPendingOrders(t *testing.T) {
	service, publisher := newService()
	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	order, err := service.Checkout("user-1", testLines(), testAddress())
	assert.NoError(t, err)

	assert.NoError(t, service.Cancel("user-1", order.ID))
	cancelled, err := service.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, cancelled.Status)

	// A second cancel finds the order no longer pending.
	err = service.Cancel("user-1", order.ID)
	assert.ErrorIs(t, err, orders.ErrNotCancellable)
}

func TestCancel_OtherOwnerReadsAsNotFound(t *testing.T) {
	service, publisher := newService()
	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	order, err := service.Checkout("user-1", testLines(), testAddress())
	assert.NoError(t, err)

	err = service.Cancel("user-2", order.ID)
	assert.ErrorIs(t, err, orders.ErrNotFound)

	unchanged, err := service.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderPending, unchanged.Status)
}

func TestSetStatus(t *testing.T) {
	service, publisher := newService()
	publisher.On("Publish", "order", "order.created", mock.Anything).Return(nil).Once()
	publisher.On("Publish", "order", "order.status.changed", mock.Anything).Return(nil).Once()

	order, err := service.Checkout("user-1", testLines(), testAddress())
	assert.NoError(t, err)

	assert.NoError(t, service.SetStatus(order.ID, models.OrderDelivered))
	updated, err := service.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderDelivered, updated.Status)
	publisher.AssertExpectations(t)
}

func TestSetStatus_InvalidStatus(t *testing.T) {
	service, publisher := newService()
	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	order, err := service.Checkout("user-1", testLines(), testAddress())
	assert.NoError(t, err)

	err = service.SetStatus(order.ID, "teleported")
	assert.ErrorIs(t, err, orders.ErrValidation)
}

func TestSetStatus_MissingOrder(t *testing.T) {
	service, _ := newService()
	err := service.SetStatus("missing", models.OrderShipped)
	assert.ErrorIs(t, err, orders.ErrNotFound)
}

func TestDelete(t *testing.T) {
	service, publisher := newService()
	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	order, err := service.Checkout("user-1", testLines(), testAddress())
	assert.NoError(t, err)

	assert.NoError(t, service.Delete(order.ID))
	_, err = service.GetByID(order.ID)
	assert.ErrorIs(t, err, orders.ErrNotFound)

	err = service.Delete(order.ID)
	assert.ErrorIs(t, err, orders.ErrNotFound)
}
