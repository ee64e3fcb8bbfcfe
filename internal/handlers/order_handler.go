package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/thangamari27/zenmart/internal/address"
	"github.com/thangamari27/zenmart/internal/cart"
	"github.com/thangamari27/zenmart/internal/middleware"
	"github.com/thangamari27/zenmart/internal/models"
	"github.com/thangamari27/zenmart/internal/orders"
	"github.com/thangamari27/zenmart/internal/storage"
)

// OrderHandler handles HTTP requests for checkout and order management.
type OrderHandler struct {
	service *orders.Service
	storage storage.Store
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *orders.Service, st storage.Store) *OrderHandler {
	return &OrderHandler{
		service: service,
		storage: st,
	}
}

// RegisterRoutes registers the customer order routes; the caller wraps the
// group with the session guard.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/orders", h.HandleCheckout)
	router.Get("/orders", h.HandleListOrders)
	router.Post("/orders/:id/cancel", h.HandleCancelOrder)
}

// RegisterAdminRoutes registers the admin order routes under the admin
// group.
func (h *OrderHandler) RegisterAdminRoutes(router fiber.Router) {
	router.Get("/orders", h.HandleListAllOrders)
	router.Patch("/orders/:id/status", h.HandleSetStatus)
	router.Delete("/orders/:id", h.HandleDeleteOrder)
}

// CheckoutRequest represents the request body for placing an order. The
// shipping address is either a saved address (AddressID), an inline
// Address, or — when both are absent — the currently selected address.
type CheckoutRequest struct {
	AddressID string          `json:"address_id"`
	Address   *models.Address `json:"address"`
}

// HandleCheckout places an order from the session's cart and clears the
// cart on success.
func (h *OrderHandler) HandleCheckout(c *fiber.Ctx) error {
	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing checkout body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	session := middleware.CurrentSession(c)
	store := cart.NewStore(session.UID, h.storage)
	book := address.NewBook(session.UID, h.storage)

	shipping, err := h.resolveAddress(req, book)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Please select or add a shipping address",
			"error":   err.Error(),
		})
	}

	order, err := h.service.Checkout(session.UID, store.Items(), *shipping)
	if err != nil {
		if errors.Is(err, orders.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Could not place order",
				"error":   err.Error(),
			})
		}
		log.Printf("Error placing order for %s: %v", session.UID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not place order",
			"error":   err.Error(),
		})
	}

	store.ClearCart()
	return c.Status(fiber.StatusCreated).JSON(order)
}

func (h *OrderHandler) resolveAddress(req CheckoutRequest, book *address.Book) (*models.Address, error) {
	if req.Address != nil {
		return req.Address, nil
	}
	if req.AddressID != "" {
		for _, a := range book.List() {
			if a.ID == req.AddressID {
				return &a, nil
			}
		}
		return nil, address.ErrNotFound
	}
	if selected := book.Selected(); selected != nil {
		return selected, nil
	}
	return nil, address.ErrNotFound
}

// HandleListOrders lists the session owner's orders, optionally filtered
// by status via the status query parameter.
func (h *OrderHandler) HandleListOrders(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	owned, err := h.service.ListByOwner(session.UID, c.Query("status"))
	if err != nil {
		log.Printf("Error listing orders for %s: %v", session.UID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
			"error":   err.Error(),
		})
	}
	return c.JSON(owned)
}

// HandleCancelOrder cancels a pending order belonging to the session
// owner.
func (h *OrderHandler) HandleCancelOrder(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	orderID := c.Params("id")

	err := h.service.Cancel(session.UID, orderID)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Order not found",
			})
		case errors.Is(err, orders.ErrNotCancellable):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Order can no longer be cancelled",
				"error":   err.Error(),
			})
		}
		log.Printf("Error cancelling order %s: %v", orderID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not cancel order",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Order cancelled",
		"id":      orderID,
	})
}

// HandleListAllOrders lists every order for the admin screens, optionally
// filtered by status.
func (h *OrderHandler) HandleListAllOrders(c *fiber.Ctx) error {
	all, err := h.service.GetAll()
	if err != nil {
		log.Printf("Error listing all orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
			"error":   err.Error(),
		})
	}

	status := c.Query("status")
	if status == "" {
		return c.JSON(all)
	}
	filtered := make([]models.Order, 0, len(all))
	for _, o := range all {
		if o.Status == status {
			filtered = append(filtered, o)
		}
	}
	return c.JSON(filtered)
}

// SetStatusRequest represents the request body for an admin status
// transition.
type SetStatusRequest struct {
	Status string `json:"status"`
}

// HandleSetStatus moves an order to any valid status.
func (h *OrderHandler) HandleSetStatus(c *fiber.Ctx) error {
	var req SetStatusRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing status update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Status is required for order status update.",
		})
	}

	orderID := c.Params("id")
	if err := h.service.SetStatus(orderID, req.Status); err != nil {
		switch {
		case errors.Is(err, orders.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Order not found",
			})
		case errors.Is(err, orders.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid order status",
				"error":   err.Error(),
			})
		}
		log.Printf("Error updating order %s status: %v", orderID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update order status",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Order status updated",
		"id":      orderID,
		"status":  req.Status,
	})
}

// HandleDeleteOrder removes an order entirely.
func (h *OrderHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	orderID := c.Params("id")
	if err := h.service.Delete(orderID); err != nil {
		if errors.Is(err, orders.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Order not found",
			})
		}
		log.Printf("Error deleting order %s: %v", orderID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete order",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Order deleted",
		"id":      orderID,
	})
}
