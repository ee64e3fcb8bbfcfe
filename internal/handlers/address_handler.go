package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/thangamari27/zenmart/internal/address"
	"github.com/thangamari27/zenmart/internal/middleware"
	"github.com/thangamari27/zenmart/internal/models"
	"github.com/thangamari27/zenmart/internal/storage"
)

// AddressHandler handles HTTP requests for the shipping address book.
type AddressHandler struct {
	storage storage.Store
}

// NewAddressHandler creates a new AddressHandler.
func NewAddressHandler(st storage.Store) *AddressHandler {
	return &AddressHandler{storage: st}
}

// RegisterRoutes registers the address routes; the caller wraps the group
// with the session guard.
func (h *AddressHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/addresses", h.HandleListAddresses)
	router.Get("/addresses/selected", h.HandleSelectedAddress)
	router.Post("/addresses", h.HandleSaveAddress)
	router.Put("/addresses/:id", h.HandleUpdateAddress)
	router.Delete("/addresses/:id", h.HandleDeleteAddress)
	router.Post("/addresses/:id/default", h.HandleSetDefault)
	router.Post("/addresses/:id/select", h.HandleSelectAddress)
}

func (h *AddressHandler) book(c *fiber.Ctx) *address.Book {
	session := middleware.CurrentSession(c)
	return address.NewBook(session.UID, h.storage)
}

// HandleListAddresses returns the owner's saved addresses.
func (h *AddressHandler) HandleListAddresses(c *fiber.Ctx) error {
	return c.JSON(h.book(c).List())
}

// HandleSelectedAddress returns the address currently used at checkout.
func (h *AddressHandler) HandleSelectedAddress(c *fiber.Ctx) error {
	selected := h.book(c).Selected()
	if selected == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "No address selected",
		})
	}
	return c.JSON(selected)
}

// HandleSaveAddress validates and stores a new address.
func (h *AddressHandler) HandleSaveAddress(c *fiber.Ctx) error {
	var addr models.Address
	if err := c.BodyParser(&addr); err != nil {
		log.Printf("Error parsing address body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	saved, err := h.book(c).Save(addr)
	if err != nil {
		if errors.Is(err, address.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Please fill all address fields",
				"error":   err.Error(),
			})
		}
		log.Printf("Error saving address: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not save address",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(saved)
}

// HandleUpdateAddress applies changes to an existing address.
func (h *AddressHandler) HandleUpdateAddress(c *fiber.Ctx) error {
	var addr models.Address
	if err := c.BodyParser(&addr); err != nil {
		log.Printf("Error parsing address body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	id := c.Params("id")
	if err := h.book(c).Update(id, addr); err != nil {
		return h.addressError(c, id, err)
	}
	return c.JSON(fiber.Map{
		"message": "Address updated",
		"id":      id,
	})
}

// HandleDeleteAddress removes an address.
func (h *AddressHandler) HandleDeleteAddress(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.book(c).Delete(id); err != nil {
		return h.addressError(c, id, err)
	}
	return c.JSON(fiber.Map{
		"message": "Address deleted",
		"id":      id,
	})
}

// HandleSetDefault marks an address as the single default.
func (h *AddressHandler) HandleSetDefault(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.book(c).SetDefault(id); err != nil {
		return h.addressError(c, id, err)
	}
	return c.JSON(fiber.Map{
		"message": "Default address updated",
		"id":      id,
	})
}

// HandleSelectAddress marks an address as the one used at checkout.
func (h *AddressHandler) HandleSelectAddress(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.book(c).Select(id); err != nil {
		return h.addressError(c, id, err)
	}
	return c.JSON(fiber.Map{
		"message": "Address selected",
		"id":      id,
	})
}

func (h *AddressHandler) addressError(c *fiber.Ctx, id string, err error) error {
	switch {
	case errors.Is(err, address.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Address not found",
		})
	case errors.Is(err, address.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Please fill all address fields",
			"error":   err.Error(),
		})
	}
	log.Printf("Error handling address %s: %v", id, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Could not process address",
		"error":   err.Error(),
	})
}
