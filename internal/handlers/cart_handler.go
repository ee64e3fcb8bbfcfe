package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/thangamari27/zenmart/internal/cart"
	"github.com/thangamari27/zenmart/internal/catalog"
	"github.com/thangamari27/zenmart/internal/middleware"
	"github.com/thangamari27/zenmart/internal/storage"
)

// CartHandler handles HTTP requests for the cart and wishlist. A Store is
// rebuilt from persisted state per request, so the persistence adapter is
// the single source of truth between requests.
type CartHandler struct {
	storage storage.Store
	catalog *catalog.Service
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(st storage.Store, catalogService *catalog.Service) *CartHandler {
	return &CartHandler{
		storage: st,
		catalog: catalogService,
	}
}

// RegisterRoutes registers the cart and wishlist routes with the Fiber
// app. The caller wraps the group with the session guard.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/cart", h.HandleGetCart)
	router.Post("/cart/items", h.HandleAddToCart)
	router.Put("/cart/items/:id", h.HandleUpdateQuantity)
	router.Delete("/cart/items/:id", h.HandleRemoveFromCart)
	router.Delete("/cart", h.HandleClearCart)

	router.Get("/wishlist", h.HandleGetWishlist)
	router.Post("/wishlist", h.HandleAddToWishlist)
	router.Delete("/wishlist/:id", h.HandleRemoveFromWishlist)
	router.Post("/wishlist/:id/move", h.HandleMoveToCart)
}

func (h *CartHandler) store(c *fiber.Ctx) *cart.Store {
	session := middleware.CurrentSession(c)
	return cart.NewStore(session.UID, h.storage)
}

func cartResponse(s *cart.Store) fiber.Map {
	return fiber.Map{
		"items":      s.Items(),
		"total":      s.CartTotal(),
		"item_count": s.CartItemCount(),
	}
}

// HandleGetCart returns the cart lines and derived totals.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	return c.JSON(cartResponse(h.store(c)))
}

// AddToCartRequest represents the request body for adding a product to
// the cart.
type AddToCartRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// HandleAddToCart snapshots the product and adds it to the cart.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	var req AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add to cart body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "product_id is required",
		})
	}

	product, err := h.catalog.GetByID(req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		log.Printf("Error loading product %s for cart: %v", req.ProductID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add to cart",
			"error":   err.Error(),
		})
	}

	store := h.store(c)
	if err := store.AddToCart(*product, req.Quantity); err != nil {
		if errors.Is(err, cart.ErrOutOfStock) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Product is out of stock",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add to cart",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(cartResponse(store))
}

// UpdateQuantityRequest represents the request body for setting a line's
// quantity.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// HandleUpdateQuantity sets the quantity of a cart line. A quantity of
// zero or less removes the line.
func (h *CartHandler) HandleUpdateQuantity(c *fiber.Ctx) error {
	var req UpdateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update quantity body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	store := h.store(c)
	store.UpdateQuantity(c.Params("id"), req.Quantity)
	return c.JSON(cartResponse(store))
}

// HandleRemoveFromCart deletes a cart line; removing an absent line is a
// no-op.
func (h *CartHandler) HandleRemoveFromCart(c *fiber.Ctx) error {
	store := h.store(c)
	store.RemoveFromCart(c.Params("id"))
	return c.JSON(cartResponse(store))
}

// HandleClearCart empties the cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	store := h.store(c)
	store.ClearCart()
	return c.JSON(cartResponse(store))
}

// HandleGetWishlist returns the owner's wishlist entries.
func (h *CartHandler) HandleGetWishlist(c *fiber.Ctx) error {
	store := h.store(c)
	return c.JSON(fiber.Map{
		"items": store.Wishlist(),
		"count": store.WishlistCount(),
	})
}

// AddToWishlistRequest represents the request body for saving a product
// to the wishlist.
type AddToWishlistRequest struct {
	ProductID string `json:"product_id"`
}

// HandleAddToWishlist saves a product to the wishlist; saving an already
// saved product is idempotent.
func (h *CartHandler) HandleAddToWishlist(c *fiber.Ctx) error {
	var req AddToWishlistRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add to wishlist body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	product, err := h.catalog.GetByID(req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		log.Printf("Error loading product %s for wishlist: %v", req.ProductID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add to wishlist",
			"error":   err.Error(),
		})
	}

	store := h.store(c)
	store.AddToWishlist(*product)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"items": store.Wishlist(),
		"count": store.WishlistCount(),
	})
}

// HandleRemoveFromWishlist deletes a wishlist entry; removing an absent
// entry is a no-op.
func (h *CartHandler) HandleRemoveFromWishlist(c *fiber.Ctx) error {
	store := h.store(c)
	store.RemoveFromWishlist(c.Params("id"))
	return c.JSON(fiber.Map{
		"items": store.Wishlist(),
		"count": store.WishlistCount(),
	})
}

// HandleMoveToCart moves a wishlist entry into the cart in one state
// transition.
func (h *CartHandler) HandleMoveToCart(c *fiber.Ctx) error {
	store := h.store(c)
	if !store.MoveToCart(c.Params("id")) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Product is not in the wishlist",
		})
	}
	return c.JSON(fiber.Map{
		"cart":     cartResponse(store),
		"wishlist": store.Wishlist(),
	})
}
