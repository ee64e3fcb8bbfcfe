package cart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thangamari27/zenmart/internal/cart"
	"github.com/thangamari27/zenmart/internal/models"
	"github.com/thangamari27/zenmart/internal/storage"
)

func product(id string, price float64, stock int) models.Product {
	return models.Product{
		ID:    id,
		Title: "Product " + id,
		Price: price,
		Stock: stock,
		Image: "https://example.com/" + id + ".jpg",
	}
}

func newStore() *cart.Store {
	return cart.NewStore("user-1", storage.NewMemoryStore())
}

func TestAddToCart_OutOfStock(t *testing.T) {
	store := newStore()
	outOfStock := product("p1", 100, 0)

	// Fails for any requested quantity and leaves the cart unchanged.
	for _, qty := range []int{1, 5, 100} {
		err := store.AddToCart(outOfStock, qty)
		assert.ErrorIs(t, err, cart.ErrOutOfStock)
	}
	assert.Empty(t, store.Items())
	assert.Equal(t, 0, store.CartItemCount())
}

func TestAddToCart_MergesIntoSingleLine(t *testing.T) {
	store := newStore()
	p := product("p1", 100, 5)

	assert.NoError(t, store.AddToCart(p, 2))
	assert.NoError(t, store.AddToCart(p, 3))
	assert.NoError(t, store.AddToCart(p, 4))

	assert.Len(t, store.Items(), 1)
	assert.Equal(t, 9, store.Items()[0].Quantity)
	// Merging increments are not clamped against the stock snapshot; only
	// the zero-stock check gates an add.
	assert.Greater(t, store.Items()[0].Quantity, p.Stock)
}

func TestAddToCart_SnapshotsProduct(t *testing.T) {
	store := newStore()
	assert.NoError(t, store.AddToCart(product("p1", 100, 5), 1))

	line := store.Items()[0]
	assert.Equal(t, "p1", line.ProductID)
	assert.Equal(t, "Product p1", line.Name)
	assert.Equal(t, 100.0, line.Price)
	assert.Equal(t, 5, line.Stock)
}

func TestUpdateQuantity_ZeroEqualsRemove(t *testing.T) {
	removed := newStore()
	assert.NoError(t, removed.AddToCart(product("p1", 100, 5), 2))
	removed.RemoveFromCart("p1")

	zeroed := newStore()
	assert.NoError(t, zeroed.AddToCart(product("p1", 100, 5), 2))
	zeroed.UpdateQuantity("p1", 0)

	assert.Empty(t, removed.Items())
	assert.Equal(t, removed.Items(), zeroed.Items())
}

func TestUpdateQuantity_SetsExactValue(t *testing.T) {
	store := newStore()
	assert.NoError(t, store.AddToCart(product("p1", 100, 5), 2))

	store.UpdateQuantity("p1", 7)
	assert.Equal(t, 7, store.Items()[0].Quantity)

	store.UpdateQuantity("p1", -1)
	assert.Empty(t, store.Items())
}

func TestRemoveFromCart_AbsentIsNoop(t *testing.T) {
	store := newStore()
	assert.NoError(t, store.AddToCart(product("p1", 100, 5), 1))

	store.RemoveFromCart("missing")
	assert.Len(t, store.Items(), 1)
}

func TestClearCart_LeavesWishlist(t *testing.T) {
	store := newStore()
	assert.NoError(t, store.AddToCart(product("p1", 100, 5), 1))
	store.AddToWishlist(product("p2", 50, 3))

	store.ClearCart()
	assert.Empty(t, store.Items())
	assert.Equal(t, 1, store.WishlistCount())
}

func TestAddToWishlist_Idempotent(t *testing.T) {
	store := newStore()
	p := product("p1", 100, 5)

	store.AddToWishlist(p)
	store.AddToWishlist(p)

	assert.Equal(t, 1, store.WishlistCount())
	assert.True(t, store.IsInWishlist("p1"))
	assert.False(t, store.IsInWishlist("p2"))
}

func TestMoveToCart(t *testing.T) {
	store := newStore()
	store.AddToWishlist(product("p1", 100, 5))

	moved := store.MoveToCart("p1")
	assert.True(t, moved)
	assert.False(t, store.IsInWishlist("p1"))
	assert.Len(t, store.Items(), 1)
	assert.Equal(t, 1, store.Items()[0].Quantity)
	assert.Equal(t, 100.0, store.Items()[0].Price)
}

func TestMoveToCart_MergesExistingLine(t *testing.T) {
	store := newStore()
	p := product("p1", 100, 5)
	assert.NoError(t, store.AddToCart(p, 2))
	store.AddToWishlist(p)

	assert.True(t, store.MoveToCart("p1"))
	assert.Len(t, store.Items(), 1)
	assert.Equal(t, 3, store.Items()[0].Quantity)
}

func TestMoveToCart_AbsentIsNoop(t *testing.T) {
	store := newStore()
	assert.NoError(t, store.AddToCart(product("p1", 100, 5), 1))

	moved := store.MoveToCart("missing")
	assert.False(t, moved)
	assert.Len(t, store.Items(), 1)
	assert.Equal(t, 0, store.WishlistCount())
}

func TestDerivedTotals(t *testing.T) {
	store := newStore()
	assert.NoError(t, store.AddToCart(product("p1", 100, 10), 2))
	assert.NoError(t, store.AddToCart(product("p2", 50, 10), 1))

	assert.Equal(t, 250.0, store.CartTotal())
	assert.Equal(t, 3, store.CartItemCount())
}

func TestStore_WriteThroughPersistence(t *testing.T) {
	st := storage.NewMemoryStore()

	store := cart.NewStore("user-1", st)
	assert.NoError(t, store.AddToCart(product("p1", 100, 5), 2))
	store.AddToWishlist(product("p2", 50, 3))

	// A fresh store over the same adapter restores the persisted state.
	restored := cart.NewStore("user-1", st)
	assert.Len(t, restored.Items(), 1)
	assert.Equal(t, 2, restored.Items()[0].Quantity)
	assert.True(t, restored.IsInWishlist("p2"))
}

func TestStore_WishlistScopedByOwner(t *testing.T) {
	st := storage.NewMemoryStore()

	first := cart.NewStore("user-1", st)
	first.AddToWishlist(product("p1", 100, 5))

	second := cart.NewStore("user-2", st)
	second.AddToWishlist(product("p2", 50, 3))

	assert.True(t, second.IsInWishlist("p2"))
	assert.False(t, second.IsInWishlist("p1"))

	// Persisting user-2's wishlist must not drop user-1's entries.
	restored := cart.NewStore("user-1", st)
	assert.True(t, restored.IsInWishlist("p1"))
	assert.False(t, restored.IsInWishlist("p2"))
}
