package cart

import (
	"github.com/thangamari27/zenmart/internal/models"
	"github.com/thangamari27/zenmart/internal/storage"
)

// Store holds one owner's cart and wishlist. Every mutation dispatches a
// tagged action through the pure reducer and then writes the new snapshot
// through to the persistence adapter before returning (write-through); a
// storage failure never rolls back the in-memory transition.
//
// The wishlist storage key is shared between identities on one device, so
// the store keeps only its owner's entries in memory and merges them back
// with other owners' entries on every persist.
type Store struct {
	ownerID string
	storage storage.Store
	state   State
}

// NewStore creates a Store for ownerID and restores any persisted cart and
// wishlist state.
func NewStore(ownerID string, st storage.Store) *Store {
	s := &Store{
		ownerID: ownerID,
		storage: st,
		state:   State{Items: []models.CartLine{}, Wishlist: []models.WishlistEntry{}},
	}

	var items []models.CartLine
	if st.Get(storage.KeyCart, &items) && items != nil {
		s.state.Items = items
	}
	var all []models.WishlistEntry
	if st.Get(storage.KeyWishlist, &all) {
		for _, e := range all {
			if e.OwnerID == ownerID {
				s.state.Wishlist = append(s.state.Wishlist, e)
			}
		}
	}
	return s
}

func (s *Store) dispatch(a Action) {
	s.state = reduce(s.state, a)
	s.persist()
}

func (s *Store) persist() {
	s.storage.Set(storage.KeyCart, s.state.Items)

	var all []models.WishlistEntry
	s.storage.Get(storage.KeyWishlist, &all)
	merged := make([]models.WishlistEntry, 0, len(all)+len(s.state.Wishlist))
	for _, e := range all {
		if e.OwnerID != s.ownerID {
			merged = append(merged, e)
		}
	}
	merged = append(merged, s.state.Wishlist...)
	s.storage.Set(storage.KeyWishlist, merged)
}

// AddToCart adds qty units of product to the cart, merging with an
// existing line for the same product. It fails with ErrOutOfStock when the
// product's stock snapshot is zero, regardless of the requested quantity.
// Merging increments are not clamped against stock; only the initial
// out-of-stock check gates the add.
func (s *Store) AddToCart(product models.Product, qty int) error {
	if product.Stock == 0 {
		return ErrOutOfStock
	}
	if qty < 1 {
		qty = 1
	}
	s.dispatch(addToCart{Line: models.CartLine{
		ProductID: product.ID,
		Name:      product.Title,
		Price:     product.Price,
		Image:     product.Image,
		Stock:     product.Stock,
		Quantity:  qty,
	}})
	return nil
}

// RemoveFromCart deletes the line for productID; no-op when absent.
func (s *Store) RemoveFromCart(productID string) {
	s.dispatch(removeFromCart{ProductID: productID})
}

// UpdateQuantity sets the line's quantity exactly. A quantity of zero or
// less is equivalent to RemoveFromCart.
func (s *Store) UpdateQuantity(productID string, qty int) {
	s.dispatch(updateQuantity{ProductID: productID, Quantity: qty})
}

// ClearCart empties all cart lines. The wishlist is untouched.
func (s *Store) ClearCart() {
	s.dispatch(clearCart{})
}

// AddToWishlist saves a product to the wishlist. Idempotent: adding a
// product that is already saved leaves the wishlist unchanged.
func (s *Store) AddToWishlist(product models.Product) {
	s.dispatch(addToWishlist{Entry: models.WishlistEntry{
		OwnerID:   s.ownerID,
		ProductID: product.ID,
		Title:     product.Title,
		Price:     product.Price,
		Image:     product.Image,
		Stock:     product.Stock,
	}})
}

// RemoveFromWishlist deletes the entry for productID; no-op when absent.
func (s *Store) RemoveFromWishlist(productID string) {
	s.dispatch(removeFromWishlist{ProductID: productID})
}

// MoveToCart removes the wishlist entry for productID and adds a
// quantity-one cart line built from its snapshot, in a single state
// transition. It reports whether the entry existed; when it does not, the
// state is unchanged.
func (s *Store) MoveToCart(productID string) bool {
	if !s.IsInWishlist(productID) {
		return false
	}
	s.dispatch(moveToCart{ProductID: productID})
	return true
}

// Items returns the current cart lines.
func (s *Store) Items() []models.CartLine {
	return s.state.Items
}

// Wishlist returns the owner's current wishlist entries.
func (s *Store) Wishlist() []models.WishlistEntry {
	return s.state.Wishlist
}

// CartTotal is the sum of price times quantity over all cart lines.
func (s *Store) CartTotal() float64 {
	var total float64
	for _, line := range s.state.Items {
		total += line.Price * float64(line.Quantity)
	}
	return total
}

// CartItemCount is the sum of quantities over all cart lines.
func (s *Store) CartItemCount() int {
	var count int
	for _, line := range s.state.Items {
		count += line.Quantity
	}
	return count
}

// WishlistCount is the number of wishlist entries.
func (s *Store) WishlistCount() int {
	return len(s.state.Wishlist)
}

// IsInWishlist reports whether productID is saved in the wishlist.
func (s *Store) IsInWishlist(productID string) bool {
	for _, e := range s.state.Wishlist {
		if e.ProductID == productID {
			return true
		}
	}
	return false
}
