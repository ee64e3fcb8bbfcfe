package cart

import "github.com/thangamari27/zenmart/internal/models"

// State is the cart/wishlist document: the cart lines and the current
// owner's wishlist entries.
type State struct {
	Items    []models.CartLine
	Wishlist []models.WishlistEntry
}

// Action is one tagged state transition request. Each variant is consumed
// by the pure reduce function, which returns the next state without
// mutating the previous one.
type Action interface {
	isAction()
}

type addToCart struct {
	Line models.CartLine
}

type removeFromCart struct {
	ProductID string
}

type updateQuantity struct {
	ProductID string
	Quantity  int
}

type clearCart struct{}

type addToWishlist struct {
	Entry models.WishlistEntry
}

type removeFromWishlist struct {
	ProductID string
}

type moveToCart struct {
	ProductID string
}

func (addToCart) isAction()          {}
func (removeFromCart) isAction()     {}
func (updateQuantity) isAction()     {}
func (clearCart) isAction()          {}
func (addToWishlist) isAction()      {}
func (removeFromWishlist) isAction() {}
func (moveToCart) isAction()         {}

// reduce computes the next state for one action. Invariants it maintains:
// at most one cart line per product, line quantities stay >= 1 (a drop to
// zero removes the line), and at most one wishlist entry per product.
func reduce(s State, a Action) State {
	switch act := a.(type) {
	case addToCart:
		return State{
			Items:    mergeLine(s.Items, act.Line),
			Wishlist: s.Wishlist,
		}

	case removeFromCart:
		return State{
			Items:    dropLine(s.Items, act.ProductID),
			Wishlist: s.Wishlist,
		}

	case updateQuantity:
		if act.Quantity <= 0 {
			return reduce(s, removeFromCart{ProductID: act.ProductID})
		}
		items := make([]models.CartLine, len(s.Items))
		for i, line := range s.Items {
			if line.ProductID == act.ProductID {
				line.Quantity = act.Quantity
			}
			items[i] = line
		}
		return State{Items: items, Wishlist: s.Wishlist}

	case clearCart:
		return State{Items: []models.CartLine{}, Wishlist: s.Wishlist}

	case addToWishlist:
		for _, e := range s.Wishlist {
			if e.ProductID == act.Entry.ProductID {
				return s
			}
		}
		wishlist := make([]models.WishlistEntry, len(s.Wishlist), len(s.Wishlist)+1)
		copy(wishlist, s.Wishlist)
		return State{Items: s.Items, Wishlist: append(wishlist, act.Entry)}

	case removeFromWishlist:
		return State{
			Items:    s.Items,
			Wishlist: dropEntry(s.Wishlist, act.ProductID),
		}

	case moveToCart:
		var found *models.WishlistEntry
		for i := range s.Wishlist {
			if s.Wishlist[i].ProductID == act.ProductID {
				found = &s.Wishlist[i]
				break
			}
		}
		if found == nil {
			return s
		}
		line := models.CartLine{
			ProductID: found.ProductID,
			Name:      found.Title,
			Price:     found.Price,
			Image:     found.Image,
			Stock:     found.Stock,
			Quantity:  1,
		}
		return State{
			Items:    mergeLine(s.Items, line),
			Wishlist: dropEntry(s.Wishlist, act.ProductID),
		}
	}
	return s
}

// mergeLine inserts a cart line, or increments the quantity of an existing
// line for the same product.
func mergeLine(items []models.CartLine, line models.CartLine) []models.CartLine {
	next := make([]models.CartLine, len(items), len(items)+1)
	copy(next, items)
	for i, existing := range next {
		if existing.ProductID == line.ProductID {
			next[i].Quantity += line.Quantity
			return next
		}
	}
	return append(next, line)
}

func dropLine(items []models.CartLine, productID string) []models.CartLine {
	next := make([]models.CartLine, 0, len(items))
	for _, line := range items {
		if line.ProductID != productID {
			next = append(next, line)
		}
	}
	return next
}

func dropEntry(entries []models.WishlistEntry, productID string) []models.WishlistEntry {
	next := make([]models.WishlistEntry, 0, len(entries))
	for _, e := range entries {
		if e.ProductID != productID {
			next = append(next, e)
		}
	}
	return next
}
