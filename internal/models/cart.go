package models

// CartLine is one product entry in the cart. Name, price, image and stock
// are snapshots of the product taken when the line was created.
type CartLine struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Stock     int     `json:"stock"`
	Quantity  int     `json:"quantity"`
}

// WishlistEntry is a saved product, scoped to its owner so that several
// identities sharing one device keep separate wishlists. At most one entry
// may exist per (OwnerID, ProductID) pair.
type WishlistEntry struct {
	OwnerID   string  `json:"owner_id"`
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Stock     int     `json:"stock"`
}
