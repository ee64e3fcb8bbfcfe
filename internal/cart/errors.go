package cart

import "errors"

// ErrOutOfStock is returned when a product whose stock snapshot is zero is
// added to the cart. The cart is left unchanged.
var ErrOutOfStock = errors.New("product is out of stock")
