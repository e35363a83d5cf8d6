package models

import "errors"

// CartLine is a denormalized copy of a product plus the quantity ordered.
// Its JSON form is the flat product object with an extra "quantity" field.
type CartLine struct {
	Product
	Quantity int `json:"quantity"`
}

func (l CartLine) Validate() error {
	if err := l.Product.Validate(); err != nil {
		return err
	}
	if l.Quantity < 1 {
		return errors.New("cart line quantity must be at least 1")
	}
	return nil
}

// Subtotal is price times quantity, unrounded.
func (l CartLine) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}
