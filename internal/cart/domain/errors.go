package domain

import "errors"

var (
	ErrInvalidProduct    = errors.New("product must not be nil")
	ErrNegativeUnitPrice = errors.New("unit price must be greater than or equal to zero")
	ErrNegativeQuantity  = errors.New("quantity must be greater than or equal to zero")
	ErrQuantityOverflow  = errors.New("quantity exceeds the maximum for a line item")
)
