package usecase

import "errors"

var (
	// ErrNotFound is returned when a referenced entity does not exist.
	// Repositories map their driver-level miss onto it.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientStock means a tracked product cannot cover the
	// requested quantity. Wrapped errors name the product.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrNotPurchasable means the product exists but is archived or in
	// draft and must not appear on an order.
	ErrNotPurchasable = errors.New("product not purchasable")

	// ErrDuplicate is returned on unique-key conflicts (email, sku).
	ErrDuplicate = errors.New("duplicate")

	// ErrInvalidInput covers malformed requests that survive binding.
	ErrInvalidInput = errors.New("invalid input")
)

func isNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
