package domain

import "errors"

// Catalog, cart and order errors
var (
	ErrMovieNotFound   = errors.New("movie not found")
	ErrMovieInCart     = errors.New("movie is already in the cart")
	ErrMovieNotInCart  = errors.New("movie is not in the cart")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrOrderNotFound   = errors.New("order not found")
	ErrOrderNotPending = errors.New("only pending orders can be canceled")
	ErrDuplicateMovie  = errors.New("movie with the same name, year and duration already exists")
)
