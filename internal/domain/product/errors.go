package product

import "errors"

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrProductInvalidName = errors.New("product name is required")
	ErrMalformedID        = errors.New("malformed identifier")
	ErrMalformedQuantity  = errors.New("malformed quantity")
	ErrMalformedPrice     = errors.New("malformed price")

	// ErrAutoCompleteOutdated is returned when an index built before the last
	// invalidation is offered to the cache.
	ErrAutoCompleteOutdated = errors.New("autocomplete index is outdated")
)
