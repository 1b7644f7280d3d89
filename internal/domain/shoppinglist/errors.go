package shoppinglist

import "errors"

var (
	ErrListNotFound    = errors.New("shopping list not found")
	ErrListInvalidName = errors.New("shopping list name is required")
	ErrInvalidListID   = errors.New("invalid shopping list id")
)
