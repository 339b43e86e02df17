package domain

import "errors"

var (
	ErrInvalidID        = errors.New("invalid id")
	ErrInvalidOwnerID   = errors.New("invalid owner id")
	ErrInvalidName      = errors.New("invalid name")
	ErrInvalidProductID = errors.New("invalid product id")
	ErrInvalidQuantity  = errors.New("invalid quantity")
	ErrItemNotFound     = errors.New("item not found")
	ErrDuplicateItem    = errors.New("duplicate item")
)
