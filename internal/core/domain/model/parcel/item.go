package parcel

import (
	"ups/internal/pkg/errs"
)

// Item is one line of a delivery request.
type Item struct {
	description string
	count       int32
}

// NewItem creates a line item. Count may be zero but not negative.
func NewItem(description string, count int32) (Item, error) {
	if count < 0 {
		return Item{}, errs.NewValueIsOutOfRangeError("item count", count, 0, "max int32")
	}
	return Item{description: description, count: count}, nil
}

// Description returns the free-text description supplied by the order source.
func (i Item) Description() string {
	return i.description
}

// Count returns the quantity.
func (i Item) Count() int32 {
	return i.count
}
