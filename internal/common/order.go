package common

import (
	"fmt"
	"time"
)

type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Buy {
		return "buy"
	}
	return "sell"
}

// Order is a plain limit order. Identity is immutable once submitted;
// Quantity is the remaining unfilled amount and shrinks as fills occur.
type Order struct {
	ID        string    // Caller-supplied opaque identifier
	Side      Side      // Order side
	Price     float64   // Limit price, fixed at creation
	Quantity  float64   // Remaining quantity
	Timestamp time.Time // Time of arrival into the book
}

func (order Order) String() string {
	return fmt.Sprintf(
		"%s %s %v @ %v (arrived %v)",
		order.ID,
		order.Side,
		order.Quantity,
		order.Price,
		order.Timestamp.Format(time.RFC3339Nano),
	)
}
