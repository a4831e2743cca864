package common

import "fmt"

// Trade is a single fill. Price is always the resting (maker) order's
// price. Trades are emitted once and not retained by the book; ownership
// passes to the caller.
type Trade struct {
	Price    float64
	Quantity float64
}

func (t Trade) String() string {
	return fmt.Sprintf("%v @ %v", t.Quantity, t.Price)
}
