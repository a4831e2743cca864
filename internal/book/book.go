package book

import (
	"sort"

	"github.com/tidwall/btree"

	"github.com/quantillinois/Orderbook-Lesson/internal/common"
)

type priceLevels = btree.BTreeG[*priceLevel]

// OrderBook is a single-instrument limit order book with price-time
// priority. It is a strictly sequential state machine: callers needing
// concurrent access must route every operation through one serializing
// owner (see the engine package). One instance per instrument, no shared
// globals.
type OrderBook struct {
	// Price levels per side, each a FIFO queue of resting orders. The
	// comparators are inverted between the sides so Min is always the
	// best price: highest bid, lowest ask.
	bids *priceLevels
	asks *priceLevels

	// Resting orders by id, for O(1) cancellation and duplicate checks.
	index map[string]*orderNode
}

func New() *OrderBook {
	// Sorted greatest first.
	bids := btree.NewBTreeG(func(a, b *priceLevel) bool {
		return a.price > b.price
	})
	// Sorted least first.
	asks := btree.NewBTreeG(func(a, b *priceLevel) bool {
		return a.price < b.price
	})
	return &OrderBook{
		bids:  bids,
		asks:  asks,
		index: make(map[string]*orderNode),
	}
}

// admissible rejects orders before they touch book state. Non-positive
// prices and quantities are never admitted, and the first order with a
// given id wins: later submissions reusing the id are dropped outright.
func (book *OrderBook) admissible(order common.Order) bool {
	if order.Price <= 0 || order.Quantity <= 0 {
		return false
	}
	if _, exists := book.index[order.ID]; exists {
		return false
	}
	return true
}

// crosses reports whether an incoming order at limit is compatible with
// an opposite resting level at price.
func crosses(side common.Side, limit, price float64) bool {
	if side == common.Buy {
		return price <= limit
	}
	return price >= limit
}

// SubmitOrder matches an incoming order against the opposite side's best
// levels and rests any remainder. Fills take the best price first, and
// within a level the oldest resting order first. Each trade executes at
// the resting order's price.
//
// Inadmissible orders are silently dropped: the return is an empty trade
// sequence and the book does not change. The caller cannot distinguish
// that from an accepted order that matched nothing.
func (book *OrderBook) SubmitOrder(order common.Order) []common.Trade {
	var trades []common.Trade
	if !book.admissible(order) {
		return trades
	}

	opposite := book.asks
	if order.Side == common.Sell {
		opposite = book.bids
	}

	// Sweep the opposite side best-first while prices cross. Min here
	// accounts for bids and asks being in inverse order, based on their
	// comparison method.
	remaining := order.Quantity
	for remaining > 0 {
		level, ok := opposite.MinMut()
		if !ok || !crosses(order.Side, order.Price, level.price) {
			break
		}

		for remaining > 0 && level.head != nil {
			maker := level.head
			fill := min(remaining, maker.order.Quantity)

			trades = append(trades, common.Trade{
				Price:    level.price,
				Quantity: fill,
			})

			maker.order.Quantity -= fill
			level.volume -= fill
			remaining -= fill

			if maker.order.Quantity == 0 {
				level.remove(maker)
				delete(book.index, maker.order.ID)
			}
		}

		// Never leave an empty level behind: queries must not see
		// zero-volume prices.
		if level.empty() {
			opposite.Delete(level)
		}
	}

	if remaining > 0 {
		order.Quantity = remaining
		book.rest(order)
	}
	return trades
}

// rest inserts the unmatched remainder at the tail of its price's queue,
// creating the level if this is the first order at that price.
func (book *OrderBook) rest(order common.Order) {
	levels := book.bids
	if order.Side == common.Sell {
		levels = book.asks
	}

	// Comparators only look at the price, so a dummy level works as the
	// search key.
	level, ok := levels.GetMut(&priceLevel{price: order.Price})
	if !ok {
		level = &priceLevel{price: order.Price, side: order.Side}
		levels.Set(level)
	}

	n := &orderNode{order: order, level: level}
	level.pushBack(n)
	book.index[order.ID] = n
}

// CancelOrder removes a resting order by id. Unknown, already-filled and
// already-cancelled ids are a no-op.
func (book *OrderBook) CancelOrder(id string) {
	n, ok := book.index[id]
	if !ok {
		return
	}

	level := n.level
	level.remove(n)
	delete(book.index, id)

	if level.empty() {
		levels := book.bids
		if level.side == common.Sell {
			levels = book.asks
		}
		levels.Delete(level)
	}
}

// PriceLevels returns every price with resting volume, both sides merged,
// strictly ascending. A price is never populated on both sides at once,
// so the union has no duplicates.
func (book *OrderBook) PriceLevels() []float64 {
	prices := make([]float64, 0, book.bids.Len()+book.asks.Len())
	collect := func(level *priceLevel) bool {
		prices = append(prices, level.price)
		return true
	}
	book.bids.Scan(collect)
	book.asks.Scan(collect)
	sort.Float64s(prices)
	return prices
}

// VolumeAtPrice returns the aggregate remaining quantity resting at an
// exact price, on whichever side holds it. Absent prices report zero.
func (book *OrderBook) VolumeAtPrice(price float64) float64 {
	probe := &priceLevel{price: price}
	if level, ok := book.bids.Get(probe); ok {
		return level.volume
	}
	if level, ok := book.asks.Get(probe); ok {
		return level.volume
	}
	return 0
}

// LevelView is a read-only projection of one price level.
type LevelView struct {
	Price  float64
	Volume float64
	Orders int
}

// Depth returns both sides best-first: bids from the highest price down,
// asks from the lowest price up.
func (book *OrderBook) Depth() (bids, asks []LevelView) {
	view := func(out *[]LevelView) func(*priceLevel) bool {
		return func(level *priceLevel) bool {
			*out = append(*out, LevelView{
				Price:  level.price,
				Volume: level.volume,
				Orders: level.count,
			})
			return true
		}
	}
	book.bids.Scan(view(&bids))
	book.asks.Scan(view(&asks))
	return bids, asks
}
