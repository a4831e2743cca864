package engine

import (
	"time"

	"github.com/rs/zerolog"
	tomb "gopkg.in/tomb.v2"

	"github.com/quantillinois/Orderbook-Lesson/internal/book"
	"github.com/quantillinois/Orderbook-Lesson/internal/common"
)

const defaultRequestBuffer = 128

type requestType int

const (
	requestSubmit requestType = iota
	requestCancel
	requestLevels
	requestVolume
	requestDepth
)

// request marshals one book operation onto the owning goroutine. Reply
// channels are buffered so the run loop never blocks on a caller.
type request struct {
	typ    requestType
	order  common.Order
	id     string
	price  float64
	trades chan []common.Trade
	prices chan []float64
	volume chan float64
	depth  chan DepthView
	done   chan struct{}
}

// DepthView is both sides of the book, best price first.
type DepthView struct {
	Bids []book.LevelView
	Asks []book.LevelView
}

// Engine is the serializing owner of one instrument's order book. The
// book itself is a strictly sequential state machine, so every operation
// is funneled through a single goroutine; callers on any number of
// goroutines see a total order of submits, cancels and queries. Separate
// instruments get separate engines and share nothing.
type Engine struct {
	symbol string
	book   *book.OrderBook
	reqs   chan request
	t      tomb.Tomb
	log    zerolog.Logger
	now    func() time.Time
}

// New starts the owning goroutine for one instrument.
func New(symbol string, logger zerolog.Logger) *Engine {
	e := &Engine{
		symbol: symbol,
		book:   book.New(),
		reqs:   make(chan request, defaultRequestBuffer),
		log:    logger.With().Str("symbol", symbol).Logger(),
		now:    time.Now,
	}
	e.t.Go(e.run)
	return e
}

// Stop terminates the run loop and waits for it to exit. Operations
// issued after Stop return zero values.
func (e *Engine) Stop() error {
	e.t.Kill(nil)
	return e.t.Wait()
}

func (e *Engine) run() error {
	for {
		select {
		case <-e.t.Dying():
			return nil
		case req := <-e.reqs:
			e.dispatch(req)
		}
	}
}

func (e *Engine) dispatch(req request) {
	switch req.typ {
	case requestSubmit:
		req.trades <- e.submit(req.order)
	case requestCancel:
		e.book.CancelOrder(req.id)
		cancelsRequested.WithLabelValues(e.symbol).Inc()
		close(req.done)
	case requestLevels:
		req.prices <- e.book.PriceLevels()
	case requestVolume:
		req.volume <- e.book.VolumeAtPrice(req.price)
	case requestDepth:
		bids, asks := e.book.Depth()
		req.depth <- DepthView{Bids: bids, Asks: asks}
	}
}

func (e *Engine) submit(order common.Order) []common.Trade {
	// Arrival time is stamped here so the book sees a consistent clock.
	// We do not care about the accuracy of the timestamp, just its
	// relativity to other timestamps.
	if order.Timestamp.IsZero() {
		order.Timestamp = e.now()
	}

	// The book drops inadmissible orders without a word; log the shapes
	// we can see from here so operators still get a signal. Duplicate
	// ids are only known to the book itself.
	if order.Price <= 0 || order.Quantity <= 0 {
		e.log.Warn().
			Str("order", order.ID).
			Float64("price", order.Price).
			Float64("quantity", order.Quantity).
			Msg("order shape is inadmissible")
		ordersDropped.WithLabelValues(e.symbol).Inc()
	}

	trades := e.book.SubmitOrder(order)
	ordersSubmitted.WithLabelValues(e.symbol, order.Side.String()).Inc()

	for _, trade := range trades {
		tradesExecuted.WithLabelValues(e.symbol).Inc()
		tradedVolume.WithLabelValues(e.symbol).Add(trade.Quantity)
		e.log.Info().
			Str("taker", order.ID).
			Float64("price", trade.Price).
			Float64("quantity", trade.Quantity).
			Msg("trade")
	}
	return trades
}

// SubmitOrder routes one order through the owning goroutine and returns
// the trades it produced, oldest resting counterpart first.
func (e *Engine) SubmitOrder(order common.Order) []common.Trade {
	trades := make(chan []common.Trade, 1)
	select {
	case e.reqs <- request{typ: requestSubmit, order: order, trades: trades}:
	case <-e.t.Dying():
		return nil
	}
	select {
	case result := <-trades:
		return result
	case <-e.t.Dying():
		return nil
	}
}

// CancelOrder removes a resting order by id, waiting until the removal
// has been processed. Unknown ids are a no-op.
func (e *Engine) CancelOrder(id string) {
	done := make(chan struct{})
	select {
	case e.reqs <- request{typ: requestCancel, id: id, done: done}:
	case <-e.t.Dying():
		return
	}
	select {
	case <-done:
	case <-e.t.Dying():
	}
}

// PriceLevels returns every active price, both sides merged, ascending.
func (e *Engine) PriceLevels() []float64 {
	prices := make(chan []float64, 1)
	select {
	case e.reqs <- request{typ: requestLevels, prices: prices}:
	case <-e.t.Dying():
		return nil
	}
	select {
	case result := <-prices:
		return result
	case <-e.t.Dying():
		return nil
	}
}

// VolumeAtPrice returns the resting quantity at an exact price, zero if
// the price is absent.
func (e *Engine) VolumeAtPrice(price float64) float64 {
	volume := make(chan float64, 1)
	select {
	case e.reqs <- request{typ: requestVolume, price: price, volume: volume}:
	case <-e.t.Dying():
		return 0
	}
	select {
	case result := <-volume:
		return result
	case <-e.t.Dying():
		return 0
	}
}

// Depth returns per-level views of both sides, best price first.
func (e *Engine) Depth() DepthView {
	depth := make(chan DepthView, 1)
	select {
	case e.reqs <- request{typ: requestDepth, depth: depth}:
	case <-e.t.Dying():
		return DepthView{}
	}
	select {
	case result := <-depth:
		return result
	case <-e.t.Dying():
		return DepthView{}
	}
}
