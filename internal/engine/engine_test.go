package engine_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantillinois/Orderbook-Lesson/internal/common"
	"github.com/quantillinois/Orderbook-Lesson/internal/engine"
)

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	e := engine.New("TEST", zerolog.Nop())
	t.Cleanup(func() { _ = e.Stop() })
	return e
}

func TestEngine_SubmitAndQuery(t *testing.T) {
	e := newTestEngine(t)

	trades := e.SubmitOrder(common.Order{ID: "buy1", Side: common.Buy, Price: 100.0, Quantity: 10})
	assert.Empty(t, trades)

	trades = e.SubmitOrder(common.Order{ID: "sell1", Side: common.Sell, Price: 100.0, Quantity: 10})
	require.Len(t, trades, 1)
	assert.Equal(t, common.Trade{Price: 100.0, Quantity: 10.0}, trades[0])

	assert.Equal(t, 0.0, e.VolumeAtPrice(100.0))
	assert.Empty(t, e.PriceLevels())
}

func TestEngine_CancelOrder(t *testing.T) {
	e := newTestEngine(t)

	e.SubmitOrder(common.Order{ID: "bid1", Side: common.Buy, Price: 100.0, Quantity: 10})
	e.CancelOrder("bid1")

	assert.Empty(t, e.PriceLevels())

	// Cancels of unknown ids complete without complaint.
	e.CancelOrder("never-submitted")
}

func TestEngine_Depth(t *testing.T) {
	e := newTestEngine(t)

	e.SubmitOrder(common.Order{ID: "bid1", Side: common.Buy, Price: 99.0, Quantity: 10})
	e.SubmitOrder(common.Order{ID: "ask1", Side: common.Sell, Price: 101.0, Quantity: 5})

	depth := e.Depth()
	require.Len(t, depth.Bids, 1)
	require.Len(t, depth.Asks, 1)
	assert.Equal(t, 99.0, depth.Bids[0].Price)
	assert.Equal(t, 101.0, depth.Asks[0].Price)
}

func TestEngine_ConcurrentSubmitters(t *testing.T) {
	e := newTestEngine(t)

	// Non-crossing flow from many goroutines: the engine serializes
	// everything, so no order and no volume may be lost.
	const workers = 8
	const perWorker = 50

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				price := 1000.0 + float64(w*perWorker+i)
				e.SubmitOrder(common.Order{
					ID:       fmt.Sprintf("w%d-%d", w, i),
					Side:     common.Buy,
					Price:    price,
					Quantity: 2,
				})
			}
		}(w)
	}
	wg.Wait()

	levels := e.PriceLevels()
	require.Len(t, levels, workers*perWorker)
	for _, price := range levels {
		assert.Equal(t, 2.0, e.VolumeAtPrice(price))
	}
}

func TestEngine_StoppedEngineReturnsZeroValues(t *testing.T) {
	e := engine.New("TEST", zerolog.Nop())
	require.NoError(t, e.Stop())

	assert.Nil(t, e.SubmitOrder(common.Order{ID: "late", Side: common.Buy, Price: 100.0, Quantity: 10}))
	assert.Nil(t, e.PriceLevels())
	assert.Equal(t, 0.0, e.VolumeAtPrice(100.0))
	e.CancelOrder("late") // must not hang
}
