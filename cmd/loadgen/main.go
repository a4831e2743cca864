package main

import (
	"flag"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/quantillinois/Orderbook-Lesson/internal/common"
	"github.com/quantillinois/Orderbook-Lesson/internal/engine"
)

func main() {
	totalOrders := flag.Int("orders", 500000, "number of orders to submit")
	priceLevels := flag.Int("price-levels", 200, "unique price levels around the mid")
	basePrice := flag.Float64("base-price", 10000, "mid price used for randomization")
	symbol := flag.String("symbol", "SIM", "symbol to trade")
	cancelEvery := flag.Int("cancel-every", 0, "cancel a random earlier order every N submissions")
	seed := flag.Int64("seed", time.Now().UnixNano(), "seed for deterministic random streams")
	verbose := flag.Bool("verbose", false, "log individual trades")
	flag.Parse()

	level := zerolog.WarnLevel
	if *verbose {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	rng := rand.New(rand.NewSource(*seed))
	eng := engine.New(*symbol, logger)

	ids := make([]string, 0, *totalOrders)
	var trades, matchedVolume float64

	start := time.Now()
	for i := 0; i < *totalOrders; i++ {
		order := nextRandomOrder(rng, *basePrice, *priceLevels)
		ids = append(ids, order.ID)

		for _, trade := range eng.SubmitOrder(order) {
			trades++
			matchedVolume += trade.Quantity
		}

		if *cancelEvery > 0 && i > 0 && i%*cancelEvery == 0 {
			eng.CancelOrder(ids[rng.Intn(i)])
		}
	}
	elapsed := time.Since(start)

	depth := eng.Depth()
	if err := eng.Stop(); err != nil {
		logger.Error().Err(err).Msg("engine stopped with error")
	}

	summary := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	summary.Info().
		Int("orders", *totalOrders).
		Dur("elapsed", elapsed.Truncate(time.Millisecond)).
		Float64("orders_per_sec", float64(*totalOrders)/elapsed.Seconds()).
		Float64("trades", trades).
		Float64("matched_volume", matchedVolume).
		Int("bid_levels", len(depth.Bids)).
		Int("ask_levels", len(depth.Asks)).
		Msg("run complete")
}

// nextRandomOrder draws a limit order around the mid price. Buys lean
// below the mid and sells above it so the book builds depth, with enough
// overlap that a healthy share of orders cross.
func nextRandomOrder(rng *rand.Rand, mid float64, width int) common.Order {
	side := common.Side(rng.Intn(2))
	offset := float64(rng.Intn(width)) - float64(width)/2
	var price float64
	if side == common.Buy {
		price = mid + offset
	} else {
		price = mid - offset
	}
	if price <= 0 {
		price = 1
	}

	return common.Order{
		ID:       uuid.NewString(),
		Side:     side,
		Price:    price,
		Quantity: float64(rng.Intn(5) + 1),
	}
}
