package book_test

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/quantillinois/Orderbook-Lesson/internal/book"
	"github.com/quantillinois/Orderbook-Lesson/internal/common"
)

func randomBenchmarkOrder(rng *rand.Rand, idx int) common.Order {
	side := common.Side(rng.Intn(2))
	base := 10_000.0
	offset := float64(rng.Intn(100))
	var price float64
	if side == common.Buy {
		price = base + offset
	} else {
		price = base - offset
	}
	return common.Order{
		ID:       "bench-" + strconv.Itoa(idx),
		Side:     side,
		Price:    price,
		Quantity: float64(rng.Intn(5) + 1),
	}
}

func BenchmarkSubmitOrder(b *testing.B) {
	ob := book.New()
	rng := rand.New(rand.NewSource(42))

	orders := make([]common.Order, b.N)
	for i := 0; i < b.N; i++ {
		orders[i] = randomBenchmarkOrder(rng, i)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ob.SubmitOrder(orders[i])
	}
}

func BenchmarkCancelOrder(b *testing.B) {
	ob := book.New()
	rng := rand.New(rand.NewSource(42))

	// Non-crossing flow so every order rests and can be cancelled.
	for i := 0; i < b.N; i++ {
		order := randomBenchmarkOrder(rng, i)
		if order.Side == common.Buy {
			order.Price = 9_000 - float64(i%100)
		} else {
			order.Price = 11_000 + float64(i%100)
		}
		ob.SubmitOrder(order)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ob.CancelOrder("bench-" + strconv.Itoa(i))
	}
}
