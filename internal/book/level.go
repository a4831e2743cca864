package book

import (
	"github.com/quantillinois/Orderbook-Lesson/internal/common"
)

// orderNode is one resting order inside a level's FIFO queue. Nodes are
// linked both ways so a cancel can unlink from the middle of the queue
// without scanning it.
type orderNode struct {
	order common.Order
	prev  *orderNode
	next  *orderNode
	level *priceLevel
}

// priceLevel holds every resting order sharing one side and one exact
// price, in strict arrival order. volume is the running sum of the
// remaining quantities, kept in lockstep with the queue so volume queries
// never walk it.
type priceLevel struct {
	price  float64
	side   common.Side
	volume float64
	count  int
	head   *orderNode
	tail   *orderNode
}

// pushBack appends a new resting order at the tail of the queue.
func (lvl *priceLevel) pushBack(n *orderNode) {
	n.prev, n.next = lvl.tail, nil
	if lvl.tail != nil {
		lvl.tail.next = n
	} else {
		lvl.head = n
	}
	lvl.tail = n
	lvl.volume += n.order.Quantity
	lvl.count++
}

// remove unlinks a node from anywhere in the queue.
func (lvl *priceLevel) remove(n *orderNode) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		lvl.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		lvl.tail = n.prev
	}
	n.prev, n.next = nil, nil
	lvl.volume -= n.order.Quantity
	lvl.count--
}

func (lvl *priceLevel) empty() bool {
	return lvl.head == nil
}
