package domain

import "time"

// Cart is a customer's ordered list of game references. The same game may
// appear more than once. Carts are only built by NewAccount.
type Cart struct {
	owner *Account
	items []*Videogame
}

// Owner returns the customer the cart belongs to.
func (c *Cart) Owner() *Account { return c.owner }

func (c *Cart) Add(g *Videogame) {
	c.items = append(c.items, g)
}

// Remove drops the first entry for the same game and reports whether one was found.
func (c *Cart) Remove(g *Videogame) bool {
	for i, item := range c.items {
		if item.ID == g.ID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// Items returns a copy of the entries in insertion order.
func (c *Cart) Items() []*Videogame {
	out := make([]*Videogame, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Len() int { return len(c.items) }

func (c *Cart) IsEmpty() bool { return len(c.items) == 0 }

// Count returns how many entries reference the game with the given id.
func (c *Cart) Count(gameID int64) int {
	n := 0
	for _, item := range c.items {
		if item.ID == gameID {
			n++
		}
	}
	return n
}

// Total sums the current price of every entry.
func (c *Cart) Total() Money {
	var sum Money
	for _, item := range c.items {
		sum += item.Price
	}
	return sum
}

func (c *Cart) Clear() {
	c.items = nil
}

// ReceiptLine is a single purchased entry.
type ReceiptLine struct {
	GameID int64
	Title  string
	Price  Money
}

// Receipt is the outcome of a successful checkout.
type Receipt struct {
	ID             string
	CustomerID     int64
	Username       string
	Lines          []ReceiptLine
	Total          Money
	CardholderName string
	CardLast4      string
	PaidAt         time.Time
}
