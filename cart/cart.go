package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/wajabatt/restaurant-app/models"
)

// Line is one priced quantity of a catalog item. Item is a snapshot taken
// when the line was added; later catalog edits do not reach into carts.
type Line struct {
	Item     models.Menu `json:"item"`
	Quantity int         `json:"quantity"`
}

// Cart is the ordered collection of lines for one session. It is ephemeral:
// nothing here touches storage, and an abandoned cart simply vanishes with
// the session.
type Cart struct {
	mu    sync.Mutex
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

// Add appends a line, or increments the quantity when the item is already
// present.
func (c *Cart) Add(item models.Menu, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Item.ID == item.ID {
			c.lines[i].Quantity += quantity
			return
		}
	}
	c.lines = append(c.lines, Line{Item: item, Quantity: quantity})
}

// Remove drops the line entirely. Removing an absent item is a no-op.
func (c *Cart) Remove(menuID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(menuID)
}

func (c *Cart) removeLocked(menuID uint) {
	for i := range c.lines {
		if c.lines[i].Item.ID == menuID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// SetQuantity overwrites the line's quantity; quantity <= 0 behaves as Remove.
func (c *Cart) SetQuantity(menuID uint, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		c.removeLocked(menuID)
		return
	}
	for i := range c.lines {
		if c.lines[i].Item.ID == menuID {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Total returns the sum of line price x quantity. Pure, no side effects.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Item.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// Lines returns a copy of the current lines in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Manager hands out one cart per authenticated user. Carts live in process
// memory only and do not survive a restart.
type Manager struct {
	mu    sync.Mutex
	carts map[uint]*Cart
}

func NewManager() *Manager {
	return &Manager{carts: make(map[uint]*Cart)}
}

func (m *Manager) ForUser(userID uint) *Cart {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.carts[userID]
	if !ok {
		c = New()
		m.carts[userID] = c
	}
	return c
}

// Drop discards a user's cart entirely (explicit clear at checkout/session end).
func (m *Manager) Drop(userID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, userID)
}
