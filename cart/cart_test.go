package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/wajabatt/restaurant-app/models"
)

func menuItem(id uint, price string) models.Menu {
	return models.Menu{
		ID:    id,
		Name:  "Test Item",
		Price: decimal.RequireFromString(price),
	}
}

func TestAddMergesExistingLine(t *testing.T) {
	c := New()
	item := menuItem(1, "12.99")

	c.Add(item, 1)
	c.Add(item, 1)

	lines := c.Lines()
	assert.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestAddKeepsSeparateLinesPerItem(t *testing.T) {
	c := New()
	c.Add(menuItem(1, "12.99"), 2)
	c.Add(menuItem(2, "8.50"), 1)

	assert.Len(t, c.Lines(), 2)
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	c := New()
	c.Add(menuItem(1, "12.99"), 3)

	c.SetQuantity(1, 0)

	assert.Empty(t, c.Lines())
}

func TestRemoveAbsentIsNoOp(t *testing.T) {
	c := New()
	c.Add(menuItem(1, "12.99"), 1)

	c.Remove(99)

	assert.Len(t, c.Lines(), 1)
}

func TestTotalIsExact(t *testing.T) {
	c := New()
	c.Add(menuItem(1, "12.99"), 3)
	c.Add(menuItem(2, "8.50"), 2)

	// 12.99*3 + 8.50*2 = 38.97 + 17.00 = 55.97, no float drift allowed.
	assert.True(t, c.Total().Equal(decimal.RequireFromString("55.97")),
		"got %s", c.Total())
}

func TestClear(t *testing.T) {
	c := New()
	c.Add(menuItem(1, "12.99"), 1)

	c.Clear()

	assert.Empty(t, c.Lines())
	assert.True(t, c.Total().IsZero())
}

func TestManagerReturnsSameCartPerUser(t *testing.T) {
	m := NewManager()

	m.ForUser(7).Add(menuItem(1, "5.00"), 1)

	assert.Len(t, m.ForUser(7).Lines(), 1)
	assert.Empty(t, m.ForUser(8).Lines())

	m.Drop(7)
	assert.Empty(t, m.ForUser(7).Lines())
}
