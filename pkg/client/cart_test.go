package client_test

import (
	"testing"

	"zipmyproject/internal/models"
	"zipmyproject/pkg/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProject(id string, price float64) models.Project {
	return models.Project{ID: id, Title: "Project " + id, Price: price}
}

func TestCart_AddAndTotals(t *testing.T) {
	store := &client.MemoryCartStore{}
	cart, err := client.NewCart(store)
	require.NoError(t, err)

	assert.Equal(t, 0, cart.Count())
	assert.Equal(t, 0.0, cart.TotalPrice())

	require.NoError(t, cart.AddItem(sampleProject("a", 2999)))
	require.NoError(t, cart.AddItem(sampleProject("b", 1999)))

	assert.Equal(t, 2, cart.Count())
	assert.Equal(t, 4998.0, cart.TotalPrice())

	// Adding an item already in the cart bumps its quantity.
	require.NoError(t, cart.AddItem(sampleProject("a", 2999)))
	assert.Equal(t, 3, cart.Count())
	assert.Equal(t, 7997.0, cart.TotalPrice())

	items := cart.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 1, items[1].Quantity)
}

func TestCart_RemoveItem(t *testing.T) {
	cart, err := client.NewCart(&client.MemoryCartStore{})
	require.NoError(t, err)

	require.NoError(t, cart.AddItem(sampleProject("a", 2999)))
	require.NoError(t, cart.AddItem(sampleProject("b", 1999)))

	require.NoError(t, cart.RemoveItem("a"))
	assert.Equal(t, 1, cart.Count())
	assert.Equal(t, 1999.0, cart.TotalPrice())

	// Removing something not in the cart is a no-op.
	require.NoError(t, cart.RemoveItem("zzz"))
	assert.Equal(t, 1, cart.Count())
}

func TestCart_UpdateQuantity(t *testing.T) {
	cart, err := client.NewCart(&client.MemoryCartStore{})
	require.NoError(t, err)

	require.NoError(t, cart.AddItem(sampleProject("a", 100)))
	require.NoError(t, cart.UpdateQuantity("a", 5))
	assert.Equal(t, 5, cart.Count())
	assert.Equal(t, 500.0, cart.TotalPrice())

	// Zero or negative quantity removes the item.
	require.NoError(t, cart.UpdateQuantity("a", 0))
	assert.Equal(t, 0, cart.Count())
	assert.Empty(t, cart.Items())

	require.NoError(t, cart.AddItem(sampleProject("b", 100)))
	require.NoError(t, cart.UpdateQuantity("b", -3))
	assert.Empty(t, cart.Items())
}

func TestCart_Clear(t *testing.T) {
	cart, err := client.NewCart(&client.MemoryCartStore{})
	require.NoError(t, err)

	require.NoError(t, cart.AddItem(sampleProject("a", 100)))
	require.NoError(t, cart.AddItem(sampleProject("b", 200)))
	require.NoError(t, cart.Clear())

	assert.Equal(t, 0, cart.Count())
	assert.Equal(t, 0.0, cart.TotalPrice())
	assert.Empty(t, cart.Items())
}

func TestCart_PersistsAcrossInstances(t *testing.T) {
	store := &client.MemoryCartStore{}

	cart, err := client.NewCart(store)
	require.NoError(t, err)
	require.NoError(t, cart.AddItem(sampleProject("a", 2999)))
	require.NoError(t, cart.AddItem(sampleProject("a", 2999)))

	// A new cart over the same store restores the contents.
	restored, err := client.NewCart(store)
	require.NoError(t, err)
	assert.Equal(t, 2, restored.Count())
	assert.Equal(t, 5998.0, restored.TotalPrice())
}

func TestCart_ItemsReturnsCopy(t *testing.T) {
	cart, err := client.NewCart(&client.MemoryCartStore{})
	require.NoError(t, err)
	require.NoError(t, cart.AddItem(sampleProject("a", 100)))

	items := cart.Items()
	items[0].Quantity = 99

	assert.Equal(t, 1, cart.Count())
}
