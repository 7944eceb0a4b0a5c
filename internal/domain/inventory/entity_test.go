package inventory

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *UserInventory {
	qty := "1 kg"
	return &UserInventory{
		UserID: "u1",
		Items: []Item{
			{IngredientName: "Rice", Quantity: &qty, AddedAt: time.Unix(100, 0)},
			{IngredientName: "bell peppers", AddedAt: time.Unix(200, 0)},
		},
	}
}

func TestWithItemDoesNotMutateOriginal(t *testing.T) {
	inv := sample()
	added := inv.WithItem(Item{IngredientName: "egg", AddedAt: time.Unix(300, 0), Pending: true})

	assert.Len(t, inv.Items, 2)
	require.Len(t, added.Items, 3)
	assert.True(t, added.Items[2].Pending)
	assert.Equal(t, time.Unix(300, 0), added.UpdatedAt)
	assert.Equal(t, 1, added.PendingCount())
}

func TestWithItemOnNilInventory(t *testing.T) {
	var inv *UserInventory
	added := inv.WithItem(Item{IngredientName: "rice"})
	require.NotNil(t, added)
	assert.Len(t, added.Items, 1)
}

func TestWithItemAllowsTransientDuplicate(t *testing.T) {
	inv := sample().WithItem(Item{IngredientName: "rice"})
	assert.Len(t, inv.Items, 3)
}

func TestWithoutItem(t *testing.T) {
	inv := sample()
	removed := inv.WithoutItem("BELL PEPPERS")

	assert.Len(t, inv.Items, 2)
	require.Len(t, removed.Items, 1)
	assert.Equal(t, "Rice", removed.Items[0].IngredientName)

	_, ok := removed.Find("bell peppers")
	assert.False(t, ok)
}

func TestFindAndNames(t *testing.T) {
	inv := sample()
	item, ok := inv.Find("rice")
	require.True(t, ok)
	assert.Equal(t, "1 kg", item.QuantityText())
	assert.Equal(t, []string{"rice", "bell peppers"}, inv.Names())

	var empty *UserInventory
	assert.Nil(t, empty.Names())
}

func TestPendingFlagIsNotSerialized(t *testing.T) {
	data, err := json.Marshal(Item{IngredientName: "rice", Pending: true})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "pending")
	assert.NotContains(t, string(data), "quantity")
}

func TestAddItemRequestValidate(t *testing.T) {
	assert.ErrorIs(t, AddItemRequest{IngredientName: "  "}.Validate(), ErrEmptyIngredientName)
	assert.NoError(t, AddItemRequest{IngredientName: "rice"}.Validate())
}
