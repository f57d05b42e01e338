package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant_pos_backend/internal/models"
)

func historyItems() []models.OrderHistoryItem {
	return []models.OrderHistoryItem{
		{Name: "本日の日替わり定食", Quantity: 2, Price: 980},
		{Name: "緑茶", Quantity: 2, Price: 200},
	}
}

func TestEditHistoryItemPriceRecomputesTotal(t *testing.T) {
	items := historyItems()
	price := int64(900)

	edited := EditHistoryItem(items, 0, HistoryItemEdit{Price: &price})

	assert.Equal(t, HistoryTotal(items)-160, HistoryTotal(edited))
	assert.Equal(t, items[1], edited[1])
	assert.Equal(t, int64(980), items[0].Price, "input must not be mutated")
}

func TestEditHistoryItemZeroQuantityRemovesLine(t *testing.T) {
	zero := 0

	edited := EditHistoryItem(historyItems(), 0, HistoryItemEdit{Quantity: &zero})

	require.Len(t, edited, 1)
	assert.Equal(t, "緑茶", edited[0].Name)
}

func TestEditHistoryItemOutOfRange(t *testing.T) {
	name := "x"

	edited := EditHistoryItem(historyItems(), 5, HistoryItemEdit{Name: &name})

	assert.Equal(t, historyItems(), edited)
}
