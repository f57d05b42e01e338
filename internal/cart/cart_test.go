package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant_pos_backend/internal/models"
)

var (
	teishoku = models.MenuItem{ID: "A", Name: "本日の日替わり定食", Price: 980, Category: models.CategorySetMeal}
	greenTea = models.MenuItem{ID: "B", Name: "緑茶", Price: 200, Category: models.CategoryDrink}
)

func line(item models.MenuItem, qty int) models.CartLine {
	l := models.LineFromItem(item)
	l.Quantity = qty
	return l
}

func TestAddLineAppendsThenIncrements(t *testing.T) {
	var lines []models.CartLine

	lines = AddLine(lines, teishoku)
	lines = AddLine(lines, greenTea)
	lines = AddLine(lines, teishoku)

	require.Len(t, lines, 2)
	assert.Equal(t, "A", lines[0].ItemID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "B", lines[1].ItemID)
	assert.Equal(t, 1, lines[1].Quantity)
}

func TestAddLineDoesNotMutateInput(t *testing.T) {
	original := []models.CartLine{line(teishoku, 1)}

	updated := AddLine(original, teishoku)

	assert.Equal(t, 1, original[0].Quantity)
	assert.Equal(t, 2, updated[0].Quantity)
}

func TestRemoveLineDropsAtZero(t *testing.T) {
	lines := []models.CartLine{line(teishoku, 1), line(greenTea, 2)}

	lines = RemoveLine(lines, "A")
	require.Len(t, lines, 1)
	assert.Equal(t, "B", lines[0].ItemID)

	lines = RemoveLine(lines, "B")
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestRemoveLineUnknownIDIsNoop(t *testing.T) {
	lines := []models.CartLine{line(teishoku, 2)}

	out := RemoveLine(lines, "missing")

	assert.Equal(t, lines, out)
}

func TestTotalIsSumOfSubtotals(t *testing.T) {
	lines := []models.CartLine{line(teishoku, 3), line(greenTea, 2)}

	assert.Equal(t, int64(980*3+200*2), Total(lines))
	assert.Zero(t, Total(nil))
}

func TestTotalGrowsByPriceForNewItem(t *testing.T) {
	lines := []models.CartLine{line(teishoku, 1)}

	before := Total(lines)
	after := Total(AddLine(lines, greenTea))

	assert.Equal(t, before, after-greenTea.Price)
}

func TestRemoveThenAddRestoresQuantity(t *testing.T) {
	lines := []models.CartLine{line(teishoku, 3), line(greenTea, 1)}

	roundTrip := AddLine(RemoveLine(lines, "A"), teishoku)

	require.Len(t, roundTrip, 2)
	assert.Equal(t, 3, roundTrip[0].Quantity)
}

func TestAddTwiceRemoveOnce(t *testing.T) {
	var lines []models.CartLine

	lines = AddLine(lines, teishoku)
	lines = AddLine(lines, teishoku)
	lines = RemoveLine(lines, "A")

	require.Len(t, lines, 1)
	assert.Equal(t, line(teishoku, 1), lines[0])
	assert.Equal(t, int64(980), Total(lines))
}

func TestMergeIntoConfirmedSumsAndAppends(t *testing.T) {
	confirmed := []models.CartLine{line(teishoku, 2)}
	pending := []models.CartLine{line(teishoku, 1), line(greenTea, 1)}

	merged := MergeIntoConfirmed(confirmed, pending)

	require.Len(t, merged, 2)
	assert.Equal(t, line(teishoku, 3), merged[0])
	assert.Equal(t, line(greenTea, 1), merged[1])
	assert.Equal(t, int64(3140), Total(merged))
	assert.Equal(t, 2, confirmed[0].Quantity, "input must not be mutated")
}

func TestMergeIntoConfirmedKeepsConfirmedOrder(t *testing.T) {
	dango := models.MenuItem{ID: "C", Name: "みたらし団子", Price: 320}
	confirmed := []models.CartLine{line(greenTea, 1), line(teishoku, 1)}
	pending := []models.CartLine{line(dango, 2), line(teishoku, 1)}

	merged := MergeIntoConfirmed(confirmed, pending)

	ids := []string{merged[0].ItemID, merged[1].ItemID, merged[2].ItemID}
	assert.Equal(t, []string{"B", "A", "C"}, ids)
	assert.Equal(t, 2, merged[1].Quantity)
}

func TestMergeIntoConfirmedIsNotIdempotent(t *testing.T) {
	confirmed := []models.CartLine{line(teishoku, 2)}
	pending := []models.CartLine{line(teishoku, 1), line(greenTea, 1)}

	once := MergeIntoConfirmed(confirmed, pending)
	twice := MergeIntoConfirmed(once, pending)

	assert.Equal(t, 4, twice[0].Quantity)
	assert.Equal(t, 2, twice[1].Quantity)
	assert.NotEqual(t, once, twice)
}

func TestCloneNeverReturnsNil(t *testing.T) {
	assert.NotNil(t, Clone(nil))
	assert.Empty(t, Clone(nil))
}
