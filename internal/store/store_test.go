package store

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant_pos_backend/internal/cart"
	"restaurant_pos_backend/internal/models"
)

var (
	teishoku = models.MenuItem{ID: "A", Name: "本日の日替わり定食", Price: 980, Category: models.CategorySetMeal}
	greenTea = models.MenuItem{ID: "B", Name: "緑茶", Price: 200, Category: models.CategoryDrink}
)

func fixedClock() func() time.Time {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func TestUnknownTableIsCreatedLazily(t *testing.T) {
	s := New()

	table := s.GetTable("7")

	assert.Equal(t, "7", table.ID)
	assert.Equal(t, models.TableStatusAvailable, table.Status)
	assert.Empty(t, s.GetTableOrders("7"))
	assert.Len(t, s.GetAllTables(), 1)
}

func TestGetAllTablesSortsNumerically(t *testing.T) {
	s := New()
	s.SeedTables(models.DefaultTables(10))

	tables := s.GetAllTables()

	require.Len(t, tables, 10)
	assert.Equal(t, "1", tables[0].Number)
	assert.Equal(t, "2", tables[1].Number)
	assert.Equal(t, "10", tables[9].Number)
}

func TestReturnedSlicesDoNotAliasState(t *testing.T) {
	s := New()
	s.UpdateTableOrder("1", []models.CartLine{models.LineFromItem(teishoku)}, 980)

	lines := s.GetTableOrders("1")
	lines[0].Quantity = 99

	assert.Equal(t, 1, s.GetTableOrders("1")[0].Quantity)
}

func TestSubscribersSeeEventsInWriteOrder(t *testing.T) {
	s := New(WithClock(fixedClock()))
	var kinds []EventKind
	s.Subscribe(func(e Event) { kinds = append(kinds, e.Kind) })

	s.UpdateTableOrder("1", nil, 0)
	s.UpdateTableStatus("1", models.TableStatusReserved, models.TableStatusUpdate{})
	s.ToggleAvailability("A")

	assert.Equal(t, []EventKind{EventTableOrderUpdated, EventTableStatusUpdated, EventAvailabilityToggled}, kinds)
}

func TestSubscriberCanReadStoreFromHandler(t *testing.T) {
	s := New()
	var seen int64
	s.Subscribe(func(e Event) {
		if e.Kind == EventTableOrderUpdated {
			seen = s.GetTable(e.TableID).TotalAmount
		}
	})

	s.UpdateTableOrder("3", []models.CartLine{models.LineFromItem(teishoku)}, 980)

	assert.Equal(t, int64(980), seen)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	s := New()
	calls := 0
	unsubscribe := s.Subscribe(func(Event) { calls++ })

	s.SetPendingOrders("1", nil)
	unsubscribe()
	s.SetPendingOrders("1", nil)

	assert.Equal(t, 1, calls)
}

func TestAddPendingItemRespectsGate(t *testing.T) {
	s := New()
	s.ToggleAvailability("B")

	lines, err := s.AddPendingItem("1", teishoku)
	require.NoError(t, err)
	require.Len(t, lines, 1)

	_, err = s.AddPendingItem("1", greenTea)
	require.Error(t, err)
	assert.True(t, errors.Is(err, cart.ErrItemUnavailable))
	assert.Contains(t, err.Error(), "緑茶")
	assert.Len(t, s.GetPendingOrders("1"), 1)
}

func TestToggleAvailabilityLeavesCartsAlone(t *testing.T) {
	s := New()
	_, err := s.AddPendingItem("1", greenTea)
	require.NoError(t, err)

	orderable := s.ToggleAvailability("B")

	assert.False(t, orderable)
	assert.False(t, s.IsOrderable("B"))
	assert.Len(t, s.GetPendingOrders("1"), 1)
	assert.True(t, s.ToggleAvailability("B"))
}

func TestCommitConfirmationMergesAndOccupies(t *testing.T) {
	s := New(WithClock(fixedClock()))
	s.UpdateTableOrder("1", []models.CartLine{{ItemID: "A", Name: teishoku.Name, Price: 980, Quantity: 2}}, 1960)
	pending := []models.CartLine{models.LineFromItem(teishoku), models.LineFromItem(greenTea)}
	s.SetPendingOrders("1", pending)

	confirmed, table := s.CommitConfirmation("1", pending, 0, time.Time{})

	require.Len(t, confirmed, 2)
	assert.Equal(t, 3, confirmed[0].Quantity)
	assert.Equal(t, int64(3140), table.TotalAmount)
	assert.Equal(t, models.TableStatusOccupied, table.Status)
	assert.Equal(t, 1, table.CustomerCount)
	require.NotNil(t, table.OrderStartTime)
	assert.Empty(t, s.GetPendingOrders("1"))
}

func TestCommitConfirmationKeepsExistingStartTime(t *testing.T) {
	s := New(WithClock(fixedClock()))
	earlier := time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC)
	s.UpdateTableStatus("1", models.TableStatusOccupied, models.TableStatusUpdate{OrderStartTime: &earlier, CustomerCount: 3})

	_, table := s.CommitConfirmation("1", []models.CartLine{models.LineFromItem(teishoku)}, 0, time.Time{})

	assert.Equal(t, earlier, *table.OrderStartTime)
	assert.Equal(t, 3, table.CustomerCount)
}

func TestCommitConfirmationUsesGivenStartTime(t *testing.T) {
	s := New(WithClock(fixedClock()))
	start := time.Date(2024, 5, 1, 11, 59, 0, 0, time.UTC)

	_, table := s.CommitConfirmation("1", []models.CartLine{models.LineFromItem(teishoku)}, 0, start)
	require.NotNil(t, table.OrderStartTime)
	assert.Equal(t, start, *table.OrderStartTime)

	_, table = s.CommitConfirmation("1", []models.CartLine{models.LineFromItem(greenTea)}, 0, start.Add(time.Hour))
	assert.Equal(t, start, *table.OrderStartTime)
}

func TestCommitConfirmationKeepsLinesAddedAfterSnapshot(t *testing.T) {
	s := New()
	_, err := s.AddPendingItem("1", teishoku)
	require.NoError(t, err)
	snapshot := s.GetPendingOrders("1")

	_, err = s.AddPendingItem("1", teishoku)
	require.NoError(t, err)
	_, err = s.AddPendingItem("1", greenTea)
	require.NoError(t, err)

	s.CommitConfirmation("1", snapshot, 0, time.Time{})

	left := s.GetPendingOrders("1")
	require.Len(t, left, 2)
	assert.Equal(t, 1, left[0].Quantity)
	assert.Equal(t, "B", left[1].ItemID)
	assert.Equal(t, int64(980), s.GetTable("1").TotalAmount)
}

func TestResetTableClearsOccupancy(t *testing.T) {
	s := New()
	s.CommitConfirmation("1", []models.CartLine{models.LineFromItem(teishoku)}, 2, time.Time{})

	table := s.ResetTable("1", models.TableStatusCleaning)

	assert.Equal(t, models.TableStatusCleaning, table.Status)
	assert.Zero(t, table.TotalAmount)
	assert.Nil(t, table.OrderStartTime)
	assert.Empty(t, s.GetTableOrders("1"))
}

func TestDeleteMenuItemDropsUnavailableFlag(t *testing.T) {
	s := New()
	s.SetMenuItems(models.DefaultMenu())
	s.ToggleAvailability("mock-menu-4")

	assert.True(t, s.DeleteMenuItem("mock-menu-4"))

	assert.False(t, s.UnavailableItems().Has("mock-menu-4"))
	assert.Len(t, s.MenuItems(), 8)
	assert.False(t, s.DeleteMenuItem("mock-menu-4"))
}

func TestUpsertMenuItemOverwritesInPlace(t *testing.T) {
	s := New()
	s.SetMenuItems(models.DefaultMenu())
	item, ok := s.MenuItem("mock-menu-2")
	require.True(t, ok)

	item.Price = 900
	s.UpsertMenuItem(item)

	items := s.MenuItems()
	assert.Equal(t, "mock-menu-2", items[1].ID)
	assert.Equal(t, int64(900), items[1].Price)
}

func TestOrderHistoryNewestFirstAndMissingIDs(t *testing.T) {
	s := New()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.AddOrderHistory(models.OrderHistoryRecord{ID: "old", Timestamp: base})
	s.AddOrderHistory(models.OrderHistoryRecord{ID: "new", Timestamp: base.Add(time.Hour)})

	history := s.GetOrderHistory()
	require.Len(t, history, 2)
	assert.Equal(t, "new", history[0].ID)

	assert.ErrorIs(t, s.UpdateOrderHistory("missing", models.OrderHistoryRecord{}), ErrNotFound)
	assert.ErrorIs(t, s.DeleteOrderHistory("missing"), ErrNotFound)
	require.NoError(t, s.DeleteOrderHistory("old"))
	assert.Len(t, s.GetOrderHistory(), 1)
}

func TestMergeOrderHistoryDeduplicates(t *testing.T) {
	s := New()
	s.AddOrderHistory(models.OrderHistoryRecord{ID: "r1", Total: 100})

	added := s.MergeOrderHistory([]models.OrderHistoryRecord{
		{ID: "r1", Total: 999},
		{ID: "r2", Total: 200},
		{ID: "r2", Total: 200},
	})

	assert.Equal(t, 1, added)
	rec, err := s.OrderHistoryRecord("r1")
	require.NoError(t, err)
	assert.Equal(t, int64(100), rec.Total)
	assert.Zero(t, s.MergeOrderHistory(nil))
}

func TestReservationsFilterByDate(t *testing.T) {
	s := New()
	s.AddReservation(models.Reservation{ID: "1", Date: "2024-05-02", Time: "19:00"})
	s.AddReservation(models.Reservation{ID: "2", Date: "2024-05-01", Time: "18:00"})
	s.AddReservation(models.Reservation{ID: "3", Date: "2024-05-02", Time: "12:00"})

	day := s.Reservations("2024-05-02")
	require.Len(t, day, 2)
	assert.Equal(t, "3", day[0].ID)
	assert.Len(t, s.Reservations(""), 3)

	assert.ErrorIs(t, s.DeleteReservation("9"), ErrNotFound)
	require.NoError(t, s.DeleteReservation("1"))
	assert.Len(t, s.Reservations("2024-05-02"), 1)
}

func TestConcurrentPendingAdds(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.AddPendingItem("1", teishoku)
		}()
	}
	wg.Wait()

	pending := s.GetPendingOrders("1")
	require.Len(t, pending, 1)
	assert.Equal(t, 50, pending[0].Quantity)
}
