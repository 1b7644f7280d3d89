package product

import (
	"testing"

	"github.com/stretchr/testify/require"

	dom "example.com/shopping-list/internal/domain/product"
)

func TestComputeTotals_Empty(t *testing.T) {
	svc := newTestService(newMockProductRepository(), newMockListResolver())

	total, err := svc.ComputeTotals(nil)

	require.NoError(t, err)
	require.Equal(t, dom.Total{Count: 0, Amount: "0", CheckedAmount: "0", EqualsZero: true}, total)
}

func TestComputeTotals_SingleUncheckedItem(t *testing.T) {
	svc := newTestService(newMockProductRepository(), newMockListResolver())

	total, err := svc.ComputeTotals([]dom.Item{{Name: "Wine", Price: "10", Quantity: "2"}})

	require.NoError(t, err)
	require.Equal(t, 1, total.Count)
	require.Equal(t, "20", total.Amount)
	require.Equal(t, "0", total.CheckedAmount)
	require.False(t, total.EqualsZero)
}

func TestComputeTotals_CheckedSubtotal(t *testing.T) {
	svc := newTestService(newMockProductRepository(), newMockListResolver())

	total, err := svc.ComputeTotals([]dom.Item{
		{Name: "Milk", Price: "1.25", Quantity: "2", Checked: true},
		{Name: "Bread", Price: "3", Quantity: "1"},
		{Name: "Apples", Price: "0.5", Quantity: "", Checked: true},
	})

	require.NoError(t, err)
	require.Equal(t, 3, total.Count)
	require.Equal(t, "6", total.Amount)
	require.Equal(t, "3", total.CheckedAmount)
	require.False(t, total.EqualsZero)
}

func TestComputeTotals_UnpricedItemsStillCount(t *testing.T) {
	tests := []struct {
		name  string
		items []dom.Item
	}{
		{
			name:  "All prices absent",
			items: []dom.Item{{Name: "Salt"}, {Name: "Pepper", Checked: true}},
		},
		{
			name:  "Prices unparseable",
			items: []dom.Item{{Name: "Salt", Price: "n/a"}, {Name: "Pepper", Price: "?", Checked: true}},
		},
		{
			name:  "Absent price with malformed quantity",
			items: []dom.Item{{Name: "Salt", Quantity: "lots"}, {Name: "Pepper"}},
		},
		{
			name:  "Zero prices",
			items: []dom.Item{{Name: "Sample", Price: "0", Quantity: "3"}, {Name: "Flyer", Price: "0"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(newMockProductRepository(), newMockListResolver())

			total, err := svc.ComputeTotals(tt.items)

			require.NoError(t, err)
			require.Equal(t, len(tt.items), total.Count)
			require.Equal(t, "0", total.Amount)
			require.Equal(t, "0", total.CheckedAmount)
			require.True(t, total.EqualsZero)
		})
	}
}

func TestComputeTotals_MalformedQuantityFails(t *testing.T) {
	svc := newTestService(newMockProductRepository(), newMockListResolver())

	total, err := svc.ComputeTotals([]dom.Item{
		{Name: "Milk", Price: "1", Quantity: "1"},
		{Name: "Eggs", Price: "0.2", Quantity: "a dozen"},
	})

	require.ErrorIs(t, err, dom.ErrMalformedQuantity)
	require.Equal(t, dom.Total{}, total)
}

func TestComputeTotals_AmountNeverBelowChecked(t *testing.T) {
	svc := newTestService(newMockProductRepository(), newMockListResolver())
	prices := []string{"0", "0.99", "1.5", "", "12", "bad", "7.25"}

	var items []dom.Item
	for i := 0; i < 40; i++ {
		items = append(items, dom.Item{
			Price:    prices[i%len(prices)],
			Quantity: []string{"1", "2", "3", ""}[i%4],
			Checked:  i%3 == 0,
		})

		total, err := svc.ComputeTotals(items)
		require.NoError(t, err)
		require.Equal(t, len(items), total.Count)

		amount, err := plainPrices{}.Parse(total.Amount)
		require.NoError(t, err)
		checked, err := plainPrices{}.Parse(total.CheckedAmount)
		require.NoError(t, err)
		require.GreaterOrEqual(t, amount, checked)
		require.GreaterOrEqual(t, checked, 0.0)
	}
}
