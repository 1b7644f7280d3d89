package product

import (
	"testing"

	"github.com/stretchr/testify/require"

	dom "example.com/shopping-list/internal/domain/product"
)

func ids(items []dom.Item) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func TestParseCriterion(t *testing.T) {
	for name, want := range map[string]Criterion{
		"name":     ByName,
		"quantity": ByQuantity,
		"store":    ByStore,
		"category": ByCategory,
		"price":    ByPrice,
	} {
		got, ok := ParseCriterion(name)
		require.True(t, ok, name)
		require.Equal(t, want, got)
		require.Equal(t, name, got.String())
	}

	for _, name := range []string{"", "Name", "NAME", " name", "date"} {
		_, ok := ParseCriterion(name)
		require.False(t, ok, name)
	}
}

func TestSortProducts_NameAscendingDescendingDistinct(t *testing.T) {
	svc := newTestService(newMockProductRepository(), newMockListResolver())
	input := []dom.Item{
		{ID: "1", Name: "cheese"},
		{ID: "2", Name: "apple"},
		{ID: "3", Name: "Bread"},
		{ID: "4", Name: "dates"},
	}

	asc := append([]dom.Item(nil), input...)
	svc.SortProducts(asc, "name", true)
	require.Equal(t, []string{"3", "2", "1", "4"}, ids(asc), "uppercase sorts before lowercase")

	desc := append([]dom.Item(nil), input...)
	svc.SortProducts(desc, "name", false)
	require.Equal(t, []string{"4", "1", "2", "3"}, ids(desc))
}

func TestSortProducts_StableWithTiesInBothDirections(t *testing.T) {
	svc := newTestService(newMockProductRepository(), newMockListResolver())
	input := []dom.Item{
		{ID: "1", Name: "milk"},
		{ID: "2", Name: "bread"},
		{ID: "3", Name: "milk"},
		{ID: "4", Name: "bread"},
		{ID: "5", Name: "milk"},
	}

	asc := append([]dom.Item(nil), input...)
	svc.SortProducts(asc, "name", true)
	require.Equal(t, []string{"2", "4", "1", "3", "5"}, ids(asc))

	desc := append([]dom.Item(nil), input...)
	svc.SortProducts(desc, "name", false)
	require.Equal(t, []string{"1", "3", "5", "2", "4"}, ids(desc))
}

func TestSortProducts_Criteria(t *testing.T) {
	input := []dom.Item{
		{ID: "1", Quantity: "10", Store: "Lidl", Category: "Dairy", Price: "2.5"},
		{ID: "2", Quantity: "9", Store: "Aldi", Category: "Bakery", Price: "10"},
		{ID: "3", Quantity: "", Store: "Rewe", Category: "Produce", Price: ""},
		{ID: "4", Quantity: "x", Store: "Aldi", Category: "Dairy", Price: "0.99"},
	}

	tests := []struct {
		criterion string
		ascending bool
		want      []string
	}{
		{criterion: "quantity", ascending: true, want: []string{"4", "3", "2", "1"}},
		{criterion: "quantity", ascending: false, want: []string{"1", "2", "3", "4"}},
		{criterion: "store", ascending: true, want: []string{"2", "4", "1", "3"}},
		{criterion: "store", ascending: false, want: []string{"3", "1", "2", "4"}},
		{criterion: "category", ascending: true, want: []string{"2", "1", "4", "3"}},
		{criterion: "price", ascending: true, want: []string{"3", "4", "1", "2"}},
		{criterion: "price", ascending: false, want: []string{"2", "1", "4", "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.criterion, func(t *testing.T) {
			svc := newTestService(newMockProductRepository(), newMockListResolver())
			items := append([]dom.Item(nil), input...)

			svc.SortProducts(items, tt.criterion, tt.ascending)

			require.Equal(t, tt.want, ids(items))
		})
	}
}

func TestSortProducts_UnknownCriterionKeepsOrder(t *testing.T) {
	svc := newTestService(newMockProductRepository(), newMockListResolver())
	items := []dom.Item{
		{ID: "3", Name: "c"},
		{ID: "1", Name: "a"},
		{ID: "2", Name: "b"},
	}

	svc.SortProducts(items, "date", true)
	require.Equal(t, []string{"3", "1", "2"}, ids(items))

	svc.Sort(items, Criterion(99), false)
	require.Equal(t, []string{"3", "1", "2"}, ids(items))
}

func TestSortProducts_MalformedValuesSortAsZero(t *testing.T) {
	svc := newTestService(newMockProductRepository(), newMockListResolver())
	items := []dom.Item{
		{ID: "1", Quantity: "2", Price: "1.5"},
		{ID: "2", Quantity: "-3", Price: "oops"},
		{ID: "3", Quantity: "1", Price: "0.5"},
	}

	svc.SortProducts(items, "quantity", true)
	require.Equal(t, []string{"2", "3", "1"}, ids(items))

	svc.SortProducts(items, "price", true)
	require.Equal(t, []string{"2", "3", "1"}, ids(items))
}
