package product

import (
	"cmp"
	"slices"
	"strings"

	dom "example.com/shopping-list/internal/domain/product"
)

type Criterion int

const (
	ByName Criterion = iota + 1
	ByQuantity
	ByStore
	ByCategory
	ByPrice
)

var criteria = map[string]Criterion{
	"name":     ByName,
	"quantity": ByQuantity,
	"store":    ByStore,
	"category": ByCategory,
	"price":    ByPrice,
}

// ParseCriterion matches s exactly against the supported sort keys.
func ParseCriterion(s string) (Criterion, bool) {
	c, ok := criteria[s]
	return c, ok
}

func (c Criterion) String() string {
	for name, v := range criteria {
		if v == c {
			return name
		}
	}
	return "unknown"
}

type compareFunc func(a, b dom.Item) int

func (s *Service) newComparators() map[Criterion]compareFunc {
	return map[Criterion]compareFunc{
		ByName: func(a, b dom.Item) int {
			return strings.Compare(a.Name, b.Name)
		},
		ByQuantity: func(a, b dom.Item) int {
			return cmp.Compare(quantityOrZero(a.Quantity), quantityOrZero(b.Quantity))
		},
		ByStore: func(a, b dom.Item) int {
			return strings.Compare(a.Store, b.Store)
		},
		ByCategory: func(a, b dom.Item) int {
			return strings.Compare(a.Category, b.Category)
		},
		ByPrice: func(a, b dom.Item) int {
			return cmp.Compare(s.priceOrZero(a.Price), s.priceOrZero(b.Price))
		},
	}
}

// SortProducts sorts items in place. An unknown criterion leaves them untouched.
// Sorting never fails: a quantity or price that does not parse sorts as 0.
// Use ComputeTotals or ToEntity where malformed values must be rejected.
func (s *Service) SortProducts(items []dom.Item, criterion string, ascending bool) {
	c, ok := ParseCriterion(criterion)
	if !ok {
		return
	}
	s.Sort(items, c, ascending)
}

// Sort is stable in both directions: descending negates the comparison
// instead of swapping operands, so equal items keep their input order.
func (s *Service) Sort(items []dom.Item, c Criterion, ascending bool) {
	compare, ok := s.comparators[c]
	if !ok {
		return
	}
	if !ascending {
		asc := compare
		compare = func(a, b dom.Item) int {
			return -asc(a, b)
		}
	}
	slices.SortStableFunc(items, compare)
}

func quantityOrZero(text string) int64 {
	q, err := parseQuantity(text)
	if err != nil {
		return 0
	}
	return q
}

func (s *Service) priceOrZero(text string) float64 {
	if text == "" {
		return 0
	}
	v, err := s.converter.ParsePrice(text)
	if err != nil {
		return 0
	}
	return v
}
