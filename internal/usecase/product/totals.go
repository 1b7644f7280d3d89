package product

import (
	dom "example.com/shopping-list/internal/domain/product"
)

// ComputeTotals sums price * quantity over all items and over the checked ones.
// Items without a price, or with one that cannot be parsed, still count but add
// nothing. A malformed quantity on a priced item aborts the computation.
func (s *Service) ComputeTotals(items []dom.Item) (dom.Total, error) {
	var (
		amount        float64
		checkedAmount float64
		count         int
	)

	for _, item := range items {
		count++
		if item.Price == "" {
			continue
		}

		quantity, err := parseQuantity(item.Quantity)
		if err != nil {
			return dom.Total{}, err
		}
		price, err := s.converter.ParsePrice(item.Price)
		if err != nil {
			continue
		}

		line := price * float64(quantity)
		amount += line
		if item.Checked {
			checkedAmount += line
		}
	}

	return dom.Total{
		Count:         count,
		Amount:        s.converter.FormatPrice(amount),
		CheckedAmount: s.converter.FormatPrice(checkedAmount),
		// exact comparison: an unpriced list is reported apart from a priced one
		EqualsZero: amount == 0,
	}, nil
}
