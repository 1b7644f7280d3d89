package product

import (
	"fmt"
	"strconv"
	"strings"

	dom "example.com/shopping-list/internal/domain/product"
)

// PriceFormat parses and formats prices for the user's locale.
type PriceFormat interface {
	Parse(text string) (float64, error)
	Format(v float64) string
}

// Converter maps persisted products to items and back.
type Converter struct {
	prices PriceFormat
}

func NewConverter(prices PriceFormat) *Converter {
	return &Converter{prices: prices}
}

func (c *Converter) ToItem(p *dom.Product) dom.Item {
	item := dom.Item{
		ID:       strconv.FormatInt(p.ID, 10),
		ListID:   strconv.FormatInt(p.ListID, 10),
		Name:     p.Name,
		Quantity: strconv.FormatInt(p.Quantity, 10),
		Store:    p.Store,
		Category: p.Category,
		Notes:    p.Notes,
		Checked:  p.Checked,
	}
	if p.Price != nil {
		item.Price = c.prices.Format(*p.Price)
	}
	return item
}

// ToEntity converts an item into a product. The list reference is left for the
// caller to resolve. Quantity and price must not be negative.
func (c *Converter) ToEntity(item dom.Item) (*dom.Product, error) {
	p := &dom.Product{
		Name:     strings.TrimSpace(item.Name),
		Store:    item.Store,
		Category: item.Category,
		Notes:    item.Notes,
		Checked:  item.Checked,
	}
	if p.Name == "" {
		return nil, dom.ErrProductInvalidName
	}

	if item.ID != "" {
		id, err := parseID(item.ID)
		if err != nil {
			return nil, err
		}
		p.ID = id
	}

	quantity, err := parseQuantity(item.Quantity)
	if err != nil {
		return nil, err
	}
	p.Quantity = quantity

	if item.Price != "" {
		price, err := c.prices.Parse(item.Price)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", dom.ErrMalformedPrice, err)
		}
		if price < 0 {
			return nil, fmt.Errorf("%w: %q is negative", dom.ErrMalformedPrice, item.Price)
		}
		p.Price = &price
	}
	return p, nil
}

func (c *Converter) ParsePrice(text string) (float64, error) {
	return c.prices.Parse(text)
}

func (c *Converter) FormatPrice(v float64) string {
	return c.prices.Format(v)
}

func parseID(text string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", dom.ErrMalformedID, text)
	}
	return id, nil
}

// parseQuantity treats an empty quantity as DefaultQuantity and rejects
// negative ones.
func parseQuantity(text string) (int64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return dom.DefaultQuantity, nil
	}
	q, err := strconv.ParseInt(text, 10, 64)
	if err != nil || q < 0 {
		return 0, fmt.Errorf("%w: %q", dom.ErrMalformedQuantity, text)
	}
	return q, nil
}
