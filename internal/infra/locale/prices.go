package locale

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	fallbackDecimal = "."
	fallbackGroup   = ","
)

// Prices parses and formats prices the way the configured locale writes them.
type Prices struct {
	tag     language.Tag
	decimal string
	group   string
}

func NewPrices(locale string) (*Prices, error) {
	const op = "locale.NewPrices"

	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	decimal, group := separators(message.NewPrinter(tag))
	return &Prices{tag: tag, decimal: decimal, group: group}, nil
}

func (p *Prices) Tag() language.Tag {
	return p.tag
}

// Parse reads a locale formatted decimal such as "1.234,5" (de) or "1,234.5" (en).
func (p *Prices) Parse(text string) (float64, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, fmt.Errorf("parse price %q: empty", text)
	}
	if p.group != "" {
		s = strings.ReplaceAll(s, p.group, "")
	}
	if p.decimal != "." {
		s = strings.Replace(s, p.decimal, ".", 1)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse price %q: %w", text, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("parse price %q: not a finite number", text)
	}
	return v, nil
}

// Format renders v with at most two fraction digits and no grouping, so that
// Parse(Format(v)) gives back the rounded value.
func (p *Prices) Format(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	return strings.Replace(s, ".", p.decimal, 1)
}

// separators derives the decimal and grouping symbols from how the printer
// renders 1234.5, which is "1" + group + "234" + decimal + "5".
func separators(printer *message.Printer) (decimal, group string) {
	runes := []rune(printer.Sprintf("%.1f", 1234.5))
	n := len(runes)
	if n < 6 || runes[0] != '1' || runes[n-1] != '5' || string(runes[n-5:n-2]) != "234" {
		return fallbackDecimal, fallbackGroup
	}

	decimal = string(runes[n-2])
	group = string(runes[1 : n-5])
	if decimal == group || utf8.RuneCountInString(decimal) != 1 {
		return fallbackDecimal, fallbackGroup
	}
	return decimal, group
}
