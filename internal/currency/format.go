package currency

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Helper formats and parses amounts of one currency for one locale.
// A Helper is not safe for concurrent use once SetGroupingUsed is called.
type Helper struct {
	info     Info
	printer  *message.Printer
	grouping bool

	decimalSep string
	groupSep   string
}

// NewHelper returns a Helper for the currency code in the given locale.
func NewHelper(code string, tag language.Tag) (*Helper, error) {
	info, err := Lookup(code)
	if err != nil {
		return nil, err
	}
	h := &Helper{
		info:     info,
		printer:  message.NewPrinter(tag),
		grouping: true,
	}
	h.decimalSep, h.groupSep = separators(h.printer)
	return h, nil
}

// NewNumberHelper returns a Helper for plain numbers (weights, rates) in
// the given locale. It formats without fraction digits and knows no symbol.
func NewNumberHelper(tag language.Tag) *Helper {
	h := &Helper{
		printer:  message.NewPrinter(tag),
		grouping: true,
	}
	h.decimalSep, h.groupSep = separators(h.printer)
	return h
}

// Info returns the currency metadata the helper formats for.
func (h *Helper) Info() Info {
	return h.info
}

// SetGroupingUsed toggles thousands grouping in formatted output.
func (h *Helper) SetGroupingUsed(v bool) {
	h.grouping = v
}

// Format renders v with the currency's fraction digits, optionally with
// the currency symbol placed according to the currency's template.
func (h *Helper) Format(v float64, withSymbol bool) string {
	opts := []number.Option{number.Scale(h.info.FractionDigits)}
	if !h.grouping {
		opts = append(opts, number.NoSeparator())
	}

	negative := v < 0 && !decimal.NewFromFloat(v).Round(int32(h.info.FractionDigits)).IsZero()
	if v < 0 {
		v = -v
	}
	s := h.printer.Sprint(number.Decimal(v, opts...))
	if withSymbol {
		s = h.applyTemplate(s)
	}
	if negative {
		s = "-" + s
	}
	return s
}

// FormatCents renders a fixed-point amount (scaled by the currency's
// decimal factor).
func (h *Helper) FormatCents(cents int64, withSymbol bool) string {
	return h.Format(FromCents(cents, h.info.FractionDigits), withSymbol)
}

// ParseNumber parses a locale-formatted number. Grouping separators and the
// currency symbol are accepted and ignored.
func (h *Helper) ParseNumber(s string) (float64, error) {
	d, err := h.parseDecimal(s)
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}

// ParseAsCents parses a locale-formatted amount into fixed-point minor units.
func (h *Helper) ParseAsCents(s string) (int64, error) {
	d, err := h.parseDecimal(s)
	if err != nil {
		return 0, err
	}
	return d.Shift(int32(h.info.FractionDigits)).Round(0).IntPart(), nil
}

func (h *Helper) parseDecimal(s string) (decimal.Decimal, error) {
	raw := s
	s = strings.TrimSpace(s)
	if h.info.Symbol != "" {
		s = strings.ReplaceAll(s, h.info.Symbol, "")
	}
	if h.groupSep != "" {
		s = strings.ReplaceAll(s, h.groupSep, "")
	}
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if h.decimalSep != "." {
		s = strings.ReplaceAll(s, h.decimalSep, ".")
	}
	if s == "" || strings.ContainsAny(s, "eE") {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidNumber, raw)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidNumber, raw)
	}
	return d, nil
}

func (h *Helper) applyTemplate(amount string) string {
	tmpl := h.info.template
	if tmpl == "" {
		tmpl = "$1"
	}
	out := strings.Replace(tmpl, "1", amount, 1)
	return strings.Replace(out, "$", h.info.Symbol, 1)
}

// separators derives the decimal and grouping separators used by the
// printer's locale by formatting a known sample.
func separators(p *message.Printer) (dec, group string) {
	sample := []rune(p.Sprint(number.Decimal(1234.5, number.Scale(1))))
	dec, group = ".", ","

	four, two := -1, -1
	for i, r := range sample {
		switch r {
		case '2':
			if two < 0 {
				two = i
			}
		case '4':
			four = i
		}
	}
	if four < 0 || two < 1 || sample[0] != '1' || sample[len(sample)-1] != '5' {
		return dec, group
	}
	dec = string(sample[four+1 : len(sample)-1])
	group = string(sample[1:two])
	return dec, group
}
