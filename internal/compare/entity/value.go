package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ValueKind is the runtime-discovered type of a cell.
type ValueKind int

const (
	KindMissing ValueKind = iota
	KindText
	KindNumber
)

// Value is a single cell. The schema of an uploaded table is whatever its
// cells turn out to be; nothing is declared at compile time.
type Value struct {
	Kind   ValueKind
	Text   string
	Number decimal.Decimal
}

// Missing returns the missing-value marker used for unmatched join cells.
func Missing() Value {
	return Value{Kind: KindMissing}
}

// TextValue returns a text cell.
func TextValue(s string) Value {
	return Value{Kind: KindText, Text: s}
}

// NumberValue returns a numeric cell.
func NumberValue(d decimal.Decimal) Value {
	return Value{Kind: KindNumber, Number: d}
}

// ParseValue types a raw cell string: blank becomes missing, anything that
// parses as a decimal becomes a number, the rest stays text.
//
// Numbers are decimals rather than floats so rates survive load/export
// round-trips without drift.
func ParseValue(raw string) Value {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Missing()
	}

	if d, err := decimal.NewFromString(trimmed); err == nil {
		return NumberValue(d)
	}

	return TextValue(raw)
}

// IsMissing reports whether the cell holds no value.
func (v Value) IsMissing() bool {
	return v.Kind == KindMissing
}

// Key returns a canonical representation used when cells participate in a
// join key. Numbers are canonicalized ("1.50" and "1.5" match), text matches
// exactly.
func (v Value) Key() string {
	switch v.Kind {
	case KindNumber:
		// Decimal keeps trailing zeros ("1.50"), which must not break
		// key equality with "1.5".
		s := v.Number.String()
		if strings.Contains(s, ".") {
			s = strings.TrimRight(s, "0")
			s = strings.TrimRight(s, ".")
		}
		return "n:" + s
	case KindText:
		return "t:" + v.Text
	default:
		return "m:"
	}
}

// String renders the cell for display. Missing cells render empty.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return v.Number.String()
	case KindText:
		return v.Text
	default:
		return ""
	}
}

// Export converts the cell to the native type written into a workbook cell.
func (v Value) Export() any {
	switch v.Kind {
	case KindNumber:
		f, _ := v.Number.Float64()
		return f
	case KindText:
		return v.Text
	default:
		return nil
	}
}
