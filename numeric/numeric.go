/*
Package numeric provides locale-aware decimal parsing and formatting.

PURPOSE:
  Users type amounts the way their locale writes them ("1.234,56"), and
  synced documents carry a mix of JSON numbers and strings entered at
  different times. This package turns all of that into decimal.Decimal
  and renders it back with grouping and the currency suffix.

KEY CONCEPTS:
  - Parse: Strict grouped-decimal pattern first, naive coercion second
  - Value: A JSON scalar that remembers whether it held a real number,
    so callers can tell "zero" apart from "absent or garbage"
  - FormatEUR: Fixed two decimals, "." grouping, "," decimal, " €" suffix

DESIGN PRINCIPLES:
  1. Never panic, never error: unparseable input degrades to zero/absent
  2. Precision: decimal.Decimal end to end, no float arithmetic
  3. The validity bit is explicit, not encoded as a magic zero

USAGE:
  d, ok := numeric.Parse("1.234,56")   // 1234.56, true
  numeric.FormatEUR(d)                 // "1.234,56 €"

SEE ALSO:
  - forecast: consumes Value for every amount field in a plan document
*/
package numeric

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// groupedDecimal is the strict locale pattern: optional sign, digit
// groups of 1-3 separated by ".", optional ","-decimal suffix.
var groupedDecimal = regexp.MustCompile(`^-?\d{1,3}(\.\d{3})*(,\d+)?$`)

// =============================================================================
// PARSING
// =============================================================================

// Parse converts a locale-formatted decimal string to a decimal.
// The second return reports whether the input actually carried a number:
// empty or unparseable input yields (0, false). It never panics.
func Parse(input string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(input)
	if s == "" {
		return decimal.Zero, false
	}

	if groupedDecimal.MatchString(s) {
		normalized := strings.ReplaceAll(s, ".", "")
		normalized = strings.ReplaceAll(normalized, ",", ".")
		if d, err := decimal.NewFromString(normalized); err == nil {
			return d, true
		}
	}

	// Not in grouped form: fall back to naive coercion, which covers
	// plain dot-decimal strings like "1234.5".
	if d, err := decimal.NewFromString(s); err == nil {
		return d, true
	}
	return decimal.Zero, false
}

// ParseOrZero is the amount-field convenience: garbage and absence both
// collapse to zero. Use Parse (or Value) where "absent" must stay
// distinguishable from "zero".
func ParseOrZero(input string) decimal.Decimal {
	d, _ := Parse(input)
	return d
}

// =============================================================================
// VALUE - Flexible JSON scalar with an explicit validity bit
// =============================================================================

// Value holds a decimal that may be absent. It unmarshals from a JSON
// number, a locale-formatted string, a plain string, or null, and keeps
// track of whether the input was a real number. Unmarshaling never
// fails; malformed input becomes an absent Value.
type Value struct {
	dec   decimal.Decimal
	valid bool
}

// FromDecimal wraps a known-good decimal.
func FromDecimal(d decimal.Decimal) Value { return Value{dec: d, valid: true} }

// FromFloat wraps a float64.
func FromFloat(f float64) Value { return Value{dec: decimal.NewFromFloat(f), valid: true} }

// FromString parses a locale string; garbage yields an absent Value.
func FromString(s string) Value {
	d, ok := Parse(s)
	return Value{dec: d, valid: ok}
}

// Absent returns the "no value recorded" sentinel.
func Absent() Value { return Value{} }

// Decimal returns the held decimal, zero when absent.
func (v Value) Decimal() decimal.Decimal {
	if !v.valid {
		return decimal.Zero
	}
	return v.dec
}

// Valid reports whether the value carried a real number.
func (v Value) Valid() bool { return v.valid }

// Positive reports a valid value strictly greater than zero.
func (v Value) Positive() bool { return v.valid && v.dec.IsPositive() }

func (v *Value) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		*v = Value{}
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var raw string
		if err := json.Unmarshal(b, &raw); err != nil {
			*v = Value{}
			return nil
		}
		*v = FromString(raw)
		return nil
	}
	if d, err := decimal.NewFromString(s); err == nil {
		*v = Value{dec: d, valid: true}
		return nil
	}
	*v = Value{}
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.valid {
		return []byte("null"), nil
	}
	return []byte(v.dec.String()), nil
}

// =============================================================================
// FORMATTING
// =============================================================================

// FormatEUR renders a decimal with two fixed decimals, "." thousands
// grouping, "," as decimal separator, and the euro suffix. The symbol
// and its position are fixed; this dashboard is single-locale.
func FormatEUR(d decimal.Decimal) string {
	s := d.StringFixed(2)

	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	parts := strings.SplitN(s, ".", 2)
	intPart, fracPart := parts[0], parts[1]

	var grouped strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		grouped.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if grouped.Len() > 0 {
			grouped.WriteString(".")
		}
		grouped.WriteString(intPart[i : i+3])
	}

	out := grouped.String() + "," + fracPart + " €"
	if negative {
		out = "-" + out
	}
	return out
}
