package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// The upstream API is loosely typed: the same field can arrive as a number,
// a numeric string, null or be missing entirely. The types below decode
// whatever arrives without failing the surrounding record.

var jsonNull = []byte("null")

// Text is a display string decoded from a string, number or bool.
// Objects, arrays and null decode to "".
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	*t = Text(scalarText(b))
	return nil
}

// String returns the raw value
func (t Text) String() string {
	return string(t)
}

// Or returns the value, or fallback when empty
func (t Text) Or(fallback string) string {
	if s := strings.TrimSpace(string(t)); s != "" {
		return string(t)
	}
	return fallback
}

// Lower returns the lower-cased value for case-insensitive comparisons
func (t Text) Lower() string {
	return strings.ToLower(string(t))
}

// ID identifies a record. Upstream sends numeric ids for some tables and
// string ids for others, so it is kept in its textual form.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	*id = ID(scalarText(b))
	return nil
}

func (id ID) String() string {
	return string(id)
}

// Amount is a monetary value. Anything that is not a number or a numeric
// string decodes to zero.
type Amount struct {
	decimal.Decimal
}

// NewAmount builds an Amount from a float, mostly for tests and fixtures.
func NewAmount(v float64) Amount {
	return Amount{Decimal: decimal.NewFromFloat(v)}
}

// ParseAmount parses s, returning zero when s is not numeric.
func ParseAmount(s string) Amount {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Amount{}
	}
	return Amount{Decimal: d}
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, jsonNull) {
		a.Decimal = decimal.Zero
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			a.Decimal = decimal.Zero
			return nil
		}
		*a = ParseAmount(s)
		return nil
	}
	*a = ParseAmount(string(b))
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.StringFixed(2)), nil
}

// Int is a whole number such as a loan term, decoded leniently like Amount.
type Int int64

func (n *Int) UnmarshalJSON(b []byte) error {
	var a Amount
	_ = a.UnmarshalJSON(b)
	*n = Int(a.Decimal.IntPart())
	return nil
}

// Date is an optional calendar date or timestamp.
type Date struct {
	Time  time.Time
	Valid bool
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses the upstream date formats; unknown formats yield an
// invalid Date.
func ParseDate(s string) Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{Time: t, Valid: true}
		}
	}
	return Date{}
}

// NewDate builds a valid Date
func NewDate(t time.Time) Date {
	return Date{Time: t, Valid: true}
}

func (d *Date) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '"' {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*d = Date{}
		return nil
	}
	*d = ParseDate(s)
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return jsonNull, nil
	}
	return json.Marshal(d.Time.Format(time.RFC3339))
}

// Before reports whether d is a valid date strictly before t.
func (d Date) Before(t time.Time) bool {
	return d.Valid && d.Time.Before(t)
}

func scalarText(b []byte) string {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, jsonNull) {
		return ""
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return ""
		}
		return s
	case '{', '[':
		return ""
	case 't', 'f':
		return strconv.FormatBool(b[0] == 't')
	default:
		return string(b)
	}
}
