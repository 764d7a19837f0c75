package chart

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// NotAvailable is rendered in place of absent or null fields
const NotAvailable = "N/A"

// Value holds a scalar leaf of the response exactly as the service encoded it, so
// numbers print with their original precision ("280.0" stays "280.0").
type Value struct {
	raw json.RawMessage
}

// NewValue wraps a raw JSON literal
func NewValue(raw string) Value {
	return Value{raw: json.RawMessage(raw)}
}

func (v *Value) UnmarshalJSON(b []byte) error {
	v.raw = append(v.raw[:0], bytes.TrimSpace(b)...)
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	if len(v.raw) == 0 {
		return []byte("null"), nil
	}
	return v.raw, nil
}

// Present reports whether the field was sent with a non-null value
func (v Value) Present() bool {
	return len(v.raw) > 0 && !bytes.Equal(v.raw, []byte("null"))
}

// String renders strings unquoted, other literals verbatim, and N/A when absent
func (v Value) String() string {
	if !v.Present() {
		return NotAvailable
	}
	if v.raw[0] == '"' {
		var s string
		if err := json.Unmarshal(v.raw, &s); err == nil {
			return s
		}
	}
	return string(v.raw)
}

// Int returns the value as an integer when it is a number with no fractional part
func (v Value) Int() (int, bool) {
	f, ok := v.Float()
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// Float returns the value as a float64 when it is a JSON number
func (v Value) Float() (float64, bool) {
	if !v.Present() || v.raw[0] == '"' {
		return 0, false
	}
	f, err := strconv.ParseFloat(string(v.raw), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
