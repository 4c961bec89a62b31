package fundamentals

import (
	"bytes"
	"encoding/json"
	"math"
)

// Field is an optional float64. Upstream fundamental data frequently omits
// fields, and zero is a legitimate financial value, so absence must be
// explicit rather than a zero sentinel.
type Field struct {
	Value float64
	Valid bool
}

// F wraps a known value. NaN and Inf are treated as absent because the
// upstream API occasionally emits them for broken tickers.
func F(v float64) Field {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Field{}
	}
	return Field{Value: v, Valid: true}
}

// Missing is the absent field.
var Missing = Field{}

// FromPtr converts a nullable pointer into a Field.
func FromPtr(p *float64) Field {
	if p == nil {
		return Missing
	}
	return F(*p)
}

// Or returns the field value, or def when absent.
func (f Field) Or(def float64) float64 {
	if !f.Valid {
		return def
	}
	return f.Value
}

// Positive reports whether the field is present and strictly positive.
func (f Field) Positive() bool {
	return f.Valid && f.Value > 0
}

// Mul multiplies two fields; absent if either is absent.
func (f Field) Mul(other Field) Field {
	if !f.Valid || !other.Valid {
		return Missing
	}
	return F(f.Value * other.Value)
}

// Div divides f by other; absent if either is absent or other is zero.
func (f Field) Div(other Field) Field {
	if !f.Valid || !other.Valid || other.Value == 0 {
		return Missing
	}
	return F(f.Value / other.Value)
}

var nullBytes = []byte("null")

// MarshalJSON renders absent fields as null so consumers can tell
// "not available" from an actual zero.
func (f Field) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return nullBytes, nil
	}
	return json.Marshal(f.Value)
}

// UnmarshalJSON accepts a number or null.
func (f *Field) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, nullBytes) {
		*f = Missing
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = F(v)
	return nil
}
