package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Price is a non-negative amount in whole currency units.
type Price int

// MaxWhole is the largest price or power figure accepted. Larger inputs
// are treated as unusable and yield 0.
const MaxWhole = math.MaxInt32

// Watts is a non-negative power figure.
type Watts int

// ParsePrice extracts a whole-unit price from loosely formatted input.
// Strings keep their digits only ("1 299 kr" -> 1299), numbers are
// truncated, and anything unusable or above MaxWhole yields 0.
func ParsePrice(v any) Price {
	return Price(parseWhole(v))
}

// ParseWatts applies the same lenient rules as ParsePrice to power figures.
func ParseWatts(v any) Watts {
	return Watts(parseWhole(v))
}

func parseWhole(v any) int {
	switch x := v.(type) {
	case nil:
		return 0
	case int:
		return clampNonNegative(x)
	case int64:
		return clampNonNegative(int(x))
	case float64:
		return fromFloat(x)
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return clampNonNegative(int(i))
		}
		if f, err := x.Float64(); err == nil {
			return fromFloat(f)
		}
		return 0
	case string:
		return digitsOnly(x)
	}
	return 0
}

func fromFloat(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f > MaxWhole {
		return 0
	}
	return int(f)
}

func clampNonNegative(i int) int {
	if i < 0 || i > MaxWhole {
		return 0
	}
	return i
}

// digitsOnly drops every non-digit. A trailing decimal part of one or two
// digits ("1299.00 kr", "1 299,50") is cut off first so it is not read as
// part of the integer. Exponents are not understood: "1e3" reads as 13.
func digitsOnly(s string) int {
	s = trimDecimals(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0
	}
	return clampNonNegative(n)
}

func trimDecimals(s string) string {
	sep := strings.LastIndexAny(s, ".,")
	if sep < 0 {
		return s
	}
	digits := 0
	for _, r := range s[sep+1:] {
		if r >= '0' && r <= '9' {
			digits++
			continue
		}
		break
	}
	if digits == 0 || digits > 2 {
		return s
	}
	if strings.ContainsAny(s[sep+1+digits:], "0123456789") {
		return s
	}
	return s[:sep]
}

// UnmarshalJSON accepts numbers, numeric strings and null.
func (p *Price) UnmarshalJSON(data []byte) error {
	*p = ParsePrice(decodeLoose(data))
	return nil
}

// UnmarshalJSON accepts numbers, numeric strings and null.
func (w *Watts) UnmarshalJSON(data []byte) error {
	*w = ParseWatts(decodeLoose(data))
	return nil
}

func decodeLoose(data []byte) any {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	return v
}

// Lenient decoders for the remaining wire fields. Vendor data mixes
// strings and numbers freely; a bad field must not reject the catalog.
type (
	looseInt    int
	looseFloat  float64
	looseString string
)

func (i *looseInt) UnmarshalJSON(data []byte) error {
	*i = looseInt(parseWhole(decodeLoose(data)))
	return nil
}

func (f *looseFloat) UnmarshalJSON(data []byte) error {
	*f = 0
	switch v := decodeLoose(data).(type) {
	case json.Number:
		if x, err := v.Float64(); err == nil {
			*f = looseFloat(x)
		}
	case string:
		if x, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			*f = looseFloat(x)
		}
	}
	return nil
}

func (s *looseString) UnmarshalJSON(data []byte) error {
	*s = ""
	switch v := decodeLoose(data).(type) {
	case string:
		*s = looseString(strings.TrimSpace(v))
	case json.Number:
		*s = looseString(v.String())
	case bool:
		*s = looseString(strconv.FormatBool(v))
	}
	return nil
}
