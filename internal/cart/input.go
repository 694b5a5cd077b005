package cart

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Quantity fields in priority order.
var quantityFields = [...]string{"qty", "cantidad"}

// maxExactInt bounds parsed numbers to values a float64 represents exactly.
const maxExactInt = 1 << 53

// unreservable stands in for quantities above maxExactInt.
const unreservable = math.MaxInt

// Fields is an untrusted request body: JSON values decoded with UseNumber, or
// the first value of each form field.
type Fields map[string]any

// RawQuantity is a quantity exactly as a caller sent it. The zero value means
// no quantity was supplied.
type RawQuantity struct {
	value   any
	present bool
}

func Quantity(v any) RawQuantity {
	return RawQuantity{value: v, present: v != nil}
}

// QuantityFrom reads "qty", falling back to "cantidad". A null counts as absent.
func QuantityFrom(f Fields) RawQuantity {
	for _, name := range quantityFields {
		if v, ok := f[name]; ok && v != nil {
			return Quantity(v)
		}
	}
	return RawQuantity{}
}

func (q RawQuantity) Present() bool { return q.present }

// atLeast converts q to an int >= min, rejecting anything non-numeric,
// non-finite or fractional.
func (q RawQuantity) atLeast(min int, msg string) (int, error) {
	if !q.present {
		return 0, validationError(msg)
	}
	f, ok := toFloat(q.value)
	if !ok || f != math.Trunc(f) || f < float64(min) {
		return 0, validationError(msg)
	}
	// Whole numbers too large to count exactly still exceed any stock, so the
	// reservation rejects them rather than validation.
	if f > maxExactInt {
		return unreservable, nil
	}
	return int(f), nil
}

// BodyProductID resolves the productId field of a request body. Missing or
// empty values are a validation error. Values that cannot name a product
// resolve to 0, which no catalog entry uses, so the lookup reports them.
func BodyProductID(f Fields) (int, error) {
	v, ok := f["productId"]
	if !ok || isBlank(v) {
		return 0, validationError(MsgMissingProductID)
	}
	n, ok := toInt(v)
	if !ok {
		return 0, nil
	}
	return n, nil
}

// PathProductID resolves a productId URL segment. Non-numeric input is a
// validation error; numeric values that are not whole resolve to 0.
func PathProductID(s string) (int, error) {
	f, ok := toFloat(s)
	if !ok {
		return 0, validationError(MsgInvalidProductID)
	}
	n, ok := floatToInt(f)
	if !ok {
		return 0, nil
	}
	return n, nil
}

func isBlank(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case string:
		return x == ""
	}
	f, ok := toFloat(v)
	return ok && f == 0
}

func toInt(v any) (int, bool) {
	f, ok := toFloat(v)
	if !ok {
		return 0, false
	}
	return floatToInt(f)
}

func floatToInt(f float64) (int, bool) {
	if f != math.Trunc(f) || math.Abs(f) > maxExactInt {
		return 0, false
	}
	return int(f), true
}

func toFloat(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case json.Number:
		parsed, err := strconv.ParseFloat(x.String(), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
