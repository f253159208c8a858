package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// NormalizeRating coerces a loosely typed rating into a number.
// Anything that is not a finite number or numeric string becomes 0.
func NormalizeRating(v any) float64 {
	var f float64
	switch t := v.(type) {
	case nil:
		return 0
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return 0
		}
		f = n
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		f = n
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Rating accepts numbers, numeric strings and null on decode.
type Rating float64

func (r *Rating) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		*r = 0
		return nil
	}
	*r = Rating(NormalizeRating(raw))
	return nil
}
