package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ToFloat64 converts various types to float64 using explicit type switching.
// It handles standard integer types, floats, strings, and byte slices.
// Strings are trimmed before parsing; an unparsable value returns an error.
func ToFloat64(val any) (float64, error) {
	switch v := val.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	case []byte:
		return strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
	case nil:
		return 0, fmt.Errorf("cannot convert nil to float")
	default:
		return 0, fmt.Errorf("cannot convert %T to float", val)
	}
}

// ToString converts various types to string.
// Floats use the shortest representation that round-trips, so 1.5 and "1.5" agree.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Round rounds v to the given number of decimal places.
// It scales, rounds half to even and scales back, which matches how
// dataframe libraries normalize measures.
func Round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.RoundToEven(v*scale) / scale
}
