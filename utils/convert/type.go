package convert

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToString converts any value to its string representation
// Returns empty string for nil values
func ToString(value any) string {
	if value == nil {
		return ""
	}

	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ToInt converts a number or numeric string to an int.
// Floats are accepted only when they hold an integral value.
func ToInt(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int64ToInt(v)
	case uint:
		return int64ToInt(int64(v))
	case float32:
		return floatToInt(float64(v))
	case float64:
		return floatToInt(v)
	case json.Number:
		return stringToInt(v.String())
	case string:
		return stringToInt(v)
	default:
		return 0, fmt.Errorf("cannot convert %T to int", value)
	}
}

func stringToInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("cannot convert empty string to int")
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return int64ToInt(n)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot convert %q to int", s)
	}
	return floatToInt(f)
}

func floatToInt(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("float %v is not an integer", f)
	}
	if f > math.MaxInt || f < math.MinInt {
		return 0, fmt.Errorf("float %v out of int range", f)
	}
	return int(f), nil
}

func int64ToInt(n int64) (int, error) {
	if n > math.MaxInt || n < math.MinInt {
		return 0, fmt.Errorf("int64 value %d out of int range", n)
	}
	return int(n), nil
}
