package analytics

import "github.com/spf13/cast"

// naMarker is the sentinel the analysis pipeline writes when a value was
// unavailable at decision time.
const naMarker = "N/A"

// SafeFloat converts an arbitrary external value to a float64, falling back
// to def for nil, the "N/A" sentinel, or anything that fails conversion.
// It never panics.
func SafeFloat(value any, def float64) float64 {
	if value == nil {
		return def
	}
	if s, ok := value.(string); ok && s == naMarker {
		return def
	}
	f, err := cast.ToFloat64E(value)
	if err != nil {
		return def
	}
	return f
}
