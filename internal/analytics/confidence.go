package analytics

import (
	"strings"

	"github.com/spf13/cast"
)

// Confidence is the decision-record confidence field, which mixes numeric
// values and categorical labels in the same column. Exactly one of the two
// variants is set.
type Confidence struct {
	IsNumeric bool
	Value     float64 // set when IsNumeric
	Label     string  // set otherwise, upper-cased
}

// labelScores maps categorical confidence labels to their numeric score.
var labelScores = map[string]float64{
	"LOW":       0.3,
	"MEDIUM":    0.6,
	"HIGH":      0.9,
	"VERY_HIGH": 1.0,
}

// unknownLabelScore is used for labels outside the known set.
const unknownLabelScore = 0.5

// ParseConfidence resolves a raw confidence value into its variant form.
// Strings that parse as numbers become the numeric variant; remaining
// strings become labels. Non-string values are cast to float, with 0 for
// anything that cannot be converted.
func ParseConfidence(raw any) Confidence {
	if raw == nil {
		return Confidence{IsNumeric: true, Value: 0}
	}

	if s, ok := raw.(string); ok {
		if s == naMarker {
			return Confidence{IsNumeric: true, Value: 0}
		}
		if v, err := cast.ToFloat64E(s); err == nil {
			return Confidence{IsNumeric: true, Value: v}
		}
		return Confidence{Label: strings.ToUpper(s)}
	}

	v, err := cast.ToFloat64E(raw)
	if err != nil {
		return Confidence{IsNumeric: true, Value: 0}
	}
	return Confidence{IsNumeric: true, Value: v}
}

// Score returns the confidence as a float. Numeric values pass through
// unclamped; callers must tolerate out-of-range inputs. Labels resolve
// through the fixed table, unknown labels to 0.5.
func (c Confidence) Score() float64 {
	if c.IsNumeric {
		return c.Value
	}
	if score, ok := labelScores[c.Label]; ok {
		return score
	}
	return unknownLabelScore
}

// NormalizeConfidence maps a raw confidence value straight to its score.
func NormalizeConfidence(raw any) float64 {
	return ParseConfidence(raw).Score()
}
