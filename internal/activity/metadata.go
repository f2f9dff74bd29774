package activity

import (
	"encoding/json"
	"math"
	"strconv"
)

// Metadata is the open attribute bag attached to an activity. Accessors
// default instead of failing: absent or mistyped numbers read as 0 and
// strings as "".
type Metadata map[string]any

// Float reads a numeric field. NaN and infinities read as 0 so the result
// always encodes as JSON.
func (m Metadata) Float(key string) float64 {
	f := m.rawFloat(key)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func (m Metadata) rawFloat(key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func (m Metadata) String(key string) string {
	s, _ := m[key].(string)
	return s
}

// Clone returns a shallow copy; nil stays nil.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
