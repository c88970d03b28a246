package simulation

import (
	"encoding/json"
	"math"
)

// Inputs holds the simulation-specific parameters as decoded from JSON.
// Accessors return the given default when a key is missing or null.
type Inputs map[string]interface{}

func (in Inputs) compact() Inputs {
	out := make(Inputs, len(in))
	for k, v := range in {
		if v == nil {
			continue
		}
		if nested, ok := v.(map[string]interface{}); ok {
			v = map[string]interface{}(Inputs(nested).compact())
		}
		out[k] = v
	}
	return out
}

func (in Inputs) Float(key string, def float64) float64 {
	if f, ok := toFloat(in[key]); ok {
		return f
	}
	return def
}

func (in Inputs) Int(key string, def int) int {
	if f, ok := toFloat(in[key]); ok {
		return int(math.Round(f))
	}
	return def
}

func (in Inputs) String(key, def string) string {
	if s, ok := in[key].(string); ok && s != "" {
		return s
	}
	return def
}

// Object returns a nested object, or an empty one.
func (in Inputs) Object(key string) Inputs {
	switch v := in[key].(type) {
	case map[string]interface{}:
		return Inputs(v)
	case Inputs:
		return v
	}
	return Inputs{}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
