package vectorstore

// Filter operator keys. A filter value may be a plain value (exact match)
// or a map using one of these operators, e.g. {"confidence": {"$gte": 0.75}}.
const (
	opGTE = "$gte"
	opLTE = "$lte"
	opIn  = "$in"
)

// matchesFilter reports whether metadata satisfies every filter entry.
// A key missing from metadata fails the filter.
func matchesFilter(metadata, filter map[string]any) bool {
	for key, want := range filter {
		have, ok := metadata[key]
		if !ok {
			return false
		}

		if ops, isOps := want.(map[string]any); isOps {
			if !matchesOperators(have, ops) {
				return false
			}
			continue
		}

		if !equalValue(have, want) {
			return false
		}
	}
	return true
}

func matchesOperators(have any, ops map[string]any) bool {
	if bound, ok := ops[opGTE]; ok {
		hv, hok := toFloat(have)
		bv, bok := toFloat(bound)
		if !hok || !bok || hv < bv {
			return false
		}
	}
	if bound, ok := ops[opLTE]; ok {
		hv, hok := toFloat(have)
		bv, bok := toFloat(bound)
		if !hok || !bok || hv > bv {
			return false
		}
	}
	if allowed, ok := ops[opIn]; ok {
		values, isSlice := allowed.([]any)
		if !isSlice {
			return false
		}
		found := false
		for _, v := range values {
			if equalValue(have, v) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// equalValue compares metadata values, treating all numeric types as
// equivalent so 0.9 matches regardless of whether it was stored as
// float32, float64, or int.
func equalValue(a, b any) bool {
	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			return af == bf
		}
		return false
	}
	return a == b
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
