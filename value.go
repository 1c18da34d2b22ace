package yamltree

import "math"

// ToValue converts n into plain Go values: nil, string, []any and
// map[string]any. Tags are dropped.
func ToValue(n Node) any { return toValue(n, false) }

// InferValue is ToValue with scalar typing: scalars that parse as booleans,
// integers or finite floats become bool, int64 or float64.
func InferValue(n Node) any { return toValue(n, true) }

func toValue(n Node, infer bool) any {
	switch v := n.(type) {
	case *Null:
		return nil
	case *Scalar:
		if infer {
			return inferScalar(v.content)
		}
		return v.content
	case *List:
		out := make([]any, len(v.items))
		for i, it := range v.items {
			out[i] = toValue(it, infer)
		}
		return out
	case *Map:
		out := make(map[string]any, len(v.entries))
		for _, e := range v.entries {
			out[e.Key.content] = toValue(e.Value, infer)
		}
		return out
	case *Tagged:
		return toValue(v.inner, infer)
	}
	return nil
}

func inferScalar(s string) any {
	if b, ok := ParseBool(s); ok {
		return b
	}
	if i, ok := ParseInt(s, 64); ok {
		return i
	}
	if f, ok := ParseFloat(s, 64); ok && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return f
	}
	return s
}
