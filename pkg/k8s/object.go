package k8s

import (
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// Raw cluster records come from kubectl's JSON output, which is not a stable
// schema this tool can depend on. Every accessor below returns a zero value
// when the path is missing or holds an unexpected type, so partial or
// evolving API objects never crash a command.

func nestedString(obj map[string]any, fields ...string) string {
	v, _, _ := unstructured.NestedString(obj, fields...)
	return v
}

func nestedBool(obj map[string]any, fields ...string) bool {
	v, _, _ := unstructured.NestedBool(obj, fields...)
	return v
}

// nestedInt tolerates both int64 (unstructured converters) and float64
// (plain encoding/json) number representations.
func nestedInt(obj map[string]any, fields ...string) int {
	v, found, err := unstructured.NestedFieldNoCopy(obj, fields...)
	if !found || err != nil {
		return 0
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

func nestedSlice(obj map[string]any, fields ...string) []any {
	v, found, err := unstructured.NestedFieldNoCopy(obj, fields...)
	if !found || err != nil {
		return nil
	}
	s, _ := v.([]any)
	return s
}

func nestedStringMap(obj map[string]any, fields ...string) map[string]string {
	v, _, _ := unstructured.NestedStringMap(obj, fields...)
	return v
}

func asObject(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}
