package parser

import "strconv"

// mapGetMap extracts a nested map[string]any from m[key].
func mapGetMap(m map[string]any, key string) (map[string]any, bool) {
	v, ok := m[key]
	if !ok {
		return nil, false
	}
	nested, ok := v.(map[string]any)
	return nested, ok
}

// mapGetMapSlice extracts a []map[string]any from m[key], handling the []any
// that yaml.Unmarshal / json.Unmarshal produce. Non-map entries are skipped.
func mapGetMapSlice(m map[string]any, key string) []map[string]any {
	v, ok := m[key]
	if !ok {
		return nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	result := make([]map[string]any, 0, len(arr))
	for _, item := range arr {
		if entry, ok := item.(map[string]any); ok {
			result = append(result, entry)
		}
	}
	return result
}

// mapGetString extracts a string from m[key], returning "" for missing keys
// and non-string values.
func mapGetString(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// mapGetScalarString extracts a string from m[key], rendering scalar YAML
// values (bool, int, float) to their canonical string form. A YAML
// "defaultvalue: false" arrives as a bool and must compare equal to "false".
func mapGetScalarString(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok {
		return ""
	}
	switch n := v.(type) {
	case string:
		return n
	case bool:
		return strconv.FormatBool(n)
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case uint64:
		return strconv.FormatUint(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	default:
		return ""
	}
}

// mapGetBool extracts a bool from m[key], returning false for missing keys
// and non-bool values.
func mapGetBool(m map[string]any, key string) bool {
	v, ok := m[key]
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// mapGetBoolPtr extracts a *bool from m[key]. Returns nil when the key is
// absent or not a bool, so callers can distinguish "unset" from an explicit
// false.
func mapGetBoolPtr(m map[string]any, key string) *bool {
	v, ok := m[key]
	if !ok {
		return nil
	}
	b, ok := v.(bool)
	if !ok {
		return nil
	}
	return &b
}

// mapGetInt extracts an int from m[key].
// Handles both float64 (from JSON) and int (from YAML) numeric values.
func mapGetInt(m map[string]any, key string) int {
	v, ok := m[key]
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case uint64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
