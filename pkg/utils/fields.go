package utils

import (
	"encoding/json"
	"strings"
)

// SelectFields re-renders v keeping only the requested top-level JSON
// fields. An empty selector returns v untouched. Unknown names are
// ignored rather than rejected.
func SelectFields(v any, fields string) (any, error) {
	names := splitFields(fields)
	if len(names) == 0 {
		return v, nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	// lists are trimmed element-wise
	if strings.HasPrefix(strings.TrimSpace(string(raw)), "[") {
		var items []map[string]json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return v, nil
		}
		out := make([]map[string]json.RawMessage, 0, len(items))
		for _, item := range items {
			out = append(out, pick(item, names))
		}
		return out, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return v, nil
	}
	return pick(obj, names), nil
}

func splitFields(fields string) []string {
	var names []string
	for _, f := range strings.Split(fields, ",") {
		f = strings.TrimSpace(f)
		if f != "" {
			names = append(names, f)
		}
	}
	return names
}

func pick(obj map[string]json.RawMessage, names []string) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(names))
	for _, name := range names {
		if val, ok := obj[name]; ok {
			out[name] = val
		}
	}
	return out
}

// ClampLimit bounds a page size to (0, max]; zero or negative input
// falls back to def.
func ClampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
