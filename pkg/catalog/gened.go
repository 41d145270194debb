package catalog

import "encoding/json"

// FlattenGenEds flattens arbitrarily nested lists of gen-ed tags into a
// flat list, preserving order. Non-string entries are dropped.
func FlattenGenEds(v any) []string {
	var out []string
	flattenInto(&out, v)
	return out
}

func flattenInto(out *[]string, v any) {
	switch t := v.(type) {
	case string:
		*out = append(*out, t)
	case []any:
		for _, e := range t {
			flattenInto(out, e)
		}
	case []string:
		*out = append(*out, t...)
	}
}

// FlattenGenEdJSON decodes raw gen-ed JSON and flattens it. Null, empty or
// undecodable input yields nil.
func FlattenGenEdJSON(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return FlattenGenEds(v)
}
