package store

import (
	"encoding/json"
	"fmt"
	"strings"
)

// applyFields writes fields into doc in place.
func applyFields(doc map[string]any, fields map[string]any) error {
	for key, value := range fields {
		path := strings.Split(key, ".")
		target := doc
		for _, part := range path[:len(path)-1] {
			next, ok := target[part].(map[string]any)
			if !ok {
				if target[part] != nil {
					return fmt.Errorf("field %q is not an object", part)
				}
				next = map[string]any{}
				target[part] = next
			}
			target = next
		}
		target[path[len(path)-1]] = value
	}
	return nil
}

// decode parses stored JSON into a fresh map.
func decode(data []byte) (map[string]any, error) {
	doc := map[string]any{}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

// normalizeFields round-trips values through JSON so stored documents hold
// only generic JSON types.
func normalizeFields(fields map[string]any) (map[string]any, error) {
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode fields: %w", err)
	}
	return decode(data)
}
