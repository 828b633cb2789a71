package secrets

import (
	"encoding/json"
	"fmt"
)

// decodeDocument parses a JSON object of credential values
// Non-string values are rendered with their JSON text so numeric ids survive
func decodeDocument(raw []byte) (map[string]string, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("secret is not a JSON object: %w", err)
	}
	return flattenDocument(doc), nil
}

func flattenDocument(doc map[string]json.RawMessage) map[string]string {
	values := make(map[string]string, len(doc))
	for key, raw := range doc {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			values[key] = s
			continue
		}
		values[key] = string(raw)
	}
	return values
}

// stringValues converts a decoded secret map, as returned by Vault, to strings
func stringValues(data map[string]interface{}) map[string]string {
	values := make(map[string]string, len(data))
	for key, value := range data {
		switch v := value.(type) {
		case string:
			values[key] = v
		case nil:
		default:
			values[key] = fmt.Sprint(v)
		}
	}
	return values
}
