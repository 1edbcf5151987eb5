package helpers

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// NormalizeYAML converts map[any]any values, which JSON cannot encode, into
// map[string]any.
func NormalizeYAML(v any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			n, err := NormalizeYAML(val)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("non-string key %v", k)
			}
			n, err := NormalizeYAML(val)
			if err != nil {
				return nil, err
			}
			out[key] = n
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			n, err := NormalizeYAML(val)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	default:
		return v, nil
	}
}

// YAMLToJSON re-encodes one YAML document as JSON so it can be decoded
// through json tags. Timestamps must be RFC 3339 strings in the source.
func YAMLToJSON(data []byte) ([]byte, error) {
	var raw any
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&raw); err != nil {
		return nil, err
	}
	normalized, err := NormalizeYAML(raw)
	if err != nil {
		return nil, err
	}
	return json.Marshal(normalized)
}

// UnmarshalYAML decodes one YAML (or JSON) document into out using out's
// json tags. Unknown fields are rejected.
func UnmarshalYAML(data []byte, out any) error {
	encoded, err := YAMLToJSON(data)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(encoded))
	dec.DisallowUnknownFields()
	return dec.Decode(out)
}
