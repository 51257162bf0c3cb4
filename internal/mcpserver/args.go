package mcpserver

import "fmt"

// requireString extracts a required string argument
func requireString(args map[string]any, key string) (string, error) {
	raw, ok := args[key]
	if !ok {
		return "", fmt.Errorf("missing '%s' field in input", key)
	}
	v, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("'%s' is not a string", key)
	}
	return v, nil
}

// requireStrings extracts a required array of strings. An empty array is
// valid; the caller decides what it means.
func requireStrings(args map[string]any, key string) ([]string, error) {
	raw, ok := args[key]
	if !ok {
		return nil, fmt.Errorf("missing '%s' field in input", key)
	}

	switch items := raw.(type) {
	case []string:
		return items, nil
	case []any:
		values := make([]string, 0, len(items))
		for i, item := range items {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s %d is not a string", key, i)
			}
			values = append(values, s)
		}
		return values, nil
	case nil:
		return []string{}, nil
	default:
		return nil, fmt.Errorf("'%s' is not an array", key)
	}
}
