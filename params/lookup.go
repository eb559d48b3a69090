package params

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ChainLookup consults each lookup in order and returns the first non-empty value.
func ChainLookup(lookups ...LookupFunc) LookupFunc {
	return func(name string) (string, bool) {
		for _, lookup := range lookups {
			if lookup == nil {
				continue
			}
			if v, ok := lookup(name); ok && v != "" {
				return v, true
			}
		}
		return "", false
	}
}

// EnvLookup reads the process environment.
func EnvLookup() LookupFunc {
	return os.LookupEnv
}

// MapLookup serves values from an in-memory map.
func MapLookup(values map[string]string) LookupFunc {
	return func(name string) (string, bool) {
		v, ok := values[name]
		return v, ok
	}
}

// FileLookup loads a flat YAML map of input names to values, e.g.
//
//	DOMAIN_NAME: acme
//	CFG_HOME: /u01/config
//	NM_MODE: plain
func FileLookup(path string) (LookupFunc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parameters file: %w", err)
	}
	return parseParameterFile(data)
}

func parseParameterFile(data []byte) (LookupFunc, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse parameters file: %w", err)
	}

	values := make(map[string]string, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case nil:
			continue
		case string:
			values[k] = val
		case bool, int, int64, float64:
			values[k] = fmt.Sprint(val)
		default:
			return nil, fmt.Errorf("parameter %s: expected a scalar value, got %T", k, v)
		}
	}
	return MapLookup(values), nil
}
