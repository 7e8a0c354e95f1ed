package config

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownKey is returned for a dotted key that names no setting.
var ErrUnknownKey = errors.New("unknown configuration key")

const redacted = "********"

func (c *Config) tree() (map[string]any, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err = yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns the value at a dotted key such as "store.driver". Sections
// are returned as maps.
func (c *Config) Get(key string) (any, error) {
	t, err := c.tree()
	if err != nil {
		return nil, err
	}

	var cur any = t
	for _, part := range strings.Split(key, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
		if cur, ok = m[part]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
	}
	return cur, nil
}

// Set parses value as a YAML scalar and stores it at an existing dotted
// leaf key.
func (c *Config) Set(key, value string) error {
	t, err := c.tree()
	if err != nil {
		return err
	}

	parts := strings.Split(key, ".")
	m := t
	for _, part := range parts[:len(parts)-1] {
		next, ok := m[part].(map[string]any)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
		m = next
	}
	leaf := parts[len(parts)-1]
	if old, ok := m[leaf]; !ok || isSection(old) {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	var parsed any
	if err = yaml.Unmarshal([]byte(value), &parsed); err != nil {
		return fmt.Errorf("parsing value for %s: %w", key, err)
	}
	m[leaf] = parsed

	data, err := yaml.Marshal(t)
	if err != nil {
		return err
	}
	next := Config{configPath: c.configPath}
	if err = yaml.Unmarshal(data, &next); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*c = next
	return nil
}

// List flattens the configuration into dotted keys and display values.
// Secrets are redacted.
func (c *Config) List() (map[string]string, error) {
	t, err := c.tree()
	if err != nil {
		return nil, err
	}
	out := map[string]string{}
	flatten("", t, out)
	return out, nil
}

// SortedKeys returns the keys of a List result in order.
func SortedKeys(m map[string]string) []string {
	return slices.Sorted(maps.Keys(m))
}

func flatten(prefix string, v any, out map[string]string) {
	m, ok := v.(map[string]any)
	if !ok {
		out[prefix] = formatValue(prefix, v)
		return
	}
	for k, child := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		flatten(key, child, out)
	}
}

func formatValue(key string, v any) string {
	s := fmt.Sprint(v)
	if s != "" && isSecret(key) {
		return redacted
	}
	return s
}

func isSecret(key string) bool {
	return strings.HasSuffix(key, "token") || strings.HasSuffix(key, "dsn")
}

func isSection(v any) bool {
	_, ok := v.(map[string]any)
	return ok
}
