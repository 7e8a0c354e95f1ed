package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML keys.
const (
	keyOutput    = "output"
	keyLogging   = "logging"
	keyStore     = "store"
	keyCache     = "cache"
	keyInflux    = "influx"
	keyReport    = "report"
	keyLocations = "locations"
)

// ShallowMergeYAML applies the top-level sections of the YAML file at
// overlayPath onto target. A section present in the overlay replaces the
// whole section in target; absent sections and unknown keys are left
// alone.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	for key, node := range overlay {
		if err = decodeSection(target, key, &node); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}
	return nil
}

// decodeSection decodes node into a zero value of the section's type, so
// maps in the overlay replace rather than merge into the target's maps.
func decodeSection(target *Config, key string, node *yaml.Node) error {
	switch key {
	case keyOutput:
		return replace(node, &target.Output)
	case keyLogging:
		return replace(node, &target.Logging)
	case keyStore:
		return replace(node, &target.Store)
	case keyCache:
		return replace(node, &target.Cache)
	case keyInflux:
		return replace(node, &target.Influx)
	case keyReport:
		return replace(node, &target.Report)
	case keyLocations:
		return replace(node, &target.Locations)
	default:
		return nil
	}
}

func replace[T any](node *yaml.Node, dst *T) error {
	var v T
	if err := node.Decode(&v); err != nil {
		return err
	}
	*dst = v
	return nil
}
