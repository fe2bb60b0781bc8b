// Package config loads flag values from YAML files.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// YAML is a kong.ConfigurationLoader. Keys are flag names, with '-' or
// '_' as separator; flags of a sub-command may also be nested under the
// command name:
//
//	log-level: debug
//	fit:
//	  width: 720
//	  fill: "#202020"
func YAML(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("could not parse configuration: %w", err)
	}

	return kong.ResolverFunc(func(kctx *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		if parent != nil && parent.Command != nil {
			if sub, ok := values[parent.Command.Name].(map[string]any); ok {
				if v, ok := lookup(sub, flag.Name); ok {
					return toFlagValue(v, flag)
				}
			}
		}
		if v, ok := lookup(values, flag.Name); ok {
			return toFlagValue(v, flag)
		}
		return nil, nil
	}), nil
}

func lookup(values map[string]any, name string) (any, bool) {
	for _, key := range []string{name, strings.ReplaceAll(name, "-", "_")} {
		if v, ok := values[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// toFlagValue renders a YAML value the way it would be typed on the
// command line.
func toFlagValue(v any, flag *kong.Flag) (any, error) {
	switch v := v.(type) {
	case map[string]any:
		return nil, fmt.Errorf("configuration key %q must not be a mapping", flag.Name)
	case []any:
		sep := ","
		if flag.Tag != nil && flag.Tag.Sep != 0 && flag.Tag.Sep != -1 {
			sep = string(flag.Tag.Sep)
		}
		items := make([]string, 0, len(v))
		for _, item := range v {
			items = append(items, fmt.Sprint(item))
		}
		return strings.Join(items, sep), nil
	default:
		return fmt.Sprint(v), nil
	}
}
