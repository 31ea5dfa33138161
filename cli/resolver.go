package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/lmx/lang"
	"github.com/ardnew/lmx/log"
)

// loadDefinitions is a [kong.ConfigurationLoader] for configuration files
// written in the definitions syntax, the same format the init command
// writes:
//
//	log-level = debug
//	log-format = json
//	log-pretty = false
//
// Scalars are passed to kong as-is. Lists are joined with commas, which
// kong splits back into slice flags. Dictionaries become k=v pairs joined
// with semicolons, kong's map flag syntax. A file that does not parse is
// reported and ignored so a broken configuration never prevents startup.
func loadDefinitions(r io.Reader) (kong.Resolver, error) {
	table, err := lang.ReadDefinitions(context.Background(), r)
	if err != nil {
		log.Warn("ignoring configuration file", slog.Any("error", err))

		return config{}, nil
	}

	c := make(config, len(table))

	for name, sym := range table {
		switch sym.Kind {
		case lang.KindList:
			c[name] = strings.Join(sym.Items(), ",")

		case lang.KindDictionary:
			pairs := sym.Pairs()
			kv := make([]string, 0, len(pairs))

			for _, k := range slices.Sorted(maps.Keys(pairs)) {
				kv = append(kv, k+"="+pairs[k])
			}

			c[name] = strings.Join(kv, ";")

		default:
			c[name] = sym.String()
		}
	}

	return c, nil
}

// loadYAML is a [kong.ConfigurationLoader] for YAML configuration files
// holding a single mapping of flag names to values.
func loadYAML(r io.Reader) (kong.Resolver, error) {
	var doc map[string]any

	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return config{}, nil
		}

		return nil, err
	}

	c := make(config, len(doc))

	for name, value := range doc {
		c[name] = yamlValue(value)
	}

	return c, nil
}

// yamlValue converts a decoded YAML value to a form kong can parse.
// Kong requires numbers as strings.
func yamlValue(value any) any {
	switch v := value.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		items := make([]string, len(v))
		for i, item := range v {
			items[i] = toString(yamlValue(item))
		}

		return strings.Join(items, ",")
	}

	return value
}

func toString(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	}

	return strings.TrimSpace(yamlString(v))
}

func yamlString(v any) string {
	data, err := yaml.Marshal(v)
	if err != nil {
		return ""
	}

	return string(data)
}

// config implements [kong.Resolver] over a flat map of flag values.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver]. Flag names are looked up as written
// (log-level) and with underscores (log_level).
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	for _, name := range []string{
		flag.Name,
		strings.ReplaceAll(flag.Name, "-", "_"),
	} {
		if value, ok := c[name]; ok {
			return value, nil
		}
	}

	return nil, nil
}
