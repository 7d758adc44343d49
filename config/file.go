package config

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// ConfigPathFromArgs returns the value of -config/--config in args without
// parsing the other flags.
func ConfigPathFromArgs(args []string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		name := strings.TrimLeft(arg, "-")
		if len(name) == len(arg) {
			continue
		}
		if v := strings.TrimPrefix(name, "config="); v != name {
			return v
		}
		if name == "config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// Load applies the JSON settings file at path to fs. Keys are flag names,
// arrays feed repeatable flags one element at a time. Call it before
// fs.Parse so the command line overrides the file.
func Load(fs *flag.FlagSet, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to read config file")
	}

	var values map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err = dec.Decode(&values); err != nil {
		return errors.Wrapf(err, "failed to parse config file %s", path)
	}

	for name, v := range values {
		if name == "config" {
			continue
		}
		if fs.Lookup(name) == nil {
			return errors.Errorf("config file %s: unknown setting %q", path, name)
		}
		items, ok := v.([]interface{})
		if !ok {
			items = []interface{}{v}
		}
		for _, item := range items {
			if err = fs.Set(name, fmt.Sprint(item)); err != nil {
				return errors.Wrapf(err, "config file %s: %s", path, name)
			}
		}
	}
	return nil
}
