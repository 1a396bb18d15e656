package config

import (
	"encoding/json"
	"io"
	"sort"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/pkg/errors"
)

// jsonFile resolves flags from a flat JSON object. Keys are flag names as
// typed on the command line ("max-pages"); the underscore spelling
// ("max_pages") is accepted too. Keys that match no flag are an error so a
// misspelled setting never falls back to its default unnoticed.
type jsonFile struct {
	values map[string]any
}

// loadJSON is the kong.ConfigurationLoader behind --config.
func loadJSON(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := json.NewDecoder(r).Decode(&values); err != nil {
		return nil, errors.Wrap(err, "decode config file")
	}
	return &jsonFile{values: values}, nil
}

func (f *jsonFile) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if v, ok := f.values[flag.Name]; ok {
		return v, nil
	}
	if v, ok := f.values[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return v, nil
	}
	return nil, nil
}

func (f *jsonFile) Validate(app *kong.Application) error {
	known := map[string]bool{}
	for _, group := range app.AllFlags(false) {
		for _, flag := range group {
			known[flag.Name] = true
			known[strings.ReplaceAll(flag.Name, "-", "_")] = true
		}
	}

	var unknown []string
	for key := range f.values {
		if !known[key] {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return errors.Errorf("config file: unknown keys %s", strings.Join(unknown, ", "))
}
