package static

import (
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// LoadYAML reads a menu from a YAML file.
func LoadYAML(path string) (Menu, error) {
	f, err := os.Open(path)
	if err != nil {
		return Menu{}, fmt.Errorf("failed to open menu: %w", err)
	}
	defer f.Close()

	menu, err := DecodeYAML(f)
	if err != nil {
		return Menu{}, fmt.Errorf("%s: %w", path, err)
	}
	for i := range menu.Nodes {
		if menu.Nodes[i].Source == "" {
			menu.Nodes[i].Source = path
		}
	}
	return menu, nil
}

// DecodeYAML parses a menu document.
func DecodeYAML(r io.Reader) (Menu, error) {
	var raw map[string]any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if err == io.EOF {
			return Menu{}, fmt.Errorf("empty menu document")
		}
		return Menu{}, fmt.Errorf("failed to parse yaml: %w", err)
	}

	var menu Menu
	if err := Decode(raw, &menu); err != nil {
		return Menu{}, err
	}
	return menu, nil
}

// Decode converts loosely typed data (YAML maps, frontmatter) into a declaration.
// A validation may be written as a bare kind ("validate: alpha").
func Decode(input any, target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       validationHook,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           target,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := dec.Decode(input); err != nil {
		return fmt.Errorf("invalid menu declaration: %w", err)
	}
	return nil
}

var validationType = reflect.TypeOf(Validation{})

func validationHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}
	if to != validationType && !(to.Kind() == reflect.Pointer && to.Elem() == validationType) {
		return data, nil
	}
	return map[string]any{"kind": data}, nil
}
