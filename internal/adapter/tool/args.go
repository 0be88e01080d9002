package tool

import (
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/mitchellh/mapstructure"
)

// parametersOf reflects the function parameter schema of an argument struct.
func parametersOf(v any) *jsonschema.Schema {
	r := &jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: true,
	}
	s := r.Reflect(v)
	return &jsonschema.Schema{
		Type:       s.Type,
		Properties: s.Properties,
		Required:   s.Required,
	}
}

// decodeArgs copies string arguments into out using its json tags.
func decodeArgs(args map[string]string, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(args); err != nil {
		return fmt.Errorf("decode arguments: %w", err)
	}
	return nil
}

func requireArg(value, name string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("missing argument %q", name)
	}
	return value, nil
}
