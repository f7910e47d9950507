package output

import (
	"fmt"
)

// Type encodes as an integer one of the supported output formats
// (human, json, yaml)
type Type int

const (
	// Human encodes the prefered human friendly output format
	Human Type = iota
	// JSON encodes the json output format
	JSON
	// YAML encodes the yaml output format
	YAML
)

var toString = map[Type]string{
	Human: "human",
	JSON:  "json",
	YAML:  "yaml",
}

var toID = map[string]Type{
	"":      Human,
	"auto":  Human,
	"human": Human,
	"json":  JSON,
	"yaml":  YAML,
	"yml":   YAML,
}

func (t Type) String() string {
	return toString[t]
}

// New returns the integer value of the output format
func New(s string) (Type, error) {
	t, ok := toID[s]
	if !ok {
		return Human, fmt.Errorf("unsupported output format: %s", s)
	}
	return t, nil
}
