package output

import (
	"bytes"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

type (
	// RenderFunc is the protype of human format renderer functions.
	RenderFunc func() string

	// Renderer hosts the renderer options and data, and exposes the rendering
	// method.
	Renderer struct {
		Output        string
		Data          interface{}
		HumanRenderer RenderFunc
	}
)

var (
	indent = "    "
)

// Sprint returns the string representation of the data in one of the
// supported format (human, json, yaml).
//
// The human format uses the HumanRenderer if set, and falls back to
// json.
func (t Renderer) Sprint() (string, error) {
	format, err := New(t.Output)
	if err != nil {
		return "", err
	}
	switch format {
	case JSON:
		b, err := json.MarshalIndent(t.Data, "", indent)
		if err != nil {
			return "", err
		}
		return string(b) + "\n", nil
	case YAML:
		var b bytes.Buffer
		enc := yaml.NewEncoder(&b)
		enc.SetIndent(2)
		if err := enc.Encode(t.Data); err != nil {
			return "", err
		}
		if err := enc.Close(); err != nil {
			return "", err
		}
		return b.String(), nil
	default:
		if t.HumanRenderer != nil {
			return t.HumanRenderer(), nil
		}
		b, err := json.MarshalIndent(t.Data, "", indent)
		if err != nil {
			return "", err
		}
		return string(b) + "\n", nil
	}
}

// Fprint writes the representation of the data in one of the supported
// format to w.
func (t Renderer) Fprint(w io.Writer) error {
	s, err := t.Sprint()
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, s)
	return err
}
