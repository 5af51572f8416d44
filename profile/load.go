package profile

import (
	"fmt"
	"io"
	"os"

	"github.com/soypat/sweep"
	"gopkg.in/yaml.v3"
)

// Decode reads a template stored as YAML:
//
//	vertices:  [{x: 0, y: 0, z: -1}, ...]
//	normals:   [{x: 0, y: 1, z: 0}, ...]
//	uvs:       [{x: 0, y: 0}, ...]
//	triangles: [0, 1, 2, ...]
//
// The decoded template is validated.
func Decode(r io.Reader) (*sweep.Template, error) {
	var t sweep.Template
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("decoding template: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Load reads a YAML template from a file. See Decode.
func Load(path string) (*sweep.Template, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	t, err := Decode(fp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Encode writes t as YAML in the format read by Decode.
func Encode(w io.Writer, t *sweep.Template) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return err
	}
	return enc.Close()
}
