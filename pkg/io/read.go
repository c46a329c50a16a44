package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/gridboard/pkg/errors"
)

// ReadJSON decodes a JSON layout from r.
//
// Unknown fields are rejected so that typos such as "col" for "cols" fail
// loudly instead of producing zero spans. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Layout, error) {
	var f file
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, wrapDecode(FormatJSON, err)
	}
	return f.layout()
}

// ReadTOML decodes a TOML layout from r. Undecoded keys are rejected.
func ReadTOML(r io.Reader) (*Layout, error) {
	var f file
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, wrapDecode(FormatTOML, err)
	}
	if extra := md.Undecoded(); len(extra) > 0 {
		return nil, errs.New(errs.ErrCodeInvalidFormat, "decode toml: unknown key %q", extra[0].String())
	}
	return f.layout()
}

// ReadYAML decodes a YAML layout from r. Unknown fields are rejected.
func ReadYAML(r io.Reader) (*Layout, error) {
	var f file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, wrapDecode(FormatYAML, err)
	}
	return f.layout()
}

// Read decodes a layout in the given format.
func Read(r io.Reader, format Format) (*Layout, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatTOML:
		return ReadTOML(r)
	case FormatYAML:
		return ReadYAML(r)
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unknown layout format %q", format)
	}
}

// Import reads the layout file at path, choosing the decoder from its
// extension.
func Import(path string) (*Layout, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	l, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}
