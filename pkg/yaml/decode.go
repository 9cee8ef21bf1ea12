// Package yaml reads and writes namify configuration documents.
//
// Errors returned by this package carry the YAML position they refer to, and
// render a highlighted excerpt of the source once [WithSource] is applied.
package yaml

import (
	"bytes"
	"errors"
	"io"

	"github.com/goccy/go-yaml"
)

type Decoder struct {
	d *yaml.Decoder
}

// NewDecoder returns a [Decoder] reading from r. Additional goccy decode
// options are appended to the defaults.
func NewDecoder(r io.Reader, opts ...yaml.DecodeOption) *Decoder {
	return &Decoder{
		d: yaml.NewDecoder(r, opts...),
	}
}

// Decode reads the next document into v. Syntax and type errors are
// returned as [*Error] with the offending token attached.
func (d *Decoder) Decode(v any) error {
	err := d.d.Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return err //nolint:wrapcheck // EOF is returned as-is.
	}

	var yamlErr yaml.Error
	if errors.As(err, &yamlErr) {
		return &Error{
			Err:     errors.New(yamlErr.GetMessage()),
			Token:   yamlErr.GetToken(),
			Context: DefaultContext,
		}
	}

	return err //nolint:wrapcheck // Not a YAML error.
}

// Unmarshal decodes data into v, attaching data as the error source.
func Unmarshal(data []byte, v any, opts ...ErrorOpt) error {
	err := NewDecoder(bytes.NewReader(data)).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}

	return Wrap(err, append([]ErrorOpt{WithSource(data)}, opts...)...)
}
