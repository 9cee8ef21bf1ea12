package yaml

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Validator checks decoded YAML against a JSON schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles schemaData, registered under url.
func NewValidator(url string, schemaData []byte) (*Validator, error) {
	var doc any
	if err := json.Unmarshal(schemaData, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}

	s, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	return &Validator{schema: s}, nil
}

// Validate checks data, which should come from decoding YAML into an
// untyped value. Failures are returned as [*Error] pointing at the most
// specific failing location.
func (v *Validator) Validate(data any) error {
	err := v.schema.Validate(data)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return fmt.Errorf("schema validation: %w", err)
	}

	cause := deepestCause(verr)

	return &Error{
		Err:     errors.New(cause.ErrorKind.LocalizedString(printer)),
		Path:    PathFromLocation(cause.InstanceLocation),
		Context: DefaultContext,
	}
}

// deepestCause returns the leaf cause with the longest instance location.
func deepestCause(err *jsonschema.ValidationError) *jsonschema.ValidationError {
	best := err
	for _, c := range err.Causes {
		if d := deepestCause(c); best == err || len(d.InstanceLocation) > len(best.InstanceLocation) {
			best = d
		}
	}

	return best
}

// PathFromLocation converts a JSON pointer style location into a
// [*yaml.Path]. Numeric parts become sequence indexes.
func PathFromLocation(location []string) *yaml.Path {
	b := (&yaml.PathBuilder{}).Root()
	for _, part := range location {
		if i, err := strconv.ParseUint(part, 10, 0); err == nil {
			b = b.Index(uint(i))

			continue
		}

		b = b.Child(part)
	}

	return b.Build()
}
