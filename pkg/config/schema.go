package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"reflect"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"

	"github.com/macropower/namify/pkg/yaml"
)

// SchemaID is the identifier of the configuration schema.
const SchemaID = "https://namify.macropower.dev/config.v1beta1.json"

var loadValidator = sync.OnceValues(func() (*yaml.Validator, error) {
	b, err := Schema()
	if err != nil {
		return nil, err
	}

	return yaml.NewValidator(SchemaID, b)
})

// Schema reflects the JSON schema for [Config].
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{
		ExpandedStruct: true,
		Namer:          definitionName,
	}

	s := r.Reflect(&Config{})
	s.ID = SchemaID
	s.Title = "namify configuration"

	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	return b, nil
}

// definitionName qualifies types from other packages with their package
// name, so ui.Config and the common and searchbar KeyBinds get distinct
// definitions.
func definitionName(t reflect.Type) string {
	if t.Name() == "" || t.PkgPath() == "" || t.PkgPath() == reflect.TypeFor[Config]().PkgPath() {
		return ""
	}

	pkg := path.Base(t.PkgPath())

	return strings.ToUpper(pkg[:1]) + pkg[1:] + t.Name()
}

// DefaultValidator returns the validator for [Config] documents.
func DefaultValidator() (*yaml.Validator, error) {
	v, err := loadValidator()
	if err != nil {
		return nil, fmt.Errorf("load config schema: %w", err)
	}

	return v, nil
}

// WriteSchema writes the schema next to the config at configPath, so
// editors can pick it up with a yaml-language-server modeline.
func WriteSchema(configPath string) (string, error) {
	b, err := Schema()
	if err != nil {
		return "", err
	}

	schemaPath := filepath.Join(filepath.Dir(configPath), "config.v1beta1.json")
	if err := os.MkdirAll(filepath.Dir(schemaPath), 0o700); err != nil {
		return "", fmt.Errorf("create directories: %w", err)
	}
	if err := os.WriteFile(schemaPath, b, 0o600); err != nil {
		return "", fmt.Errorf("write schema: %w", err)
	}

	return schemaPath, nil
}
