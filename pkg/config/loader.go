package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"

	goyaml "github.com/goccy/go-yaml"

	"github.com/macropower/namify/pkg/ui/theme"
	"github.com/macropower/namify/pkg/yaml"
)

// Validator validates configuration data against a schema.
type Validator interface {
	Validate(data any) error
}

// LoaderOpt configures a [Loader].
type LoaderOpt func(*Loader)

// WithValidator replaces the schema validator.
func WithValidator(v Validator) LoaderOpt {
	return func(l *Loader) {
		l.validator = v
	}
}

// WithErrorStyle sets the chroma style used to highlight the source in
// errors. By default the theme named by the document itself is used.
func WithErrorStyle(style string) LoaderOpt {
	return func(l *Loader) {
		l.style = style
	}
}

// Loader validates and decodes one configuration document.
type Loader struct {
	validator Validator
	path      string
	style     string
	data      []byte
}

// NewLoaderFromBytes creates a [Loader] for data.
func NewLoaderFromBytes(data []byte, opts ...LoaderOpt) (*Loader, error) {
	l := &Loader{data: data}
	for _, opt := range opts {
		opt(l)
	}

	if l.validator == nil {
		v, err := DefaultValidator()
		if err != nil {
			return nil, err
		}

		l.validator = v
	}
	if l.style == "" {
		l.style = theme.New(ThemeName(data)).Name
	}

	return l, nil
}

// NewLoaderFromFile creates a [Loader] for the file at path.
func NewLoaderFromFile(path string, opts ...LoaderOpt) (*Loader, error) {
	data, err := readConfig(path)
	if err != nil {
		return nil, err
	}

	l, err := NewLoaderFromBytes(data, opts...)
	if err != nil {
		return nil, err
	}

	l.path = path

	return l, nil
}

// Load validates the document against the schema, decodes it, fills in
// defaults and checks the remaining constraints.
func (l *Loader) Load() (*Config, error) {
	var untyped any
	if err := yaml.Unmarshal(l.data, &untyped, l.errorOpts()...); err != nil {
		return nil, l.wrap(err)
	}
	if untyped == nil {
		return nil, l.wrap(fmt.Errorf("%w: empty document", ErrInvalidConfig))
	}

	if err := l.validator.Validate(untyped); err != nil {
		return nil, l.wrap(yaml.Wrap(err, l.errorOpts()...))
	}

	c := &Config{}
	if err := yaml.Unmarshal(l.data, c, l.errorOpts()...); err != nil {
		return nil, l.wrap(err)
	}

	c.EnsureDefaults()

	if err := c.Validate(); err != nil {
		return nil, l.wrap(err)
	}

	return c, nil
}

func (l *Loader) errorOpts() []yaml.ErrorOpt {
	return []yaml.ErrorOpt{
		yaml.WithSource(l.data),
		yaml.WithStyle(l.style),
	}
}

func (l *Loader) wrap(err error) error {
	if l.path == "" {
		return err
	}

	return fmt.Errorf("%s: %w", l.path, err)
}

// Data returns the raw document.
func (l *Loader) Data() []byte {
	return l.data
}

// ThemeName reads ui.theme from a document without validating it. It
// returns "" when the value cannot be read.
func ThemeName(data []byte) string {
	var name string

	path, err := goyaml.PathString("$.ui.theme")
	if err != nil {
		return ""
	}

	if err := path.Read(bytes.NewReader(data), &name); err != nil {
		slog.Debug("could not read theme from config", slog.Any("err", err))

		return ""
	}

	return name
}

// LoadOrDefault loads the file at path, writing a default config there
// first when none exists.
func LoadOrDefault(path string, opts ...LoaderOpt) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		slog.Debug("writing default config", slog.String("path", path))

		if err := New().Write(path); err != nil {
			return nil, fmt.Errorf("write default config: %w", err)
		}
		if _, err := WriteSchema(path); err != nil {
			slog.Warn("could not write config schema", slog.Any("err", err))
		}
	}

	l, err := NewLoaderFromFile(path, opts...)
	if err != nil {
		return nil, err
	}

	return l.Load()
}

func readConfig(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s: path is a directory", path)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: unknown file state", path)
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the user.
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}
