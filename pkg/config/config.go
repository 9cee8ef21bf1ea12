package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/invopop/jsonschema"

	"github.com/macropower/namify/pkg/browse"
	"github.com/macropower/namify/pkg/catalog"
	"github.com/macropower/namify/pkg/ui"
	"github.com/macropower/namify/pkg/yaml"
)

const (
	APIVersion = "namify.macropower.dev/v1beta1"
	Kind       = "Configuration"
)

var (
	ErrInvalidConfig = errors.New("invalid config")

	ValidAPIVersions = []string{APIVersion}
	ValidKinds       = []string{Kind}
)

//nolint:recvcheck // Must satisfy the jsonschema interface.
type Config struct {
	// Catalog configures the remote collection client.
	Catalog *CatalogConfig `json:"catalog,omitempty" jsonschema:"title=Catalog"`
	// Search configures search behaviour.
	Search *SearchConfig `json:"search,omitempty" jsonschema:"title=Search"`
	// UI configures the terminal interface.
	UI *ui.Config `json:"ui,omitempty" jsonschema:"title=UI"`
	// APIVersion specifies the API version for this configuration.
	APIVersion string `json:"apiVersion" jsonschema:"title=API Version"`
	// Kind defines the type of configuration.
	Kind string `json:"kind" jsonschema:"title=Kind"`
}

type CatalogConfig struct {
	// Timeout bounds each request.
	Timeout *Duration `json:"timeout,omitempty" jsonschema:"title=Timeout"`
	// SuggestionRate limits suggestion requests per second. Zero disables
	// the limit.
	SuggestionRate *float64 `json:"suggestionRate,omitempty" jsonschema:"title=Suggestion Rate,minimum=0"`
	// SuggestionBurst is the number of suggestion requests allowed at once.
	SuggestionBurst *int `json:"suggestionBurst,omitempty" jsonschema:"title=Suggestion Burst,minimum=1"`
	// BaseURL is the collection endpoint.
	BaseURL string `json:"baseURL,omitempty" jsonschema:"title=Base URL,format=uri"`
	// UserAgent overrides the User-Agent header.
	UserAgent string `json:"userAgent,omitempty" jsonschema:"title=User Agent"`
}

type SearchConfig struct {
	// Debounce is the delay between the last edit of the term and the
	// refetch of the first page.
	Debounce *Duration `json:"debounce,omitempty" jsonschema:"title=Debounce"`
}

// New creates a [Config] with default values.
func New() *Config {
	c := &Config{
		APIVersion: APIVersion,
		Kind:       Kind,
	}
	c.EnsureDefaults()

	return c
}

// EnsureDefaults initializes nil fields to their default values.
func (c *Config) EnsureDefaults() {
	if c.Catalog == nil {
		c.Catalog = &CatalogConfig{}
	}
	if c.Search == nil {
		c.Search = &SearchConfig{}
	}
	if c.UI == nil {
		c.UI = &ui.Config{}
	}

	c.Catalog.EnsureDefaults()
	c.Search.EnsureDefaults()
	c.UI.EnsureDefaults()
}

func (c *CatalogConfig) EnsureDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = catalog.DefaultBaseURL
	}
	if c.Timeout == nil {
		c.Timeout = &Duration{catalog.DefaultTimeout}
	}
	if c.SuggestionRate == nil {
		r := float64(catalog.DefaultSuggestionRate)
		c.SuggestionRate = &r
	}
	if c.SuggestionBurst == nil {
		b := catalog.DefaultSuggestionBurst
		c.SuggestionBurst = &b
	}
}

func (c *SearchConfig) EnsureDefaults() {
	if c.Debounce == nil {
		c.Debounce = &Duration{browse.DefaultDebounce}
	}
}

// Validate checks constraints the schema cannot express.
func (c *Config) Validate() error {
	if !slices.Contains(ValidAPIVersions, c.APIVersion) {
		return fmt.Errorf("%w: unsupported apiVersion %q", ErrInvalidConfig, c.APIVersion)
	}
	if !slices.Contains(ValidKinds, c.Kind) {
		return fmt.Errorf("%w: unsupported kind %q", ErrInvalidConfig, c.Kind)
	}

	u, err := url.Parse(c.Catalog.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: catalog.baseURL must be an http(s) URL, got %q", ErrInvalidConfig, c.Catalog.BaseURL)
	}
	if c.Catalog.Timeout.Duration <= 0 {
		return fmt.Errorf("%w: catalog.timeout must be positive", ErrInvalidConfig)
	}
	if c.Search.Debounce.Duration < 0 {
		return fmt.Errorf("%w: search.debounce must not be negative", ErrInvalidConfig)
	}

	if err := c.UI.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

func (c Config) JSONSchemaExtend(jss *jsonschema.Schema) {
	setEnum(jss, "apiVersion", ValidAPIVersions)
	setEnum(jss, "kind", ValidKinds)
}

func setEnum(jss *jsonschema.Schema, property string, values []string) {
	prop, ok := jss.Properties.Get(property)
	if !ok {
		return
	}

	prop.Enum = make([]any, 0, len(values))
	for _, v := range values {
		prop.Enum = append(prop.Enum, v)
	}
}

// ClientOptions returns the [catalog.ClientOpt]s described by the catalog
// section.
func (c *Config) ClientOptions() []catalog.ClientOpt {
	return []catalog.ClientOpt{
		catalog.WithTimeout(c.Catalog.Timeout.Duration),
		catalog.WithUserAgent(c.Catalog.UserAgent),
		catalog.WithSuggestionLimit(*c.Catalog.SuggestionRate, *c.Catalog.SuggestionBurst),
	}
}

// BrowseOptions returns the [browse.Opt]s described by the search section.
func (c *Config) BrowseOptions() []browse.Opt {
	return []browse.Opt{
		browse.WithDebounce(c.Search.Debounce.Duration),
	}
}

// Encode serializes the config to YAML.
func (c *Config) Encode() ([]byte, error) {
	b, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	return b, nil
}

// Write writes the config to path unless a file already exists there.
func (c *Config) Write(path string) error {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.Mode().IsRegular():
		return nil
	case err == nil && info.IsDir():
		return fmt.Errorf("%s: path is a directory", path)
	case err == nil:
		return fmt.Errorf("%s: unknown file state", path)
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	b, err := c.Encode()
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, b, 0o600); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}

// GetPath returns the default config file location.
func GetPath() string {
	if xdgHome, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok && xdgHome != "" {
		return filepath.Join(xdgHome, "namify", "config.yaml")
	}

	usrHome, err := os.UserHomeDir()
	if err == nil && usrHome != "" {
		return filepath.Join(usrHome, ".config", "namify", "config.yaml")
	}

	tmpConfig := filepath.Join(os.TempDir(), "namify", "config.yaml")

	slog.Warn("could not determine user config directory, using temp path for config",
		slog.String("path", tmpConfig),
		slog.Any("err", err),
	)

	return tmpConfig
}

// Duration is a [time.Duration] written as a string such as "500ms".
type Duration struct {
	time.Duration
}

func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}

	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration: %w", err)
	}

	d.Duration = v

	return nil
}

func (Duration) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Title:       "Duration",
		Description: `A duration such as "500ms", "2s" or "1m30s".`,
		Pattern:     `^([0-9]+(\.[0-9]+)?(ns|us|µs|ms|s|m|h))+$`,
	}
}
