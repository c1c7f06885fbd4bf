// Package config loads the ttlex CLI configuration from ttlex.yaml,
// ttlex.toml or ttlex.json.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/motoko-tools/ttlex/application/preprocess"
	"github.com/motoko-tools/ttlex/hostfuncs"
)

// FileNames are searched in order by Find.
var FileNames = []string{"ttlex.yaml", "ttlex.yml", "ttlex.toml", "ttlex.json"}

// validate is shared; building a validator is expensive.
var validate = validator.New()

// Config is the decoded configuration file.
type Config struct {
	// Format is json, msgpack, cbor or text.
	Format string `json:"format" validate:"omitempty,oneof=json msgpack cbor text"`
	// Wasm is an optional guest binary. Empty runs the lexer in process.
	Wasm         string     `json:"wasm" validate:"omitempty,file"`
	Jobs         int        `json:"jobs" validate:"min=0,max=256"`
	LogLevel     string     `json:"log_level" validate:"omitempty,oneof=debug info warn error"`
	Color        *bool      `json:"color"`
	MaxInputSize int        `json:"max_input_size" validate:"min=1"`
	Validate     bool       `json:"validate"`
	Preprocess   Preprocess `json:"preprocess"`
}

// Preprocess mirrors the preprocess package options.
type Preprocess struct {
	Enabled        bool  `json:"enabled"`
	TabWidth       *int  `json:"tab_width" validate:"omitempty,min=0,max=16"`
	TrimTrailing   *bool `json:"trim_trailing"`
	StripInvisible *bool `json:"strip_invisible"`
	Normalize      *bool `json:"normalize"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Format:       "json",
		LogLevel:     "warn",
		MaxInputSize: hostfuncs.DefaultMaxRequestSize,
	}
}

// Options converts the section into preprocess options. Unset fields keep
// the preprocess defaults.
func (p Preprocess) Options() []preprocess.Option {
	var opts []preprocess.Option
	if p.TabWidth != nil {
		opts = append(opts, preprocess.WithTabWidth(*p.TabWidth))
	}
	if p.TrimTrailing != nil {
		opts = append(opts, preprocess.WithTrimTrailing(*p.TrimTrailing))
	}
	if p.StripInvisible != nil {
		opts = append(opts, preprocess.WithStripInvisible(*p.StripInvisible))
	}
	if p.Normalize != nil {
		opts = append(opts, preprocess.WithNormalize(*p.Normalize))
	}
	return opts
}

// Find returns the first configuration file in dir, or "" when none exists.
func Find(dir string) string {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Load reads path, decoding by extension, on top of Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	raw := map[string]any{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	case ".toml":
		err = toml.Unmarshal(data, &raw)
	case ".json":
		err = json.Unmarshal(data, &raw)
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	cfg := Default()
	if err := ValidateConfig(raw, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// ValidateConfig decodes a generic map into target through JSON, then runs
// the struct's validate tags.
func ValidateConfig(raw map[string]any, target any) error {
	jsonBytes, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to marshal config map: %w", err)
	}
	dec := json.NewDecoder(strings.NewReader(string(jsonBytes)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return fmt.Errorf("failed to unmarshal config into struct: %w", err)
	}
	return Validate(target)
}

// Validate runs the validate tags of a decoded or flag-merged Config.
func Validate(target any) error {
	if err := validate.Struct(target); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
