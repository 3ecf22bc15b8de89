// Package config decodes the small YAML settings document that
// parameterises the cue/cutter pipeline: genre aliases, the assumed cue
// sheet text encoding, and the cutter's output filename template.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the pipeline configuration.
type Config struct {
	// GenreAliases maps a free-text genre string (as it might appear in a
	// TCON/"TCO" frame after refinement parsing) onto the name this
	// pipeline should use instead, e.g. "Hiphop" -> "Hip-Hop".
	GenreAliases map[string]string `yaml:"genre_aliases"`

	// CueEncoding names the text encoding a bare cue sheet (no BOM) should
	// be assumed to use. "iso-8859-1" and "utf-8" are recognised; anything
	// else is a configuration error.
	CueEncoding string `yaml:"cue_encoding"`

	// OutputTemplate is a filename template for cut tracks, with `{track}`
	// and `{title}` placeholders substituted by cmd/cuetag.
	OutputTemplate string `yaml:"output_template"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		GenreAliases:   map[string]string{},
		CueEncoding:    "iso-8859-1",
		OutputTemplate: "{track} - {title}.mp3",
	}
}

// Load reads and decodes a YAML configuration file, applying Default()'s
// values for any field the file leaves unset.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %q: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %q: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.CueEncoding {
	case "iso-8859-1", "utf-8":
	default:
		return fmt.Errorf("unrecognised cue_encoding %q", c.CueEncoding)
	}
	if c.OutputTemplate == "" {
		return fmt.Errorf("output_template must not be empty")
	}
	return nil
}

// ResolveGenre applies GenreAliases to a genre name, returning name
// unchanged if no alias is configured for it.
func (c *Config) ResolveGenre(name string) string {
	if alias, ok := c.GenreAliases[name]; ok {
		return alias
	}
	return name
}
