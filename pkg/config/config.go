// Package config loads the optional .ssphys.toml settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/charmap"

	"github.com/odvcencio/ssphys/pkg/report"
)

// FileName is looked up in the working directory when no path is given.
const FileName = ".ssphys.toml"

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds tool-wide settings.
type Config struct {
	LogLevel      string `toml:"log_level"`
	Color         string `toml:"color"`
	AcceptUnknown bool   `toml:"accept_unknown"`
	// MaxChainHops bounds chain walks; 0 derives the bound from file size.
	MaxChainHops int    `toml:"max_chain_hops"`
	XMLIndent    string `toml:"xml_indent"`
	// DatabaseRoot is the data directory used to find names.dat and the
	// targets of cross-file links. Empty means the directory around each
	// inspected file.
	DatabaseRoot string `toml:"database_root"`
	// CodePage is the Windows code page text fields were written in.
	CodePage int `toml:"code_page"`
}

// Default returns the settings used when no file exists.
func Default() *Config {
	return &Config{
		LogLevel:  "warn",
		Color:     ColorAuto,
		XMLIndent: "  ",
		CodePage:  report.DefaultCodePage,
	}
}

// Load reads the config at path, or FileName in the working directory when
// path is empty. A missing file yields the defaults; keys absent from the
// file keep their default values.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = FileName
	}
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config %s: %w", filepath.Clean(path), err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("read config %s: unknown keys %s", filepath.Clean(path), strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", filepath.Clean(path), err)
	}
	return cfg, nil
}

// Validate rejects values the tool cannot act on.
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color %q: want %s, %s or %s", c.Color, ColorAuto, ColorAlways, ColorNever)
	}
	if c.MaxChainHops < 0 {
		return fmt.Errorf("max_chain_hops %d: must not be negative", c.MaxChainHops)
	}
	if _, err := c.Charset(); err != nil {
		return err
	}
	return nil
}

// Charset returns the character set of CodePage.
func (c *Config) Charset() (*charmap.Charmap, error) {
	cs, err := report.Charset(c.CodePage)
	if err != nil {
		return nil, fmt.Errorf("code_page: %w", err)
	}
	return cs, nil
}

// Level parses LogLevel.
func (c *Config) Level() (logrus.Level, error) {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return lvl, nil
}
