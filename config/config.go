// Package config loads sigkit.yaml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/sigkit/maven"
)

// DefaultFileName is looked up in the working directory when no config file
// is given explicitly.
const DefaultFileName = "sigkit.yaml"

const (
	FilterPublic = "public"
	FilterAll    = "all"

	FormatText = "text"
	FormatJSON = "json"
)

type Config struct {
	Annotations Annotations `yaml:"annotations"`
	// Names is a names file for names.FileOracle.
	Names string `yaml:"names,omitempty"`
	// Workers bounds parallel compilation; 0 means GOMAXPROCS.
	Workers int    `yaml:"workers,omitempty"`
	Filter  string `yaml:"filter"`
	Format  string `yaml:"format"`
	// DefaultsPrimitivesOnly restricts default argument values to primitives.
	DefaultsPrimitivesOnly bool `yaml:"defaultsPrimitivesOnly"`
}

// Annotations lists external annotation sources. Archives are consulted
// first, then jars fetched from Maven, then directories.
type Annotations struct {
	Archives    []string `yaml:"archives,omitempty"`
	Directories []string `yaml:"directories,omitempty"`
	// Maven holds coordinates of annotation jars to download.
	Maven []string `yaml:"maven,omitempty"`
	// CacheDir receives the downloaded jars. Empty means the user cache
	// directory.
	CacheDir string `yaml:"cacheDir,omitempty"`
}

// Coordinates parses Maven.
func (a *Annotations) Coordinates() ([]maven.Coordinate, error) {
	var errs []error
	coords := make([]maven.Coordinate, 0, len(a.Maven))
	for _, s := range a.Maven {
		c, err := maven.ParseCoordinate(s)
		if err != nil {
			errs = append(errs, fmt.Errorf("annotations.maven: %w", err))
			continue
		}
		coords = append(coords, c)
	}
	return coords, errors.Join(errs...)
}

func Default() *Config {
	return &Config{
		Filter:                 FilterPublic,
		Format:                 FormatText,
		DefaultsPrimitivesOnly: true,
	}
}

// Load reads the file at path over the defaults. Relative paths inside it
// are resolved against the file's directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.resolve(filepath.Dir(path))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadOptional behaves like Load but returns the defaults when path is the
// default file name and it does not exist.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) && filepath.Base(path) == DefaultFileName {
		return Default(), nil
	}
	return cfg, err
}

func (c *Config) resolve(dir string) {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	for i, p := range c.Annotations.Archives {
		c.Annotations.Archives[i] = abs(p)
	}
	for i, p := range c.Annotations.Directories {
		c.Annotations.Directories[i] = abs(p)
	}
	c.Annotations.CacheDir = abs(c.Annotations.CacheDir)
	c.Names = abs(c.Names)
}

func (c *Config) Validate() error {
	var errs []error
	switch c.Filter {
	case FilterPublic, FilterAll:
	default:
		errs = append(errs, fmt.Errorf("filter: unknown value %q", c.Filter))
	}
	switch c.Format {
	case FormatText, FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("format: unknown value %q", c.Format))
	}
	if _, err := c.Annotations.Coordinates(); err != nil {
		errs = append(errs, err)
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers: must not be negative, got %d", c.Workers))
	}
	return errors.Join(errs...)
}
