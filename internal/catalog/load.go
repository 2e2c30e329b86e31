package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// buildFiles lists the file names looked up in a language directory, in
// order of preference.
var buildFiles = []string{"build.json", "build.yaml", "build.yml"}

// Format is the encoding of a catalog file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf guesses the format from a file name.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("catalog: unsupported file extension %q", filepath.Ext(path))
	}
}

// Parse decodes catalog data without validating it.
func Parse(data []byte, format Format) (*File, error) {
	var f File
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("catalog: decode json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("catalog: decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("catalog: unknown format %q", format)
	}
	return &f, nil
}

// LoadFile reads, validates and builds the catalog of lang from path.
func LoadFile(lang, path string) (*Catalog, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	f, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return New(lang, f)
}

// FindFile returns the build file of lang under dir.
func FindFile(dir, lang string) (string, error) {
	for _, name := range buildFiles {
		p := filepath.Join(dir, lang, name)
		_, err := os.Stat(p)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("catalog: stat %s: %w", p, err)
		}
	}
	return "", fmt.Errorf("catalog: no build file for %q in %s: %w", lang, dir, fs.ErrNotExist)
}

// LoadLang loads the catalog of lang from <dir>/<lang>/build.{json,yaml,yml}.
func LoadLang(dir, lang string) (*Catalog, error) {
	p, err := FindFile(dir, lang)
	if err != nil {
		return nil, err
	}
	return LoadFile(lang, p)
}
