// Package yaml resolves conversion modes from YAML configuration files.
//
// A config directory holds one file per mode, named config_<mode>.yaml, and
// a default config.yaml used when the mode is empty or has no file of its
// own:
//
//	media_type: application/epub+zip
//	transformation: epub.tmpl
//	inline_images: true
//	archive: true
package yaml

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/fwojciec/docconv"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file used when a mode has no file of its own.
const DefaultFile = "config.yaml"

// DefaultMediaType is applied when a config file omits media_type.
const DefaultMediaType = "text/html"

// Ensure ConfigService implements docconv.ConfigService at compile time.
var _ docconv.ConfigService = (*ConfigService)(nil)

// file is the on-disk shape of a mode config.
type file struct {
	MediaType      string `yaml:"media_type"`
	Transformation string `yaml:"transformation"`
	InlineImages   bool   `yaml:"inline_images"`
	Archive        bool   `yaml:"archive"`
	Extractor      string `yaml:"extractor"`
	Render         bool   `yaml:"render"`
}

func (f *file) defaults() {
	if f.MediaType == "" {
		f.MediaType = DefaultMediaType
	}
	if f.Extractor == "" {
		f.Extractor = docconv.ExtractorRegexp
	}
}

// ConfigService reads mode configs from a file system.
type ConfigService struct {
	fsys fs.FS
}

// NewConfigService creates a ConfigService reading from fsys.
func NewConfigService(fsys fs.FS) *ConfigService {
	return &ConfigService{fsys: fsys}
}

// FindConfig returns the config for mode, falling back to DefaultFile.
func (s *ConfigService) FindConfig(mode string) (*docconv.Config, error) {
	if strings.ContainsAny(mode, `/\`) || strings.Contains(mode, "..") {
		return nil, docconv.Errorf(docconv.EINVALID, "invalid mode %q", mode)
	}

	names := []string{DefaultFile}
	if mode != "" {
		names = []string{"config_" + mode + ".yaml", DefaultFile}
	}

	for _, name := range names {
		data, err := fs.ReadFile(s.fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		} else if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		return parse(name, mode, data)
	}

	return nil, docconv.Errorf(docconv.ENOTFOUND, "no configuration for mode %q", mode)
}

func parse(name, mode string, data []byte) (*docconv.Config, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, docconv.Errorf(docconv.EINVALID, "parsing %s: %v", name, err)
	}
	f.defaults()

	cfg := &docconv.Config{
		Mode:           mode,
		MediaType:      f.MediaType,
		Transformation: f.Transformation,
		InlineImages:   f.InlineImages,
		Archive:        f.Archive,
		Extractor:      f.Extractor,
		Render:         f.Render,
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return cfg, nil
}
