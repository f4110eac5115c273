package docconv

import (
	"context"
	"io"
	"net/url"
	"strings"
)

// Extractor names accepted in Config.Extractor.
const (
	ExtractorRegexp = "regexp"
	ExtractorDOM    = "dom"
)

// Config is the resolved configuration of a conversion mode.
type Config struct {
	// Mode is the name the configuration was resolved from.
	Mode string `json:"mode"`

	// MediaType is the media type of the produced output.
	MediaType string `json:"mediaType"`

	// Transformation identifies the transformation program.
	Transformation string `json:"transformation"`

	// InlineImages enables fetching images and embedding them as data URIs.
	InlineImages bool `json:"inlineImages"`

	// Archive routes fan-out outputs into entries of a zip archive.
	Archive bool `json:"archive"`

	// Extractor selects how image references are found (regexp or dom).
	Extractor string `json:"extractor"`

	// Render fetches the source through a headless browser.
	Render bool `json:"render"`
}

// Validate returns an error if the config contains invalid fields.
func (c *Config) Validate() error {
	if c.Transformation == "" {
		return Errorf(EINVALID, "config transformation required")
	}
	if c.MediaType == "" {
		return Errorf(EINVALID, "config media type required")
	}
	switch c.Extractor {
	case "", ExtractorRegexp, ExtractorDOM:
	default:
		return Errorf(EINVALID, "unknown extractor %q", c.Extractor)
	}
	return nil
}

// ConfigService resolves conversion modes to configurations.
type ConfigService interface {
	// FindConfig returns the configuration for mode. An empty mode, or a
	// mode without its own configuration, resolves to the default one.
	// Returns ENOTFOUND if no configuration exists at all.
	FindConfig(mode string) (*Config, error)
}

// Request is one conversion request.
type Request struct {
	Source string
	Token  string
	Config *Config
	Params map[string]string
}

// Validate returns an error if the request contains invalid fields.
func (r *Request) Validate() error {
	if r.Source == "" {
		return Errorf(EINVALID, "source URL required")
	}
	u, err := url.Parse(r.Source)
	if err != nil {
		return Errorf(EINVALID, "invalid source URL: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Errorf(EINVALID, "source URL must use http or https")
	}
	if r.Config == nil {
		return Errorf(EINVALID, "config required")
	}
	if err := r.Config.Validate(); err != nil {
		return err
	}
	return ValidateParams(r.Params)
}

// ValidateParams checks that every parameter name is non-empty and has no
// whitespace. Values are not inspected.
func ValidateParams(params map[string]string) error {
	for name := range params {
		if name == "" {
			return Errorf(EINVALID, "parameter name required")
		}
		if strings.ContainsAny(name, " \t\r\n") {
			return Errorf(EINVALID, "invalid parameter name %q", name)
		}
	}
	return nil
}

// Converter runs a conversion request.
type Converter interface {
	// Convert writes the output of req to w. Nothing is written to w when
	// the conversion fails.
	Convert(ctx context.Context, req *Request, w io.Writer) error
}
