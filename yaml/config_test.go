package yaml_test

import (
	"io/fs"
	"os"
	"testing"
	"testing/fstest"

	"github.com/fwojciec/docconv"
	"github.com/fwojciec/docconv/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(files map[string]string) *yaml.ConfigService {
	fsys := fstest.MapFS{}
	for name, content := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return yaml.NewConfigService(fsys)
}

func TestConfigService_FindConfig(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"config.yaml": "transformation: html.tmpl\ninline_images: true\n",
		"config_epub.yaml": "media_type: application/epub+zip\n" +
			"transformation: epub.tmpl\n" +
			"inline_images: true\n" +
			"archive: true\n" +
			"extractor: dom\n",
		"config_pdf.yaml": "transformation: pdf.tmpl\nrender: true\n",
		"config_bad.yaml": "transformation: [unclosed\n",
		"config_empty.yaml": "media_type: text/plain\n",
	}

	t.Run("reads the mode file", func(t *testing.T) {
		t.Parallel()

		cfg, err := newService(files).FindConfig("epub")

		require.NoError(t, err)
		assert.Equal(t, &docconv.Config{
			Mode:           "epub",
			MediaType:      "application/epub+zip",
			Transformation: "epub.tmpl",
			InlineImages:   true,
			Archive:        true,
			Extractor:      docconv.ExtractorDOM,
		}, cfg)
	})

	t.Run("applies defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := newService(files).FindConfig("pdf")

		require.NoError(t, err)
		assert.Equal(t, yaml.DefaultMediaType, cfg.MediaType)
		assert.Equal(t, docconv.ExtractorRegexp, cfg.Extractor)
		assert.True(t, cfg.Render)
	})

	t.Run("empty mode uses the default file", func(t *testing.T) {
		t.Parallel()

		cfg, err := newService(files).FindConfig("")

		require.NoError(t, err)
		assert.Equal(t, "html.tmpl", cfg.Transformation)
		assert.True(t, cfg.InlineImages)
	})

	t.Run("unknown mode falls back to the default file", func(t *testing.T) {
		t.Parallel()

		cfg, err := newService(files).FindConfig("docx")

		require.NoError(t, err)
		assert.Equal(t, "docx", cfg.Mode)
		assert.Equal(t, "html.tmpl", cfg.Transformation)
	})

	t.Run("no config at all", func(t *testing.T) {
		t.Parallel()

		_, err := newService(nil).FindConfig("epub")

		assert.Equal(t, docconv.ENOTFOUND, docconv.ErrorCode(err))
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()

		_, err := newService(files).FindConfig("bad")

		assert.Equal(t, docconv.EINVALID, docconv.ErrorCode(err))
	})

	t.Run("missing transformation", func(t *testing.T) {
		t.Parallel()

		_, err := newService(files).FindConfig("empty")

		assert.Equal(t, docconv.EINVALID, docconv.ErrorCode(err))
	})

	t.Run("mode escaping the directory", func(t *testing.T) {
		t.Parallel()

		for _, mode := range []string{"../etc", "a/b", `a\b`} {
			_, err := newService(files).FindConfig(mode)
			assert.Equal(t, docconv.EINVALID, docconv.ErrorCode(err), mode)
		}
	})
}

func TestConfigService_BundledConfigs(t *testing.T) {
	t.Parallel()

	s := yaml.NewConfigService(os.DirFS("../configs"))

	tests := []struct {
		mode      string
		mediaType string
		archive   bool
		render    bool
	}{
		{mode: "", mediaType: "text/html"},
		{mode: "md", mediaType: "text/markdown"},
		{mode: "epub", mediaType: "application/epub+zip", archive: true},
		{mode: "spa", mediaType: "text/html", render: true},
	}

	for _, tt := range tests {
		t.Run("mode "+tt.mode, func(t *testing.T) {
			t.Parallel()

			cfg, err := s.FindConfig(tt.mode)

			require.NoError(t, err)
			assert.Equal(t, tt.mediaType, cfg.MediaType)
			assert.Equal(t, tt.archive, cfg.Archive)
			assert.Equal(t, tt.render, cfg.Render)
			_, err = fs.Stat(os.DirFS("../configs"), cfg.Transformation)
			assert.NoError(t, err, "transformation %s must exist", cfg.Transformation)
		})
	}
}
