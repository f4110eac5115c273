package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/docconv/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile(t *testing.T) {
	t.Parallel()

	t.Run("commit writes the target", func(t *testing.T) {
		t.Parallel()

		target := filepath.Join(t.TempDir(), "out", "guide.html")

		f, err := fs.Create(target)
		require.NoError(t, err)
		_, err = f.Write([]byte("<p>hi</p>"))
		require.NoError(t, err)

		_, err = os.Stat(target)
		assert.True(t, os.IsNotExist(err), "target must not exist before commit")

		require.NoError(t, f.Commit())

		got, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, "<p>hi</p>", string(got))
		assert.Equal(t, target, f.Path())
	})

	t.Run("commit replaces an existing target", func(t *testing.T) {
		t.Parallel()

		target := filepath.Join(t.TempDir(), "guide.html")
		require.NoError(t, os.WriteFile(target, []byte("old"), 0644))

		f, err := fs.Create(target)
		require.NoError(t, err)
		_, err = f.Write([]byte("new"))
		require.NoError(t, err)
		require.NoError(t, f.Commit())

		got, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, "new", string(got))
	})

	t.Run("abort keeps the existing target", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		target := filepath.Join(dir, "guide.html")
		require.NoError(t, os.WriteFile(target, []byte("old"), 0644))

		f, err := fs.Create(target)
		require.NoError(t, err)
		_, err = f.Write([]byte("partial"))
		require.NoError(t, err)
		require.NoError(t, f.Abort())

		got, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, "old", string(got))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1, "temporary file must be removed")
	})

	t.Run("abort after commit is a no-op", func(t *testing.T) {
		t.Parallel()

		target := filepath.Join(t.TempDir(), "guide.html")

		f, err := fs.Create(target)
		require.NoError(t, err)
		require.NoError(t, f.Commit())
		require.NoError(t, f.Abort())

		_, err = os.Stat(target)
		assert.NoError(t, err)
	})

	t.Run("write after commit fails", func(t *testing.T) {
		t.Parallel()

		f, err := fs.Create(filepath.Join(t.TempDir(), "guide.html"))
		require.NoError(t, err)
		require.NoError(t, f.Commit())

		_, err = f.Write([]byte("late"))
		assert.ErrorIs(t, err, os.ErrClosed)
		assert.ErrorIs(t, f.Commit(), os.ErrClosed)
	})
}

func TestOutputName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		url       string
		mediaType string
		want      string
	}{
		{
			name:      "replaces the extension",
			url:       "https://example.com/docs/guide.html",
			mediaType: "application/epub+zip",
			want:      "guide.epub",
		},
		{
			name:      "markdown",
			url:       "https://example.com/docs/guide",
			mediaType: "text/markdown",
			want:      "guide.md",
		},
		{
			name:      "html with parameters",
			url:       "https://example.com/docs/guide.php?id=1",
			mediaType: "text/html; charset=utf-8",
			want:      "guide.html",
		},
		{
			name:      "root becomes index",
			url:       "https://example.com/",
			mediaType: "text/markdown",
			want:      "index.md",
		},
		{
			name:      "trailing slash uses the directory",
			url:       "https://example.com/docs/",
			mediaType: "text/markdown",
			want:      "docs.md",
		},
		{
			name:      "unknown media type has no extension",
			url:       "https://example.com/docs/guide.html",
			mediaType: "application/x-unknown-thing",
			want:      "guide",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, fs.OutputName(tt.url, tt.mediaType))
		})
	}
}
