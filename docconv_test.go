package docconv_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/docconv"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := docconv.Errorf(docconv.ENOTFOUND, "mode %q not found", "epub")

	assert.Equal(t, docconv.ENOTFOUND, docconv.ErrorCode(err))
	assert.Equal(t, "mode \"epub\" not found", docconv.ErrorMessage(err))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("resolve output: %w", docconv.Errorf(docconv.EINVALID, "bad href"))

	assert.Equal(t, docconv.EINVALID, docconv.ErrorCode(err))
	assert.Equal(t, "bad href", docconv.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, docconv.EINTERNAL, docconv.ErrorCode(err))
	assert.Equal(t, "Internal error.", docconv.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, docconv.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, docconv.ErrorMessage(nil))
}
