package formulary_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/formulary"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := formulary.Errorf(formulary.ENOTFOUND, "function %q not found", "SUMX")

	assert.Equal(t, formulary.ENOTFOUND, formulary.ErrorCode(err))
	assert.Equal(t, "function \"SUMX\" not found", formulary.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, formulary.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, formulary.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("load: %w", formulary.Errorf(formulary.EINVALID, "bad record"))

	assert.Equal(t, formulary.EINVALID, formulary.ErrorCode(err))
	assert.Equal(t, "bad record", formulary.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("disk on fire")

	assert.Equal(t, formulary.EINTERNAL, formulary.ErrorCode(err))
	assert.Equal(t, "Internal error.", formulary.ErrorMessage(err))
}
