package llmfeeder_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/llmfeeder"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := llmfeeder.Errorf(llmfeeder.ENOSELECTION, "no text is selected in %q", "tab 1")

	assert.Equal(t, llmfeeder.ENOSELECTION, llmfeeder.ErrorCode(err))
	assert.Equal(t, "no text is selected in \"tab 1\"", llmfeeder.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, llmfeeder.ErrorCode(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("extract: %w", llmfeeder.Errorf(llmfeeder.ENOCONTENT, "empty page"))

	assert.Equal(t, llmfeeder.ENOCONTENT, llmfeeder.ErrorCode(err))
	assert.Equal(t, "empty page", llmfeeder.ErrorMessage(err))
}

func TestErrorCode_ForeignError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, llmfeeder.EINTERNAL, llmfeeder.ErrorCode(err))
	assert.Equal(t, "Internal error.", llmfeeder.ErrorMessage(err))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, llmfeeder.ErrorMessage(nil))
}

func TestUserMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Conversion timed out. The page might be too large.", llmfeeder.UserMessage(llmfeeder.ETIMEOUT))
	assert.Equal(t, "An error occurred during conversion.", llmfeeder.UserMessage(llmfeeder.EINTERNAL))
	assert.Equal(t, "An error occurred during conversion.", llmfeeder.UserMessage("unknown"))
}
