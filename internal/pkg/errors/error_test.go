package xerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnavailable(t *testing.T) {
	t.Run("wraps driver errors", func(t *testing.T) {
		err := Unavailable(errors.New("dial tcp: connection refused"))
		assert.ErrorIs(t, err, ErrDataUnavailable)
	})

	t.Run("keeps domain errors as they are", func(t *testing.T) {
		err := Unavailable(fmt.Errorf("find user: %w", ErrNotFound))
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NotErrorIs(t, err, ErrDataUnavailable)
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, Unavailable(nil))
	})
}

func TestInvalid(t *testing.T) {
	err := Invalid("min_score %q is not a number", "abc")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, `invalid input: min_score "abc" is not a number`, err.Error())
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ignored"))
	err := Wrap(ErrConflict, "register")
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, "register: conflict: resource already exists", err.Error())
}
