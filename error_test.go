package url2

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Kind(t *testing.T) {
	cause := errors.New("cause")
	err := newParseError(cause)

	assert.Equal(t, KindURLParse, err.Kind())
	assert.Equal(t, "cause", err.Error())
	assert.Same(t, cause, errors.Unwrap(err))
	assert.Equal(t, "URLParse", err.Kind().String())
}

func TestError_UnknownKind(t *testing.T) {
	err := &Error{}

	assert.Equal(t, KindUnknown, err.Kind())
	assert.Equal(t, "url2: неизвестная ошибка", err.Error())
	assert.Nil(t, errors.Unwrap(err))
	assert.Equal(t, "Unknown", err.Kind().String())
}
