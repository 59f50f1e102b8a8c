package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "user not found", NotFound("user not found").Error())

	wrapped := Wrap(CodeInternal, "storage failure", errors.New("connection reset"))
	assert.Equal(t, "storage failure: connection reset", wrapped.Error())
}

func TestCodeOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"invalid arg", InvalidArg("bad"), CodeInvalidArgument},
		{"unauthenticated", Unauthorized("no token"), CodeUnauthenticated},
		{"forbidden", Forbidden("nope"), CodePermissionDenied},
		{"not found", NotFound("missing"), CodeNotFound},
		{"already exists", AlreadyExists("dup"), CodeAlreadyExists},
		{"internal", Internal("boom"), CodeInternal},
		{"wrapped with fmt", fmt.Errorf("context: %w", Forbidden("nope")), CodePermissionDenied},
		{"plain error", errors.New("plain"), CodeUnknown},
		{"nil", nil, CodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}

func TestMessageOf_HidesCause(t *testing.T) {
	t.Parallel()

	err := Wrap(CodeInternal, "storage failure", errors.New("dsn=postgres://secret"))
	assert.Equal(t, "storage failure", MessageOf(err))
	assert.Empty(t, MessageOf(errors.New("plain")))
}

func TestUnwrap_PreservesCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("root")
	err := Wrap(CodeInternal, "outer", cause)
	assert.ErrorIs(t, err, cause)
}
