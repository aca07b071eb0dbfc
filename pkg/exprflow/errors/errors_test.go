package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageFormat(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{Parsef(1, 5, "unexpected character %q", "@"), `Parse error at line 1, column 5: unexpected character "@"`},
		{Parsef(12, 3, "empty expression"), "Parse error at line 12, column 3: empty expression"},
		{Compilef("unknown function: %s", "foo"), "Compilation error: unknown function: foo"},
		{Runtimef("division by zero"), "Runtime error: division by zero"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Error())
	}
}

func TestLocationOnlyWhenBothPresent(t *testing.T) {
	e := &Error{Kind: KindRuntime, Message: "oops", Line: 3}
	assert.Equal(t, "Runtime error: oops", e.Error())
}

func TestKindStrings(t *testing.T) {
	assert.Equal(t, "Parse error", KindParser.String())
	assert.Equal(t, "Compilation error", KindCompiler.String())
	assert.Equal(t, "Runtime error", KindRuntime.String())
}

func TestAs(t *testing.T) {
	inner := Runtimef("inner")

	e, ok := As(inner)
	require.True(t, ok)
	assert.Same(t, inner, e)

	wrapped := fmt.Errorf("context: %w", inner)
	e, ok = As(wrapped)
	require.True(t, ok)
	assert.Same(t, inner, e)

	_, ok = As(stderrors.New("plain"))
	assert.False(t, ok)

	_, ok = As(nil)
	assert.False(t, ok)
}

func TestIsKind(t *testing.T) {
	assert.True(t, IsKind(Parsef(1, 1, "x"), KindParser))
	assert.False(t, IsKind(Parsef(1, 1, "x"), KindRuntime))
	assert.False(t, IsKind(stderrors.New("plain"), KindRuntime))
}

func TestUnwrapDetails(t *testing.T) {
	cause := stderrors.New("root cause")
	e := &Error{Kind: KindRuntime, Message: "wrapped", Details: cause}

	assert.True(t, stderrors.Is(e, cause))

	// Non-error details don't unwrap.
	e = &Error{Kind: KindParser, Message: "x", Details: "snippet"}
	assert.Nil(t, e.Unwrap())
}
