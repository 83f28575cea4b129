package errors

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(EUsage, "test message")
	assert.Equal(t, "E_USAGE: test message", err.Error())
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying")
	err := Wrap(EFetchFailed, "wrapped message", cause)

	assert.Equal(t, "E_FETCH_FAILED: wrapped message", err.Error())
	assert.ErrorIs(t, err, cause)

	var ae *AdventError
	require.True(t, errors.As(err, &ae))
	assert.Same(t, cause, ae.Cause)
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"nil error", nil, ""},
		{"advent error", New(EUsage, "x"), EUsage},
		{"wrapped advent error", Wrap(EGenerateFailed, "y", errors.New("z")), EGenerateFailed},
		{"non-advent error", errors.New("plain"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetCode(tt.err))
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"E_USAGE", New(EUsage, "x"), 2},
		{"E_FETCH_FAILED", New(EFetchFailed, "x"), 1},
		{"non-advent error", errors.New("x"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestPrint(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"E_USAGE", New(EUsage, "bad args"), "error_code: E_USAGE\nbad args\n"},
		{"E_DAY_EXISTS", New(EDayExists, "2024/day-05 already exists"), "error_code: E_DAY_EXISTS\n2024/day-05 already exists\n"},
		{"plain", errors.New("boom"), "boom\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Print(&buf, tt.err)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestNewWithDetails_CopiesMap(t *testing.T) {
	details := map[string]string{"day_dir": "2024/day-05"}
	err := NewWithDetails(EFetchFailed, "fetch failed", details)

	details["day_dir"] = "modified"

	ae, ok := AsAdventError(err)
	require.True(t, ok)
	assert.Equal(t, EFetchFailed, ae.Code)
	assert.Equal(t, "2024/day-05", ae.Details["day_dir"])
}

func TestNewWithDetails_NilDetails(t *testing.T) {
	ae, ok := AsAdventError(NewWithDetails(EUsage, "test", nil))
	require.True(t, ok)
	assert.Nil(t, ae.Details)
}

func TestWrapWithDetails(t *testing.T) {
	cause := errors.New("underlying")
	err := WrapWithDetails(ERollbackFailed, "wrapped", cause, map[string]string{"step": "FetchInput"})

	ae, ok := AsAdventError(err)
	require.True(t, ok)
	assert.Same(t, cause, ae.Cause)
	assert.Equal(t, "FetchInput", ae.Details["step"])
}

func TestAsAdventError(t *testing.T) {
	t.Run("direct", func(t *testing.T) {
		ae, ok := AsAdventError(New(EUsage, "test"))
		require.True(t, ok)
		assert.Equal(t, EUsage, ae.Code)
	})

	t.Run("plain error", func(t *testing.T) {
		ae, ok := AsAdventError(errors.New("regular error"))
		assert.False(t, ok)
		assert.Nil(t, ae)
	})

	t.Run("nil", func(t *testing.T) {
		ae, ok := AsAdventError(nil)
		assert.False(t, ok)
		assert.Nil(t, ae)
	})
}
