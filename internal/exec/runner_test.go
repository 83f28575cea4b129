package exec

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRunScript_ExitCode(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		expectCode int
	}{
		{"exit 0", []string{"-c", "exit 0"}, 0},
		{"exit 1", []string{"-c", "exit 1"}, 1},
		{"exit 42", []string{"-c", "exit 42"}, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := RunScript(context.Background(), "sh", tt.args, RunOpts{})
			require.NoError(t, err)
			assert.Equal(t, tt.expectCode, result.ExitCode)
			assert.False(t, result.TimedOut)
		})
	}
}

func TestRunScript_StdoutStderr(t *testing.T) {
	result, err := RunScript(context.Background(), "sh", []string{"-c", "echo stdout; echo stderr >&2"}, RunOpts{})
	require.NoError(t, err)

	assert.Contains(t, result.Stdout, "stdout")
	assert.Contains(t, result.Stderr, "stderr")
}

func TestRunScript_StreamsAndCaptures(t *testing.T) {
	var out, errOut bytes.Buffer
	result, err := RunScript(context.Background(), "sh", []string{"-c", "echo hello; echo oops >&2"}, RunOpts{
		Stdout: &out,
		Stderr: &errOut,
	})
	require.NoError(t, err)

	assert.Equal(t, "hello\n", out.String())
	assert.Equal(t, "oops\n", errOut.String())
	assert.Equal(t, "hello\n", result.Stdout)
	assert.Equal(t, "oops\n", result.Stderr)
}

func TestRunScript_TimeoutExit124(t *testing.T) {
	result, err := RunScript(context.Background(), "sh", []string{"-c", "sleep 10"}, RunOpts{
		Timeout: 50 * time.Millisecond,
	})

	require.NoError(t, err, "timeout is reported through the exit code, not an error")
	assert.Equal(t, ExitTimeout, result.ExitCode)
	assert.True(t, result.TimedOut)
}

func TestRunScript_CanceledExit125(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	var result CmdResult
	var err error

	go func() {
		result, err = RunScript(ctx, "sh", []string{"-c", "sleep 10"}, RunOpts{})
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, ExitCanceled, result.ExitCode)
}

func TestRunScript_StartFailure(t *testing.T) {
	result, err := RunScript(context.Background(), "no_such_command_abc123", nil, RunOpts{})

	assert.Error(t, err)
	assert.Equal(t, ExitStartFail, result.ExitCode)
}

func TestRunScript_Dir(t *testing.T) {
	dir := t.TempDir()
	result, err := RunScript(context.Background(), "sh", []string{"-c", "pwd"}, RunOpts{Dir: dir})
	require.NoError(t, err)

	// macOS temp dirs resolve through /private
	assert.Contains(t, result.Stdout, dir[len(dir)-8:])
}

func TestRunScript_Env(t *testing.T) {
	result, err := RunScript(context.Background(), "sh", []string{"-c", "echo $TEST_VAR"}, RunOpts{
		Env: map[string]string{"TEST_VAR": "hello_world"},
	})
	require.NoError(t, err)
	assert.Contains(t, result.Stdout, "hello_world")
}

func TestRealRunner_Run(t *testing.T) {
	r := NewRealRunner(zaptest.NewLogger(t))

	result, err := r.Run(context.Background(), "sh", []string{"-c", "exit 3"}, RunOpts{})
	require.NoError(t, err)
	assert.Equal(t, 3, result.ExitCode)

	_, err = r.Run(context.Background(), "no_such_command_abc123", nil, RunOpts{})
	assert.Error(t, err)
}

func TestNewRealRunner_NilLogger(t *testing.T) {
	r := NewRealRunner(nil)
	result, err := r.Run(context.Background(), "sh", []string{"-c", "exit 0"}, RunOpts{})
	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)
}
