package cli

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"excep/pkg/errx"
)

// stubAbort replaces abort with a reporter that records its calls instead of
// exiting.
func stubAbort(t *testing.T) *[]*errx.Error {
	t.Helper()
	prev := abort
	t.Cleanup(func() { abort = prev })

	var calls []*errx.Error
	abort = func(w io.Writer, err *errx.Error) {
		calls = append(calls, err)
		_ = errx.Report(w, err)
	}
	return &calls
}

func executeThrow(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewThrowCmd(zap.NewNop())
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestThrowCmd(t *testing.T) {
	t.Run("located with message", func(t *testing.T) {
		calls := stubAbort(t)

		out, errOut, err := executeThrow(t, "OutOfMemory", "needed %ld bytes", "4096",
			"--file", "alloc.c", "--line", "42", "--func", "grow")
		require.NoError(t, err)
		assert.Empty(t, out)
		assert.Equal(t, "Threw the OutOfMemoryException:\n\tat alloc.c:42, func grow\nneeded 4096 bytes\n", errOut)
		require.Len(t, *calls, 1)
		assert.Equal(t, errx.OutOfMemory, (*calls)[0].Kind())
	})

	t.Run("bare kind", func(t *testing.T) {
		stubAbort(t)

		_, errOut, err := executeThrow(t, "130", "ignored without a location")
		require.NoError(t, err)
		assert.Equal(t, "Threw the InvalidArgumentException\n", errOut)
	})

	t.Run("unknown line", func(t *testing.T) {
		stubAbort(t)

		_, errOut, err := executeThrow(t, "ReadOperationFailedException", "--file", "io.c", "--func", "readAll")
		require.NoError(t, err)
		assert.Equal(t, "Threw the ReadOperationFailedException:\n\tat io.c:?, func readAll\n", errOut)
	})

	t.Run("no exit", func(t *testing.T) {
		calls := stubAbort(t)

		_, errOut, err := executeThrow(t, "NoSuchElement", "--no-exit", "--line", "7")
		require.NoError(t, err)
		assert.Equal(t, "Threw the NoSuchElementException:\n\tat :7, func \n", errOut)
		assert.Empty(t, *calls)
	})

	t.Run("stdout output", func(t *testing.T) {
		stubAbort(t)
		prev := CurrentConfig()
		t.Cleanup(func() { SetConfig(prev) })
		SetConfig(Config{Output: OutputStdout, Color: ColorNever})

		out, errOut, err := executeThrow(t, "OutOfBound")
		require.NoError(t, err)
		assert.Equal(t, "Threw the OutOfBoundException\n", out)
		assert.Empty(t, errOut)
	})
}

func TestThrowCmdErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{name: "unknown kind", args: []string{"Bogus"}, want: ErrUnknownKind},
		{name: "undeclared tag", args: []string{"9"}, want: ErrUnknownKind},
		{name: "zero line", args: []string{"OutOfMemory", "--line", "0"}, want: ErrInvalidLine},
		{name: "negative line", args: []string{"OutOfMemory", "--line", "-5"}, want: ErrInvalidLine},
		{name: "missing args", args: []string{"OutOfMemory", "%d of %d", "1"}, want: ErrTooFewFormatArgs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := stubAbort(t)

			_, errOut, err := executeThrow(t, tt.args...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want))
			assert.Empty(t, errOut)
			assert.Empty(t, *calls)
		})
	}
}

func TestBuildThrowRecord(t *testing.T) {
	rec, err := BuildThrowRecord(ThrowOptions{
		Kind:     "InvalidNullPointer",
		Format:   "%s is nil (%5.1lf%%)",
		Args:     []string{"ptr", "12.5"},
		Function: "deref",
		Line:     errx.UnknownLine,
	})
	require.NoError(t, err)
	assert.Equal(t, errx.InvalidNullPointer, rec.Kind())
	assert.Equal(t, "ptr is nil ( 12.5%)", rec.Message())

	loc, ok := rec.Location()
	require.True(t, ok)
	assert.Equal(t, errx.Location{Line: errx.UnknownLine, Function: "deref"}, loc)
	assert.Nil(t, rec.Cause())
}

func TestBuildThrowRecord_PrintfSemantics(t *testing.T) {
	tests := []struct {
		name   string
		format string
		args   []string
		want   string
	}{
		{name: "surplus args ignored", format: "disk full", args: []string{"extra"}, want: "disk full"},
		{name: "surplus after verbs", format: "%d bytes", args: []string{"12", "extra"}, want: "12 bytes"},
		{name: "escaped percent", format: "100%% full", want: "100% full"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := BuildThrowRecord(ThrowOptions{
				Kind:     "OutOfMemory",
				Format:   tt.format,
				Args:     tt.args,
				File:     "a.c",
				Line:     1,
				Function: "f",
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, rec.Message())
		})
	}
}

func TestThrowCmd_EscapedPercent(t *testing.T) {
	stubAbort(t)

	_, errOut, err := executeThrow(t, "OutOfMemory", "100%% full", "--file", "a.c", "--line", "1", "--func", "f")
	require.NoError(t, err)
	assert.Equal(t, "Threw the OutOfMemoryException:\n\tat a.c:1, func f\n100% full\n", errOut)
}

func TestRunThrowWriteFailure(t *testing.T) {
	cmd := NewThrowCmd(zap.NewNop())
	cmd.SetErr(&failingSink{})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetArgs([]string{"OutOfMemory", "--no-exit"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWriteReportFailed))
	assert.True(t, errx.HasKind(err, errx.WriteFailed))
	assert.True(t, errors.Is(err, io.ErrClosedPipe))
}

type failingSink struct{}

func (failingSink) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }
