package cli

// This file implements the "throw" command: raise one record from
// command-line input and report it.

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"excep/pkg/errx"
)

// abort is a test seam for errx.ReportAndAbort.
var abort = errx.ReportAndAbort

// ThrowOptions describes one record raised from the command line.
type ThrowOptions struct {
	Kind     string
	Format   string
	Args     []string
	File     string
	Line     int
	Function string
	NoExit   bool
}

// NewThrowCmd returns the throw subcommand.
func NewThrowCmd(logger *zap.Logger) *cobra.Command {
	opts := ThrowOptions{}

	cmd := &cobra.Command{
		Use:   "throw <kind> [format [args...]]",
		Short: "Raise and report one error",
		Long: `Raise one error of the given kind and report it, then exit with status 1.

The kind is a display name (OutOfMemoryException), a constant name
(OutOfMemory) or a tag (133). The message format accepts printf verbs,
including C length modifiers such as %ld and %lf. The message is only
printed when a location is given with --file, --line or --func.`,
		Example: `  excep throw InvalidArgument
  excep throw OutOfMemory "needed %d bytes" 4096 --file alloc.c --line 42 --func grow`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Kind = args[0]
			if len(args) > 1 {
				opts.Format = args[1]
				opts.Args = args[2:]
			}
			return runThrow(cmd, logger, opts)
		},
	}

	cmd.Flags().StringVar(&opts.File, "file", "", "Source file of the raise site")
	cmd.Flags().IntVar(&opts.Line, "line", errx.UnknownLine, "Line of the raise site")
	cmd.Flags().StringVar(&opts.Function, "func", "", "Function of the raise site")
	cmd.Flags().BoolVar(&opts.NoExit, "no-exit", false, "Report without exiting")

	return cmd
}

// BuildThrowRecord turns command-line input into a record.
func BuildThrowRecord(opts ThrowOptions) (*errx.Error, error) {
	kind, ok := errx.ParseKind(opts.Kind)
	if !ok {
		return nil, newWithSentinel(ErrUnknownKind, fmt.Sprintf("unknown error kind %q", opts.Kind))
	}
	if opts.Line < errx.UnknownLine || opts.Line == 0 {
		return nil, newWithSentinel(ErrInvalidLine, fmt.Sprintf("line must be positive, got %d", opts.Line))
	}

	recOpts := []errx.Option{errx.WithLocation(opts.File, opts.Line, opts.Function)}
	if opts.Format != "" {
		format, verbs := normalizeFormat(opts.Format)
		args, err := formatArgs(verbs, opts.Args)
		if err != nil {
			return nil, err
		}
		recOpts = append(recOpts, errx.WithMessage(format, args...))
	}
	return errx.New(kind, recOpts...), nil
}

func runThrow(cmd *cobra.Command, logger *zap.Logger, opts ThrowOptions) error {
	rec, err := BuildThrowRecord(opts)
	if err != nil {
		logStructuredError(logger, err, "Throw failed")
		return err
	}
	logger.Debug("throwing", zap.Stringer("kind", rec.Kind()), zap.Bool("no-exit", opts.NoExit))

	w := reportWriter(cmd)
	if !opts.NoExit {
		abort(w, rec)
		return nil
	}
	if err := errx.Report(w, rec); err != nil {
		err = wrapWithSentinel(ErrWriteReportFailed, err, "failed to write report")
		logStructuredError(logger, err, "Throw failed")
		return err
	}
	return nil
}
