package cli

// This file implements the "render" command: load a chain of records from a
// YAML file and report it.
//
// A chain file lists links outermost first; the last link is the root cause:
//
//	chain:
//	  - kind: OutOfMemory
//	    file: alloc.c
//	    line: 42
//	    func: grow
//	    message: "needed %d bytes"
//	    args: [4096]
//	  - kind: InstanceFailure

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"excep/pkg/errx"
)

// ChainFile is the on-disk chain description.
type ChainFile struct {
	Chain []LinkSpec `yaml:"chain"`
}

// LinkSpec describes one record of a chain. A zero line with a file or
// function means the line is unknown.
type LinkSpec struct {
	Kind     string `yaml:"kind"`
	File     string `yaml:"file,omitempty"`
	Line     int    `yaml:"line,omitempty"`
	Function string `yaml:"func,omitempty"`
	Message  string `yaml:"message,omitempty"`
	Args     []any  `yaml:"args,omitempty"`
}

// RenderManager loads and reports chain files.
type RenderManager struct {
	logger *zap.Logger
}

// NewRenderManager creates a RenderManager with the given logger.
func NewRenderManager(logger *zap.Logger) *RenderManager {
	return &RenderManager{logger: logger}
}

// NewRenderCmd returns the render subcommand.
func NewRenderCmd(logger *zap.Logger) *cobra.Command {
	mgr := NewRenderManager(logger)
	var noExit bool

	cmd := &cobra.Command{
		Use:   "render <chain.yaml>",
		Short: "Report a chain of errors described in a YAML file",
		Long: `Load a chain of errors from a YAML file (outermost first, root cause
last), report it, then exit with status 1.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mgr.Render(cmd, args[0], noExit)
		},
	}

	cmd.Flags().BoolVar(&noExit, "no-exit", false, "Report without exiting")

	return cmd
}

// LoadChain reads a chain file and builds its records.
func LoadChain(path string) (*errx.Error, error) {
	// #nosec G304 -- path is provided by the user on the command line.
	data, err := readFile(path)
	if err != nil {
		return nil, wrapWithSentinel(ErrReadChainFileFailed, err, fmt.Sprintf("failed to read chain file %s", path))
	}
	var file ChainFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, wrapWithSentinel(ErrUnmarshalChainFailed, err, fmt.Sprintf("failed to unmarshal chain file %s", path))
	}
	return BuildChain(file.Chain)
}

// BuildChain builds records from the root cause outwards, so every link
// takes ownership of the one after it in links.
func BuildChain(links []LinkSpec) (*errx.Error, error) {
	if len(links) == 0 {
		return nil, newWithSentinel(ErrEmptyChain, "chain has no links")
	}
	var chain *errx.Error
	for i := len(links) - 1; i >= 0; i-- {
		opts, kind, err := linkOptions(i, links[i])
		if err != nil {
			return nil, err
		}
		chain = errx.Wrap(kind, chain, opts...)
	}
	return chain, nil
}

func linkOptions(index int, link LinkSpec) ([]errx.Option, errx.Kind, error) {
	kind, ok := errx.ParseKind(link.Kind)
	if !ok {
		return nil, 0, newWithSentinel(ErrUnknownKind,
			fmt.Sprintf("link %d: unknown error kind %q", index+1, link.Kind))
	}
	if link.Line < errx.UnknownLine {
		return nil, 0, newWithSentinel(ErrInvalidLine,
			fmt.Sprintf("link %d: line must be positive, got %d", index+1, link.Line))
	}

	line := link.Line
	if line == 0 {
		line = errx.UnknownLine
	}
	opts := []errx.Option{errx.WithLocation(link.File, line, link.Function)}
	if link.Message != "" {
		format, verbs := normalizeFormat(link.Message)
		if len(link.Args) < len(verbs) {
			return nil, 0, newWithSentinel(ErrTooFewFormatArgs,
				fmt.Sprintf("link %d: format has %d verbs but %d arguments were given", index+1, len(verbs), len(link.Args)))
		}
		// Surplus args are ignored, as printf does.
		opts = append(opts, errx.WithMessage(format, link.Args[:len(verbs)]...))
	}
	return opts, kind, nil
}

// Render loads path and reports it to the configured sink.
func (m *RenderManager) Render(cmd *cobra.Command, path string, noExit bool) error {
	chain, err := LoadChain(path)
	if err != nil {
		logStructuredError(m.logger, err, "Render failed")
		return err
	}
	m.logger.Debug("rendering chain", zap.String("path", path), zap.Int("depth", chain.Depth()))

	w := reportWriter(cmd)
	if !noExit {
		abort(w, chain)
		return nil
	}
	if err := errx.Report(w, chain); err != nil {
		err = wrapWithSentinel(ErrWriteReportFailed, err, "failed to write report")
		logStructuredError(m.logger, err, "Render failed")
		return err
	}
	return nil
}
