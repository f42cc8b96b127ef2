package cli

// This file implements the "kinds" and "name" commands, which expose the
// error kind registry.

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"excep/pkg/errx"
)

// KindsManager renders registry information.
type KindsManager struct {
	logger *zap.Logger
}

// NewKindsManager creates a KindsManager with the given logger.
func NewKindsManager(logger *zap.Logger) *KindsManager {
	return &KindsManager{logger: logger}
}

// NewKindsCmd returns the kinds subcommand.
func NewKindsCmd(logger *zap.Logger) *cobra.Command {
	mgr := NewKindsManager(logger)
	var origin string
	var boxed bool

	cmd := &cobra.Command{
		Use:   "kinds",
		Short: "List the declared error kinds",
		Long:  "List every declared error kind with its tag, constant name, display name and origin.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := &Printer{Out: cmd.OutOrStdout()}
			return mgr.PrintKinds(printer, origin, boxed)
		},
	}

	cmd.Flags().StringVar(&origin, "origin", "", "Only list kinds of one origin (domain, host, shared)")
	cmd.Flags().BoolVar(&boxed, "boxed", false, "Draw a box around the table")

	return cmd
}

// KindRows returns the registry as table rows, header first, optionally
// filtered by origin name.
func KindRows(origin string) ([][]string, error) {
	var filter errx.Origin
	if origin != "" {
		parsed, ok := errx.ParseOrigin(origin)
		if !ok {
			return nil, newWithSentinel(ErrUnknownOrigin, fmt.Sprintf("unknown origin %q", origin))
		}
		filter = parsed
	}

	rows := [][]string{{"Tag", "Constant", "Name", "Origin"}}
	for _, entry := range errx.Registry() {
		if filter != 0 && entry.Origin != filter {
			continue
		}
		rows = append(rows, []string{
			fmt.Sprintf("0b%08b (%d)", uint8(entry.Kind), uint8(entry.Kind)),
			entry.Short,
			entry.Name,
			entry.Origin.String(),
		})
	}
	return rows, nil
}

// PrintKinds renders the registry table.
func (m *KindsManager) PrintKinds(printer *Printer, origin string, boxed bool) error {
	rows, err := KindRows(origin)
	if err != nil {
		logStructuredError(m.logger, err, "List kinds failed")
		return err
	}
	m.logger.Debug("rendering kinds", zap.Int("kinds", len(rows)-1), zap.String("origin", origin))
	for _, row := range rows[1:] {
		row[3] = colorOrigin(row[3])
	}
	if boxed {
		err = printer.TableBoxed(rows)
	} else {
		err = printer.Table(rows)
	}
	if err != nil {
		err = wrapWithSentinel(ErrWriteOutputFailed, err, "failed to render kinds table")
		logStructuredError(m.logger, err, "List kinds failed")
		return err
	}
	return nil
}

// colorOrigin colors an origin name for the kinds table.
func colorOrigin(name string) string {
	switch name {
	case errx.OriginDomain.String():
		return Cyan(name)
	case errx.OriginHost.String():
		return Yellow(name)
	default:
		return Green(name)
	}
}

// NewNameCmd returns the name subcommand.
func NewNameCmd(logger *zap.Logger) *cobra.Command {
	mgr := NewKindsManager(logger)

	return &cobra.Command{
		Use:   "name <raw-tag>...",
		Short: "Print the display name of raw kind tags",
		Long: `Print the display name for each raw 8-bit tag. Tags may be decimal,
hexadecimal (0x85) or binary (0b10000101). Undeclared tags print UnknownException.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := &Printer{Out: cmd.OutOrStdout()}
			return mgr.PrintNames(printer, args)
		},
	}
}

// ParseRawTag parses a tag in decimal, 0x, 0o or 0b notation.
func ParseRawTag(s string) (uint8, error) {
	n, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, wrapWithSentinel(ErrInvalidRawTag, err, fmt.Sprintf("tag %q is not an integer in 0..255", s))
	}
	return uint8(n), nil
}

// PrintNames prints "<tag>\t<name>" for every raw tag. All tags are parsed
// before anything is printed.
func (m *KindsManager) PrintNames(printer *Printer, raws []string) error {
	tags := make([]uint8, 0, len(raws))
	for _, raw := range raws {
		tag, err := ParseRawTag(raw)
		if err != nil {
			logStructuredError(m.logger, err, "Name lookup failed")
			return err
		}
		tags = append(tags, tag)
	}
	for _, tag := range tags {
		printer.Printf("%d\t%s\n", tag, errx.NameOf(tag))
	}
	return nil
}
