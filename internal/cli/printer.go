package cli

// This file holds the human-facing output helpers: tables rendered with pterm
// and color helpers. Color follows the resolved config: "always", "never", or
// "auto" (only when stdout, where tables go, is a terminal).

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"golang.org/x/term"
)

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

// Printer writes command output to Out, or stdout when Out is nil.
type Printer struct {
	Out io.Writer
}

func (p *Printer) out() io.Writer {
	if p.Out != nil {
		return p.Out
	}
	return os.Stdout
}

// Printf prints a formatted string.
func (p *Printer) Printf(format string, args ...any) {
	fmt.Fprintf(p.out(), format, args...)
}

// Table renders data as a table with its first row as header.
func (p *Printer) Table(data [][]string) error {
	return p.renderTable(data, false)
}

// TableBoxed renders data as a boxed table with its first row as header.
func (p *Printer) TableBoxed(data [][]string) error {
	return p.renderTable(data, true)
}

func (p *Printer) renderTable(data [][]string, boxed bool) error {
	if len(data) == 0 {
		return nil
	}
	table := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData(data))
	if boxed {
		table = table.WithBoxed()
	}
	out, err := table.Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.out(), out)
	return err
}

func Green(s string) string  { return pterm.FgGreen.Sprint(s) }
func Yellow(s string) string { return pterm.FgYellow.Sprint(s) }
func Cyan(s string) string   { return pterm.FgCyan.Sprint(s) }

// configureColor applies a color mode. For ColorAuto, color is enabled only
// when fd is a terminal.
func configureColor(mode string, fd int) {
	switch mode {
	case ColorAlways:
		pterm.EnableColor()
	case ColorNever:
		pterm.DisableColor()
	default:
		if isTerminal(fd) {
			pterm.EnableColor()
		} else {
			pterm.DisableColor()
		}
	}
}
