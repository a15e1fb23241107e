package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

type statusKind string

const (
	statusInfo statusKind = "INFO"
	statusOK   statusKind = "OK"
	statusWarn statusKind = "WARN"
)

var statusColors = map[statusKind]string{
	statusInfo: "\x1b[34m",
	statusOK:   "\x1b[32m",
	statusWarn: "\x1b[33m",
}

const (
	ansiReset        = "\x1b[0m"
	statusLabelWidth = 16
)

// statusPrinter writes aligned "label: [KIND] message" lines. Color is only
// used when stdout is a terminal.
type statusPrinter struct {
	out   io.Writer
	color bool
}

func newStatusPrinter(cmd *cobra.Command) *statusPrinter {
	out := cmd.OutOrStdout()
	return &statusPrinter{out: out, color: isTerminal(out)}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (p *statusPrinter) paint(kind statusKind, s string) string {
	if !p.color {
		return s
	}
	return statusColors[kind] + s + ansiReset
}

func (p *statusPrinter) section(title string) {
	heading := "== " + strings.TrimSpace(title) + " =="
	fmt.Fprintln(p.out, p.paint(statusInfo, heading))
	fmt.Fprintln(p.out, p.paint(statusInfo, strings.Repeat("-", len([]rune(heading)))))
}

func (p *statusPrinter) line(label string, kind statusKind, message string) {
	text := fmt.Sprintf("  %-*s [%s]", statusLabelWidth, label+":", kind)
	if message != "" {
		text += " " + message
	}
	fmt.Fprintln(p.out, p.paint(kind, text))
}

// count reports n as OK when it is zero and as a warning otherwise.
func (p *statusPrinter) count(label string, n int) {
	kind := statusOK
	if n > 0 {
		kind = statusWarn
	}
	p.line(label, kind, strconv.Itoa(n))
}
