// Package key prints the command legend.
package key

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/atas/pkg/command"
	"tableflip.dev/atas/pkg/parser"
)

// Key prints every command word with its traits and a one-line summary.
type Key struct {
	Out io.Writer
}

func (k *Key) Do(ctx context.Context) error {
	out := k.Out
	if out == nil {
		out = color.Output
	}
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 72
	tbl.Wrap = true
	tbl.AddRow(bold.Sprint("Command"), bold.Sprint("Flags"), bold.Sprint("Meaning"))
	for _, d := range parser.Descriptors() {
		tbl.AddRow(d.Word, Flags(d.Traits), summary(d.Usage))
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(out, "")
	_, _ = fmt.Fprintln(out, tbl)
	_, _ = fmt.Fprintln(out, "")
	_, _ = fmt.Fprintln(out, "  ! asks for confirmation   * changes saved data   ↺ moves through history")
	_, _ = fmt.Fprintln(out, "")
	return nil
}

// Flags renders traits as symbols.
func Flags(t command.Trait) string {
	var b strings.Builder
	if t.Has(command.Dangerous) {
		b.WriteString("!")
	}
	if t.Has(command.Mutating) {
		b.WriteString("*")
	}
	if t.Has(command.Rewinding) {
		b.WriteString("↺")
	}
	return b.String()
}

// summary is the usage text between "word: " and the first sentence end.
func summary(usage string) string {
	s := strings.SplitN(usage, "\n", 2)[0]
	if i := strings.Index(s, ": "); i >= 0 {
		s = s[i+2:]
	}
	if i := strings.Index(s, ". "); i >= 0 {
		s = s[:i+1]
	}
	return s
}
