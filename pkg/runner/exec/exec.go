// Package exec runs a single command line and exits.
package exec

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/atas/pkg/logic"
	"tableflip.dev/atas/pkg/parser"
	"tableflip.dev/atas/pkg/printers"
)

// ErrNotConfirmed is returned when a dangerous command runs without Yes.
var ErrNotConfirmed = errors.New("exec: command needs confirmation, rerun with --yes")

type Exec struct {
	Logic *logic.Logic
	Line  string
	// Yes answers the confirmation question of a dangerous command.
	Yes bool
	Out io.Writer
}

func (e *Exec) Do(ctx context.Context) error {
	if e.Logic == nil {
		return errors.New("exec: logic required")
	}
	pp := &printers.PrettyPrint{Out: e.Out}

	res, err := e.Logic.Execute(ctx, e.Line)
	if err != nil {
		return err
	}
	if _, pending := e.Logic.Pending(); pending {
		if !e.Yes {
			pp.Feedback(res.Feedback)
			_, _ = e.Logic.Execute(ctx, logic.RejectWord)
			return ErrNotConfirmed
		}
		if res, err = e.Logic.Execute(ctx, logic.AcceptWord); err != nil {
			return err
		}
	}

	pp.Feedback(res.Feedback)
	if res.ShowHelp {
		usages := make([]string, 0)
		for _, d := range parser.Descriptors() {
			usages = append(usages, d.Usage)
		}
		pp.Help(usages...)
	}
	return pp.Tab(e.Logic.Model(), res.Tab)
}
