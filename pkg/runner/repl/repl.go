// Package repl runs the interactive command loop.
package repl

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"

	"tableflip.dev/atas/pkg/command"
	"tableflip.dev/atas/pkg/logic"
	"tableflip.dev/atas/pkg/parser"
	"tableflip.dev/atas/pkg/printers"
)

// Repl reads lines until exit, end of input or a fatal error.
type Repl struct {
	Logic *logic.Logic

	// In defaults to stdin. A terminal gets a promptui prompt, anything else
	// is read line by line without echo.
	In  io.Reader
	Out io.Writer

	tab   command.Tab
	dirty bool
}

const MessageWelcome = "Type help for the list of commands, exit to quit."

type readFunc func(label string) (string, error)

func (r *Repl) Do(ctx context.Context) error {
	if r.Logic == nil {
		return errors.New("repl: logic required")
	}
	pp := &printers.PrettyPrint{Out: r.Out}
	read, interactive := r.reader()
	if interactive {
		pp.Feedback(MessageWelcome)
	}

	m := r.Logic.Model()
	m.Subscribe(func() { r.dirty = true })

	r.tab = command.TabStudents
	if err := pp.Tab(m, r.tab); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		label := "atas"
		if _, ok := r.Logic.Pending(); ok {
			label = "confirm"
		}
		line, err := read(label)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrInterrupt) {
				return nil
			}
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		exit, err := r.step(ctx, pp, line)
		if err != nil {
			return err
		}
		if exit {
			return nil
		}
	}
}

// step runs one line and prints the outcome. Only fatal errors are returned.
func (r *Repl) step(ctx context.Context, pp *printers.PrettyPrint, line string) (bool, error) {
	r.dirty = false
	res, err := r.Logic.Execute(ctx, line)
	if err != nil {
		if logic.Fatal(err) {
			return true, err
		}
		pp.Error(err)
	}
	pp.Feedback(res.Feedback)

	if res.ShowHelp {
		pp.Help(usages()...)
	}
	switch {
	case res.Tab != command.TabNone:
		r.tab = res.Tab
		if err := pp.Tab(r.Logic.Model(), r.tab); err != nil {
			return true, err
		}
	case r.dirty:
		// undo, redo and the like change data without naming a view.
		if err := pp.Tab(r.Logic.Model(), r.tab); err != nil {
			return true, err
		}
	}
	return res.Exit, nil
}

func (r *Repl) reader() (readFunc, bool) {
	in := r.In
	if in == nil {
		in = os.Stdin
	}
	if f, ok := in.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return promptReader, true
	}
	scanner := bufio.NewScanner(in)
	return func(string) (string, error) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		return scanner.Text(), nil
	}, false
}

func promptReader(label string) (string, error) {
	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }} > ",
		Valid:   "{{ . | green }} > ",
		Invalid: "{{ . | red }} > ",
		Success: "{{ . | faint }} > ",
	}
	prompt := promptui.Prompt{
		Label:     label,
		Templates: templates,
	}
	return prompt.Run()
}

func usages() []string {
	ds := parser.Descriptors()
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Usage)
	}
	return out
}
