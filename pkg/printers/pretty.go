// Package printers renders the model for a terminal.
package printers

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/term"

	"tableflip.dev/atas/pkg/command"
	"tableflip.dev/atas/pkg/model"
	"tableflip.dev/atas/pkg/session"
	"tableflip.dev/atas/pkg/student"
)

const defaultWidth = 80

type PrettyPrint struct {
	// Out defaults to color.Output.
	Out io.Writer
	// Width used for wrapping feedback. Zero asks the terminal.
	Width int
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) width() int {
	if pp.Width > 0 {
		return pp.Width
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultWidth
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d %s", count, noun)
	if count != 1 {
		_, _ = c.Fprint(pp.out(), "s")
	}
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// Feedback prints a command's message wrapped to the terminal width.
func (pp *PrettyPrint) Feedback(msg string) {
	if msg == "" {
		return
	}
	_, _ = fmt.Fprintln(pp.out(), wordwrap.String(msg, pp.width()))
}

// Error prints a user-facing error.
func (pp *PrettyPrint) Error(err error) {
	r := color.New(color.FgRed)
	_, _ = r.Fprintln(pp.out(), wordwrap.String(err.Error(), pp.width()))
}

func (pp *PrettyPrint) Students(students ...student.Student) {
	pp.TitleWithCount("Students", len(students), "student")
	if len(students) == 0 {
		pp.none()
		return
	}
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("#", "NAME", "MATRICULATION", "EMAIL", "TAGS")
	for i, s := range students {
		tbl.AddRow(i+1, s.Name, s.Matriculation, s.Email, faint.Sprint(s.Tags.String()))
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

func (pp *PrettyPrint) Sessions(sessions ...*session.Session) {
	pp.TitleWithCount("Sessions", len(sessions), "session")
	if len(sessions) == 0 {
		pp.none()
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("#", "NAME", "DATE", "PRESENT", "PARTICIPATED")
	for i, s := range sessions {
		present, participated := 0, 0
		for _, a := range s.Attributes() {
			if a.Present {
				present++
			}
			if a.Participated {
				participated++
			}
		}
		tbl.AddRow(i+1, s.Name, s.Date,
			fmt.Sprintf("%d/%d", present, s.Len()),
			fmt.Sprintf("%d/%d", participated, s.Len()))
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Current prints the attendance sheet of s in roster order.
func (pp *PrettyPrint) Current(s *session.Session, roster []student.Student) error {
	pp.Title(s.String())
	list, err := s.AttributeList(roster)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		pp.none()
		return nil
	}
	yes := color.New(color.FgGreen).Sprint("✓")
	no := color.New(color.Faint).Sprint("·")
	mark := func(b bool) string {
		if b {
			return yes
		}
		return no
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("#", "NAME", "PRESENT", "PARTICIPATED")
	for i, a := range list {
		tbl.AddRow(i+1, a.Name, mark(a.Present), mark(a.Participated))
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
	return nil
}

// Tab prints the view a command asked for. TabNone prints nothing.
func (pp *PrettyPrint) Tab(m *model.Model, tab command.Tab) error {
	switch tab {
	case command.TabStudents:
		pp.Students(m.FilteredStudents()...)
	case command.TabSessions:
		pp.Sessions(m.FilteredSessions()...)
	case command.TabCurrent:
		s, ok := m.CurrentSession()
		if !ok {
			return nil
		}
		return pp.Current(s, m.Students())
	}
	return nil
}

// Help lists every command with its usage.
func (pp *PrettyPrint) Help(usages ...string) {
	pp.Title("Commands")
	for _, u := range usages {
		lines := strings.SplitN(u, "\n", 2)
		_, _ = color.New(color.Bold).Fprintln(pp.out(), wordwrap.String(lines[0], pp.width()))
		if len(lines) > 1 {
			_, _ = fmt.Fprintln(pp.out(), indent(wordwrap.String(lines[1], pp.width()-2)))
		}
	}
	pp.NewLine()
}

func indent(s string) string {
	return "  " + strings.ReplaceAll(s, "\n", "\n  ")
}
