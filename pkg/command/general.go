package command

import (
	"fmt"
	"math/rand/v2"

	"github.com/gosuri/uitable"

	"tableflip.dev/atas/pkg/model"
)

const (
	HelpWord  = "help"
	HelpUsage = HelpWord + ": Shows program usage instructions.\nExample: " + HelpWord

	ExitWord  = "exit"
	ExitUsage = ExitWord + ": Exits the program.\nExample: " + ExitWord

	SwitchWord  = "switch"
	SwitchUsage = SwitchWord + ": Switches to the given tab.\n" +
		"Parameters: students|sessions|current\n" +
		"Example: " + SwitchWord + " sessions"

	UndoWord  = "undo"
	UndoUsage = UndoWord + ": Undoes the last change to the data.\nExample: " + UndoWord

	RedoWord  = "redo"
	RedoUsage = RedoWord + ": Redoes the last undone change.\nExample: " + RedoWord

	StatsWord  = "stats"
	StatsUsage = StatsWord + ": Shows presence and participation totals of the displayed students across all sessions.\nExample: " + StatsWord

	RngWord  = "rng"
	RngUsage = RngWord + ": Randomly picks a student from the displayed student list.\nExample: " + RngWord

	MessageHelp          = "Showing program usage."
	MessageExit          = "Exiting as requested ..."
	MessageSwitchSuccess = "Switched to %s tab."
	MessageUndoSuccess   = "Undo successful!"
	MessageRedoSuccess   = "Redo successful!"
	MessageRngSuccess    = "Randomly selected: %s"
)

// Help asks the presentation layer to show usage.
type Help struct{}

func (c *Help) Traits() Trait { return None }

func (c *Help) Execute(*model.Model) (Result, error) {
	return Result{Feedback: MessageHelp, ShowHelp: true}, nil
}

// Exit ends the command loop.
type Exit struct{}

func (c *Exit) Traits() Trait { return None }

func (c *Exit) Execute(*model.Model) (Result, error) {
	return Result{Feedback: MessageExit, Exit: true}, nil
}

// Switch asks the presentation layer to show another tab.
type Switch struct {
	Tab Tab
}

func (c *Switch) Traits() Trait { return None }

func (c *Switch) Execute(m *model.Model) (Result, error) {
	if c.Tab == TabCurrent {
		if _, ok := m.CurrentSession(); !ok {
			return Result{}, ValidationErrorf(MessageNoSessionEntered)
		}
	}
	return Result{Feedback: fmt.Sprintf(MessageSwitchSuccess, c.Tab), Tab: c.Tab}, nil
}

// Undo restores the state before the last committed change.
type Undo struct{}

func (c *Undo) Traits() Trait { return Mutating | Rewinding }

func (c *Undo) Execute(m *model.Model) (Result, error) {
	if err := m.Undo(); err != nil {
		return Result{}, fromModel(err)
	}
	return Feedback(MessageUndoSuccess), nil
}

// Redo reapplies the last undone change.
type Redo struct{}

func (c *Redo) Traits() Trait { return Mutating | Rewinding }

func (c *Redo) Execute(m *model.Model) (Result, error) {
	if err := m.Redo(); err != nil {
		return Result{}, fromModel(err)
	}
	return Feedback(MessageRedoSuccess), nil
}

// Stats tabulates presence and participation per displayed student.
type Stats struct{}

func (c *Stats) Traits() Trait { return None }

func (c *Stats) Execute(m *model.Model) (Result, error) {
	students := m.FilteredStudents()
	if len(students) == 0 {
		return Result{}, ValidationErrorf(MessageNoStudents)
	}
	sessions := m.Sessions()

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("#", "NAME", "PRESENT", "PARTICIPATED")
	for i, s := range students {
		present, participated := 0, 0
		for _, ses := range sessions {
			a, ok := ses.AttributesOf(s.ID)
			if !ok {
				continue
			}
			if a.Present {
				present++
			}
			if a.Participated {
				participated++
			}
		}
		tbl.AddRow(i+1, s.Name,
			fmt.Sprintf("%d/%d", present, len(sessions)),
			fmt.Sprintf("%d/%d", participated, len(sessions)))
	}
	tbl.RightAlign(0)
	return Result{Feedback: tbl.String(), Tab: TabStudents}, nil
}

// Rng picks one displayed student at random.
type Rng struct {
	// Intn returns a value in [0, n). Defaults to math/rand/v2.
	Intn func(n int) int
}

func (c *Rng) Traits() Trait { return None }

func (c *Rng) Execute(m *model.Model) (Result, error) {
	students := m.FilteredStudents()
	if len(students) == 0 {
		return Result{}, ValidationErrorf(MessageNoStudents)
	}
	intn := c.Intn
	if intn == nil {
		intn = rand.IntN
	}
	picked := students[intn(len(students))]
	return Feedback(fmt.Sprintf(MessageRngSuccess, picked.Name)), nil
}
