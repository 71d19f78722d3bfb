// Package command holds the typed commands a parsed line turns into.
//
// Each command declares its capabilities through Traits. Dispatchers check
// the traits rather than the concrete type: Dangerous commands need a
// confirmation, Mutating commands trigger a save, Rewinding commands move
// through history instead of adding to it.
package command

import (
	"strings"

	"tableflip.dev/atas/pkg/model"
)

// Trait is a capability bitmask attached to every command.
type Trait uint8

const (
	// Dangerous commands discard or overwrite data and need confirmation.
	Dangerous Trait = 1 << iota
	// Mutating commands change persisted data.
	Mutating
	// Rewinding commands restore history rather than create it.
	Rewinding
)

// None is the zero trait set.
const None Trait = 0

func (t Trait) Has(o Trait) bool {
	return t&o == o
}

// Command is one user intent, ready to run.
type Command interface {
	// Execute validates against m at call time, then mutates it.
	Execute(m *model.Model) (Result, error)
	Traits() Trait
}

// Confirmable is implemented by dangerous commands to phrase the question
// asked before they run.
type Confirmable interface {
	Prompt() string
}

// PromptFor returns the confirmation question for c.
func PromptFor(c Command) string {
	if p, ok := c.(Confirmable); ok {
		return p.Prompt()
	}
	return "Are you sure? " + ConfirmChoices
}

// Tab names a view of the presentation layer.
type Tab int

const (
	TabNone Tab = iota
	TabStudents
	TabSessions
	TabCurrent
)

var tabNames = map[Tab]string{
	TabStudents: "students",
	TabSessions: "sessions",
	TabCurrent:  "current",
}

// ParseTab reads a tab name, ignoring case.
func ParseTab(raw string) (Tab, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	for t, name := range tabNames {
		if name == raw {
			return t, true
		}
	}
	return TabNone, false
}

func (t Tab) String() string {
	return tabNames[t]
}

// Result is what the presentation layer receives after a command.
type Result struct {
	Feedback string
	ShowHelp bool
	Tab      Tab
	Exit     bool
}

// Feedback is a Result carrying only a message.
func Feedback(msg string) Result {
	return Result{Feedback: msg}
}
