package model

import (
	"errors"
	"reflect"

	"tableflip.dev/atas/pkg/session"
	"tableflip.dev/atas/pkg/student"
)

var (
	ErrNothingToUndo = errors.New("model: nothing to undo")
	ErrNothingToRedo = errors.New("model: nothing to redo")
)

// Snapshot is a deep copy of the data held by a Model. Filters and the
// entered session are view state and are not part of it.
type Snapshot struct {
	Students []student.Student
	Sessions []*session.Session
}

// Snapshot copies the current data.
func (m *Model) Snapshot() Snapshot {
	var s Snapshot
	for _, st := range m.students {
		s.Students = append(s.Students, st.Copy())
	}
	for _, ses := range m.sessions {
		s.Sessions = append(s.Sessions, ses.Copy())
	}
	return s
}

func (m *Model) restore(s Snapshot) {
	m.students = nil
	for _, st := range s.Students {
		m.students = append(m.students, st.Copy())
	}
	m.sessions = nil
	for _, ses := range s.Sessions {
		m.sessions = append(m.sessions, ses.Copy())
	}
	// The entered session survives unless the restored data no longer has it.
	if _, ok := m.CurrentSession(); !ok {
		m.current = ""
	}
	m.notify()
}

// history keeps every committed state and a cursor into it.
type history struct {
	states []Snapshot
	cursor int
}

func newHistory(initial Snapshot) *history {
	return &history{states: []Snapshot{initial}}
}

// Commit records the current data as a new state and drops any redo states.
// Data equal to the last committed state is not recorded, so undo always
// has something to revert. It reports whether a state was recorded.
func (m *Model) Commit() bool {
	h := m.history
	snap := m.Snapshot()
	if reflect.DeepEqual(h.states[h.cursor], snap) {
		return false
	}
	h.states = append(h.states[:h.cursor+1], snap)
	h.cursor++
	return true
}

func (m *Model) CanUndo() bool {
	return m.history.cursor > 0
}

func (m *Model) CanRedo() bool {
	return m.history.cursor < len(m.history.states)-1
}

// Undo restores the previously committed state.
func (m *Model) Undo() error {
	if !m.CanUndo() {
		return ErrNothingToUndo
	}
	m.history.cursor--
	m.restore(m.history.states[m.history.cursor])
	return nil
}

// Redo restores the state undone most recently.
func (m *Model) Redo() error {
	if !m.CanRedo() {
		return ErrNothingToRedo
	}
	m.history.cursor++
	m.restore(m.history.states[m.history.cursor])
	return nil
}
