// Package model owns the roster and the sessions and keeps every session in
// step with the roster.
package model

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"tableflip.dev/atas/pkg/index"
	"tableflip.dev/atas/pkg/session"
	"tableflip.dev/atas/pkg/student"
)

var (
	// ErrConsistency is raised when a session stops matching the roster.
	ErrConsistency = session.ErrMisaligned

	ErrDuplicateStudent = errors.New("model: student already exists")
	ErrStudentNotFound  = errors.New("model: student not found")
	ErrDuplicateSession = errors.New("model: session already exists")
	ErrSessionNotFound  = errors.New("model: session not found")
	ErrNoSessionEntered = errors.New("model: no session entered")
)

// SessionPredicate selects sessions for the filtered view.
type SessionPredicate func(*session.Session) bool

// AllSessions shows every session.
func AllSessions(*session.Session) bool { return true }

// Model is the single in-process store. It is not safe for concurrent use;
// callers run one command at a time.
type Model struct {
	students []student.Student
	sessions []*session.Session
	current  session.Name

	studentFilter student.Predicate
	sessionFilter SessionPredicate

	listeners []func()
	history   *history
}

// New builds a model from loaded data. Students without an ID are given one.
// Sessions must already hold one record per student.
func New(students []student.Student, sessions []*session.Session) (*Model, error) {
	m := &Model{
		studentFilter: student.All,
		sessionFilter: AllSessions,
	}
	for _, s := range students {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		m.students = append(m.students, s.Copy())
	}
	for _, s := range sessions {
		m.sessions = append(m.sessions, s.Copy())
	}
	m.sortSessions()
	if err := m.Check(); err != nil {
		return nil, err
	}
	m.history = newHistory(m.Snapshot())
	return m, nil
}

// Empty returns a model with no students and no sessions.
func Empty() *Model {
	m, _ := New(nil, nil)
	return m
}

// Subscribe registers fn to run after every change to the data or the views.
func (m *Model) Subscribe(fn func()) {
	m.listeners = append(m.listeners, fn)
}

func (m *Model) notify() {
	for _, fn := range m.listeners {
		fn()
	}
}

// Check verifies every session holds exactly one record per student.
func (m *Model) Check() error {
	for _, s := range m.sessions {
		if err := s.Check(m.students); err != nil {
			return err
		}
	}
	return nil
}

// Students returns the roster in order.
func (m *Model) Students() []student.Student {
	return append([]student.Student(nil), m.students...)
}

// FilteredStudents returns the roster restricted to the current filter.
func (m *Model) FilteredStudents() []student.Student {
	out := make([]student.Student, 0, len(m.students))
	for _, s := range m.students {
		if m.studentFilter(s) {
			out = append(out, s)
		}
	}
	return out
}

// UpdateFilteredStudents replaces the student filter. A nil predicate shows all.
func (m *Model) UpdateFilteredStudents(p student.Predicate) {
	if p == nil {
		p = student.All
	}
	m.studentFilter = p
	m.notify()
}

// HasStudent reports whether a student that IsSame as s is on the roster.
func (m *Model) HasStudent(s student.Student) bool {
	for _, existing := range m.students {
		if existing.IsSame(s) {
			return true
		}
	}
	return false
}

// AddStudent appends s to the roster and records them in every session.
func (m *Model) AddStudent(s student.Student) (student.Student, error) {
	if m.HasStudent(s) {
		return student.Student{}, fmt.Errorf("%w: %s", ErrDuplicateStudent, s.Matriculation)
	}
	s = s.Copy()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	m.students = append(m.students, s)
	for _, ses := range m.sessions {
		if err := ses.UpdateAfterAdd(m.students); err != nil {
			return student.Student{}, err
		}
	}
	m.notify()
	return s, nil
}

// DeleteStudent removes target from the roster and then from every session.
func (m *Model) DeleteStudent(target student.Student) error {
	pos := m.studentPosition(target.ID)
	if pos < 0 {
		return fmt.Errorf("%w: %s", ErrStudentNotFound, target.Name)
	}
	m.students = append(m.students[:pos:pos], m.students[pos+1:]...)
	for _, ses := range m.sessions {
		if err := ses.UpdateAfterDelete(target.ID, m.students); err != nil {
			return err
		}
	}
	m.notify()
	return nil
}

// SetStudent replaces target with edited, keeping target's ID and position.
func (m *Model) SetStudent(target, edited student.Student) error {
	pos := m.studentPosition(target.ID)
	if pos < 0 {
		return fmt.Errorf("%w: %s", ErrStudentNotFound, target.Name)
	}
	if !target.IsSame(edited) && m.HasStudent(edited) {
		return fmt.Errorf("%w: %s", ErrDuplicateStudent, edited.Matriculation)
	}
	edited = edited.Copy()
	edited.ID = target.ID
	m.students[pos] = edited
	for _, ses := range m.sessions {
		ses.UpdateAfterEdit(edited)
	}
	m.notify()
	return nil
}

// ClearStudents empties the roster and every session's records.
func (m *Model) ClearStudents() {
	m.students = nil
	for _, ses := range m.sessions {
		ses.Initialize(m.students)
	}
	m.notify()
}

func (m *Model) studentPosition(id uuid.UUID) int {
	for i, s := range m.students {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Sessions returns every session in date order.
func (m *Model) Sessions() []*session.Session {
	return append([]*session.Session(nil), m.sessions...)
}

// FilteredSessions returns the sessions restricted to the current filter.
func (m *Model) FilteredSessions() []*session.Session {
	out := make([]*session.Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		if m.sessionFilter(s) {
			out = append(out, s)
		}
	}
	return out
}

// UpdateFilteredSessions replaces the session filter. A nil predicate shows all.
func (m *Model) UpdateFilteredSessions(p SessionPredicate) {
	if p == nil {
		p = AllSessions
	}
	m.sessionFilter = p
	m.notify()
}

// HasSession reports whether a session with the same name exists.
func (m *Model) HasSession(s *session.Session) bool {
	return m.sessionPosition(s.Name) >= 0
}

// AddSession initializes s from the roster and inserts it in date order.
func (m *Model) AddSession(s *session.Session) error {
	if m.HasSession(s) {
		return fmt.Errorf("%w: %s", ErrDuplicateSession, s.Name)
	}
	s = s.Copy()
	s.Initialize(m.students)
	m.sessions = append(m.sessions, s)
	m.sortSessions()
	m.notify()
	return nil
}

// DeleteSession removes the session named like target.
func (m *Model) DeleteSession(target *session.Session) error {
	pos := m.sessionPosition(target.Name)
	if pos < 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, target.Name)
	}
	m.sessions = append(m.sessions[:pos:pos], m.sessions[pos+1:]...)
	if m.current == target.Name {
		m.current = ""
	}
	m.notify()
	return nil
}

// SetSession renames or re-dates target. Records are kept.
func (m *Model) SetSession(target *session.Session, name session.Name, date session.Date) error {
	pos := m.sessionPosition(target.Name)
	if pos < 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, target.Name)
	}
	if name != target.Name && m.sessionPosition(name) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateSession, name)
	}
	m.sessions[pos] = m.sessions[pos].WithDetails(name, date)
	if m.current == target.Name {
		m.current = name
	}
	m.sortSessions()
	m.notify()
	return nil
}

// ClearSessions removes every session.
func (m *Model) ClearSessions() {
	m.sessions = nil
	m.current = ""
	m.notify()
}

// EnterSession makes the session at i in the filtered view the current one.
func (m *Model) EnterSession(i index.Index) (*session.Session, error) {
	filtered := m.FilteredSessions()
	if i.ZeroBased() >= len(filtered) {
		return nil, fmt.Errorf("%w: %d", ErrSessionNotFound, i.OneBased())
	}
	s := filtered[i.ZeroBased()]
	m.current = s.Name
	m.notify()
	return s, nil
}

// CurrentSession returns the entered session, if any.
func (m *Model) CurrentSession() (*session.Session, bool) {
	if m.current == "" {
		return nil, false
	}
	pos := m.sessionPosition(m.current)
	if pos < 0 {
		return nil, false
	}
	return m.sessions[pos], true
}

// TogglePresence toggles presence across r in the current session.
func (m *Model) TogglePresence(r index.Range) error {
	s, ok := m.CurrentSession()
	if !ok {
		return ErrNoSessionEntered
	}
	if err := s.UpdatePresence(m.students, r); err != nil {
		return err
	}
	m.notify()
	return nil
}

// ToggleParticipation toggles participation across r in the current session.
func (m *Model) ToggleParticipation(r index.Range) error {
	s, ok := m.CurrentSession()
	if !ok {
		return ErrNoSessionEntered
	}
	if err := s.UpdateParticipation(m.students, r); err != nil {
		return err
	}
	m.notify()
	return nil
}

func (m *Model) sessionPosition(name session.Name) int {
	for i, s := range m.sessions {
		if s.Name == name {
			return i
		}
	}
	return -1
}

func (m *Model) sortSessions() {
	sort.SliceStable(m.sessions, func(i, j int) bool {
		return m.sessions[i].Before(m.sessions[j])
	})
}
