// Package session tracks presence and participation of the roster for one
// tutorial session.
//
// Attributes are keyed by the stable student ID rather than by position, so
// adding or removing a student never shifts other records. Positional access
// always goes through the current roster.
package session

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"tableflip.dev/atas/pkg/index"
	"tableflip.dev/atas/pkg/student"
)

var (
	// ErrMisaligned means the session no longer holds exactly one record per
	// roster entry. It is an internal invariant failure, not a user error.
	ErrMisaligned = errors.New("session: attributes out of step with student list")

	// ErrInvalidIndex is returned when a position does not address a student.
	ErrInvalidIndex = errors.New("session: invalid student index")
)

// Session is a named, dated meeting with one Attributes record per student.
type Session struct {
	Name Name
	Date Date

	attributes map[uuid.UUID]Attributes
}

// New creates an empty session. Call Initialize before use.
func New(name Name, date Date) *Session {
	return &Session{Name: name, Date: date, attributes: make(map[uuid.UUID]Attributes)}
}

// Restore rebuilds a session from stored attributes.
func Restore(name Name, date Date, attributes map[uuid.UUID]Attributes) *Session {
	s := New(name, date)
	for id, a := range attributes {
		s.attributes[id] = a
	}
	return s
}

// Initialize replaces the attributes with one default record per student.
func (s *Session) Initialize(roster []student.Student) {
	s.attributes = make(map[uuid.UUID]Attributes, len(roster))
	for _, st := range roster {
		s.attributes[st.ID] = NewAttributes(st.Name.String())
	}
}

// UpdateAfterAdd records the student most recently appended to the roster.
func (s *Session) UpdateAfterAdd(roster []student.Student) error {
	if len(roster) == 0 {
		return fmt.Errorf("%w: add with empty roster", ErrMisaligned)
	}
	added := roster[len(roster)-1]
	s.attributes[added.ID] = NewAttributes(added.Name.String())
	return s.check(roster)
}

// UpdateAfterDelete forgets a student. The roster must already exclude them.
func (s *Session) UpdateAfterDelete(removed uuid.UUID, roster []student.Student) error {
	delete(s.attributes, removed)
	return s.check(roster)
}

// UpdateAfterEdit refreshes the denormalized name of an edited student.
func (s *Session) UpdateAfterEdit(edited student.Student) {
	if a, ok := s.attributes[edited.ID]; ok {
		a.Name = edited.Name.String()
		s.attributes[edited.ID] = a
	}
}

// SetStudentAsPresent toggles presence for the student at position i.
func (s *Session) SetStudentAsPresent(roster []student.Student, i index.Index) error {
	return s.toggle(roster, i, Attributes.TogglePresence)
}

// SetStudentAsParticipated toggles participation for the student at position i.
func (s *Session) SetStudentAsParticipated(roster []student.Student, i index.Index) error {
	return s.toggle(roster, i, Attributes.ToggleParticipation)
}

// UpdatePresence toggles presence across r. Positions past the roster are skipped.
func (s *Session) UpdatePresence(roster []student.Student, r index.Range) error {
	return s.toggleRange(roster, r, Attributes.TogglePresence)
}

// UpdateParticipation toggles participation across r. Positions past the
// roster are skipped.
func (s *Session) UpdateParticipation(roster []student.Student, r index.Range) error {
	return s.toggleRange(roster, r, Attributes.ToggleParticipation)
}

func (s *Session) toggle(roster []student.Student, i index.Index, fn func(Attributes) Attributes) error {
	if i.ZeroBased() >= len(roster) {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, i.OneBased())
	}
	id := roster[i.ZeroBased()].ID
	a, ok := s.attributes[id]
	if !ok {
		return fmt.Errorf("%w: no record for %s", ErrMisaligned, roster[i.ZeroBased()].Name)
	}
	s.attributes[id] = fn(a)
	return nil
}

func (s *Session) toggleRange(roster []student.Student, r index.Range, fn func(Attributes) Attributes) error {
	if err := s.check(roster); err != nil {
		return err
	}
	r.Each(len(roster), func(i int) {
		id := roster[i].ID
		s.attributes[id] = fn(s.attributes[id])
	})
	return nil
}

// AttributeList projects the attributes into roster order.
func (s *Session) AttributeList(roster []student.Student) ([]Attributes, error) {
	if err := s.check(roster); err != nil {
		return nil, err
	}
	out := make([]Attributes, len(roster))
	for i, st := range roster {
		out[i] = s.attributes[st.ID]
	}
	return out, nil
}

// AttributesOf returns the record held for a student.
func (s *Session) AttributesOf(id uuid.UUID) (Attributes, bool) {
	a, ok := s.attributes[id]
	return a, ok
}

// Attributes returns a copy of the keyed records, for persistence.
func (s *Session) Attributes() map[uuid.UUID]Attributes {
	out := make(map[uuid.UUID]Attributes, len(s.attributes))
	for id, a := range s.attributes {
		out[id] = a
	}
	return out
}

// Len is the number of records held.
func (s *Session) Len() int {
	return len(s.attributes)
}

// Check verifies there is exactly one record per roster entry.
func (s *Session) Check(roster []student.Student) error {
	return s.check(roster)
}

func (s *Session) check(roster []student.Student) error {
	if len(s.attributes) != len(roster) {
		return fmt.Errorf("%w: %q holds %d records for %d students", ErrMisaligned, s.Name, len(s.attributes), len(roster))
	}
	for _, st := range roster {
		if _, ok := s.attributes[st.ID]; !ok {
			return fmt.Errorf("%w: %q has no record for %s", ErrMisaligned, s.Name, st.Name)
		}
	}
	return nil
}

// Copy returns a session that shares nothing with the receiver.
func (s *Session) Copy() *Session {
	return Restore(s.Name, s.Date, s.attributes)
}

// WithDetails returns a copy carrying a new name and date but the same records.
func (s *Session) WithDetails(name Name, date Date) *Session {
	return Restore(name, date, s.attributes)
}

// IsSame reports whether both sessions have the same name.
func (s *Session) IsSame(other *Session) bool {
	if other == nil {
		return false
	}
	return s == other || s.Name == other.Name
}

// Equal reports whether both sessions have the same name and date.
func (s *Session) Equal(other *Session) bool {
	if other == nil {
		return false
	}
	return s == other || (s.Name == other.Name && s.Date.Equal(other.Date))
}

// Before orders sessions by date only.
func (s *Session) Before(other *Session) bool {
	return s.Date.Before(other.Date.Time)
}

func (s *Session) String() string {
	return fmt.Sprintf("%s @ %s", s.Name, s.Date)
}
