package session

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/atas/pkg/index"
	"tableflip.dev/atas/pkg/student"
)

func roster(names ...string) []student.Student {
	out := make([]student.Student, 0, len(names))
	for _, n := range names {
		s := student.New(student.Name(n), "A1234567", "x@example.com", nil)
		s.ID = uuid.New()
		out = append(out, s)
	}
	return out
}

func mustRange(t *testing.T, raw string) index.Range {
	t.Helper()
	r, err := index.ParseRange(raw)
	if err != nil {
		t.Fatalf("parse range %q: %v", raw, err)
	}
	return r
}

func list(t *testing.T, s *Session, r []student.Student) []Attributes {
	t.Helper()
	out, err := s.AttributeList(r)
	if err != nil {
		t.Fatalf("attribute list: %v", err)
	}
	return out
}

func TestAttributesToggle(t *testing.T) {
	a := NewAttributes("Alice")
	once := a.TogglePresence()
	if once.Present == a.Present {
		t.Fatalf("expected a single toggle to flip presence")
	}
	if once.Participated != a.Participated || once.Name != a.Name {
		t.Fatalf("expected other fields untouched, got %v", once)
	}
	if twice := once.TogglePresence(); twice != a {
		t.Fatalf("expected double toggle to restore %v, got %v", a, twice)
	}
	if p := a.ToggleParticipation(); !p.Participated || p.Present {
		t.Fatalf("unexpected participation toggle: %v", p)
	}
	if a.Present || a.Participated {
		t.Fatalf("toggle mutated the receiver")
	}
}

func TestInitializeFollowsRoster(t *testing.T) {
	r := roster("Alice", "Bob", "Carl")
	s := New("Tutorial 1", MustDate("10/10/2020"))
	s.Initialize(r)

	got := list(t, s, r)
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
	for i, a := range got {
		if a.Name != r[i].Name.String() || a.Present || a.Participated {
			t.Fatalf("unexpected default record at %d: %v", i, a)
		}
	}
}

func TestUpdateAfterAdd(t *testing.T) {
	r := roster("Alice", "Bob")
	s := New("Tutorial 1", MustDate("10/10/2020"))
	s.Initialize(r)

	r = append(r, roster("Dan")...)
	if err := s.UpdateAfterAdd(r); err != nil {
		t.Fatalf("update after add: %v", err)
	}
	got := list(t, s, r)
	if len(got) != 3 || got[2].Name != "Dan" {
		t.Fatalf("unexpected records: %v", got)
	}
}

func TestUpdateAfterDeleteShiftsLaterRecords(t *testing.T) {
	r := roster("Alice", "Bob", "Carl")
	s := New("Tutorial 1", MustDate("10/10/2020"))
	s.Initialize(r)
	if err := s.SetStudentAsPresent(r, index.MustOneBased(2)); err != nil {
		t.Fatalf("present: %v", err)
	}
	if err := s.SetStudentAsParticipated(r, index.MustOneBased(3)); err != nil {
		t.Fatalf("participated: %v", err)
	}

	// The roster shrinks first; the session follows.
	removed := r[0]
	r = r[1:]
	if err := s.UpdateAfterDelete(removed.ID, r); err != nil {
		t.Fatalf("update after delete: %v", err)
	}

	got := list(t, s, r)
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].Name != "Bob" || !got[0].Present {
		t.Fatalf("expected old position 1 at 0, got %v", got[0])
	}
	if got[1].Name != "Carl" || !got[1].Participated {
		t.Fatalf("expected old position 2 at 1, got %v", got[1])
	}
}

func TestUpdateAfterDeleteBeforeRosterShrinksIsMisaligned(t *testing.T) {
	r := roster("Alice", "Bob")
	s := New("Tutorial 1", MustDate("10/10/2020"))
	s.Initialize(r)
	if err := s.UpdateAfterDelete(r[0].ID, r); !errors.Is(err, ErrMisaligned) {
		t.Fatalf("expected ErrMisaligned, got %v", err)
	}
}

func TestSetStudentOutOfBounds(t *testing.T) {
	r := roster("Alice")
	s := New("Tutorial 1", MustDate("10/10/2020"))
	s.Initialize(r)
	if err := s.SetStudentAsPresent(r, index.MustOneBased(2)); !errors.Is(err, ErrInvalidIndex) {
		t.Fatalf("expected ErrInvalidIndex, got %v", err)
	}
	if err := s.SetStudentAsParticipated(r, index.MustOneBased(5)); !errors.Is(err, ErrInvalidIndex) {
		t.Fatalf("expected ErrInvalidIndex, got %v", err)
	}
}

func TestUpdateParticipationSkipsOutOfRange(t *testing.T) {
	r := roster("Alice", "Bob", "Carl")
	s := New("Tutorial 1", MustDate("10/10/2020"))
	s.Initialize(r)

	if err := s.UpdateParticipation(r, mustRange(t, "1-5")); err != nil {
		t.Fatalf("update participation: %v", err)
	}
	for i, a := range list(t, s, r) {
		if !a.Participated {
			t.Fatalf("expected position %d to be toggled", i)
		}
	}
	if s.Len() != 3 {
		t.Fatalf("expected no records added for skipped positions, got %d", s.Len())
	}
}

func TestUpdatePresenceHugeRangeReturns(t *testing.T) {
	r := roster("Alice", "Bob", "Carl")
	s := New("Tutorial 1", MustDate("10/10/2020"))
	s.Initialize(r)

	huge := mustRange(t, "2-9223372036854775807")
	done := make(chan error, 1)
	go func() {
		done <- s.UpdatePresence(r, huge)
	}()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("update presence: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("update presence over a huge range did not return")
	}
	got := list(t, s, r)
	if got[0].Present || !got[1].Present || !got[2].Present {
		t.Fatalf("expected positions 2 and 3 toggled, got %+v", got)
	}
}

func TestUpdatePresenceTogglesOnlyRange(t *testing.T) {
	r := roster("Alice", "Bob", "Carl")
	s := New("Tutorial 1", MustDate("10/10/2020"))
	s.Initialize(r)

	if err := s.UpdatePresence(r, mustRange(t, "2-3")); err != nil {
		t.Fatalf("update presence: %v", err)
	}
	got := list(t, s, r)
	if got[0].Present || !got[1].Present || !got[2].Present {
		t.Fatalf("unexpected presence: %v", got)
	}
	if err := s.UpdatePresence(r, mustRange(t, "2")); err != nil {
		t.Fatalf("update presence: %v", err)
	}
	if list(t, s, r)[1].Present {
		t.Fatalf("expected second toggle to clear presence")
	}
}

func TestUpdateAfterEdit(t *testing.T) {
	r := roster("Alice")
	s := New("Tutorial 1", MustDate("10/10/2020"))
	s.Initialize(r)
	edited := r[0]
	edited.Name = "Alicia"
	s.UpdateAfterEdit(edited)
	if a, _ := s.AttributesOf(edited.ID); a.Name != "Alicia" {
		t.Fatalf("expected renamed record, got %v", a)
	}
}

func TestCopyIsIndependent(t *testing.T) {
	r := roster("Alice")
	s := New("Tutorial 1", MustDate("10/10/2020"))
	s.Initialize(r)
	cp := s.Copy()
	if err := cp.SetStudentAsPresent(r, index.MustOneBased(1)); err != nil {
		t.Fatalf("present: %v", err)
	}
	if a, _ := s.AttributesOf(r[0].ID); a.Present {
		t.Fatalf("copy shares attributes with original")
	}
}

func TestEqualityAndOrdering(t *testing.T) {
	a := New("Tutorial 1", MustDate("10/10/2020"))
	b := New("Tutorial 1", MustDate("11/10/2020"))
	c := New("Lab", MustDate("10/10/2020"))

	if !a.IsSame(b) || a.Equal(b) {
		t.Fatalf("same name, different date: IsSame=%t Equal=%t", a.IsSame(b), a.Equal(b))
	}
	if a.IsSame(c) {
		t.Fatalf("different names should not be the same session")
	}
	if !a.Equal(New("Tutorial 1", MustDate("10/10/2020"))) {
		t.Fatalf("expected name and date equality")
	}
	if !a.Before(b) || b.Before(a) {
		t.Fatalf("expected ordering by date")
	}
	if a.Before(c) || c.Before(a) {
		t.Fatalf("sessions on one date are unordered")
	}
	if a.String() != "Tutorial 1 @ 10/10/2020" {
		t.Fatalf("unexpected string: %s", a.String())
	}
}

func TestParseSessionFields(t *testing.T) {
	if _, err := ParseName(""); !errors.Is(err, ErrInvalidField) {
		t.Fatalf("expected ErrInvalidField, got %v", err)
	}
	if _, err := ParseDate("2020-10-10"); !errors.Is(err, ErrInvalidField) {
		t.Fatalf("expected ErrInvalidField, got %v", err)
	}
	d, err := ParseDate("1/2/2021")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	if d.Day() != 1 || d.Month() != 2 || d.Year() != 2021 {
		t.Fatalf("expected day-first parsing, got %v", d.Time)
	}
}
