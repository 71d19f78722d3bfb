package store

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"tableflip.dev/atas/pkg/index"
	"tableflip.dev/atas/pkg/session"
	"tableflip.dev/atas/pkg/student"
)

type pathConfig string

func (p pathConfig) BasePath() string { return string(p) }

func TestLoadEmpty(t *testing.T) {
	p, err := Load(pathConfig(filepath.Join(t.TempDir(), "db")))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	students, sessions, err := p.Load(context.Background())
	if err != nil {
		t.Fatalf("Load data failed: %v", err)
	}
	if len(students) != 0 || len(sessions) != 0 {
		t.Fatalf("expected nothing, got %d students and %d sessions", len(students), len(sessions))
	}
}

func TestLoadRequiresPath(t *testing.T) {
	if _, err := Load(nil); err == nil {
		t.Fatal("expected error for nil config")
	}
	if _, err := Load(pathConfig("")); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "db")
	p, err := Load(pathConfig(dir))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	alice := student.New("Alice", "A1234567", "alice@x.com", student.NewTags("tutor"))
	alice.ID = uuid.New()
	bob := student.New("Bob", "A7654321X", "bob@x.com", nil)
	bob.ID = uuid.New()
	roster := []student.Student{alice, bob}

	s := session.New("Tutorial 1", session.MustDate("10/10/2020"))
	s.Initialize(roster)
	r, _ := index.ParseRange("1-2")
	if err := s.UpdatePresence(roster, r); err != nil {
		t.Fatalf("UpdatePresence failed: %v", err)
	}

	if err := p.Save(ctx, roster, []*session.Session{s}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// A second handle on the same directory sees the data.
	again, err := Load(pathConfig(dir))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	students, sessions, err := again.Load(ctx)
	if err != nil {
		t.Fatalf("Load data failed: %v", err)
	}
	if len(students) != 2 || students[0].ID != alice.ID || !students[0].Equal(alice) || !students[1].Equal(bob) {
		t.Fatalf("unexpected students %v", students)
	}
	if len(sessions) != 1 || !sessions[0].Equal(s) {
		t.Fatalf("unexpected sessions %v", sessions)
	}
	if !reflect.DeepEqual(sessions[0].Attributes(), s.Attributes()) {
		t.Fatalf("attributes differ: %v vs %v", sessions[0].Attributes(), s.Attributes())
	}
	if err := sessions[0].Check(students); err != nil {
		t.Fatalf("loaded session out of step: %v", err)
	}

	d, ok := again.(Describer)
	if !ok {
		t.Fatal("expected diskv store to describe itself")
	}
	if d.BasePath() != dir {
		t.Fatalf("expected base path %s, got %s", dir, d.BasePath())
	}
	if keys := d.Keys(ctx); !reflect.DeepEqual(keys, []string{rosterKey}) {
		t.Fatalf("unexpected keys %v", keys)
	}
}

func TestSaveHonoursContext(t *testing.T) {
	p, err := Load(pathConfig(filepath.Join(t.TempDir(), "db")))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Save(ctx, nil, nil); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}

func TestSaveReplacesRosterAndSessionsTogether(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "db")
	p, err := Load(pathConfig(dir))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	first := student.New("Alice", "A1234567", "alice@x.com", nil)
	first.ID = uuid.New()
	s := session.New("Tutorial 1", session.MustDate("10/10/2020"))
	s.Initialize([]student.Student{first})
	if err := p.Save(ctx, []student.Student{first}, []*session.Session{s}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	second := student.New("Bob", "A7654321", "bob@x.com", nil)
	second.ID = uuid.New()
	s2 := session.New("Tutorial 1", session.MustDate("10/10/2020"))
	s2.Initialize([]student.Student{second})
	if err := p.Save(ctx, []student.Student{second}, []*session.Session{s2}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	students, sessions, err := p.Load(ctx)
	if err != nil {
		t.Fatalf("Load data failed: %v", err)
	}
	if len(students) != 1 || students[0].ID != second.ID {
		t.Fatalf("unexpected students %v", students)
	}
	if err := sessions[0].Check(students); err != nil {
		t.Fatalf("sessions refer to a stale roster: %v", err)
	}
	if keys := p.(Describer).Keys(ctx); len(keys) != 1 || keys[0] != rosterKey {
		t.Fatalf("expected a single %s document, got %v", rosterKey, keys)
	}
}
