package logic

import (
	"context"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"tableflip.dev/atas/pkg/command"
	"tableflip.dev/atas/pkg/index"
	"tableflip.dev/atas/pkg/model"
	"tableflip.dev/atas/pkg/session"
	"tableflip.dev/atas/pkg/student"
)

type memoryStore struct {
	students []student.Student
	sessions []*session.Session
	saves    int
	err      error
}

func (m *memoryStore) Load(ctx context.Context) ([]student.Student, []*session.Session, error) {
	return m.students, m.sessions, nil
}

func (m *memoryStore) Save(ctx context.Context, students []student.Student, sessions []*session.Session) error {
	if m.err != nil {
		return m.err
	}
	m.saves++
	m.students = students
	m.sessions = sessions
	return nil
}

var nop = zerolog.New(io.Discard)

func newLogic(t *testing.T, lines ...string) (*Logic, *memoryStore) {
	t.Helper()
	st := &memoryStore{}
	l, err := Load(context.Background(), st, nop)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	for _, line := range lines {
		mustExecute(t, l, line)
	}
	return l, st
}

func mustExecute(t *testing.T, l *Logic, line string) command.Result {
	t.Helper()
	res, err := l.Execute(context.Background(), line)
	if err != nil {
		t.Fatalf("%q: unexpected error: %v", line, err)
	}
	return res
}

var typical = []string{
	"add n/Alice m/A0000001 e/alice@x.com",
	"add n/Bob m/A0000002 e/bob@x.com",
	"add n/Carl m/A0000003 e/carl@x.com",
	"addses se/Tutorial 1 sd/10/10/2020",
}

func TestDangerousCommandWaitsForConfirmation(t *testing.T) {
	l, st := newLogic(t, typical...)
	before := l.Model().Snapshot()
	saves := st.saves

	res := mustExecute(t, l, "delete 1")
	if res.Feedback != "Delete student 1? (yes/no)" {
		t.Fatalf("unexpected prompt %q", res.Feedback)
	}
	if l.State() != AwaitingConfirmation {
		t.Fatalf("expected awaiting confirmation, got %v", l.State())
	}
	if c, ok := l.Pending(); !ok || c == nil {
		t.Fatal("expected a pending command")
	}
	if !reflect.DeepEqual(before, l.Model().Snapshot()) || st.saves != saves {
		t.Fatal("nothing should change before confirmation")
	}
}

func TestRejectLeavesModelUnchanged(t *testing.T) {
	for _, dangerous := range []string{"delete 1", "edit 2 n/Bobby", "clear", "deleteses 1", "editses 1 se/Lab", "clearses"} {
		l, st := newLogic(t, typical...)
		before := l.Model().Snapshot()
		saves := st.saves

		mustExecute(t, l, dangerous)
		res := mustExecute(t, l, "no")
		if res.Feedback != MessageRejected {
			t.Fatalf("%s: unexpected feedback %q", dangerous, res.Feedback)
		}
		if l.State() != Idle {
			t.Fatalf("%s: expected idle after reject", dangerous)
		}
		if !reflect.DeepEqual(before, l.Model().Snapshot()) || st.saves != saves {
			t.Fatalf("%s: reject changed the model", dangerous)
		}
	}
}

func TestAcceptMatchesDirectExecution(t *testing.T) {
	tests := map[string]command.Command{
		"delete 2":         &command.Delete{Index: index.MustOneBased(2)},
		"clear":            &command.Clear{},
		"deleteses 1":      &command.DeleteSession{Index: index.MustOneBased(1)},
		"edit 1 e/a@y.com": nil,
	}
	for line, direct := range tests {
		l, _ := newLogic(t, typical...)
		mustExecute(t, l, line)
		res := mustExecute(t, l, "YES")
		if res.Feedback == "" {
			t.Fatalf("%s: expected feedback", line)
		}

		if direct == nil {
			continue
		}
		other, _ := newLogic(t, typical...)
		if _, err := direct.Execute(other.Model()); err != nil {
			t.Fatalf("%s: direct execution failed: %v", line, err)
		}
		if got, want := l.Model().Snapshot(), other.Model().Snapshot(); !sameData(got, want) {
			t.Fatalf("%s: confirmed result differs from direct execution", line)
		}
	}
}

// sameData compares snapshots of models whose students were given different IDs.
func sameData(a, b model.Snapshot) bool {
	if len(a.Students) != len(b.Students) || len(a.Sessions) != len(b.Sessions) {
		return false
	}
	for i := range a.Students {
		if !a.Students[i].Equal(b.Students[i]) {
			return false
		}
	}
	for i := range a.Sessions {
		if !a.Sessions[i].Equal(b.Sessions[i]) {
			return false
		}
		la, errA := a.Sessions[i].AttributeList(a.Students)
		lb, errB := b.Sessions[i].AttributeList(b.Students)
		if errA != nil || errB != nil || !reflect.DeepEqual(la, lb) {
			return false
		}
	}
	return true
}

func TestConfirmationRevalidates(t *testing.T) {
	l, _ := newLogic(t, typical...)
	mustExecute(t, l, "delete 3")

	// The roster shrinks behind the pending command's back.
	if err := l.Model().DeleteStudent(l.Model().Students()[0]); err != nil {
		t.Fatalf("DeleteStudent failed: %v", err)
	}

	_, err := l.Execute(context.Background(), "yes")
	if !errors.Is(err, command.ErrValidation) || err.Error() != command.MessageInvalidStudentIndex {
		t.Fatalf("expected invalid index at confirmation, got %v", err)
	}
	if l.State() != Idle {
		t.Fatal("expected idle after a failed confirmation")
	}
}

func TestUnrelatedInputDiscardsPending(t *testing.T) {
	l, _ := newLogic(t, typical...)
	mustExecute(t, l, "delete 1")
	res := mustExecute(t, l, "list")
	if res.Feedback != command.MessageListSuccess {
		t.Fatalf("expected list to run, got %q", res.Feedback)
	}
	if l.State() != Idle {
		t.Fatal("expected the pending command to be discarded")
	}
	if len(l.Model().Students()) != 3 {
		t.Fatal("discarded command must not run")
	}

	_, err := l.Execute(context.Background(), "yes")
	if err == nil || err.Error() != command.MessageUnknownCommand {
		t.Fatalf("expected unknown command, got %v", err)
	}
}

func TestDangerousInputReplacesPending(t *testing.T) {
	l, _ := newLogic(t, typical...)
	mustExecute(t, l, "delete 1")
	res := mustExecute(t, l, "clearses")
	if !strings.HasSuffix(res.Feedback, command.ConfirmChoices) {
		t.Fatalf("expected a new prompt, got %q", res.Feedback)
	}
	mustExecute(t, l, "yes")
	if len(l.Model().Sessions()) != 0 || len(l.Model().Students()) != 3 {
		t.Fatal("only the latest dangerous command should run")
	}
}

func TestYesNoWhileIdle(t *testing.T) {
	l, _ := newLogic(t)
	for _, line := range []string{"yes", "no"} {
		_, err := l.Execute(context.Background(), line)
		if !errors.Is(err, command.ErrParse) || err.Error() != command.MessageUnknownCommand {
			t.Fatalf("%s: expected unknown command, got %v", line, err)
		}
	}
}

func TestMutatingCommandsSave(t *testing.T) {
	l, st := newLogic(t)
	mustExecute(t, l, "add n/Alice m/A0000001 e/alice@x.com")
	if st.saves != 1 || len(st.students) != 1 {
		t.Fatalf("expected one save holding Alice, got %d saves", st.saves)
	}
	mustExecute(t, l, "list")
	mustExecute(t, l, "find alice")
	if st.saves != 1 {
		t.Fatalf("read-only commands must not save, got %d saves", st.saves)
	}
	mustExecute(t, l, "undo")
	if st.saves != 2 || len(st.students) != 0 {
		t.Fatalf("expected undo to save the empty roster, got %d saves", st.saves)
	}
	mustExecute(t, l, "redo")
	if st.saves != 3 || len(st.students) != 1 {
		t.Fatalf("expected redo to save Alice again, got %d saves", st.saves)
	}
}

func TestUndoAfterConfirmedDelete(t *testing.T) {
	l, _ := newLogic(t, typical...)
	before := l.Model().Snapshot()
	mustExecute(t, l, "delete 1")
	mustExecute(t, l, "yes")
	mustExecute(t, l, "undo")
	if !reflect.DeepEqual(before, l.Model().Snapshot()) {
		t.Fatal("undo should restore the deleted student")
	}
	if _, err := l.Execute(context.Background(), "redo"); err != nil {
		t.Fatalf("redo failed: %v", err)
	}
	if len(l.Model().Students()) != 2 {
		t.Fatal("redo should delete the student again")
	}
}

func TestFailedCommandDoesNotSave(t *testing.T) {
	l, st := newLogic(t, typical...)
	saves := st.saves
	if _, err := l.Execute(context.Background(), "add n/Alice m/A0000001 e/alice@x.com"); !errors.Is(err, command.ErrValidation) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	if _, err := l.Execute(context.Background(), "presence 1"); !errors.Is(err, command.ErrValidation) {
		t.Fatalf("expected no session entered, got %v", err)
	}
	if st.saves != saves {
		t.Fatal("failed commands must not save")
	}
	if _, err := l.Execute(context.Background(), "undo"); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if len(l.Model().Sessions()) != 0 {
		t.Fatal("failed commands must not add history")
	}
}

func TestSaveFailure(t *testing.T) {
	l, st := newLogic(t)
	st.err = errors.New("disk full")
	res, err := l.Execute(context.Background(), "add n/Alice m/A0000001 e/alice@x.com")
	if !errors.Is(err, ErrSave) {
		t.Fatalf("expected ErrSave, got %v", err)
	}
	if Fatal(err) {
		t.Fatal("a save failure is not fatal")
	}
	if !strings.HasPrefix(res.Feedback, "New student added") {
		t.Fatalf("expected the command result alongside the error, got %q", res.Feedback)
	}
}

func TestAttendanceFlow(t *testing.T) {
	l, st := newLogic(t, typical...)
	res := mustExecute(t, l, "enterses 1")
	if res.Tab != command.TabCurrent {
		t.Fatalf("expected current tab, got %v", res.Tab)
	}
	mustExecute(t, l, "presence 1-2")
	mustExecute(t, l, "participate 2-9")

	cur, ok := l.Model().CurrentSession()
	if !ok {
		t.Fatal("expected a current session")
	}
	list, err := cur.AttributeList(l.Model().Students())
	if err != nil {
		t.Fatalf("AttributeList failed: %v", err)
	}
	if !list[0].Present || !list[1].Present || list[2].Present {
		t.Fatalf("unexpected presence %v", list)
	}
	if list[0].Participated || !list[1].Participated || !list[2].Participated {
		t.Fatalf("unexpected participation %v", list)
	}
	stored := st.sessions[0].Attributes()
	if a := stored[l.Model().Students()[1].ID]; !a.Present || !a.Participated {
		t.Fatalf("expected Bob's record to be saved, got %+v", a)
	}
}

func presence(t *testing.T, l *Logic) []bool {
	t.Helper()
	cur, ok := l.Model().CurrentSession()
	if !ok {
		t.Fatal("expected a current session")
	}
	list, err := cur.AttributeList(l.Model().Students())
	if err != nil {
		t.Fatalf("AttributeList failed: %v", err)
	}
	out := make([]bool, len(list))
	for i, a := range list {
		out[i] = a.Present
	}
	return out
}

func TestUndoKeepsEnteredSession(t *testing.T) {
	l, _ := newLogic(t, append(typical, "enterses 1", "presence 1")...)
	mustExecute(t, l, "undo")
	if _, ok := l.Model().CurrentSession(); !ok {
		t.Fatal("undo left the entered session")
	}
	mustExecute(t, l, "presence 2")
	if got := presence(t, l); !reflect.DeepEqual(got, []bool{false, true, false}) {
		t.Fatalf("unexpected presence %v", got)
	}
}

func TestUndoDropsSessionThatNoLongerExists(t *testing.T) {
	l, _ := newLogic(t, typical...)
	mustExecute(t, l, "addses se/Tutorial 2 sd/17/10/2020")
	mustExecute(t, l, "enterses 2")
	mustExecute(t, l, "undo")
	if _, ok := l.Model().CurrentSession(); ok {
		t.Fatal("expected no current session once it was undone away")
	}
}

func TestUnchangedDataIsNotUndoable(t *testing.T) {
	l, _ := newLogic(t, append(typical, "enterses 1", "presence 1")...)
	mustExecute(t, l, "presence 5-9")
	mustExecute(t, l, "undo")
	if got := presence(t, l); !reflect.DeepEqual(got, []bool{false, false, false}) {
		t.Fatalf("expected undo to revert presence 1, got %v", got)
	}
}

func TestHugeRangeReturns(t *testing.T) {
	l, _ := newLogic(t, append(typical, "enterses 1")...)
	done := make(chan error, 1)
	go func() {
		_, err := l.Execute(context.Background(), "presence 1-9223372036854775807")
		done <- err
	}()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("presence over a huge range did not return")
	}
	if got := presence(t, l); !reflect.DeepEqual(got, []bool{true, true, true}) {
		t.Fatalf("unexpected presence %v", got)
	}
}

func TestLoadRejectsMisalignedData(t *testing.T) {
	alice := student.New("Alice", "A0000001", "alice@x.com", nil)
	st := &memoryStore{
		students: []student.Student{alice},
		sessions: []*session.Session{session.New("Tutorial 1", session.MustDate("1/1/2021"))},
	}
	_, err := Load(context.Background(), st, nop)
	if !Fatal(err) {
		t.Fatalf("expected a consistency error, got %v", err)
	}
}

func TestCommandName(t *testing.T) {
	if got := commandName(&command.DeleteSession{}); got != "deletesession" {
		t.Fatalf("got %q", got)
	}
}
