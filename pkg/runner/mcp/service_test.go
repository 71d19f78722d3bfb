package mcp

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"tableflip.dev/atas/pkg/logic"
	"tableflip.dev/atas/pkg/model"
)

func newService(t *testing.T, lines ...string) *Service {
	t.Helper()
	svc := NewService(logic.New(model.Empty(), nil, zerolog.New(io.Discard)))
	for _, line := range lines {
		if _, err := svc.Run(context.Background(), line, false); err != nil {
			t.Fatalf("%s: %v", line, err)
		}
	}
	return svc
}

var roster = []string{
	"add n/Alice m/A0000001 e/alice@x.com t/tutor",
	"add n/Bob m/A0000002 e/bob@x.com",
	"addses se/Tutorial 1 sd/10/10/2020",
}

func TestServiceRun(t *testing.T) {
	svc := newService(t, roster...)
	students, err := svc.ListStudents(context.Background())
	if err != nil {
		t.Fatalf("ListStudents failed: %v", err)
	}
	if len(students) != 2 || students[0].Name != "Alice" || students[0].Index != 1 {
		t.Fatalf("unexpected students %+v", students)
	}
	if len(students[0].Tags) != 1 || students[0].Tags[0] != "tutor" {
		t.Fatalf("unexpected tags %v", students[0].Tags)
	}
	if students[0].ID == "" {
		t.Fatal("expected an id")
	}
}

func TestServiceDangerousNeedsConfirm(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, roster...)

	res, err := svc.Run(ctx, "delete 1", false)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(res.Prompt, "(yes/no)") {
		t.Fatalf("expected a prompt, got %+v", res)
	}
	if students, _ := svc.ListStudents(ctx); len(students) != 2 {
		t.Fatal("unconfirmed delete must not run")
	}

	res, err = svc.Run(ctx, "delete 1", true)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.HasPrefix(res.Feedback, "Deleted Student: Alice") || res.Tab != "students" {
		t.Fatalf("unexpected result %+v", res)
	}
	if students, _ := svc.ListStudents(ctx); len(students) != 1 {
		t.Fatal("confirmed delete should run")
	}
}

func TestServiceUserError(t *testing.T) {
	svc := newService(t)
	if _, err := svc.Run(context.Background(), "delete 4", true); err == nil {
		t.Fatal("expected an error")
	}
	if _, err := svc.Run(context.Background(), "  ", false); err == nil {
		t.Fatal("expected an error for an empty command")
	}
}

func TestServiceSessions(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, append(roster, "enterses 1", "presence 1-2", "participate 2")...)

	sessions, err := svc.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("unexpected sessions %+v", sessions)
	}
	s := sessions[0]
	if !s.Current || s.Present != 2 || s.Participated != 1 || s.Students != 2 || s.Date != "10/10/2020" {
		t.Fatalf("unexpected session %+v", s)
	}

	sheet, err := svc.CurrentSheet(ctx)
	if err != nil {
		t.Fatalf("CurrentSheet failed: %v", err)
	}
	if len(sheet.Rows) != 2 || sheet.Rows[0].Participated || !sheet.Rows[1].Participated {
		t.Fatalf("unexpected sheet %+v", sheet)
	}
}

func TestServiceNoCurrentSession(t *testing.T) {
	svc := newService(t, roster...)
	if _, err := svc.CurrentSheet(context.Background()); err == nil {
		t.Fatal("expected an error without an entered session")
	}
}

func TestServiceSerializesCalls(t *testing.T) {
	svc := newService(t)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			line := "add n/Student m/A" + strings.Repeat("0", 5) + twoDigits(i) + " e/s@x.com"
			if _, err := svc.Run(context.Background(), line, false); err != nil {
				t.Errorf("%s: %v", line, err)
			}
		}(i)
	}
	wg.Wait()
	students, _ := svc.ListStudents(context.Background())
	if len(students) != 20 {
		t.Fatalf("expected 20 students, got %d", len(students))
	}
}

func twoDigits(i int) string {
	return string([]byte{byte('0' + i/10), byte('0' + i%10)})
}

func TestRunnerRequiresLogic(t *testing.T) {
	if _, err := (Runner{}).NewServer(); err == nil {
		t.Fatal("expected error without logic")
	}
	r := Runner{Logic: logic.New(model.Empty(), nil, zerolog.New(io.Discard))}
	if _, err := r.NewServer(); err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
}
