// Package mcp provides the Model Context Protocol server integration for atas.
package mcp

import (
	"context"
	"errors"
	"strings"
	"sync"

	"tableflip.dev/atas/pkg/logic"
)

// Service serializes access to one Logic so concurrent tool calls still run
// one command at a time.
type Service struct {
	mu    sync.Mutex
	logic *logic.Logic
}

// ErrNotConfigured is returned when the service has no logic to drive.
var ErrNotConfigured = errors.New("mcp: logic is not configured")

// CommandResult is a transport-friendly projection of command.Result.
type CommandResult struct {
	Feedback string `json:"feedback"`
	Tab      string `json:"tab,omitempty"`
	// Prompt is set when a dangerous command was not confirmed and did not run.
	Prompt string `json:"prompt,omitempty"`
	Exit   bool   `json:"exit,omitempty"`
}

// StudentDTO is a transport-friendly projection of a student.
type StudentDTO struct {
	Index         int      `json:"index"`
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Matriculation string   `json:"matriculation"`
	Email         string   `json:"email"`
	Tags          []string `json:"tags"`
}

// SessionDTO summarizes one session.
type SessionDTO struct {
	Index        int    `json:"index"`
	Name         string `json:"name"`
	Date         string `json:"date"`
	Present      int    `json:"present"`
	Participated int    `json:"participated"`
	Students     int    `json:"students"`
	Current      bool   `json:"current"`
}

// AttendanceDTO is one row of the current session's sheet.
type AttendanceDTO struct {
	Index        int    `json:"index"`
	Name         string `json:"name"`
	Present      bool   `json:"present"`
	Participated bool   `json:"participated"`
}

// SheetDTO is the attendance sheet of the entered session.
type SheetDTO struct {
	Session SessionDTO      `json:"session"`
	Rows    []AttendanceDTO `json:"rows"`
}

// NewService wraps l.
func NewService(l *logic.Logic) *Service {
	return &Service{logic: l}
}

// Run executes one command line. Dangerous commands only run when confirm is
// set; otherwise their prompt is returned and nothing changes.
func (s *Service) Run(ctx context.Context, line string, confirm bool) (*CommandResult, error) {
	if s.logic == nil {
		return nil, ErrNotConfigured
	}
	if strings.TrimSpace(line) == "" {
		return nil, errors.New("command is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.logic.Execute(ctx, line)
	if err != nil {
		return nil, err
	}
	if _, pending := s.logic.Pending(); pending {
		if !confirm {
			_, _ = s.logic.Execute(ctx, logic.RejectWord)
			return &CommandResult{Prompt: res.Feedback, Feedback: "Not executed: set confirm to true to run it."}, nil
		}
		if res, err = s.logic.Execute(ctx, logic.AcceptWord); err != nil {
			return nil, err
		}
	}
	return &CommandResult{Feedback: res.Feedback, Tab: res.Tab.String(), Exit: res.Exit}, nil
}

// ListStudents returns the displayed students in order.
func (s *Service) ListStudents(ctx context.Context) ([]StudentDTO, error) {
	if s.logic == nil {
		return nil, ErrNotConfigured
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.logic.Model().FilteredStudents()
	out := make([]StudentDTO, 0, len(list))
	for i, st := range list {
		tags := make([]string, 0, len(st.Tags))
		for _, t := range st.Tags {
			tags = append(tags, string(t))
		}
		out = append(out, StudentDTO{
			Index:         i + 1,
			ID:            st.ID.String(),
			Name:          string(st.Name),
			Matriculation: string(st.Matriculation),
			Email:         string(st.Email),
			Tags:          tags,
		})
	}
	return out, nil
}

// ListSessions returns the displayed sessions in date order.
func (s *Service) ListSessions(ctx context.Context) ([]SessionDTO, error) {
	if s.logic == nil {
		return nil, ErrNotConfigured
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.logic.Model()
	current, _ := m.CurrentSession()
	list := m.FilteredSessions()
	out := make([]SessionDTO, 0, len(list))
	for i, ses := range list {
		dto := SessionDTO{
			Index:    i + 1,
			Name:     string(ses.Name),
			Date:     ses.Date.String(),
			Students: ses.Len(),
			Current:  current != nil && current.IsSame(ses),
		}
		for _, a := range ses.Attributes() {
			if a.Present {
				dto.Present++
			}
			if a.Participated {
				dto.Participated++
			}
		}
		out = append(out, dto)
	}
	return out, nil
}

// CurrentSheet returns the attendance sheet of the entered session.
func (s *Service) CurrentSheet(ctx context.Context) (*SheetDTO, error) {
	if s.logic == nil {
		return nil, ErrNotConfigured
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.logic.Model()
	ses, ok := m.CurrentSession()
	if !ok {
		return nil, errors.New("no session has been entered")
	}
	list, err := ses.AttributeList(m.Students())
	if err != nil {
		return nil, err
	}
	sheet := &SheetDTO{
		Session: SessionDTO{Name: string(ses.Name), Date: ses.Date.String(), Students: ses.Len(), Current: true},
		Rows:    make([]AttendanceDTO, 0, len(list)),
	}
	for i, a := range list {
		if a.Present {
			sheet.Session.Present++
		}
		if a.Participated {
			sheet.Session.Participated++
		}
		sheet.Rows = append(sheet.Rows, AttendanceDTO{
			Index:        i + 1,
			Name:         a.Name,
			Present:      a.Present,
			Participated: a.Participated,
		})
	}
	return sheet, nil
}
