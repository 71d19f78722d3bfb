// Package logic drives one line of input through parsing, confirmation,
// execution and persistence.
package logic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"tableflip.dev/atas/pkg/command"
	"tableflip.dev/atas/pkg/model"
	"tableflip.dev/atas/pkg/parser"
	"tableflip.dev/atas/pkg/store"
)

const (
	AcceptWord = "yes"
	RejectWord = "no"

	MessageRejected = "Command has not been executed."
)

// ErrSave wraps a persistence failure after a successful command.
var ErrSave = errors.New("logic: save failed")

// State is where the confirmation flow stands.
type State int

const (
	Idle State = iota
	AwaitingConfirmation
)

func (s State) String() string {
	if s == AwaitingConfirmation {
		return "awaiting confirmation"
	}
	return "idle"
}

// Logic is not safe for concurrent use.
type Logic struct {
	model *model.Model
	store store.Persistence
	log   zerolog.Logger

	state   State
	pending command.Command
}

// New wraps an existing model. p may be nil, in which case nothing is saved.
func New(m *model.Model, p store.Persistence, log zerolog.Logger) *Logic {
	return &Logic{model: m, store: p, log: log}
}

// Load reads the roster and sessions from p and builds a Logic on them.
func Load(ctx context.Context, p store.Persistence, log zerolog.Logger) (*Logic, error) {
	students, sessions, err := p.Load(ctx)
	if err != nil {
		return nil, err
	}
	m, err := model.New(students, sessions)
	if err != nil {
		return nil, fmt.Errorf("logic: stored data: %w", err)
	}
	log.Debug().Int("students", len(students)).Int("sessions", len(sessions)).Msg("loaded")
	return New(m, p, log), nil
}

func (l *Logic) Model() *model.Model {
	return l.model
}

func (l *Logic) State() State {
	return l.state
}

// Pending is the command waiting for a yes or no, if any.
func (l *Logic) Pending() (command.Command, bool) {
	return l.pending, l.state == AwaitingConfirmation
}

// Execute handles one line of input.
//
// Errors of kind command.ErrParse or command.ErrValidation are meant for the
// user. model.ErrConsistency means the data can no longer be trusted and the
// caller should stop.
func (l *Logic) Execute(ctx context.Context, line string) (command.Result, error) {
	if l.state == AwaitingConfirmation {
		pending := l.pending
		l.state, l.pending = Idle, nil

		switch strings.ToLower(strings.TrimSpace(line)) {
		case AcceptWord:
			l.log.Debug().Str("command", commandName(pending)).Msg("confirmed")
			return l.run(ctx, pending)
		case RejectWord:
			l.log.Debug().Str("command", commandName(pending)).Msg("rejected")
			return command.Feedback(MessageRejected), nil
		default:
			l.log.Info().Str("command", commandName(pending)).Msg("confirmation discarded")
		}
	}

	c, err := parser.Parse(line)
	if err != nil {
		l.log.Debug().Err(err).Str("line", line).Msg("parse failed")
		return command.Result{}, err
	}
	if c.Traits().Has(command.Dangerous) {
		l.state, l.pending = AwaitingConfirmation, c
		return command.Feedback(command.PromptFor(c)), nil
	}
	return l.run(ctx, c)
}

func (l *Logic) run(ctx context.Context, c command.Command) (command.Result, error) {
	l.log.Debug().Str("command", commandName(c)).Msg("dispatch")
	res, err := c.Execute(l.model)
	if err != nil {
		if errors.Is(err, model.ErrConsistency) {
			l.log.Error().Err(err).Str("command", commandName(c)).Msg("data out of step")
		}
		return command.Result{}, err
	}
	if !c.Traits().Has(command.Mutating) {
		return res, nil
	}
	if !c.Traits().Has(command.Rewinding) {
		l.model.Commit()
	}
	if err := l.save(ctx); err != nil {
		return res, err
	}
	return res, nil
}

func (l *Logic) save(ctx context.Context) error {
	if l.store == nil {
		return nil
	}
	if err := l.store.Save(ctx, l.model.Students(), l.model.Sessions()); err != nil {
		l.log.Error().Err(err).Msg("save")
		return fmt.Errorf("%w: %v", ErrSave, err)
	}
	return nil
}

// Fatal reports whether err means the process should stop.
func Fatal(err error) bool {
	return errors.Is(err, model.ErrConsistency)
}

// commandName is the lower-cased type name, e.g. "deletesession".
func commandName(c command.Command) string {
	name := fmt.Sprintf("%T", c)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return strings.ToLower(name)
}
