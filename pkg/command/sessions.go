package command

import (
	"fmt"

	"tableflip.dev/atas/pkg/index"
	"tableflip.dev/atas/pkg/model"
	"tableflip.dev/atas/pkg/session"
)

const (
	AddSessionWord  = "addses"
	AddSessionUsage = AddSessionWord + ": Adds a session to the session list. " +
		"Parameters: se/SESSION_NAME sd/SESSION_DATE (d/M/yyyy)\n" +
		"Example: " + AddSessionWord + " se/Tutorial 1 sd/10/10/2020"

	DeleteSessionWord  = "deleteses"
	DeleteSessionUsage = DeleteSessionWord + ": Deletes the session identified by the index number used in the displayed session list.\n" +
		"Parameters: INDEX (must be a positive integer)\n" +
		"Example: " + DeleteSessionWord + " 1"

	EditSessionWord  = "editses"
	EditSessionUsage = EditSessionWord + ": Edits the name or date of the session identified by the index number used in the displayed session list.\n" +
		"Parameters: INDEX (must be a positive integer) [se/SESSION_NAME] [sd/SESSION_DATE]\n" +
		"Example: " + EditSessionWord + " 1 sd/11/10/2020"

	ClearSessionsWord  = "clearses"
	ClearSessionsUsage = ClearSessionsWord + ": Clears the session list.\nExample: " + ClearSessionsWord

	EnterSessionWord  = "enterses"
	EnterSessionUsage = EnterSessionWord + ": Enters the session identified by the index number used in the displayed session list.\n" +
		"Parameters: INDEX (must be a positive integer)\n" +
		"Example: " + EnterSessionWord + " 1"

	PresenceWord  = "presence"
	PresenceUsage = PresenceWord + ": Toggles the presence of the students in the given range of the current session.\n" +
		"Parameters: INDEX or INDEX-INDEX (positive integers)\n" +
		"Example: " + PresenceWord + " 1-4"

	ParticipateWord  = "participate"
	ParticipateUsage = ParticipateWord + ": Toggles the participation of the students in the given range of the current session.\n" +
		"Parameters: INDEX or INDEX-INDEX (positive integers)\n" +
		"Example: " + ParticipateWord + " 2"

	MessageAddSessionSuccess    = "New session added: %s"
	MessageDeleteSessionSuccess = "Deleted Session: %s"
	MessageEditSessionSuccess   = "Edited Session: %s"
	MessageSessionNotEdited     = "At least one of se/ or sd/ must be provided."
	MessageClearSessionsSuccess = "Session list has been cleared!"
	MessageEnterSessionSuccess  = "Entered session: %s"
	MessagePresenceSuccess      = "Toggled presence of students %s in %s"
	MessageParticipateSuccess   = "Toggled participation of students %s in %s"
)

func sessionAt(m *model.Model, i index.Index) (*session.Session, error) {
	list := m.FilteredSessions()
	if i.ZeroBased() >= len(list) {
		return nil, ValidationErrorf(MessageInvalidSessionIndex)
	}
	return list[i.ZeroBased()], nil
}

// AddSession creates a session for the whole roster.
type AddSession struct {
	Name session.Name
	Date session.Date
}

func (c *AddSession) Traits() Trait { return Mutating }

func (c *AddSession) Execute(m *model.Model) (Result, error) {
	s := session.New(c.Name, c.Date)
	if err := m.AddSession(s); err != nil {
		return Result{}, fromModel(err)
	}
	return Result{Feedback: fmt.Sprintf(MessageAddSessionSuccess, s), Tab: TabSessions}, nil
}

// DeleteSession removes the session at Index of the filtered list.
type DeleteSession struct {
	Index index.Index
}

func (c *DeleteSession) Traits() Trait { return Dangerous | Mutating }

func (c *DeleteSession) Prompt() string {
	return fmt.Sprintf("Delete session %d? %s", c.Index.OneBased(), ConfirmChoices)
}

func (c *DeleteSession) Execute(m *model.Model) (Result, error) {
	target, err := sessionAt(m, c.Index)
	if err != nil {
		return Result{}, err
	}
	if err := m.DeleteSession(target); err != nil {
		return Result{}, fromModel(err)
	}
	return Result{Feedback: fmt.Sprintf(MessageDeleteSessionSuccess, target), Tab: TabSessions}, nil
}

// EditSession renames or re-dates the session at Index. Nil fields are kept.
type EditSession struct {
	Index index.Index
	Name  *session.Name
	Date  *session.Date
}

func (c *EditSession) Traits() Trait { return Dangerous | Mutating }

func (c *EditSession) Prompt() string {
	return fmt.Sprintf("Edit session %d? %s", c.Index.OneBased(), ConfirmChoices)
}

func (c *EditSession) Execute(m *model.Model) (Result, error) {
	target, err := sessionAt(m, c.Index)
	if err != nil {
		return Result{}, err
	}
	name, date := target.Name, target.Date
	if c.Name != nil {
		name = *c.Name
	}
	if c.Date != nil {
		date = *c.Date
	}
	if err := m.SetSession(target, name, date); err != nil {
		return Result{}, fromModel(err)
	}
	edited := session.New(name, date)
	return Result{Feedback: fmt.Sprintf(MessageEditSessionSuccess, edited), Tab: TabSessions}, nil
}

// ClearSessions removes every session.
type ClearSessions struct{}

func (c *ClearSessions) Traits() Trait { return Dangerous | Mutating }

func (c *ClearSessions) Prompt() string {
	return "Clear the session list? " + ConfirmChoices
}

func (c *ClearSessions) Execute(m *model.Model) (Result, error) {
	m.ClearSessions()
	return Result{Feedback: MessageClearSessionsSuccess, Tab: TabSessions}, nil
}

// EnterSession selects the session that presence and participate act on.
type EnterSession struct {
	Index index.Index
}

func (c *EnterSession) Traits() Trait { return None }

func (c *EnterSession) Execute(m *model.Model) (Result, error) {
	s, err := m.EnterSession(c.Index)
	if err != nil {
		return Result{}, fromModel(err)
	}
	return Result{Feedback: fmt.Sprintf(MessageEnterSessionSuccess, s), Tab: TabCurrent}, nil
}

// Presence toggles presence for a range of students in the current session.
type Presence struct {
	Range index.Range
}

func (c *Presence) Traits() Trait { return Mutating }

func (c *Presence) Execute(m *model.Model) (Result, error) {
	if err := m.TogglePresence(c.Range); err != nil {
		return Result{}, fromModel(err)
	}
	s, _ := m.CurrentSession()
	return Result{Feedback: fmt.Sprintf(MessagePresenceSuccess, c.Range, s.Name), Tab: TabCurrent}, nil
}

// Participate toggles participation for a range of students in the current
// session.
type Participate struct {
	Range index.Range
}

func (c *Participate) Traits() Trait { return Mutating }

func (c *Participate) Execute(m *model.Model) (Result, error) {
	if err := m.ToggleParticipation(c.Range); err != nil {
		return Result{}, fromModel(err)
	}
	s, _ := m.CurrentSession()
	return Result{Feedback: fmt.Sprintf(MessageParticipateSuccess, c.Range, s.Name), Tab: TabCurrent}, nil
}
