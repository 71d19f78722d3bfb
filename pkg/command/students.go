package command

import (
	"fmt"

	"tableflip.dev/atas/pkg/index"
	"tableflip.dev/atas/pkg/model"
	"tableflip.dev/atas/pkg/student"
)

const (
	AddWord  = "add"
	AddUsage = AddWord + ": Adds a student to the student list. " +
		"Parameters: n/NAME m/MATRICULATION e/EMAIL [t/TAG]...\n" +
		"Example: " + AddWord + " n/John Doe m/A1234567X e/johnd@example.com t/friends"

	DeleteWord  = "delete"
	DeleteUsage = DeleteWord + ": Deletes the student identified by the index number used in the displayed student list.\n" +
		"Parameters: INDEX (must be a positive integer)\n" +
		"Example: " + DeleteWord + " 1"

	EditWord  = "edit"
	EditUsage = EditWord + ": Edits the details of the student identified by the index number used in the displayed student list. " +
		"Existing values will be overwritten by the input values.\n" +
		"Parameters: INDEX (must be a positive integer) [n/NAME] [m/MATRICULATION] [e/EMAIL] [t/TAG]...\n" +
		"Example: " + EditWord + " 1 e/johndoe@example.com"

	ClearWord  = "clear"
	ClearUsage = ClearWord + ": Clears the student list.\nExample: " + ClearWord

	FindWord  = "find"
	FindUsage = FindWord + ": Finds all students whose names contain any of the specified keywords (case-insensitive).\n" +
		"Parameters: KEYWORD [MORE_KEYWORDS]...\n" +
		"Example: " + FindWord + " alice bob charlie"

	ListWord  = "list"
	ListUsage = ListWord + ": Lists all students.\nExample: " + ListWord

	MessageAddSuccess    = "New student added: %s"
	MessageDeleteSuccess = "Deleted Student: %s"
	MessageEditSuccess   = "Edited Student: %s"
	MessageNotEdited     = "At least one field to edit must be provided."
	MessageClearSuccess  = "Student list has been cleared!"
	MessageFindSuccess   = "%d students listed!"
	MessageListSuccess   = "Listed all students"
)

// studentAt resolves i against the filtered student list.
func studentAt(m *model.Model, i index.Index) (student.Student, error) {
	list := m.FilteredStudents()
	if i.ZeroBased() >= len(list) {
		return student.Student{}, ValidationErrorf(MessageInvalidStudentIndex)
	}
	return list[i.ZeroBased()], nil
}

// Add puts a new student on the roster.
type Add struct {
	Student student.Student
}

func (c *Add) Traits() Trait { return Mutating }

func (c *Add) Execute(m *model.Model) (Result, error) {
	added, err := m.AddStudent(c.Student)
	if err != nil {
		return Result{}, fromModel(err)
	}
	return Result{Feedback: fmt.Sprintf(MessageAddSuccess, added), Tab: TabStudents}, nil
}

// Delete removes the student at Index of the filtered list.
type Delete struct {
	Index index.Index
}

func (c *Delete) Traits() Trait { return Dangerous | Mutating }

func (c *Delete) Prompt() string {
	return fmt.Sprintf("Delete student %d? %s", c.Index.OneBased(), ConfirmChoices)
}

func (c *Delete) Execute(m *model.Model) (Result, error) {
	target, err := studentAt(m, c.Index)
	if err != nil {
		return Result{}, err
	}
	if err := m.DeleteStudent(target); err != nil {
		return Result{}, fromModel(err)
	}
	return Result{Feedback: fmt.Sprintf(MessageDeleteSuccess, target), Tab: TabStudents}, nil
}

// EditDescriptor holds the fields an Edit overwrites. Nil fields are kept.
type EditDescriptor struct {
	Name          *student.Name
	Matriculation *student.Matriculation
	Email         *student.Email
	Tags          *student.Tags
}

// IsAnyFieldEdited reports whether at least one field is set.
func (d EditDescriptor) IsAnyFieldEdited() bool {
	return d.Name != nil || d.Matriculation != nil || d.Email != nil || d.Tags != nil
}

// Apply returns s with the descriptor's fields written over it.
func (d EditDescriptor) Apply(s student.Student) student.Student {
	out := s.Copy()
	if d.Name != nil {
		out.Name = *d.Name
	}
	if d.Matriculation != nil {
		out.Matriculation = *d.Matriculation
	}
	if d.Email != nil {
		out.Email = *d.Email
	}
	if d.Tags != nil {
		out.Tags = append(student.Tags{}, (*d.Tags)...)
	}
	return out
}

// Edit overwrites fields of the student at Index of the filtered list.
type Edit struct {
	Index      index.Index
	Descriptor EditDescriptor
}

func (c *Edit) Traits() Trait { return Dangerous | Mutating }

func (c *Edit) Prompt() string {
	return fmt.Sprintf("Edit student %d? %s", c.Index.OneBased(), ConfirmChoices)
}

func (c *Edit) Execute(m *model.Model) (Result, error) {
	target, err := studentAt(m, c.Index)
	if err != nil {
		return Result{}, err
	}
	edited := c.Descriptor.Apply(target)
	if err := m.SetStudent(target, edited); err != nil {
		return Result{}, fromModel(err)
	}
	return Result{Feedback: fmt.Sprintf(MessageEditSuccess, edited), Tab: TabStudents}, nil
}

// Clear empties the roster.
type Clear struct{}

func (c *Clear) Traits() Trait { return Dangerous | Mutating }

func (c *Clear) Prompt() string {
	return "Clear the student list? " + ConfirmChoices
}

func (c *Clear) Execute(m *model.Model) (Result, error) {
	m.ClearStudents()
	return Result{Feedback: MessageClearSuccess, Tab: TabStudents}, nil
}

// Find filters the student list by name keywords.
type Find struct {
	Keywords []string
}

func (c *Find) Traits() Trait { return None }

func (c *Find) Execute(m *model.Model) (Result, error) {
	m.UpdateFilteredStudents(student.NameContainsKeywords(c.Keywords))
	return Result{
		Feedback: fmt.Sprintf(MessageFindSuccess, len(m.FilteredStudents())),
		Tab:      TabStudents,
	}, nil
}

// List removes the student filter.
type List struct{}

func (c *List) Traits() Trait { return None }

func (c *List) Execute(m *model.Model) (Result, error) {
	m.UpdateFilteredStudents(nil)
	return Result{Feedback: MessageListSuccess, Tab: TabStudents}, nil
}
