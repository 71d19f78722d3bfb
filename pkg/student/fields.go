package student

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidField is the kind shared by every field validation failure.
var ErrInvalidField = errors.New("student: invalid field")

// FieldError reports the constraint a field value broke. Its message is the
// constraint itself so it can be shown to the user unchanged.
type FieldError struct {
	Field      string
	Constraint string
}

func (e *FieldError) Error() string {
	return e.Constraint
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidField
}

const (
	NameConstraint          = "Names should only contain alphanumeric characters and spaces, and it should not be blank"
	MatriculationConstraint = "Matriculation numbers should start with 'A', followed by 7 digits and an optional capital letter"
	EmailConstraint         = "Emails should be of the format local-part@domain and adhere to standard address rules"
	TagConstraint           = "Tags names should be alphanumeric"
)

var (
	validate = validator.New()

	namePattern          = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} ]*$`)
	matriculationPattern = regexp.MustCompile(`^A\d{7}[A-Z]?$`)
)

// Name is a student's full name.
type Name string

func ParseName(raw string) (Name, error) {
	s := strings.TrimSpace(raw)
	if !namePattern.MatchString(s) {
		return "", &FieldError{Field: "name", Constraint: NameConstraint}
	}
	return Name(s), nil
}

func (n Name) String() string { return string(n) }

// Matriculation is the identifier the university issues to a student.
type Matriculation string

func ParseMatriculation(raw string) (Matriculation, error) {
	s := strings.TrimSpace(raw)
	if !matriculationPattern.MatchString(s) {
		return "", &FieldError{Field: "matriculation", Constraint: MatriculationConstraint}
	}
	return Matriculation(s), nil
}

func (m Matriculation) String() string { return string(m) }

// Email is a contact address.
type Email string

func ParseEmail(raw string) (Email, error) {
	s := strings.TrimSpace(raw)
	if err := validate.Var(s, "required,email"); err != nil {
		return "", &FieldError{Field: "email", Constraint: EmailConstraint}
	}
	return Email(s), nil
}

func (e Email) String() string { return string(e) }

// Tag is a free-form alphanumeric label.
type Tag string

func ParseTag(raw string) (Tag, error) {
	s := strings.TrimSpace(raw)
	if err := validate.Var(s, "required,alphanum"); err != nil {
		return "", &FieldError{Field: "tag", Constraint: TagConstraint}
	}
	return Tag(s), nil
}

// ParseTags parses every raw value. An empty input yields an empty set.
func ParseTags(raws []string) (Tags, error) {
	tags := make([]Tag, 0, len(raws))
	for _, raw := range raws {
		t, err := ParseTag(raw)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return NewTags(tags...), nil
}
