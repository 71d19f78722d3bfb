package session

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// ErrInvalidField is the kind shared by session name and date failures.
var ErrInvalidField = errors.New("session: invalid field")

type fieldError struct {
	constraint string
}

func (e *fieldError) Error() string { return e.constraint }

func (e *fieldError) Unwrap() error { return ErrInvalidField }

const (
	NameConstraint = "Session names should only contain alphanumeric characters and spaces, and it should not be blank"
	DateConstraint = "Session dates should be in the format d/M/yyyy, e.g. 10/10/2020"

	// DateLayout is d/M/yyyy.
	DateLayout = "2/1/2006"
)

var namePattern = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} ]*$`)

// Name identifies a session.
type Name string

func ParseName(raw string) (Name, error) {
	s := strings.TrimSpace(raw)
	if !namePattern.MatchString(s) {
		return "", &fieldError{constraint: NameConstraint}
	}
	return Name(s), nil
}

// Date is the calendar day a session happens on.
type Date struct {
	time.Time
}

func ParseDate(raw string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return Date{}, &fieldError{constraint: DateConstraint}
	}
	return Date{Time: t}, nil
}

// MustDate is ParseDate for fixtures.
func MustDate(raw string) Date {
	d, err := ParseDate(raw)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

func (d Date) String() string {
	return d.Format(DateLayout)
}
