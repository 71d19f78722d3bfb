package parser

import (
	"strconv"
	"strings"

	"tableflip.dev/atas/pkg/command"
	"tableflip.dev/atas/pkg/index"
	"tableflip.dev/atas/pkg/session"
	"tableflip.dev/atas/pkg/student"
)

// MessageInvalidIndex is returned for a bare index that is not a positive integer.
const MessageInvalidIndex = "Index is not a non-zero unsigned integer."

// ParseIndex reads a one-based index.
func ParseIndex(raw string) (index.Index, error) {
	s := strings.TrimSpace(raw)
	n, err := strconv.Atoi(s)
	if err != nil || strings.HasPrefix(s, "+") {
		return index.Index{}, command.ParseErrorf(MessageInvalidIndex)
	}
	i, err := index.FromOneBased(n)
	if err != nil {
		return index.Index{}, command.ParseErrorf(MessageInvalidIndex)
	}
	return i, nil
}

// asParseError keeps a field's constraint message but marks it as a parse error.
func asParseError(err error) error {
	if err == nil {
		return nil
	}
	return command.ParseErrorf("%s", err.Error())
}

func parseStudentName(raw string) (student.Name, error) {
	v, err := student.ParseName(raw)
	return v, asParseError(err)
}

func parseMatriculation(raw string) (student.Matriculation, error) {
	v, err := student.ParseMatriculation(raw)
	return v, asParseError(err)
}

func parseEmail(raw string) (student.Email, error) {
	v, err := student.ParseEmail(raw)
	return v, asParseError(err)
}

// parseTags reads tag values. A single empty value clears the tag set, which
// is how edit removes every tag.
func parseTags(raws []string) (student.Tags, error) {
	if len(raws) == 1 && strings.TrimSpace(raws[0]) == "" {
		return student.Tags{}, nil
	}
	v, err := student.ParseTags(raws)
	return v, asParseError(err)
}

func parseSessionName(raw string) (session.Name, error) {
	v, err := session.ParseName(raw)
	return v, asParseError(err)
}

func parseSessionDate(raw string) (session.Date, error) {
	v, err := session.ParseDate(raw)
	return v, asParseError(err)
}
