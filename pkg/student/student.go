// Package student defines the students on a teaching assistant's roster.
package student

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Tags is a sorted set of tags without duplicates.
type Tags []Tag

// NewTags builds a tag set from tags in any order.
func NewTags(tags ...Tag) Tags {
	set := make(map[Tag]struct{}, len(tags))
	out := make(Tags, 0, len(tags))
	for _, t := range tags {
		if _, ok := set[t]; ok {
			continue
		}
		set[t] = struct{}{}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (t Tags) Equal(other Tags) bool {
	if len(t) != len(other) {
		return false
	}
	for i := range t {
		if t[i] != other[i] {
			return false
		}
	}
	return true
}

func (t Tags) String() string {
	b := strings.Builder{}
	for _, tag := range t {
		b.WriteString("[" + string(tag) + "]")
	}
	return b.String()
}

// Student is one entry on the roster. ID is assigned when the student joins
// the roster and never changes; the remaining fields can be edited.
type Student struct {
	ID            uuid.UUID     `json:"id"`
	Name          Name          `json:"name"`
	Matriculation Matriculation `json:"matriculation"`
	Email         Email         `json:"email"`
	Tags          Tags          `json:"tags,omitempty"`
}

// New creates a student that has not joined a roster yet.
func New(name Name, matriculation Matriculation, email Email, tags Tags) Student {
	if tags == nil {
		tags = Tags{}
	}
	return Student{
		Name:          name,
		Matriculation: matriculation,
		Email:         email,
		Tags:          tags,
	}
}

// IsSame reports whether both values describe the same person. Two entries
// with one matriculation number are duplicates even if other fields differ.
func (s Student) IsSame(other Student) bool {
	return s.Matriculation == other.Matriculation
}

// Equal compares every editable field. The ID is ignored.
func (s Student) Equal(other Student) bool {
	return s.Name == other.Name &&
		s.Matriculation == other.Matriculation &&
		s.Email == other.Email &&
		s.Tags.Equal(other.Tags)
}

// Copy returns a student whose tag set does not alias the receiver's.
func (s Student) Copy() Student {
	cp := s
	cp.Tags = append(Tags{}, s.Tags...)
	return cp
}

func (s Student) String() string {
	out := fmt.Sprintf("%s Matriculation: %s Email: %s", s.Name, s.Matriculation, s.Email)
	if len(s.Tags) > 0 {
		out += " Tags: " + s.Tags.String()
	}
	return out
}
