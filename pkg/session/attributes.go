package session

import "fmt"

// Attributes is one student's record within a session. Values are immutable;
// the toggles return a copy with one flag flipped.
type Attributes struct {
	Name         string `json:"name"`
	Present      bool   `json:"present,omitempty"`
	Participated bool   `json:"participated,omitempty"`
}

// NewAttributes returns the default record: absent, not participated.
func NewAttributes(name string) Attributes {
	return Attributes{Name: name}
}

func (a Attributes) TogglePresence() Attributes {
	a.Present = !a.Present
	return a
}

func (a Attributes) ToggleParticipation() Attributes {
	a.Participated = !a.Participated
	return a
}

func (a Attributes) String() string {
	return fmt.Sprintf("%s present: %t participated: %t", a.Name, a.Present, a.Participated)
}
