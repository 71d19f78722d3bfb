package student

import "strings"

// Predicate selects students for the filtered view.
type Predicate func(Student) bool

// All shows every student.
func All(Student) bool { return true }

// NameContainsKeywords matches students whose name contains any of the
// keywords as a whole word, ignoring case.
func NameContainsKeywords(keywords []string) Predicate {
	return func(s Student) bool {
		words := strings.Fields(string(s.Name))
		for _, k := range keywords {
			for _, w := range words {
				if strings.EqualFold(w, k) {
					return true
				}
			}
		}
		return false
	}
}
