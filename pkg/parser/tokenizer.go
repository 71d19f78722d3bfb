package parser

import (
	"sort"
	"strings"
)

// Prefix marks the start of an argument value, e.g. "n/".
type Prefix string

const (
	PrefixName          Prefix = "n/"
	PrefixMatriculation Prefix = "m/"
	PrefixEmail         Prefix = "e/"
	PrefixTag           Prefix = "t/"
	PrefixSessionName   Prefix = "se/"
	PrefixSessionDate   Prefix = "sd/"
)

// Arguments is the tokenized form of a command's argument string.
type Arguments struct {
	preamble string
	values   map[Prefix][]string
}

// Preamble is the trimmed text before the first prefix.
func (a *Arguments) Preamble() string {
	return a.preamble
}

// Value returns the last value given for p.
func (a *Arguments) Value(p Prefix) (string, bool) {
	vs := a.values[p]
	if len(vs) == 0 {
		return "", false
	}
	return vs[len(vs)-1], true
}

// All returns every value given for p, in input order.
func (a *Arguments) All(p Prefix) []string {
	return append([]string(nil), a.values[p]...)
}

// Has reports whether every prefix was given at least once.
func (a *Arguments) Has(prefixes ...Prefix) bool {
	for _, p := range prefixes {
		if len(a.values[p]) == 0 {
			return false
		}
	}
	return true
}

type position struct {
	start  int
	prefix Prefix
}

// Tokenize splits args on the given prefixes. A prefix only counts at the
// start of args or directly after whitespace, so "se/" never matches "e/".
func Tokenize(args string, prefixes ...Prefix) *Arguments {
	padded := " " + args
	var positions []position
	for _, p := range prefixes {
		positions = append(positions, find(padded, p)...)
	}
	sort.Slice(positions, func(i, j int) bool { return positions[i].start < positions[j].start })

	out := &Arguments{values: make(map[Prefix][]string)}
	if len(positions) == 0 {
		out.preamble = strings.TrimSpace(padded)
		return out
	}
	out.preamble = strings.TrimSpace(padded[:positions[0].start])
	for i, pos := range positions {
		end := len(padded)
		if i+1 < len(positions) {
			end = positions[i+1].start
		}
		value := strings.TrimSpace(padded[pos.start+len(pos.prefix) : end])
		out.values[pos.prefix] = append(out.values[pos.prefix], value)
	}
	return out
}

func find(s string, p Prefix) []position {
	var out []position
	from := 0
	for {
		i := indexAfterSpace(s[from:], string(p))
		if i < 0 {
			return out
		}
		out = append(out, position{start: from + i, prefix: p})
		from += i + len(p)
	}
}

// indexAfterSpace finds p preceded by a whitespace character.
func indexAfterSpace(s, p string) int {
	best := -1
	for _, sep := range []string{" ", "\t"} {
		if i := strings.Index(s, sep+p); i >= 0 && (best < 0 || i+1 < best) {
			best = i + 1
		}
	}
	return best
}
