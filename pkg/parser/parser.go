// Package parser turns a line of user input into a command.
package parser

import (
	"regexp"
	"sort"
	"strings"

	"tableflip.dev/atas/pkg/command"
	"tableflip.dev/atas/pkg/index"
)

// Descriptor documents one command word.
type Descriptor struct {
	Word   string
	Usage  string
	Traits command.Trait
	parse  func(args string) (command.Command, error)
}

var (
	registry = map[string]Descriptor{}

	basicFormat = regexp.MustCompile(`^(?P<word>\S+)(?P<arguments>.*)$`)
)

func register(word, usage string, traits command.Trait, parse func(args string) (command.Command, error)) {
	registry[word] = Descriptor{Word: word, Usage: usage, Traits: traits, parse: parse}
}

func init() {
	register(command.AddWord, command.AddUsage, command.Mutating, parseAdd)
	register(command.DeleteWord, command.DeleteUsage, command.Dangerous|command.Mutating, parseDelete)
	register(command.EditWord, command.EditUsage, command.Dangerous|command.Mutating, parseEdit)
	register(command.ClearWord, command.ClearUsage, command.Dangerous|command.Mutating, always[command.Clear])
	register(command.FindWord, command.FindUsage, command.None, parseFind)
	register(command.ListWord, command.ListUsage, command.None, always[command.List])

	register(command.AddSessionWord, command.AddSessionUsage, command.Mutating, parseAddSession)
	register(command.DeleteSessionWord, command.DeleteSessionUsage, command.Dangerous|command.Mutating, parseDeleteSession)
	register(command.EditSessionWord, command.EditSessionUsage, command.Dangerous|command.Mutating, parseEditSession)
	register(command.ClearSessionsWord, command.ClearSessionsUsage, command.Dangerous|command.Mutating, always[command.ClearSessions])
	register(command.EnterSessionWord, command.EnterSessionUsage, command.None, parseEnterSession)
	register(command.PresenceWord, command.PresenceUsage, command.Mutating, parsePresence)
	register(command.ParticipateWord, command.ParticipateUsage, command.Mutating, parseParticipate)

	register(command.StatsWord, command.StatsUsage, command.None, always[command.Stats])
	register(command.RngWord, command.RngUsage, command.None, always[command.Rng])
	register(command.UndoWord, command.UndoUsage, command.Mutating|command.Rewinding, always[command.Undo])
	register(command.RedoWord, command.RedoUsage, command.Mutating|command.Rewinding, always[command.Redo])
	register(command.SwitchWord, command.SwitchUsage, command.None, parseSwitch)
	register(command.HelpWord, command.HelpUsage, command.None, always[command.Help])
	register(command.ExitWord, command.ExitUsage, command.None, always[command.Exit])
}

// Descriptors lists every command word in alphabetical order.
func Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(registry))
	for _, d := range registry {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Word < out[j].Word })
	return out
}

// Parse reads one line of input.
func Parse(line string) (command.Command, error) {
	match := basicFormat.FindStringSubmatch(strings.TrimSpace(line))
	if match == nil {
		return nil, command.InvalidFormat(command.HelpUsage)
	}
	word, args := match[1], match[2]
	d, ok := registry[word]
	if !ok {
		return nil, command.ParseErrorf(command.MessageUnknownCommand)
	}
	return d.parse(args)
}

// always ignores arguments, so "list 3" is still list. Every parse returns
// a fresh command.
func always[T any, P interface {
	*T
	command.Command
}](string) (command.Command, error) {
	return P(new(T)), nil
}

func parseAdd(args string) (command.Command, error) {
	a := Tokenize(args, PrefixName, PrefixMatriculation, PrefixEmail, PrefixTag)
	if !a.Has(PrefixName, PrefixMatriculation, PrefixEmail) || a.Preamble() != "" {
		return nil, command.InvalidFormat(command.AddUsage)
	}
	s, err := buildStudent(a)
	if err != nil {
		return nil, err
	}
	return &command.Add{Student: s}, nil
}

func parseDelete(args string) (command.Command, error) {
	i, err := ParseIndex(args)
	if err != nil {
		return nil, command.InvalidFormat(command.DeleteUsage)
	}
	return &command.Delete{Index: i}, nil
}

func parseEdit(args string) (command.Command, error) {
	a := Tokenize(args, PrefixName, PrefixMatriculation, PrefixEmail, PrefixTag)
	i, err := ParseIndex(a.Preamble())
	if err != nil {
		return nil, command.InvalidFormat(command.EditUsage)
	}
	d, err := buildDescriptor(a)
	if err != nil {
		return nil, err
	}
	if !d.IsAnyFieldEdited() {
		return nil, command.ParseErrorf(command.MessageNotEdited)
	}
	return &command.Edit{Index: i, Descriptor: d}, nil
}

func parseFind(args string) (command.Command, error) {
	keywords := strings.Fields(args)
	if len(keywords) == 0 {
		return nil, command.InvalidFormat(command.FindUsage)
	}
	return &command.Find{Keywords: keywords}, nil
}

func parseAddSession(args string) (command.Command, error) {
	a := Tokenize(args, PrefixSessionName, PrefixSessionDate)
	if !a.Has(PrefixSessionName, PrefixSessionDate) || a.Preamble() != "" {
		return nil, command.InvalidFormat(command.AddSessionUsage)
	}
	rawName, _ := a.Value(PrefixSessionName)
	name, err := parseSessionName(rawName)
	if err != nil {
		return nil, err
	}
	rawDate, _ := a.Value(PrefixSessionDate)
	date, err := parseSessionDate(rawDate)
	if err != nil {
		return nil, err
	}
	return &command.AddSession{Name: name, Date: date}, nil
}

func parseDeleteSession(args string) (command.Command, error) {
	i, err := ParseIndex(args)
	if err != nil {
		return nil, command.InvalidFormat(command.DeleteSessionUsage)
	}
	return &command.DeleteSession{Index: i}, nil
}

func parseEditSession(args string) (command.Command, error) {
	a := Tokenize(args, PrefixSessionName, PrefixSessionDate)
	i, err := ParseIndex(a.Preamble())
	if err != nil {
		return nil, command.InvalidFormat(command.EditSessionUsage)
	}
	c := &command.EditSession{Index: i}
	if raw, ok := a.Value(PrefixSessionName); ok {
		name, err := parseSessionName(raw)
		if err != nil {
			return nil, err
		}
		c.Name = &name
	}
	if raw, ok := a.Value(PrefixSessionDate); ok {
		date, err := parseSessionDate(raw)
		if err != nil {
			return nil, err
		}
		c.Date = &date
	}
	if c.Name == nil && c.Date == nil {
		return nil, command.ParseErrorf(command.MessageSessionNotEdited)
	}
	return c, nil
}

func parseEnterSession(args string) (command.Command, error) {
	i, err := ParseIndex(args)
	if err != nil {
		return nil, command.InvalidFormat(command.EnterSessionUsage)
	}
	return &command.EnterSession{Index: i}, nil
}

func parsePresence(args string) (command.Command, error) {
	r, err := index.ParseRange(args)
	if err != nil {
		return nil, command.InvalidFormat(command.PresenceUsage)
	}
	return &command.Presence{Range: r}, nil
}

func parseParticipate(args string) (command.Command, error) {
	r, err := index.ParseRange(args)
	if err != nil {
		return nil, command.InvalidFormat(command.ParticipateUsage)
	}
	return &command.Participate{Range: r}, nil
}

func parseSwitch(args string) (command.Command, error) {
	tab, ok := command.ParseTab(args)
	if !ok {
		return nil, command.InvalidFormat(command.SwitchUsage)
	}
	return &command.Switch{Tab: tab}, nil
}
