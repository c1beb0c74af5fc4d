// Package command turns free text from choice states into one of a fixed
// set of actions. Matching is keyword based and case-insensitive; anything
// unrecognized maps to None and the caller re-prompts.
package command

import "strings"

type Command string

const (
	Generate Command = "generate"
	Edit     Command = "edit"
	Cancel   Command = "cancel"
	None     Command = "none"
)

// Keyboard captions start with a marker symbol, so a prefix match covers
// button presses and the keyword covers typed answers.
var confirmKeywords = map[Command][]string{
	Generate: {"✅", "сгенер", "generate"},
	Edit:     {"✏️", "✏", "исправ", "edit"},
	Cancel:   {"⛔", "отмен", "cancel"},
}

// ParseConfirm classifies input at the review step.
func ParseConfirm(input string) Command {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return None
	}
	for _, cmd := range []Command{Generate, Edit, Cancel} {
		for _, keyword := range confirmKeywords[cmd] {
			if strings.HasPrefix(normalized, keyword) || strings.Contains(normalized, keyword) {
				return cmd
			}
		}
	}
	return None
}

// Choose matches input against labeled keyword stems and returns the label
// of the first stem found as a substring, or "" when nothing matches.
// Stems must be lower case.
func Choose(input string, options map[string][]string, order ...string) string {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return ""
	}
	for _, label := range order {
		for _, stem := range options[label] {
			if strings.Contains(normalized, stem) {
				return label
			}
		}
	}
	return ""
}

// YesNo normalizes a "Да"/"Нет" answer. The empty string means the answer
// was neither.
func YesNo(input string) string {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "да":
		return "Да"
	case "нет":
		return "Нет"
	}
	return ""
}
