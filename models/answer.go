package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Answer is a single wizard response: free text / single choice, or a
// multi-select list.
type Answer struct {
	Text    string
	Choices []string
	Multi   bool
}

// TextAnswer builds a single-value answer.
func TextAnswer(s string) Answer { return Answer{Text: s} }

// MultiAnswer builds a multi-select answer.
func MultiAnswer(choices ...string) Answer {
	if choices == nil {
		choices = []string{}
	}
	return Answer{Choices: choices, Multi: true}
}

// IsEmpty reports whether the answer counts as unanswered. An empty
// multi-select list is unanswered.
func (a Answer) IsEmpty() bool {
	if a.Multi {
		return len(a.Choices) == 0
	}
	return a.Text == ""
}

// Contains matches s as a substring of a text answer, or as an exact element
// of a multi-select answer.
func (a Answer) Contains(s string) bool {
	if a.Multi {
		for _, c := range a.Choices {
			if c == s {
				return true
			}
		}
		return false
	}
	return strings.Contains(a.Text, s)
}

func (a Answer) MarshalJSON() ([]byte, error) {
	if a.Multi {
		if a.Choices == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(a.Choices)
	}
	return json.Marshal(a.Text)
}

func (a *Answer) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*a = Answer{}
		return nil
	case len(b) > 0 && b[0] == '[':
		var choices []string
		if err := json.Unmarshal(b, &choices); err != nil {
			return fmt.Errorf("answer list must contain strings: %w", err)
		}
		*a = MultiAnswer(choices...)
		return nil
	default:
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("answer must be a string or a list of strings: %w", err)
		}
		*a = TextAnswer(s)
		return nil
	}
}

// AnswerSet maps question ids to answers.
type AnswerSet map[string]Answer

// Text returns the text of a single-value answer, or "" when missing.
func (s AnswerSet) Text(id string) string {
	return s[id].Text
}

// Contains is Answer.Contains for the given question; missing answers never match.
func (s AnswerSet) Contains(id, needle string) bool {
	a, ok := s[id]
	if !ok {
		return false
	}
	return a.Contains(needle)
}
