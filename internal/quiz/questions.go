package quiz

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Question is one stored quiz question.
type Question struct {
	ID       int64
	Section  string
	Passage  *string
	Question string
	Choices  []string
	Answer   string
}

// SectionCount is one row of the per-section aggregate.
type SectionCount struct {
	Section string
	Count   int
}

// SectionInfo describes a section for the sections listing.
type SectionInfo struct {
	DisplayName string `json:"displayName"`
	Count       int    `json:"count"`
}

// DisplayName turns a section key such as "reading_comprehension" into
// "Reading Comprehension".
func DisplayName(section string) string {
	spaced := strings.ReplaceAll(section, "_", " ")
	// cases.Caser keeps state between calls, so build one per use.
	return cases.Title(language.English).String(spaced)
}

// EncodeChoices serializes choices for the single text column. A nil slice
// is stored as an empty list.
func EncodeChoices(choices []string) (string, error) {
	if choices == nil {
		choices = []string{}
	}
	encoded, err := json.Marshal(choices)
	if err != nil {
		return "", fmt.Errorf("encode choices: %w", err)
	}
	return string(encoded), nil
}

// DecodeChoices parses a stored choices blob back into an ordered list.
func DecodeChoices(raw string) ([]string, error) {
	choices := make([]string, 0)
	if err := json.Unmarshal([]byte(raw), &choices); err != nil {
		return nil, fmt.Errorf("decode choices %q: %w", raw, err)
	}
	if choices == nil {
		// "null" decodes to a nil slice.
		return nil, fmt.Errorf("decode choices %q: not a list", raw)
	}
	return choices, nil
}
