package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Difficulty grades an exam.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the known grades.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// ParseDifficulty accepts a grade in any case.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", ErrInvalidDifficulty.WithDetails(s)
	}
	return d, nil
}

// ExamID identifies an exam. The API sends it as a number or a string.
type ExamID string

// UnmarshalJSON accepts both 7 and "7".
func (id *ExamID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ExamID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ExamID(n.String())
	return nil
}

// Exam is one practice exam in the catalogue.
type Exam struct {
	ID           ExamID     `json:"id" yaml:"id"`
	Title        string     `json:"title" yaml:"title"`
	Description  string     `json:"description" yaml:"description"`
	Subject      string     `json:"subject" yaml:"subject"`
	Difficulty   Difficulty `json:"difficulty" yaml:"difficulty"`
	Duration     string     `json:"duration" yaml:"duration"` // display text, e.g. "45 min"
	Questions    int        `json:"questions" yaml:"questions"`
	Participants int        `json:"participants" yaml:"participants"`
	Category     string     `json:"category" yaml:"category"`
}

// FilterAll disables a filter criterion, as does the empty string.
const FilterAll = "all"

// ExamFilter narrows an exam list. Zero value matches everything.
type ExamFilter struct {
	// Search is a case-insensitive substring of title or description.
	Search string
	// Difficulty must equal the exam's difficulty.
	Difficulty string
	// Subject is compared case-insensitively.
	Subject string
	// Category must equal the exam's category.
	Category string
}

// Match reports whether e passes every active criterion.
func (f ExamFilter) Match(e Exam) bool {
	if q := strings.ToLower(f.Search); q != "" {
		if !strings.Contains(strings.ToLower(e.Title), q) &&
			!strings.Contains(strings.ToLower(e.Description), q) {
			return false
		}
	}
	if active(f.Difficulty) && string(e.Difficulty) != f.Difficulty {
		return false
	}
	if active(f.Subject) && !strings.EqualFold(e.Subject, f.Subject) {
		return false
	}
	if active(f.Category) && e.Category != f.Category {
		return false
	}
	return true
}

// Apply returns the exams that match, in their original order.
func (f ExamFilter) Apply(exams []Exam) []Exam {
	out := make([]Exam, 0, len(exams))
	for _, e := range exams {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

func active(criterion string) bool {
	return criterion != "" && criterion != FilterAll
}
