package course

import (
	"fmt"
	"strings"
)

// Field length limits enforced locally before any network call. They match
// the server's own constraints, so a valid draft never bounces on length.
const (
	MaxNameLength        = 200
	MaxDescriptionLength = 5000
)

// ValidationError reports a field that failed local validation.
// Limit is the violated bound, or 0 when a required field is empty.
type ValidationError struct {
	Field  string
	Limit  int
	Length int
}

func (e *ValidationError) Error() string {
	if e.Limit == 0 {
		return fmt.Sprintf("%s must not be empty", e.Field)
	}
	return fmt.Sprintf("%s exceeds %d characters (got %d)", e.Field, e.Limit, e.Length)
}

// ValidateName checks a course or lesson name: required, at most
// MaxNameLength characters after trimming.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return &ValidationError{Field: "name"}
	}
	if n := len([]rune(trimmed)); n > MaxNameLength {
		return &ValidationError{Field: "name", Limit: MaxNameLength, Length: n}
	}
	return nil
}

// ValidateDescription checks an optional description against
// MaxDescriptionLength.
func ValidateDescription(desc string) error {
	if n := len([]rune(strings.TrimSpace(desc))); n > MaxDescriptionLength {
		return &ValidationError{Field: "description", Limit: MaxDescriptionLength, Length: n}
	}
	return nil
}

// Validate checks that a block is complete enough to save.
func (b Block) Validate() error {
	switch c := b.Content.(type) {
	case nil:
		return fmt.Errorf("block has no content")
	case SingleChoice:
		if len(c.Options) < MinOptions {
			return ErrMinOptions
		}
		if c.CorrectAnswer < 0 || c.CorrectAnswer >= len(c.Options) {
			return fmt.Errorf("correct answer %d out of range", c.CorrectAnswer)
		}
	case MultipleChoice:
		if len(c.Options) < MinOptions {
			return ErrMinOptions
		}
		if len(c.CorrectAnswers) == 0 {
			return fmt.Errorf("mark at least one correct option")
		}
		for _, a := range c.CorrectAnswers {
			if a < 0 || a >= len(c.Options) {
				return fmt.Errorf("correct answer %d out of range", a)
			}
		}
	}
	return nil
}
