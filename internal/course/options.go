package course

import (
	"errors"
	"fmt"
)

// MinOptions is the smallest option set a choice block may keep.
const MinOptions = 2

// ErrMinOptions is returned when removing an option would leave a choice
// block with fewer than MinOptions options.
var ErrMinOptions = errors.New("choice blocks need at least two options")

// ErrNotChoice is returned when an option operation targets a block kind
// that has no options.
var ErrNotChoice = errors.New("block has no options")

// AddOption appends an empty option to a choice block.
func (b Block) AddOption() (Block, error) {
	switch c := b.Content.(type) {
	case SingleChoice:
		c.Options = append(append([]string(nil), c.Options...), "")
		b.Content = c
		return b, nil
	case MultipleChoice:
		c.Options = append(append([]string(nil), c.Options...), "")
		b.Content = c
		return b, nil
	default:
		return b, ErrNotChoice
	}
}

// RemoveOption deletes the option at index and reindexes the stored
// answers so they keep pointing at the same surviving options:
//   - single choice: an answer above the removed index shifts down by one,
//     the removed answer itself falls back to option 0;
//   - multiple choice: the removed index is dropped from the answer set and
//     higher indices shift down by one. The set may come out empty; saving
//     such a block is rejected by Validate, not here.
func (b Block) RemoveOption(index int) (Block, error) {
	switch c := b.Content.(type) {
	case SingleChoice:
		if index < 0 || index >= len(c.Options) {
			return b, fmt.Errorf("option index %d out of range", index)
		}
		if len(c.Options) <= MinOptions {
			return b, ErrMinOptions
		}
		c.Options = spliceOut(c.Options, index)
		switch {
		case c.CorrectAnswer == index:
			c.CorrectAnswer = 0
		case c.CorrectAnswer > index:
			c.CorrectAnswer--
		}
		b.Content = c
		return b, nil
	case MultipleChoice:
		if index < 0 || index >= len(c.Options) {
			return b, fmt.Errorf("option index %d out of range", index)
		}
		if len(c.Options) <= MinOptions {
			return b, ErrMinOptions
		}
		c.Options = spliceOut(c.Options, index)
		answers := make([]int, 0, len(c.CorrectAnswers))
		for _, a := range c.CorrectAnswers {
			if a == index {
				continue
			}
			if a > index {
				a--
			}
			answers = append(answers, a)
		}
		c.CorrectAnswers = answers
		b.Content = c
		return b, nil
	default:
		return b, ErrNotChoice
	}
}

func spliceOut(s []string, i int) []string {
	out := make([]string, 0, len(s)-1)
	out = append(out, s[:i]...)
	out = append(out, s[i+1:]...)
	return out
}
