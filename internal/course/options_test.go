package course

import (
	"errors"
	"reflect"
	"testing"
)

func singleChoice(options []string, correct int) Block {
	return Block{Content: SingleChoice{Question: "q", Options: options, CorrectAnswer: correct}}
}

func multipleChoice(options []string, correct []int) Block {
	return Block{Content: MultipleChoice{Question: "q", Options: options, CorrectAnswers: correct}}
}

func TestRemoveOptionSingleChoice(t *testing.T) {
	tests := []struct {
		name        string
		correct     int
		remove      int
		wantCorrect int
	}{
		{"removed answer falls back to zero", 2, 2, 0},
		{"answer above removed shifts down", 2, 1, 1},
		{"answer below removed untouched", 0, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := singleChoice([]string{"a", "b", "c", "d"}, tt.correct)
			got, err := b.RemoveOption(tt.remove)
			if err != nil {
				t.Fatal(err)
			}
			c := got.Content.(SingleChoice)
			if len(c.Options) != 3 {
				t.Errorf("options = %v", c.Options)
			}
			if c.CorrectAnswer != tt.wantCorrect {
				t.Errorf("correct = %d, want %d", c.CorrectAnswer, tt.wantCorrect)
			}
		})
	}
}

func TestRemoveOptionMultipleChoice(t *testing.T) {
	tests := []struct {
		name    string
		correct []int
		remove  int
		want    []int
	}{
		{"removed index dropped", []int{0, 2}, 2, []int{0}},
		{"higher indices shift down", []int{0, 3}, 1, []int{0, 2}},
		{"may leave empty set", []int{1}, 1, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := multipleChoice([]string{"a", "b", "c", "d"}, tt.correct)
			got, err := b.RemoveOption(tt.remove)
			if err != nil {
				t.Fatal(err)
			}
			c := got.Content.(MultipleChoice)
			if !reflect.DeepEqual(c.CorrectAnswers, tt.want) {
				t.Errorf("correct answers = %v, want %v", c.CorrectAnswers, tt.want)
			}
		})
	}
}

func TestRemoveOptionFloor(t *testing.T) {
	b := singleChoice([]string{"a", "b"}, 0)
	if _, err := b.RemoveOption(0); !errors.Is(err, ErrMinOptions) {
		t.Errorf("err = %v, want ErrMinOptions", err)
	}

	m := multipleChoice([]string{"a", "b"}, []int{0})
	if _, err := m.RemoveOption(1); !errors.Is(err, ErrMinOptions) {
		t.Errorf("err = %v, want ErrMinOptions", err)
	}
}

func TestOptionOpsOnNonChoice(t *testing.T) {
	b, _ := NewBlock(KindTheory)
	if _, err := b.AddOption(); !errors.Is(err, ErrNotChoice) {
		t.Errorf("AddOption err = %v", err)
	}
	if _, err := b.RemoveOption(0); !errors.Is(err, ErrNotChoice) {
		t.Errorf("RemoveOption err = %v", err)
	}
}

func TestAddOption(t *testing.T) {
	b := multipleChoice([]string{"a", "b"}, []int{1})
	got, err := b.AddOption()
	if err != nil {
		t.Fatal(err)
	}
	c := got.Content.(MultipleChoice)
	if len(c.Options) != 3 || c.Options[2] != "" {
		t.Errorf("options = %v", c.Options)
	}
	// Original untouched.
	if len(b.Content.(MultipleChoice).Options) != 2 {
		t.Error("AddOption mutated the receiver")
	}
}
