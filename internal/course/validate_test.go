package course

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"ok", "Intro to Go", false},
		{"exactly at limit", strings.Repeat("a", MaxNameLength), false},
		{"one over limit", strings.Repeat("a", MaxNameLength+1), true},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"trimmed under limit", " " + strings.Repeat("a", MaxNameLength) + " ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName() err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Errorf("err type = %T, want *ValidationError", err)
				}
			}
		})
	}
}

func TestValidateDescription(t *testing.T) {
	if err := ValidateDescription(""); err != nil {
		t.Errorf("empty description must be valid: %v", err)
	}
	if err := ValidateDescription(strings.Repeat("a", MaxDescriptionLength)); err != nil {
		t.Errorf("at-limit description must be valid: %v", err)
	}

	err := ValidateDescription(strings.Repeat("a", MaxDescriptionLength+1))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	if verr.Field != "description" || verr.Limit != MaxDescriptionLength {
		t.Errorf("error detail = %+v", verr)
	}
}

func TestBlockValidate(t *testing.T) {
	tests := []struct {
		name    string
		block   Block
		wantErr bool
	}{
		{"theory always valid", Block{Content: Theory{}}, false},
		{"single choice ok", singleChoice([]string{"a", "b"}, 1), false},
		{"single choice answer out of range", singleChoice([]string{"a", "b"}, 2), true},
		{"multiple choice ok", multipleChoice([]string{"a", "b"}, []int{0, 1}), false},
		{"multiple choice empty answers", multipleChoice([]string{"a", "b"}, nil), true},
		{"no content", Block{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.block.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
