package lessonview

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/courseforge/internal/course"
	"github.com/abhisek/courseforge/internal/ui/components"
	"github.com/abhisek/courseforge/internal/ui/theme"
)

type fieldKind int

const (
	fieldInput fieldKind = iota
	fieldArea
	fieldNoteKind
	fieldOption
)

// formField is one editable slot in the block form.
type formField struct {
	label  string
	kind   fieldKind
	input  components.TextInput
	area   components.TextArea
	option int // option index for fieldOption
}

// blockForm edits one block draft, with a field list per block kind.
// Options on choice blocks can be added, removed, and marked correct
// in place.
type blockForm struct {
	draft course.Block
	// note kind cycling state for note blocks
	noteKind course.NoteKind

	fields []formField
	focus  int
	err    string
}

func newBlockForm(b course.Block) *blockForm {
	f := &blockForm{draft: b}
	if n, ok := b.Content.(course.Note); ok {
		f.noteKind = n.NoteKind
	}
	f.rebuild()
	return f
}

func input(label, value string, limit int) formField {
	in := components.NewTextInput(label, "", limit)
	in.SetValue(value)
	in.Model.Blur()
	return formField{label: label, kind: fieldInput, input: in}
}

func area(label, value string, height int) formField {
	a := components.NewTextArea(label, "", 60, height)
	a.SetValue(value)
	a.Model.Blur()
	return formField{label: label, kind: fieldArea, area: a}
}

// rebuild recreates the field widgets from the draft. Called on creation
// and whenever the option list changes shape.
func (f *blockForm) rebuild() {
	f.fields = f.fields[:0]

	switch c := f.draft.Content.(type) {
	case course.Theory:
		f.fields = append(f.fields,
			input("Title", c.Title, course.MaxNameLength),
			area("Content", c.Content, 8),
		)
	case course.Code:
		f.fields = append(f.fields,
			input("Title", c.Title, course.MaxNameLength),
			input("Language", c.Language, 40),
			area("Code", c.Code, 10),
			area("Explanation", c.Explanation, 4),
		)
	case course.Note:
		f.fields = append(f.fields,
			formField{label: "Kind", kind: fieldNoteKind},
			area("Content", c.Content, 5),
		)
	case course.SingleChoice:
		f.fields = append(f.fields, input("Question", c.Question, 0))
		for i, opt := range c.Options {
			o := input(fmt.Sprintf("Option %d", i+1), opt, 0)
			o.kind = fieldOption
			o.option = i
			f.fields = append(f.fields, o)
		}
		f.fields = append(f.fields, area("Explanation", c.Explanation, 3))
	case course.MultipleChoice:
		f.fields = append(f.fields, input("Question", c.Question, 0))
		for i, opt := range c.Options {
			o := input(fmt.Sprintf("Option %d", i+1), opt, 0)
			o.kind = fieldOption
			o.option = i
			f.fields = append(f.fields, o)
		}
		f.fields = append(f.fields, area("Explanation", c.Explanation, 3))
	}

	if f.focus >= len(f.fields) {
		f.focus = len(f.fields) - 1
	}
	if f.focus < 0 {
		f.focus = 0
	}
	f.focusCurrent()
}

func (f *blockForm) focusCurrent() tea.Cmd {
	var cmd tea.Cmd
	for i := range f.fields {
		switch f.fields[i].kind {
		case fieldArea:
			if i == f.focus {
				cmd = f.fields[i].area.Init()
			} else {
				f.fields[i].area.Model.Blur()
			}
		case fieldInput, fieldOption:
			if i == f.focus {
				cmd = f.fields[i].input.Init()
			} else {
				f.fields[i].input.Model.Blur()
			}
		}
	}
	return cmd
}

// collect reads widget values back into the draft.
func (f *blockForm) collect() course.Block {
	b := f.draft

	get := func(i int) string {
		if f.fields[i].kind == fieldArea {
			return f.fields[i].area.Value()
		}
		return f.fields[i].input.Value()
	}

	switch c := b.Content.(type) {
	case course.Theory:
		c.Title = get(0)
		c.Content = get(1)
		b.Content = c
	case course.Code:
		c.Title = get(0)
		c.Language = get(1)
		c.Code = get(2)
		c.Explanation = get(3)
		b.Content = c
	case course.Note:
		c.NoteKind = f.noteKind
		c.Content = get(1)
		b.Content = c
	case course.SingleChoice:
		c.Question = get(0)
		opts := append([]string(nil), c.Options...)
		for i, fl := range f.fields {
			if fl.kind == fieldOption && fl.option < len(opts) {
				opts[fl.option] = get(i)
			}
		}
		c.Options = opts
		c.Explanation = get(len(f.fields) - 1)
		b.Content = c
	case course.MultipleChoice:
		c.Question = get(0)
		opts := append([]string(nil), c.Options...)
		for i, fl := range f.fields {
			if fl.kind == fieldOption && fl.option < len(opts) {
				opts[fl.option] = get(i)
			}
		}
		c.Options = opts
		c.Explanation = get(len(f.fields) - 1)
		b.Content = c
	}

	f.draft = b
	return b
}

var noteKinds = []course.NoteKind{
	course.NoteInfo, course.NoteWarning, course.NoteTip, course.NoteImportant,
}

func (f *blockForm) cycleNoteKind() {
	for i, k := range noteKinds {
		if k == f.noteKind {
			f.noteKind = noteKinds[(i+1)%len(noteKinds)]
			return
		}
	}
	f.noteKind = course.NoteInfo
}

// update handles one key in the form. Returns (done, saveRequested, cmd):
// done means the form should close without saving.
func (f *blockForm) update(msg tea.KeyMsg) (bool, bool, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return true, false, nil
	case "ctrl+s":
		return false, true, nil
	case "tab":
		f.focus = (f.focus + 1) % len(f.fields)
		return false, false, f.focusCurrent()
	case "shift+tab":
		f.focus = (f.focus - 1 + len(f.fields)) % len(f.fields)
		return false, false, f.focusCurrent()
	case "ctrl+t":
		if f.fields[f.focus].kind == fieldNoteKind {
			f.cycleNoteKind()
		}
		return false, false, nil
	case "ctrl+a":
		f.collect()
		added, err := f.draft.AddOption()
		if err == nil {
			f.draft = added
			f.rebuild()
		}
		return false, false, nil
	case "ctrl+r":
		if f.fields[f.focus].kind == fieldOption {
			f.collect()
			removed, err := f.draft.RemoveOption(f.fields[f.focus].option)
			if err != nil {
				f.err = err.Error()
				return false, false, nil
			}
			f.draft = removed
			f.err = ""
			f.rebuild()
		}
		return false, false, nil
	case "ctrl+x":
		if f.fields[f.focus].kind == fieldOption {
			f.collect()
			f.toggleCorrect(f.fields[f.focus].option)
		}
		return false, false, nil
	}

	var cmd tea.Cmd
	fl := &f.fields[f.focus]
	switch fl.kind {
	case fieldArea:
		fl.area, cmd = fl.area.Update(msg)
	case fieldInput, fieldOption:
		fl.input, cmd = fl.input.Update(msg)
	case fieldNoteKind:
		// Only ctrl+t does anything here.
	}
	return false, false, cmd
}

// toggleCorrect marks or unmarks an option as correct on the draft.
func (f *blockForm) toggleCorrect(index int) {
	switch c := f.draft.Content.(type) {
	case course.SingleChoice:
		c.CorrectAnswer = index
		f.draft.Content = c
	case course.MultipleChoice:
		for i, a := range c.CorrectAnswers {
			if a == index {
				c.CorrectAnswers = append(c.CorrectAnswers[:i], c.CorrectAnswers[i+1:]...)
				f.draft.Content = c
				return
			}
		}
		c.CorrectAnswers = append(c.CorrectAnswers, index)
		f.draft.Content = c
	}
}

func (f *blockForm) view() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Edit "+string(f.draft.Kind())+" block") + "\n\n")

	correct := map[int]bool{}
	switch c := f.draft.Content.(type) {
	case course.SingleChoice:
		correct[c.CorrectAnswer] = true
	case course.MultipleChoice:
		for _, a := range c.CorrectAnswers {
			correct[a] = true
		}
	}

	for i := range f.fields {
		fl := &f.fields[i]
		marker := "  "
		if i == f.focus {
			marker = "▸ "
		}

		switch fl.kind {
		case fieldNoteKind:
			b.WriteString(marker + theme.InputLabel.Render("Kind: ") +
				theme.Badge.Render(string(f.noteKind)) + "  " +
				theme.Hint.Render("ctrl+t: cycle") + "\n\n")
		case fieldOption:
			line := marker + fl.input.View()
			if correct[fl.option] {
				line += " " + theme.Correct.Render("✓ correct")
			}
			b.WriteString(line + "\n\n")
		case fieldArea:
			b.WriteString(marker + "\n" + fl.area.View() + "\n\n")
		default:
			b.WriteString(marker + fl.input.View() + "\n\n")
		}
	}

	hints := "tab: next field    ctrl+s: save    esc: cancel"
	if f.draft.Kind() == course.KindSingleChoice || f.draft.Kind() == course.KindMultipleChoice {
		hints += "\nctrl+a: add option    ctrl+r: remove option    ctrl+x: mark correct"
	}
	b.WriteString(theme.Hint.Render(hints))

	if f.err != "" {
		b.WriteString("\n" + theme.Incorrect.Render(f.err))
	}

	return b.String()
}
