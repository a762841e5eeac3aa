package course

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// BlockKind discriminates the block variants on the wire ("type" field).
type BlockKind string

const (
	KindTheory         BlockKind = "theory"
	KindCode           BlockKind = "code"
	KindNote           BlockKind = "note"
	KindSingleChoice   BlockKind = "single_choice"
	KindMultipleChoice BlockKind = "multiple_choice"
)

// Kinds lists every block kind in presentation order.
var Kinds = []BlockKind{KindTheory, KindCode, KindNote, KindSingleChoice, KindMultipleChoice}

// NoteKind is the visual flavor of a note block.
type NoteKind string

const (
	NoteInfo      NoteKind = "info"
	NoteWarning   NoteKind = "warning"
	NoteTip       NoteKind = "tip"
	NoteImportant NoteKind = "important"
)

// DefaultLanguage is the code block language used when none is chosen.
const DefaultLanguage = "python"

// Languages lists the code block languages the editor offers.
var Languages = []string{"python", "javascript", "typescript", "go", "java", "c", "cpp", "rust", "sql", "bash"}

// Content is the per-kind payload of a block. The set of implementations
// is closed: exactly one per BlockKind.
type Content interface {
	Kind() BlockKind
	isContent()
}

// Theory is a text block with a title.
type Theory struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Code is a code snippet with an optional title and explanation.
type Code struct {
	Title       string `json:"title,omitempty"`
	Code        string `json:"code"`
	Language    string `json:"language"`
	Explanation string `json:"explanation,omitempty"`
}

// Note is a callout block.
type Note struct {
	NoteKind NoteKind `json:"note_type"`
	Content  string   `json:"content"`
}

// SingleChoice is a quiz question with exactly one correct option.
type SingleChoice struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// MultipleChoice is a quiz question where several options may be correct.
type MultipleChoice struct {
	Question       string   `json:"question"`
	Options        []string `json:"options"`
	CorrectAnswers []int    `json:"correct_answers"`
	Explanation    string   `json:"explanation,omitempty"`
}

func (Theory) Kind() BlockKind         { return KindTheory }
func (Code) Kind() BlockKind           { return KindCode }
func (Note) Kind() BlockKind           { return KindNote }
func (SingleChoice) Kind() BlockKind   { return KindSingleChoice }
func (MultipleChoice) Kind() BlockKind { return KindMultipleChoice }

func (Theory) isContent()         {}
func (Code) isContent()           {}
func (Note) isContent()           {}
func (SingleChoice) isContent()   {}
func (MultipleChoice) isContent() {}

// Block is one content unit of a lesson. Persisted blocks carry a
// server-assigned UUID; a zero ID means the block exists only in a local
// draft. Position mirrors the block's index in the lesson and is not
// serialized: on the wire, order is the array order.
type Block struct {
	ID       uuid.UUID
	Position int
	Content  Content
}

// Persisted reports whether the block has a server identity.
func (b Block) Persisted() bool {
	return b.ID != uuid.Nil
}

// Kind returns the kind of the block's content, or "" for an empty block.
func (b Block) Kind() BlockKind {
	if b.Content == nil {
		return ""
	}
	return b.Content.Kind()
}

// WithPosition returns a copy of the block at the given position.
func (b Block) WithPosition(p int) Block {
	b.Position = p
	return b
}

// NewBlock returns a fresh unsaved block of the given kind with safe
// defaults. ok is false for an unknown kind; callers treat that as a no-op.
func NewBlock(kind BlockKind) (Block, bool) {
	var c Content
	switch kind {
	case KindTheory:
		c = Theory{}
	case KindCode:
		c = Code{Language: DefaultLanguage}
	case KindNote:
		c = Note{NoteKind: NoteInfo}
	case KindSingleChoice:
		c = SingleChoice{Options: []string{"", ""}, CorrectAnswer: 0}
	case KindMultipleChoice:
		c = MultipleChoice{Options: []string{"", ""}, CorrectAnswers: []int{0}}
	default:
		return Block{}, false
	}
	return Block{Content: c}, true
}

// MarshalJSON flattens the content fields next to the "type" discriminator.
// The block_id is emitted only for persisted blocks, so drafts sent to a
// create endpoint carry no stale identity.
func (b Block) MarshalJSON() ([]byte, error) {
	if b.Content == nil {
		return nil, fmt.Errorf("block %s has no content", b.ID)
	}

	fields, err := json.Marshal(b.Content)
	if err != nil {
		return nil, err
	}

	out := map[string]json.RawMessage{}
	if err := json.Unmarshal(fields, &out); err != nil {
		return nil, err
	}

	kind, err := json.Marshal(b.Content.Kind())
	if err != nil {
		return nil, err
	}
	out["type"] = kind

	if b.Persisted() {
		id, err := json.Marshal(b.ID.String())
		if err != nil {
			return nil, err
		}
		out["block_id"] = id
	}

	return json.Marshal(out)
}

// UnmarshalJSON decodes a tagged block object, dispatching on "type".
func (b *Block) UnmarshalJSON(data []byte) error {
	var head struct {
		Type    BlockKind `json:"type"`
		BlockID string    `json:"block_id"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}

	var content Content
	switch head.Type {
	case KindTheory:
		var c Theory
		if err := json.Unmarshal(data, &c); err != nil {
			return err
		}
		content = c
	case KindCode:
		var c Code
		if err := json.Unmarshal(data, &c); err != nil {
			return err
		}
		content = c
	case KindNote:
		var c Note
		if err := json.Unmarshal(data, &c); err != nil {
			return err
		}
		content = c
	case KindSingleChoice:
		var c SingleChoice
		if err := json.Unmarshal(data, &c); err != nil {
			return err
		}
		content = c
	case KindMultipleChoice:
		var c MultipleChoice
		if err := json.Unmarshal(data, &c); err != nil {
			return err
		}
		content = c
	default:
		return fmt.Errorf("unknown block type %q", head.Type)
	}

	var id uuid.UUID
	if head.BlockID != "" {
		parsed, err := uuid.Parse(head.BlockID)
		if err != nil {
			return fmt.Errorf("parse block_id: %w", err)
		}
		id = parsed
	}

	b.ID = id
	b.Content = content
	return nil
}
