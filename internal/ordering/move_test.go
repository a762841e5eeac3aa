package ordering

import (
	"reflect"
	"testing"
)

type item struct {
	Name     string
	Position int
}

func (i item) WithPosition(p int) item {
	i.Position = p
	return i
}

func items(names ...string) []item {
	out := make([]item, len(names))
	for i, n := range names {
		out[i] = item{Name: n, Position: i}
	}
	return out
}

func names(list []item) []string {
	out := make([]string, len(list))
	for i, it := range list {
		out[i] = it.Name
	}
	return out
}

func TestMove(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		from, to int
		want     []string
	}{
		{"down past neighbors", []string{"L0", "L1", "L2", "L3"}, 2, 0, []string{"L2", "L0", "L1", "L3"}},
		{"up to end", []string{"L0", "L1", "L2", "L3"}, 0, 3, []string{"L1", "L2", "L3", "L0"}},
		{"adjacent swap", []string{"a", "b"}, 0, 1, []string{"b", "a"}},
		{"middle shift", []string{"a", "b", "c", "d", "e"}, 3, 1, []string{"a", "d", "b", "c", "e"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := items(tt.input...)
			got, insertIndex := Move(in, tt.from, tt.to)

			if !reflect.DeepEqual(names(got), tt.want) {
				t.Errorf("order = %v, want %v", names(got), tt.want)
			}
			if insertIndex != tt.to {
				t.Errorf("insertIndex = %d, want %d", insertIndex, tt.to)
			}
			for i, it := range got {
				if it.Position != i {
					t.Errorf("position at %d = %d, want dense", i, it.Position)
				}
			}
			// Input list left alone.
			if !reflect.DeepEqual(names(in), tt.input) {
				t.Errorf("input mutated: %v", names(in))
			}
		})
	}
}

func TestMoveIdentity(t *testing.T) {
	in := items("a", "b", "c")
	got, insertIndex := Move(in, 1, 1)
	if !reflect.DeepEqual(got, in) {
		t.Errorf("identity move changed list: %v", names(got))
	}
	if insertIndex != 1 {
		t.Errorf("insertIndex = %d, want 1", insertIndex)
	}
}

func TestMoveOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-range index")
		}
	}()
	Move(items("a", "b"), 0, 5)
}
