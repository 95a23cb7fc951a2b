package ordering

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

func TestMoveRelocatesSingleEntry(t *testing.T) {
	list := []string{"A", "B", "C", "D"}

	got, err := Move(list, 0, 2)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if want := []string{"B", "C", "A", "D"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if want := []string{"A", "B", "C", "D"}; !reflect.DeepEqual(list, want) {
		t.Fatalf("input mutated: %v", list)
	}

	got, err = Move(list, 3, 1)
	if err != nil {
		t.Fatalf("move backwards: %v", err)
	}
	if want := []string{"A", "D", "B", "C"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestMoveKeepsRelativeOrderOfUntouchedEntries(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	list := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	moved := map[int]bool{}

	for step := 0; step < 50; step++ {
		from := rng.Intn(len(list))
		to := rng.Intn(len(list))
		moved[list[from]] = true
		next, err := Move(list, from, to)
		if err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
		list = next

		last := -1
		for _, v := range list {
			if moved[v] {
				continue
			}
			if v < last {
				t.Fatalf("step %d: untouched entries out of order: %v", step, list)
			}
			last = v
		}
	}
}

func TestMoveRejectsOutOfRange(t *testing.T) {
	list := []string{"A", "B"}
	got, err := Move(list, 0, 5)
	if !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	var idxErr *IndexError
	if !errors.As(err, &idxErr) || idxErr.Index != 5 || idxErr.Length != 2 {
		t.Fatalf("unexpected index error: %v", err)
	}
	if !reflect.DeepEqual(got, list) {
		t.Fatalf("expected list untouched, got %v", got)
	}
}

func TestInsertRejectsDuplicates(t *testing.T) {
	list, err := Insert([]string{}, "c1")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	again, err := Insert(list, "c1")
	if !errors.Is(err, ErrDuplicateReference) {
		t.Fatalf("expected ErrDuplicateReference, got %v", err)
	}
	if len(again) != 1 {
		t.Fatalf("expected single entry, got %v", again)
	}
	list, err = Insert(list, "c2")
	if err != nil {
		t.Fatalf("insert second: %v", err)
	}
	if want := []string{"c1", "c2"}; !reflect.DeepEqual(list, want) {
		t.Fatalf("expected %v, got %v", want, list)
	}
}

func TestInsertDoesNotAliasInput(t *testing.T) {
	base := make([]string, 1, 4)
	base[0] = "a"
	first, _ := Insert(base, "b")
	second, _ := Insert(base, "c")
	if first[1] != "b" || second[1] != "c" {
		t.Fatalf("inserts share backing array: %v %v", first, second)
	}
}

func TestRemoveShiftsLeft(t *testing.T) {
	list := []string{"A", "B", "C", "D"}
	got, err := Remove(list, 1)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if want := []string{"A", "C", "D"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if _, err := Remove(list, -1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected range error, got %v", err)
	}
	if len(list) != 4 {
		t.Fatalf("input mutated: %v", list)
	}
}

func TestDuplicates(t *testing.T) {
	got := Duplicates([]string{"a", "b", "a", "c", "b"}, func(s string) string { return s })
	if want := []int{2, 4}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
