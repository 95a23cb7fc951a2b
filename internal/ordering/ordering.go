package ordering

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateReference = errors.New("ordering: reference already present in list")
	ErrIndexOutOfRange    = errors.New("ordering: index out of range")
)

// IndexError captures the offending index for range failures.
type IndexError struct {
	Index  int
	Length int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index=%d length=%d", ErrIndexOutOfRange.Error(), e.Index, e.Length)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

// Insert appends ref to list unless an equal entry already exists. The input
// slice is never modified; a fresh slice is returned on success.
func Insert[T comparable](list []T, ref T) ([]T, error) {
	return InsertFunc(list, ref, func(a, b T) bool { return a == b })
}

// InsertFunc is Insert with a caller-supplied equality.
func InsertFunc[T any](list []T, ref T, eq func(a, b T) bool) ([]T, error) {
	if IndexFunc(list, ref, eq) >= 0 {
		return list, ErrDuplicateReference
	}
	out := make([]T, len(list), len(list)+1)
	copy(out, list)
	return append(out, ref), nil
}

// Remove drops the entry at index and shifts the rest left.
func Remove[T any](list []T, index int) ([]T, error) {
	if index < 0 || index >= len(list) {
		return list, &IndexError{Index: index, Length: len(list)}
	}
	out := make([]T, 0, len(list)-1)
	out = append(out, list[:index]...)
	return append(out, list[index+1:]...), nil
}

// Move relocates the entry at from so it ends at position to. Every other
// entry keeps its relative order.
func Move[T any](list []T, from, to int) ([]T, error) {
	if from < 0 || from >= len(list) {
		return list, &IndexError{Index: from, Length: len(list)}
	}
	if to < 0 || to >= len(list) {
		return list, &IndexError{Index: to, Length: len(list)}
	}
	out := make([]T, len(list))
	copy(out, list)
	if from == to {
		return out, nil
	}

	moved := out[from]
	if from < to {
		copy(out[from:to], out[from+1:to+1])
	} else {
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = moved
	return out, nil
}

// IndexFunc returns the position of the first entry equal to ref, or -1.
func IndexFunc[T any](list []T, ref T, eq func(a, b T) bool) int {
	for i := range list {
		if eq(list[i], ref) {
			return i
		}
	}
	return -1
}

// Duplicates returns the positions of entries that repeat an earlier entry.
func Duplicates[T any, K comparable](list []T, key func(T) K) []int {
	seen := make(map[K]struct{}, len(list))
	var out []int
	for i, item := range list {
		k := key(item)
		if _, ok := seen[k]; ok {
			out = append(out, i)
			continue
		}
		seen[k] = struct{}{}
	}
	return out
}
