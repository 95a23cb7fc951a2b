package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
)

// ErrValidationFailed is the sentinel every ValidationError unwraps to.
var ErrValidationFailed = errors.New("validation failed")

const validationTextCode = "LAYOUT_VALIDATION_FAILED"

// ErrorMap maps a field path (for example `title_0_value` or `gridSize_2_xs`)
// to a human-readable message. An empty map means the entity is valid.
type ErrorMap map[string]string

// Valid reports whether no errors were recorded.
func (m ErrorMap) Valid() bool { return len(m) == 0 }

// Add records message for key unless the key already carries one.
func (m ErrorMap) Add(key, message string) {
	if _, exists := m[key]; exists {
		return
	}
	m[key] = message
}

// Merge copies entries from other, keeping existing messages on conflicts.
func (m ErrorMap) Merge(other ErrorMap) {
	for key, message := range other {
		m.Add(key, message)
	}
}

// Keys returns the field paths in lexical order.
func (m ErrorMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Err converts the map into an error, or nil when the map is empty.
func (m ErrorMap) Err() error {
	if len(m) == 0 {
		return nil
	}
	copied := make(ErrorMap, len(m))
	copied.Merge(m)
	return &ValidationError{Errors: copied}
}

// FromOzzo flattens ozzo validation errors into an ErrorMap. Nested error maps
// are joined with underscores.
func FromOzzo(errs ozzo.Errors) ErrorMap {
	out := ErrorMap{}
	flatten(out, "", errs)
	return out
}

func flatten(out ErrorMap, prefix string, errs ozzo.Errors) {
	for key, err := range errs {
		if err == nil {
			continue
		}
		path := key
		if prefix != "" {
			path = prefix + "_" + key
		}
		var nested ozzo.Errors
		if errors.As(err, &nested) {
			flatten(out, path, nested)
			continue
		}
		out.Add(path, err.Error())
	}
}

// ValidationError carries the complete set of field errors for one entity.
type ValidationError struct {
	Errors ErrorMap
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Errors) == 0 {
		return ErrValidationFailed.Error()
	}
	parts := make([]string, 0, len(e.Errors))
	for _, key := range e.Errors.Keys() {
		parts = append(parts, fmt.Sprintf("%s: %s", key, e.Errors[key]))
	}
	return fmt.Sprintf("%s: %s", ErrValidationFailed.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidationFailed }

// Fields extracts the ErrorMap carried by err, if any.
func Fields(err error) ErrorMap {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return validationErr.Errors
	}
	return nil
}

// Wrap tags a validation error with the go-errors validation category so host
// applications can map it to a 4xx response.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, message).
		WithTextCode(validationTextCode)
}
