package domain

import "strings"

// Kind identifies one of the composable layout entities.
type Kind string

const (
	KindElement   Kind = "elements"
	KindContainer Kind = "containers"
	KindPage      Kind = "pages"
)

// String returns the collection name used by persistence collaborators.
func (k Kind) String() string { return string(k) }

// Valid reports whether the kind is one of the known layout entities.
func (k Kind) Valid() bool {
	switch k {
	case KindElement, KindContainer, KindPage:
		return true
	default:
		return false
	}
}

// ParseKind normalizes user input into a Kind. Singular forms are accepted.
func ParseKind(raw string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "element", "elements":
		return KindElement, true
	case "container", "containers":
		return KindContainer, true
	case "page", "pages":
		return KindPage, true
	default:
		return "", false
	}
}

// LocalizedText pairs a language code with a value.
type LocalizedText struct {
	LanCode string `json:"lanCode"`
	Value   string `json:"value"`
}

// AppRef marks an application where an entity is available.
type AppRef struct {
	AppID Ref `json:"appId"`
}

// CloneLocalized copies a localized sequence, always returning a non-nil slice.
func CloneLocalized(in []LocalizedText) []LocalizedText {
	out := make([]LocalizedText, len(in))
	copy(out, in)
	return out
}

// CloneApps copies an availability set, always returning a non-nil slice.
func CloneApps(in []AppRef) []AppRef {
	out := make([]AppRef, len(in))
	copy(out, in)
	return out
}

// CloneRefs copies a reference list, always returning a non-nil slice.
func CloneRefs(in []Ref) []Ref {
	out := make([]Ref, len(in))
	copy(out, in)
	return out
}

// CloneMap deep-copies JSON-native maps.
func CloneMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return CloneMap(typed)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return value
	}
}
