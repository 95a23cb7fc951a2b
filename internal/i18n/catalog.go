package i18n

import (
	"sort"
	"strings"
)

// Language is one entry of the localization collaborator's lookup table.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Catalog is a read-only language table injected into validation. The zero
// value is an empty catalog that accepts no codes.
type Catalog struct {
	languages []Language
	index     map[string]Language
}

// NewCatalog builds a catalog, skipping blank codes and keeping the first entry
// for duplicated codes.
func NewCatalog(languages ...Language) Catalog {
	cat := Catalog{
		languages: make([]Language, 0, len(languages)),
		index:     make(map[string]Language, len(languages)),
	}
	for _, lang := range languages {
		code := normalizeCode(lang.Code)
		if code == "" {
			continue
		}
		if _, exists := cat.index[code]; exists {
			continue
		}
		entry := Language{Code: strings.TrimSpace(lang.Code), Name: strings.TrimSpace(lang.Name)}
		cat.index[code] = entry
		cat.languages = append(cat.languages, entry)
	}
	return cat
}

// Empty reports whether the catalog carries no languages.
func (c Catalog) Empty() bool { return len(c.languages) == 0 }

// Len returns the number of languages.
func (c Catalog) Len() int { return len(c.languages) }

// Has reports whether code is known. Matching ignores case.
func (c Catalog) Has(code string) bool {
	_, ok := c.Lookup(code)
	return ok
}

// Lookup returns the language registered for code.
func (c Catalog) Lookup(code string) (Language, bool) {
	if c.index == nil {
		return Language{}, false
	}
	lang, ok := c.index[normalizeCode(code)]
	return lang, ok
}

// Languages returns a copy of the table in registration order.
func (c Catalog) Languages() []Language {
	out := make([]Language, len(c.languages))
	copy(out, c.languages)
	return out
}

// Suggest returns languages whose code or name starts with prefix, sorted by code.
func (c Catalog) Suggest(prefix string) []Language {
	needle := strings.ToLower(strings.TrimSpace(prefix))
	out := make([]Language, 0)
	for _, lang := range c.languages {
		if needle == "" ||
			strings.HasPrefix(strings.ToLower(lang.Code), needle) ||
			strings.HasPrefix(strings.ToLower(lang.Name), needle) {
			out = append(out, lang)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func normalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
