package i18n

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

//go:embed languages.json
var defaultLanguages []byte

// DefaultCatalog returns the built-in language list.
func DefaultCatalog() Catalog {
	languages, err := decodeLanguages(bytes.NewReader(defaultLanguages))
	if err != nil {
		return Catalog{}
	}
	return NewCatalog(languages...)
}

// LoadCatalog reads a JSON array of {code, name} entries from disk.
func LoadCatalog(path string) (Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("i18n: open languages %q: %w", path, err)
	}
	defer file.Close()

	languages, err := decodeLanguages(file)
	if err != nil {
		return Catalog{}, fmt.Errorf("i18n: decode languages %q: %w", path, err)
	}
	return NewCatalog(languages...), nil
}

func decodeLanguages(r io.Reader) ([]Language, error) {
	var languages []Language
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&languages); err != nil {
		return nil, err
	}
	return languages, nil
}
