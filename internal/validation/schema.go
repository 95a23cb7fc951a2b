package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var ErrSchemaInvalid = errors.New("validation: schema invalid")

const schemaResource = "layout.json"

// Schema is a compiled JSON schema used for free-form maps such as container
// styles.
type Schema struct {
	compiled *jsonschema.Schema
}

// CompileSchema compiles a draft 2020-12 schema expressed as a map.
func CompileSchema(doc map[string]any) (*Schema, error) {
	if len(doc) == 0 {
		return nil, fmt.Errorf("%w: empty schema", ErrSchemaInvalid)
	}
	encoded, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaResource, bytes.NewReader(encoded)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	compiled, err := compiler.Compile(schemaResource)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	return &Schema{compiled: compiled}, nil
}

// MustCompileSchema is CompileSchema for package level schemas.
func MustCompileSchema(doc map[string]any) *Schema {
	schema, err := CompileSchema(doc)
	if err != nil {
		panic(err)
	}
	return schema
}

// Check validates payload and keys every failure under field plus the failing
// instance location: an issue at /padding for field style becomes style_padding.
// Go values go through a JSON round trip first so ints validate as numbers.
func (s *Schema) Check(field string, payload map[string]any) ErrorMap {
	out := ErrorMap{}
	if s == nil || s.compiled == nil || len(payload) == 0 {
		return out
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		out.Add(field, err.Error())
		return out
	}
	var doc any
	if err := json.Unmarshal(encoded, &doc); err != nil {
		out.Add(field, err.Error())
		return out
	}

	err = s.compiled.Validate(doc)
	if err == nil {
		return out
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		out.Add(field, err.Error())
		return out
	}
	for _, leaf := range leaves(verr) {
		out.Add(locationKey(field, leaf.InstanceLocation), leafMessage(leaf))
	}
	return out
}

func leaves(node *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(node.Causes) == 0 {
		return []*jsonschema.ValidationError{node}
	}
	var out []*jsonschema.ValidationError
	for _, cause := range node.Causes {
		out = append(out, leaves(cause)...)
	}
	return out
}

func locationKey(field, location string) string {
	location = strings.Trim(strings.TrimPrefix(strings.TrimSpace(location), "#"), "/")
	if location == "" {
		return field
	}
	return field + "_" + strings.ReplaceAll(location, "/", "_")
}

func leafMessage(leaf *jsonschema.ValidationError) string {
	if msg := strings.TrimSpace(leaf.Message); msg != "" {
		return msg
	}
	return "invalid value"
}
