package containers

import (
	"github.com/goliatone/go-pagebuilder/internal/validation"
)

func stringProp() map[string]any { return map[string]any{"type": "string"} }

func spacingProp() map[string]any { return map[string]any{"type": "number", "minimum": 0} }

// styleSchema only checks value types. Unknown keys are allowed.
var styleSchema = validation.MustCompileSchema(map[string]any{
	"type": "object",
	"properties": map[string]any{
		"color":           stringProp(),
		"backgroundColor": stringProp(),
		"borderColor":     stringProp(),
		"backgroundImage": stringProp(),
		"fontFamily":      stringProp(),
		"fontWeight":      map[string]any{"type": []any{"string", "number"}},
		"textAlign":       stringProp(),
		"fontSize":        spacingProp(),
		"lineHeight":      spacingProp(),
		"padding":         spacingProp(),
		"paddingTop":      spacingProp(),
		"paddingBottom":   spacingProp(),
		"margin":          spacingProp(),
		"marginTop":       spacingProp(),
		"marginBottom":    spacingProp(),
		"gap":             spacingProp(),
		"borderWidth":     spacingProp(),
		"borderRadius":    spacingProp(),
		"opacity":         map[string]any{"type": "number", "minimum": 0, "maximum": 1},
	},
	"additionalProperties": true,
})

// ValidateStyle checks style attribute types and reports issues under
// `style_<attribute>`.
func ValidateStyle(style map[string]any) validation.ErrorMap {
	return styleSchema.Check("style", style)
}
