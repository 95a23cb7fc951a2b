package validation

import (
	"fmt"
	"regexp"
	"strings"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-pagebuilder/internal/domain"
	"github.com/goliatone/go-pagebuilder/internal/ordering"
)

var (
	// HTTPURLPattern accepts absolute http(s) URLs.
	HTTPURLPattern = regexp.MustCompile(`^https?://.+`)
	// SlugPattern accepts lowercase letters, digits and hyphens.
	SlugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)
)

// NotBlank fails when the string value is empty after trimming.
func NotBlank(code, message string) ozzo.Rule {
	return ozzo.By(func(value any) error {
		if strings.TrimSpace(stringValue(value)) == "" {
			return ozzo.NewError(code, message)
		}
		return nil
	})
}

// OneOf fails when value is not one of allowed. Blank values fail too, so the
// rule doubles as a required check for enums.
func OneOf[T ~string](code, message string, allowed ...T) ozzo.Rule {
	return ozzo.By(func(value any) error {
		current := strings.TrimSpace(stringValue(value))
		for _, candidate := range allowed {
			if string(candidate) == current {
				return nil
			}
		}
		return ozzo.NewError(code, message)
	})
}

// IntBetween fails when the integer value is outside [min, max].
func IntBetween(min, max int, code, message string) ozzo.Rule {
	return ozzo.By(func(value any) error {
		n, ok := value.(int)
		if !ok || n < min || n > max {
			return ozzo.NewError(code, message)
		}
		return nil
	})
}

// NonNegative fails for negative integers and floats.
func NonNegative(code, message string) ozzo.Rule {
	return ozzo.By(func(value any) error {
		switch n := value.(type) {
		case int:
			if n < 0 {
				return ozzo.NewError(code, message)
			}
		case float64:
			if n < 0 {
				return ozzo.NewError(code, message)
			}
		}
		return nil
	})
}

// Positive fails unless the integer value is greater than zero.
func Positive(code, message string) ozzo.Rule {
	return ozzo.By(func(value any) error {
		if n, ok := value.(int); !ok || n <= 0 {
			return ozzo.NewError(code, message)
		}
		return nil
	})
}

// Pattern fails when a non-blank string does not match re. Blank values pass;
// pair it with NotBlank for required fields.
func Pattern(re *regexp.Regexp, code, message string) ozzo.Rule {
	return ozzo.Match(re).ErrorObject(ozzo.NewError(code, message))
}

// Check runs rules against value and records the first failure under key.
func Check(errs ozzo.Errors, key string, value any, rules ...ozzo.Rule) {
	if err := ozzo.Validate(value, rules...); err != nil {
		if _, exists := errs[key]; !exists {
			errs[key] = err
		}
	}
}

// Fail records a failure under key unless the key already has one.
func Fail(errs ozzo.Errors, key, code, message string) {
	if _, exists := errs[key]; !exists {
		errs[key] = ozzo.NewError(code, message)
	}
}

// Key joins a field path with underscores: Key("title", 0, "value") == "title_0_value".
func Key(parts ...any) string {
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		segments = append(segments, fmt.Sprint(part))
	}
	return strings.Join(segments, "_")
}

// Localized enforces the language/value co-presence invariant on a localized
// sequence. Entries with both sides blank are ignored.
func Localized(errs ozzo.Errors, field string, values []domain.LocalizedText, opts Options) {
	seen := make(map[string]struct{}, len(values))
	for i, entry := range values {
		lan := strings.TrimSpace(entry.LanCode)
		val := strings.TrimSpace(entry.Value)
		switch {
		case lan != "" && val == "":
			errs[Key(field, i, "value")] = ozzo.NewError("localized.value_required", "value is required when a language is set")
		case lan == "" && val != "":
			errs[Key(field, i, "lanCode")] = ozzo.NewError("localized.language_required", "language is required when a value is set")
		}
		if lan == "" {
			continue
		}
		if !opts.Catalog.Empty() && !opts.Catalog.Has(lan) {
			errs[Key(field, i, "lanCode")] = ozzo.NewError("localized.language_unknown", fmt.Sprintf("unknown language code %q", lan))
			continue
		}
		normalized := strings.ToLower(lan)
		if _, dup := seen[normalized]; dup {
			errs[Key(field, i, "lanCode")] = ozzo.NewError("localized.language_duplicate", fmt.Sprintf("language %q is already set", lan))
			continue
		}
		seen[normalized] = struct{}{}
	}
}

// Apps checks an availability set: blank and repeated app ids are flagged and,
// when required, the set must not be empty.
func Apps(errs ozzo.Errors, field string, apps []domain.AppRef, required bool) {
	if required && len(apps) == 0 {
		errs[field] = ozzo.NewError("apps.required", "at least one app is required")
		return
	}
	for i, app := range apps {
		if app.AppID.IsZero() {
			errs[Key(field, i, "appId")] = ozzo.NewError("apps.app_required", "app is required")
		}
	}
	for _, i := range ordering.Duplicates(apps, func(a domain.AppRef) string { return strings.TrimSpace(a.AppID.String()) }) {
		if apps[i].AppID.IsZero() {
			continue
		}
		errs[Key(field, i, "appId")] = ozzo.NewError("apps.app_duplicate", "app is listed more than once")
	}
}

func stringValue(value any) string {
	switch typed := value.(type) {
	case string:
		return typed
	case fmt.Stringer:
		return typed.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(typed)
	}
}
