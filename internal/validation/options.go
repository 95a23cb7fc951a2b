package validation

import "github.com/goliatone/go-pagebuilder/internal/i18n"

// Options tune a validation run. Callers pass them per call; validators keep
// no state between runs.
type Options struct {
	Catalog i18n.Catalog
}

// Option mutates Options.
type Option func(*Options)

// WithCatalog injects the localization table used to check language codes. An
// empty catalog disables the lookup.
func WithCatalog(catalog i18n.Catalog) Option {
	return func(o *Options) {
		o.Catalog = catalog
	}
}

// Resolve applies opts over the zero Options.
func Resolve(opts ...Option) Options {
	var out Options
	for _, opt := range opts {
		if opt != nil {
			opt(&out)
		}
	}
	return out
}

// CatalogSource yields the language table current at validation time.
type CatalogSource interface {
	Catalog() i18n.Catalog
}

// WithCatalogSource reads the catalog from source on every run.
func WithCatalogSource(source CatalogSource) Option {
	return func(o *Options) {
		if source != nil {
			o.Catalog = source.Catalog()
		}
	}
}
