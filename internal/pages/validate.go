package pages

import (
	"regexp"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-pagebuilder/internal/domain"
	"github.com/goliatone/go-pagebuilder/internal/ordering"
	"github.com/goliatone/go-pagebuilder/internal/validation"
)

// TwitterHandlePattern matches an @handle of up to 15 word characters.
var TwitterHandlePattern = regexp.MustCompile(`^@[A-Za-z0-9_]{1,15}$`)

// Validate checks p and returns every problem found. Type specific fields are
// only checked for the type that needs them.
func Validate(p Page, opts ...validation.Option) validation.ErrorMap {
	options := validation.Resolve(opts...)
	errs := ozzo.Errors{}

	validation.Check(errs, "slug", p.Slug,
		validation.NotBlank("page.slug_required", "slug is required"),
		validation.Pattern(validation.SlugPattern, "page.slug_format", "slug may only contain lowercase letters, digits and hyphens"))
	validation.Check(errs, "referenceName", p.ReferenceName,
		validation.NotBlank("page.reference_name_required", "reference name is required"))
	validation.Check(errs, "type", string(p.Type),
		validation.OneOf("page.type", "type must be one of normal, details, landing, internal, external, search, eventDetails, productDetails", PageTypes...))

	validateTypeFields(errs, p)

	for i, ref := range p.Items {
		if ref.IsZero() {
			validation.Fail(errs, validation.Key("items", i), "page.container_required", "container is required")
		}
	}
	for _, i := range ordering.Duplicates(p.Items, domain.Ref.Trimmed) {
		if p.Items[i].IsZero() {
			continue
		}
		validation.Fail(errs, validation.Key("items", i), "page.container_duplicate", "container is placed more than once")
	}
	validation.Apps(errs, "available", p.Available, false)

	validation.Check(errs, "numberItems_web", p.NumberItems.Web,
		validation.NonNegative("page.number_items", "web item count cannot be negative"))
	validation.Check(errs, "numberItems_android", p.NumberItems.Android,
		validation.NonNegative("page.number_items", "android item count cannot be negative"))
	validation.Check(errs, "numberItems_iOS", p.NumberItems.IOS,
		validation.NonNegative("page.number_items", "iOS item count cannot be negative"))

	validation.Localized(errs, "title", p.Title, options)
	validation.Localized(errs, "metaDescription", p.MetaDescription, options)
	validation.Localized(errs, "ogTitle", p.OGTitle, options)
	validation.Localized(errs, "ogDescription", p.OGDescription, options)

	validation.Check(errs, "canonicalUrl", p.CanonicalURL,
		validation.Pattern(validation.HTTPURLPattern, "page.canonical_url", "canonical URL must be an http(s) URL"))
	validation.Check(errs, "ogImage", p.OGImage,
		validation.Pattern(validation.HTTPURLPattern, "page.og_image", "image URL must be an http(s) URL"))
	validation.Check(errs, "twitterCreator", p.TwitterCreator,
		validation.Pattern(TwitterHandlePattern, "page.twitter_creator", "twitter creator must look like @handle"))

	return validation.FromOzzo(errs)
}

func validateTypeFields(errs ozzo.Errors, p Page) {
	switch p.Type {
	case TypeInternal:
		validation.Check(errs, "internalType", string(p.InternalType),
			validation.OneOf("page.internal_type", "internal type must be one of payment, login, cart, orders, profile, quotes, home", InternalTypes...))
	case TypeExternal:
		validation.Check(errs, "externalUrl", p.ExternalURL,
			validation.NotBlank("page.external_url_required", "external URL is required"),
			validation.Pattern(validation.HTTPURLPattern, "page.external_url_format", "external URL must be an http(s) URL"))
	case TypeDetails:
		if p.ProductID.IsZero() && p.EventID.IsZero() {
			validation.Fail(errs, "productID", "page.details_target", "a product or an event is required")
			validation.Fail(errs, "eventID", "page.details_target", "a product or an event is required")
		}
	case TypeProductDetails:
		if p.ProductID.IsZero() {
			validation.Fail(errs, "productID", "page.product_required", "product is required")
		}
	case TypeEventDetails:
		if p.EventID.IsZero() {
			validation.Fail(errs, "eventID", "page.event_required", "event is required")
		}
	}
}
