package elements

import (
	ozzo "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-pagebuilder/internal/ordering"
	"github.com/goliatone/go-pagebuilder/internal/validation"
)

// Validate checks e and returns every problem found, keyed by field path.
// Option blocks are only checked for the component type that uses them.
func Validate(e Element, opts ...validation.Option) validation.ErrorMap {
	options := validation.Resolve(opts...)
	errs := ozzo.Errors{}

	validation.Check(errs, "componentType", string(e.ComponentType),
		validation.OneOf("element.component_type", "component type must be one of swimlane, list, image, textParagraph, card, banner", ComponentTypes...))
	validation.Check(errs, "referenceName", e.ReferenceName,
		validation.NotBlank("element.reference_name_required", "reference name is required"))
	validation.Check(errs, "imageUrl", e.ImageURL,
		validation.Pattern(validation.HTTPURLPattern, "element.image_url", "image URL must be an http(s) URL"))

	validateItems(errs, e.Items)
	validation.Apps(errs, "availability", e.Availability, false)
	validation.Localized(errs, "title", e.Title, options)
	validation.Localized(errs, "description", e.Description, options)

	switch e.ComponentType {
	case ComponentSwimlane:
		validateSwiper(errs, e.SwiperOptions)
	case ComponentCard:
		validateCard(errs, e.CardOptions)
	}

	return validation.FromOzzo(errs)
}

func validateItems(errs ozzo.Errors, items []Item) {
	catalogues := 0
	for i, item := range items {
		validation.Check(errs, validation.Key("items", i, "itemType"), string(item.ItemType),
			validation.OneOf("element.item_type", "item type must be Catalogue or Page", ItemCatalogue, ItemPage))
		if item.ItemID.IsZero() {
			validation.Fail(errs, validation.Key("items", i, "itemId"), "element.item_id_required", "item reference is required")
		}
		if item.ItemType == ItemCatalogue {
			catalogues++
			if catalogues > 1 {
				validation.Fail(errs, validation.Key("items", i, "itemType"), "element.catalogue_singular", "only one catalogue may be referenced")
			}
		}
	}
	for _, i := range ordering.Duplicates(items, itemKey) {
		if items[i].ItemID.IsZero() {
			continue
		}
		validation.Fail(errs, validation.Key("items", i, "itemId"), "element.item_duplicate", "item is referenced more than once")
	}
}

func validateSwiper(errs ozzo.Errors, opts SwiperOptions) {
	validation.Check(errs, "swiperSlidesPerView", opts.SlidesPerView,
		validation.IntBetween(1, 12, "element.slides_per_view", "slides per view must be between 1 and 12"))
	validation.Check(errs, "swiperSpaceBetween", opts.SpaceBetween,
		validation.NonNegative("element.space_between", "space between slides cannot be negative"))
	if opts.Autoplay {
		validation.Check(errs, "swiperAutoplayDelay", opts.AutoplayDelay,
			validation.Positive("element.autoplay_delay", "autoplay delay must be greater than zero"))
		return
	}
	validation.Check(errs, "swiperAutoplayDelay", opts.AutoplayDelay,
		validation.NonNegative("element.autoplay_delay", "autoplay delay cannot be negative"))
}

func validateCard(errs ozzo.Errors, opts CardOptions) {
	validation.Check(errs, "cardVariant", string(opts.Variant),
		validation.OneOf("element.card_variant", "card variant must be one of elevated, outlined, filled", CardElevated, CardOutlined, CardFilled))
	validation.Check(errs, "cardImagePosition", string(opts.ImagePosition),
		validation.OneOf("element.card_image_position", "image position must be one of top, bottom, left, right", ImageTop, ImageBottom, ImageLeft, ImageRight))
}

func itemKey(item Item) Item { return item }
