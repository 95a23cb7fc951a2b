package elements

import (
	"github.com/goliatone/go-pagebuilder/internal/domain"
	"github.com/goliatone/go-pagebuilder/internal/lifecycle"
)

// ComponentType selects how an element renders.
type ComponentType string

const (
	ComponentSwimlane      ComponentType = "swimlane"
	ComponentList          ComponentType = "list"
	ComponentImage         ComponentType = "image"
	ComponentTextParagraph ComponentType = "textParagraph"
	ComponentCard          ComponentType = "card"
	ComponentBanner        ComponentType = "banner"
)

// ComponentTypes lists the accepted component types.
var ComponentTypes = []ComponentType{
	ComponentSwimlane,
	ComponentList,
	ComponentImage,
	ComponentTextParagraph,
	ComponentCard,
	ComponentBanner,
}

// ItemType identifies what an element item points at.
type ItemType string

const (
	ItemCatalogue ItemType = "Catalogue"
	ItemPage      ItemType = "Page"
)

// Item references a catalogue or a page shown by the element.
type Item struct {
	ItemType ItemType   `json:"itemType"`
	ItemID   domain.Ref `json:"itemId"`
}

// SwiperOptions configure the slider used by swimlane elements.
type SwiperOptions struct {
	SlidesPerView int  `json:"slidesPerView"`
	SpaceBetween  int  `json:"spaceBetween"`
	Loop          bool `json:"loop"`
	Autoplay      bool `json:"autoplay"`
	AutoplayDelay int  `json:"autoplayDelay"`
}

// CardVariant is the card surface style.
type CardVariant string

const (
	CardElevated CardVariant = "elevated"
	CardOutlined CardVariant = "outlined"
	CardFilled   CardVariant = "filled"
)

// ImagePosition places the card image.
type ImagePosition string

const (
	ImageTop    ImagePosition = "top"
	ImageBottom ImagePosition = "bottom"
	ImageLeft   ImagePosition = "left"
	ImageRight  ImagePosition = "right"
)

// CardOptions configure card elements.
type CardOptions struct {
	Variant         CardVariant   `json:"variant"`
	ImagePosition   ImagePosition `json:"imagePosition"`
	ShowTitle       bool          `json:"showTitle"`
	ShowDescription bool          `json:"showDescription"`
}

// Element is one renderable unit of content. Both option blocks are kept
// regardless of ComponentType; only the active one is validated.
type Element struct {
	ComponentType ComponentType          `json:"componentType"`
	ReferenceName string                 `json:"referenceName"`
	Items         []Item                 `json:"items"`
	Availability  []domain.AppRef        `json:"availability"`
	Title         []domain.LocalizedText `json:"title"`
	Description   []domain.LocalizedText `json:"description"`
	ImageURL      string                 `json:"imageUrl"`
	SwiperOptions SwiperOptions          `json:"swiperOptions"`
	CardOptions   CardOptions            `json:"cardOptions"`
	State         lifecycle.State        `json:"-"`
}

// New returns the default-valued element used for unsaved instances.
func New() Element {
	return Element{
		ComponentType: ComponentList,
		Items:         []Item{},
		Availability:  []domain.AppRef{},
		Title:         []domain.LocalizedText{},
		Description:   []domain.LocalizedText{},
		SwiperOptions: SwiperOptions{SlidesPerView: 1},
		CardOptions:   CardOptions{Variant: CardElevated, ImagePosition: ImageTop, ShowTitle: true},
		State:         lifecycle.StateNew,
	}
}

// Clone returns a deep copy with non-nil collections.
func (e Element) Clone() Element {
	out := e
	out.Items = make([]Item, len(e.Items))
	copy(out.Items, e.Items)
	out.Availability = domain.CloneApps(e.Availability)
	out.Title = domain.CloneLocalized(e.Title)
	out.Description = domain.CloneLocalized(e.Description)
	out.State = e.State.Normalize()
	return out
}
