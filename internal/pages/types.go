package pages

import (
	"github.com/goliatone/go-pagebuilder/internal/domain"
	"github.com/goliatone/go-pagebuilder/internal/lifecycle"
)

// PageType is the discriminator that decides which extra fields a page needs.
type PageType string

const (
	TypeNormal         PageType = "normal"
	TypeDetails        PageType = "details"
	TypeLanding        PageType = "landing"
	TypeInternal       PageType = "internal"
	TypeExternal       PageType = "external"
	TypeSearch         PageType = "search"
	TypeEventDetails   PageType = "eventDetails"
	TypeProductDetails PageType = "productDetails"
)

var PageTypes = []PageType{
	TypeNormal,
	TypeDetails,
	TypeLanding,
	TypeInternal,
	TypeExternal,
	TypeSearch,
	TypeEventDetails,
	TypeProductDetails,
}

// InternalType names the application screen an internal page opens.
type InternalType string

const (
	InternalPayment InternalType = "payment"
	InternalLogin   InternalType = "login"
	InternalCart    InternalType = "cart"
	InternalOrders  InternalType = "orders"
	InternalProfile InternalType = "profile"
	InternalQuotes  InternalType = "quotes"
	InternalHome    InternalType = "home"
)

var InternalTypes = []InternalType{
	InternalPayment,
	InternalLogin,
	InternalCart,
	InternalOrders,
	InternalProfile,
	InternalQuotes,
	InternalHome,
}

// NumberItems caps how many items each platform renders.
type NumberItems struct {
	Web     int `json:"web"`
	Android int `json:"android"`
	IOS     int `json:"iOS"`
}

// Page is a navigable unit made of ordered containers plus SEO metadata.
type Page struct {
	Slug            string                 `json:"slug"`
	ReferenceName   string                 `json:"referenceName"`
	Type            PageType               `json:"type"`
	InternalType    InternalType           `json:"internalType"`
	ExternalURL     string                 `json:"externalUrl"`
	ProductID       domain.Ref             `json:"productID"`
	EventID         domain.Ref             `json:"eventID"`
	Items           []domain.Ref           `json:"items"`
	Available       []domain.AppRef        `json:"available"`
	NumberItems     NumberItems            `json:"numberItems"`
	Title           []domain.LocalizedText `json:"title"`
	MetaDescription []domain.LocalizedText `json:"metaDescription"`
	OGTitle         []domain.LocalizedText `json:"ogTitle"`
	OGDescription   []domain.LocalizedText `json:"ogDescription"`
	OGImage         string                 `json:"ogImage"`
	CanonicalURL    string                 `json:"canonicalUrl"`
	TwitterCreator  string                 `json:"twitterCreator"`
	State           lifecycle.State        `json:"-"`
}

// New returns the default-valued page used for unsaved instances.
func New() Page {
	return Page{
		Type:            TypeNormal,
		Items:           []domain.Ref{},
		Available:       []domain.AppRef{},
		Title:           []domain.LocalizedText{},
		MetaDescription: []domain.LocalizedText{},
		OGTitle:         []domain.LocalizedText{},
		OGDescription:   []domain.LocalizedText{},
		State:           lifecycle.StateNew,
	}
}

func (p Page) Clone() Page {
	out := p
	out.Items = domain.CloneRefs(p.Items)
	out.Available = domain.CloneApps(p.Available)
	out.Title = domain.CloneLocalized(p.Title)
	out.MetaDescription = domain.CloneLocalized(p.MetaDescription)
	out.OGTitle = domain.CloneLocalized(p.OGTitle)
	out.OGDescription = domain.CloneLocalized(p.OGDescription)
	out.State = p.State.Normalize()
	return out
}
