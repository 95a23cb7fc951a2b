package pagebuilder

import (
	"github.com/goliatone/go-pagebuilder/internal/containers"
	"github.com/goliatone/go-pagebuilder/internal/domain"
	"github.com/goliatone/go-pagebuilder/internal/elements"
	"github.com/goliatone/go-pagebuilder/internal/i18n"
	"github.com/goliatone/go-pagebuilder/internal/lifecycle"
	"github.com/goliatone/go-pagebuilder/internal/pages"
	"github.com/goliatone/go-pagebuilder/internal/storage"
	"github.com/goliatone/go-pagebuilder/internal/validation"
)

// Shared value types.
type (
	Kind          = domain.Kind
	Ref           = domain.Ref
	LocalizedText = domain.LocalizedText
	AppRef        = domain.AppRef
	Meta          = domain.Meta
	State         = lifecycle.State
	ErrorMap      = validation.ErrorMap
	Language      = i18n.Language
	Catalog       = i18n.Catalog
	Store         = storage.Store
	PageRequest   = storage.PageRequest
	Pagination    = storage.Pagination
)

const (
	KindElement   = domain.KindElement
	KindContainer = domain.KindContainer
	KindPage      = domain.KindPage

	StateNew       = lifecycle.StateNew
	StateDraft     = lifecycle.StateDraft
	StatePublished = lifecycle.StatePublished
)

// Elements.
type (
	Element        = elements.Element
	ElementItem    = elements.Item
	ComponentType  = elements.ComponentType
	SwiperOptions  = elements.SwiperOptions
	CardOptions    = elements.CardOptions
	ElementService = elements.Service
	ElementRecord  = elements.Record
)

// Containers.
type (
	Container        = containers.Container
	ContainerItem    = containers.Item
	ContainerLayout  = containers.Layout
	LayoutOptions    = containers.LayoutOptions
	ContainerService = containers.Service
	ContainerRecord  = containers.Record
)

// Pages.
type (
	Page         = pages.Page
	PageType     = pages.PageType
	InternalType = pages.InternalType
	NumberItems  = pages.NumberItems
	PageService  = pages.Service
	PageRecord   = pages.Record
)

var (
	NewElement        = elements.New
	ValidateElement   = elements.Validate
	AddElementItem    = elements.AddItem
	RemoveElementItem = elements.RemoveItem
	MoveElementItem   = elements.MoveItem

	NewContainer           = containers.New
	ValidateContainer      = containers.Validate
	ValidateContainerDraft = containers.ValidateDraft
	SetContainerLayout     = containers.SetLayout
	AddContainerElement    = containers.AddElement
	RemoveContainerElement = containers.RemoveElement
	MoveContainerElement   = containers.MoveElement
	ValidateContainerStyle = containers.ValidateStyle

	NewPage             = pages.New
	ValidatePage        = pages.Validate
	RenamePage          = pages.Rename
	DerivePageSlug      = pages.DeriveSlug
	AddPageContainer    = pages.AddContainer
	RemovePageContainer = pages.RemoveContainer
	MovePageContainer   = pages.MoveContainer

	Fields           = validation.Fields
	IsLifecycleError = lifecycle.IsLifecycleError
	IsNotFound       = storage.IsNotFound
)
