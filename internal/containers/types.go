package containers

import (
	"github.com/goliatone/go-pagebuilder/internal/domain"
	"github.com/goliatone/go-pagebuilder/internal/lifecycle"
)

// Layout selects the layout engine used to arrange a container's elements.
type Layout string

const (
	LayoutTab    Layout = "tab"
	LayoutNormal Layout = "normal"
	LayoutFluid  Layout = "fluid"
	LayoutGrid   Layout = "grid"
	LayoutStack  Layout = "stack"
)

// Layouts lists the accepted layouts.
var Layouts = []Layout{LayoutTab, LayoutNormal, LayoutFluid, LayoutGrid, LayoutStack}

// GridSize is the column span of one grid cell per breakpoint.
type GridSize struct {
	XS int `json:"xs"`
	SM int `json:"sm"`
	MD int `json:"md"`
	LG int `json:"lg"`
	XL int `json:"xl"`
}

// GridOptions configure the grid layout. Sizes[i] applies to the i-th cell.
type GridOptions struct {
	Columns int        `json:"columns"`
	Gap     int        `json:"gap"`
	Sizes   []GridSize `json:"sizes"`
}

type StackDirection string

const (
	StackVertical   StackDirection = "vertical"
	StackHorizontal StackDirection = "horizontal"
)

type StackAlign string

const (
	AlignStart   StackAlign = "start"
	AlignCenter  StackAlign = "center"
	AlignEnd     StackAlign = "end"
	AlignStretch StackAlign = "stretch"
)

// StackOptions configure the stack layout.
type StackOptions struct {
	Direction StackDirection `json:"direction"`
	Spacing   int            `json:"spacing"`
	Align     StackAlign     `json:"align"`
}

type TabVariant string

const (
	TabStandard   TabVariant = "standard"
	TabScrollable TabVariant = "scrollable"
	TabFullWidth  TabVariant = "fullWidth"
)

// TabOptions configure the tab layout. DefaultIndex is the tab opened first.
type TabOptions struct {
	Variant      TabVariant `json:"variant"`
	DefaultIndex int        `json:"defaultIndex"`
}

// FluidOptions configure the fluid layout.
type FluidOptions struct {
	MaxWidth int `json:"maxWidth"`
	Padding  int `json:"padding"`
}

// LayoutOptions holds the active layout plus the last known configuration of
// every layout, so switching back and forth keeps earlier settings.
type LayoutOptions struct {
	Layout Layout       `json:"layout"`
	Grid   GridOptions  `json:"gridOptions"`
	Stack  StackOptions `json:"stackOptions"`
	Tab    TabOptions   `json:"tabOptions"`
	Fluid  FluidOptions `json:"fluidOptions"`
}

// Item references one element placed in the container.
type Item struct {
	Element domain.Ref `json:"element"`
}

// Container is an ordered group of elements with layout configuration.
type Container struct {
	ReferenceName string          `json:"referenceName"`
	Description   string          `json:"description"`
	LayoutOptions LayoutOptions   `json:"layoutOptions"`
	Items         []Item          `json:"items"`
	Available     []domain.AppRef `json:"available"`
	// Style holds JSON-native values. Go numbers of other types come back as
	// float64 after a Serialize/Denormalize round trip.
	Style         map[string]any  `json:"style"`
	State         lifecycle.State `json:"-"`
}

// New returns the default-valued container used for unsaved instances.
func New() Container {
	return Container{
		LayoutOptions: LayoutOptions{
			Layout: LayoutTab,
			Grid:   GridOptions{Columns: 12, Sizes: []GridSize{}},
			Stack:  StackOptions{Direction: StackVertical, Align: AlignStretch},
			Tab:    TabOptions{Variant: TabStandard},
		},
		Items:     []Item{},
		Available: []domain.AppRef{},
		Style:     map[string]any{},
		State:     lifecycle.StateNew,
	}
}

// Clone returns a deep copy with non-nil collections.
func (c Container) Clone() Container {
	out := c
	out.LayoutOptions.Grid.Sizes = make([]GridSize, len(c.LayoutOptions.Grid.Sizes))
	copy(out.LayoutOptions.Grid.Sizes, c.LayoutOptions.Grid.Sizes)
	out.Items = make([]Item, len(c.Items))
	copy(out.Items, c.Items)
	out.Available = domain.CloneApps(c.Available)
	out.Style = domain.CloneMap(c.Style)
	out.State = c.State.Normalize()
	return out
}

// ElementIDs returns the referenced element ids in order.
func (c Container) ElementIDs() []domain.Ref {
	out := make([]domain.Ref, len(c.Items))
	for i, item := range c.Items {
		out[i] = item.Element
	}
	return out
}

// SetLayout switches the active layout. Options of the other layouts are kept.
func SetLayout(c Container, layout Layout) Container {
	out := c.Clone()
	out.LayoutOptions.Layout = layout
	return out
}
