package containers

import (
	ozzo "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-pagebuilder/internal/domain"
	"github.com/goliatone/go-pagebuilder/internal/ordering"
	"github.com/goliatone/go-pagebuilder/internal/validation"
)

// Validate checks c for publishing: at least one element and one app are required.
// Containers carry no localized text, so opts do not change the result; they are
// accepted so every entity validator shares one signature.
func Validate(c Container, opts ...validation.Option) validation.ErrorMap {
	return validate(c, false)
}

// ValidateDraft checks c for saving as a draft. Empty items and availability
// are allowed; everything else is checked as in Validate. opts are ignored as
// in Validate.
func ValidateDraft(c Container, opts ...validation.Option) validation.ErrorMap {
	return validate(c, true)
}

func validate(c Container, draft bool) validation.ErrorMap {
	errs := ozzo.Errors{}

	validation.Check(errs, "referenceName", c.ReferenceName,
		validation.NotBlank("container.reference_name_required", "reference name is required"))
	validation.Check(errs, "description", c.Description,
		validation.NotBlank("container.description_required", "description is required"))
	validation.Check(errs, "layout", string(c.LayoutOptions.Layout),
		validation.OneOf("container.layout", "layout must be one of tab, normal, fluid, grid, stack", Layouts...))

	switch c.LayoutOptions.Layout {
	case LayoutGrid:
		validateGrid(errs, c.LayoutOptions.Grid)
	case LayoutStack:
		validateStack(errs, c.LayoutOptions.Stack)
	case LayoutTab:
		validateTab(errs, c.LayoutOptions.Tab, len(c.Items))
	case LayoutFluid:
		validateFluid(errs, c.LayoutOptions.Fluid)
	}

	if !draft && len(c.Items) == 0 {
		validation.Fail(errs, "items", "container.items_required", "at least one element is required")
	}
	for i, item := range c.Items {
		if item.Element.IsZero() {
			validation.Fail(errs, validation.Key("items", i, "element"), "container.element_required", "element is required")
		}
	}
	for _, i := range ordering.Duplicates(c.Items, func(item Item) domain.Ref { return item.Element.Trimmed() }) {
		if c.Items[i].Element.IsZero() {
			continue
		}
		validation.Fail(errs, validation.Key("items", i, "element"), "container.element_duplicate", "element is placed more than once")
	}
	validation.Apps(errs, "available", c.Available, !draft)

	out := validation.FromOzzo(errs)
	out.Merge(ValidateStyle(c.Style))
	return out
}

func validateGrid(errs ozzo.Errors, grid GridOptions) {
	validation.Check(errs, "gridColumns", grid.Columns,
		validation.IntBetween(1, 12, "container.grid_columns", "grid columns must be between 1 and 12"))
	validation.Check(errs, "gridGap", grid.Gap,
		validation.NonNegative("container.grid_gap", "grid gap cannot be negative"))
	for i, size := range grid.Sizes {
		spans := []struct {
			name  string
			value int
		}{{"xs", size.XS}, {"sm", size.SM}, {"md", size.MD}, {"lg", size.LG}, {"xl", size.XL}}
		for _, span := range spans {
			validation.Check(errs, validation.Key("gridSize", i, span.name), span.value,
				validation.IntBetween(0, 12, "container.grid_size", "grid size must be between 0 and 12"))
		}
	}
}

func validateStack(errs ozzo.Errors, stack StackOptions) {
	validation.Check(errs, "stackDirection", string(stack.Direction),
		validation.OneOf("container.stack_direction", "stack direction must be vertical or horizontal", StackVertical, StackHorizontal))
	validation.Check(errs, "stackSpacing", stack.Spacing,
		validation.NonNegative("container.stack_spacing", "stack spacing cannot be negative"))
	validation.Check(errs, "stackAlign", string(stack.Align),
		validation.OneOf("container.stack_align", "stack alignment must be one of start, center, end, stretch", AlignStart, AlignCenter, AlignEnd, AlignStretch))
}

func validateTab(errs ozzo.Errors, tab TabOptions, items int) {
	validation.Check(errs, "tabVariant", string(tab.Variant),
		validation.OneOf("container.tab_variant", "tab variant must be one of standard, scrollable, fullWidth", TabStandard, TabScrollable, TabFullWidth))
	validation.Check(errs, "tabDefaultIndex", tab.DefaultIndex,
		validation.NonNegative("container.tab_default_index", "default tab cannot be negative"))
	if items > 0 && tab.DefaultIndex >= items {
		validation.Fail(errs, "tabDefaultIndex", "container.tab_default_index", "default tab must point at an existing element")
	}
}

func validateFluid(errs ozzo.Errors, fluid FluidOptions) {
	validation.Check(errs, "fluidMaxWidth", fluid.MaxWidth,
		validation.NonNegative("container.fluid_max_width", "maximum width cannot be negative"))
	validation.Check(errs, "fluidPadding", fluid.Padding,
		validation.NonNegative("container.fluid_padding", "padding cannot be negative"))
}
