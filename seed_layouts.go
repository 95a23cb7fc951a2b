package pagebuilder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-pagebuilder/internal/identity"
	"github.com/goliatone/go-pagebuilder/internal/logging"
)

var (
	ErrSeedModuleRequired        = errors.New("pagebuilder: module is required for seeding")
	ErrSeedReferenceNameRequired = errors.New("pagebuilder: seeded entities need a reference name")
	ErrSeedDuplicateReference    = errors.New("pagebuilder: reference name seeded twice")
	ErrSeedUnknownReference      = errors.New("pagebuilder: seeded reference does not resolve")
)

// SeedLayoutsOptions describes the layout tree to converge on. Cross references
// are given by reference name and resolved to deterministic ids, so seeding the
// same options twice updates records instead of duplicating them.
type SeedLayoutsOptions struct {
	Elements   []SeedElement
	Containers []SeedContainer
	Pages      []SeedPage
}

// SeedElement is an element to upsert.
type SeedElement struct {
	Element Element
	Publish bool
}

// SeedContainer is a container to upsert. Elements lists element reference
// names; when set it replaces Container.Items.
type SeedContainer struct {
	Container Container
	Elements  []string
	Publish   bool
}

// SeedPage is a page to upsert. Containers lists container reference names;
// when set it replaces Page.Items.
type SeedPage struct {
	Page       Page
	Containers []string
	Publish    bool
}

// SeedResult lists the ids written per kind, in input order.
type SeedResult struct {
	Elements   []string
	Containers []string
	Pages      []string
}

// ElementID returns the deterministic id assigned to a seeded element.
func ElementID(referenceName string) string { return identity.ElementUUID(referenceName).String() }

// ContainerID returns the deterministic id assigned to a seeded container.
func ContainerID(referenceName string) string { return identity.ContainerUUID(referenceName).String() }

// PageID returns the deterministic id assigned to a seeded page.
func PageID(referenceName string) string { return identity.PageUUID(referenceName).String() }

// SeedLayouts upserts elements, then containers, then pages so reference checks
// see their targets. Entities flagged Publish are published after the draft save.
func SeedLayouts(ctx context.Context, module *Module, opts SeedLayoutsOptions) (SeedResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if module == nil || module.container == nil {
		return SeedResult{}, ErrSeedModuleRequired
	}
	elements, containers, err := checkSeedNames(opts)
	if err != nil {
		return SeedResult{}, err
	}
	if err := checkSeedReferences(ctx, module, opts, elements, containers); err != nil {
		return SeedResult{}, err
	}

	logger := logging.SeedLogger(module.container.LoggerProvider())
	result := SeedResult{}

	for _, seed := range opts.Elements {
		id := ElementID(seed.Element.ReferenceName)
		if _, err := module.Elements().SaveDraft(ctx, id, seed.Element); err != nil {
			return result, fmt.Errorf("seed element %q: %w", seed.Element.ReferenceName, err)
		}
		if seed.Publish {
			if _, err := module.Elements().PublishByID(ctx, id); err != nil {
				return result, fmt.Errorf("publish element %q: %w", seed.Element.ReferenceName, err)
			}
		}
		result.Elements = append(result.Elements, id)
	}

	for _, seed := range opts.Containers {
		container := seed.Container.Clone()
		if len(seed.Elements) > 0 {
			container.Items = make([]ContainerItem, 0, len(seed.Elements))
			for _, name := range seed.Elements {
				container.Items = append(container.Items, ContainerItem{Element: Ref(ElementID(name))})
			}
		}
		id := ContainerID(container.ReferenceName)
		if _, err := module.Containers().SaveDraft(ctx, id, container); err != nil {
			return result, fmt.Errorf("seed container %q: %w", container.ReferenceName, err)
		}
		if seed.Publish {
			if _, err := module.Containers().PublishByID(ctx, id); err != nil {
				return result, fmt.Errorf("publish container %q: %w", container.ReferenceName, err)
			}
		}
		result.Containers = append(result.Containers, id)
	}

	for _, seed := range opts.Pages {
		page := seed.Page.Clone()
		if len(seed.Containers) > 0 {
			page.Items = make([]Ref, 0, len(seed.Containers))
			for _, name := range seed.Containers {
				page.Items = append(page.Items, Ref(ContainerID(name)))
			}
		}
		if strings.TrimSpace(page.Slug) == "" {
			page.Slug = DerivePageSlug(page.ReferenceName)
		}
		id := PageID(page.ReferenceName)
		if _, err := module.Pages().SaveDraft(ctx, id, page); err != nil {
			return result, fmt.Errorf("seed page %q: %w", page.ReferenceName, err)
		}
		if seed.Publish {
			if _, err := module.Pages().PublishByID(ctx, id); err != nil {
				return result, fmt.Errorf("publish page %q: %w", page.ReferenceName, err)
			}
		}
		result.Pages = append(result.Pages, id)
	}

	logger.Info("seed.layouts.success",
		"elements", len(result.Elements),
		"containers", len(result.Containers),
		"pages", len(result.Pages),
	)
	return result, nil
}

func checkSeedNames(opts SeedLayoutsOptions) (elements, containers map[string]struct{}, err error) {
	check := func(kind Kind, names []string) (map[string]struct{}, error) {
		seen := make(map[string]struct{}, len(names))
		for _, name := range names {
			key := seedKey(name)
			if key == "" {
				return nil, fmt.Errorf("%w: %s", ErrSeedReferenceNameRequired, kind)
			}
			if _, ok := seen[key]; ok {
				return nil, fmt.Errorf("%w: %s %q", ErrSeedDuplicateReference, kind, name)
			}
			seen[key] = struct{}{}
		}
		return seen, nil
	}

	names := make([]string, 0, len(opts.Elements))
	for _, seed := range opts.Elements {
		names = append(names, seed.Element.ReferenceName)
	}
	if elements, err = check(KindElement, names); err != nil {
		return nil, nil, err
	}
	names = names[:0]
	for _, seed := range opts.Containers {
		names = append(names, seed.Container.ReferenceName)
	}
	if containers, err = check(KindContainer, names); err != nil {
		return nil, nil, err
	}
	names = names[:0]
	for _, seed := range opts.Pages {
		names = append(names, seed.Page.ReferenceName)
	}
	if _, err = check(KindPage, names); err != nil {
		return nil, nil, err
	}
	return elements, containers, nil
}

// checkSeedReferences resolves every cross reference against the names seeded
// in the same call, falling back to records already in the store.
func checkSeedReferences(ctx context.Context, module *Module, opts SeedLayoutsOptions, elements, containers map[string]struct{}) error {
	resolve := func(owner string, kind Kind, name string, seeded map[string]struct{}, exists func(string) error) error {
		key := seedKey(name)
		if key == "" {
			return fmt.Errorf("%w: %s reference in %q", ErrSeedReferenceNameRequired, kind, owner)
		}
		if _, ok := seeded[key]; ok {
			return nil
		}
		if err := exists(name); err != nil {
			if IsNotFound(err) {
				return fmt.Errorf("%w: %s %q referenced by %q", ErrSeedUnknownReference, kind, name, owner)
			}
			return err
		}
		return nil
	}

	elementExists := func(name string) error {
		_, err := module.Elements().Get(ctx, ElementID(name))
		return err
	}
	containerExists := func(name string) error {
		_, err := module.Containers().Get(ctx, ContainerID(name))
		return err
	}

	for _, seed := range opts.Containers {
		for _, name := range seed.Elements {
			if err := resolve(seed.Container.ReferenceName, KindElement, name, elements, elementExists); err != nil {
				return err
			}
		}
	}
	for _, seed := range opts.Pages {
		for _, name := range seed.Containers {
			if err := resolve(seed.Page.ReferenceName, KindContainer, name, containers, containerExists); err != nil {
				return err
			}
		}
	}
	return nil
}

func seedKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
