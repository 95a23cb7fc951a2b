package links

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-pagebuilder/internal/pages"
)

var (
	ErrRouteManagerMissing = errors.New("links: route manager not configured")
	ErrSlugMissing         = errors.New("links: page has no slug")
	ErrInternalTypeMissing = errors.New("links: internal page has no internal type")
)

// Options configures the go-urlkit backed resolver.
type Options struct {
	Manager      *urlkit.RouteManager
	DefaultGroup string
	// LocaleGroups maps a lowercase locale to a dotted group path such as "frontend.es".
	LocaleGroups map[string]string
	PageRoute    string
	SlugParam    string
	LocaleParam  string
}

// Resolver turns pages into URLs. External pages resolve to their own URL,
// internal pages to the route named after their internal type and every
// other page to the page route with its slug.
type Resolver struct {
	manager      *urlkit.RouteManager
	defaultGroup string
	localeGroups map[string]string
	pageRoute    string
	slugParam    string
	localeParam  string

	groupCache map[string]*urlkit.Group
	mu         sync.RWMutex
}

func NewResolver(opts Options) *Resolver {
	if strings.TrimSpace(opts.PageRoute) == "" {
		opts.PageRoute = "page"
	}
	if strings.TrimSpace(opts.SlugParam) == "" {
		opts.SlugParam = "slug"
	}
	groups := make(map[string]string, len(opts.LocaleGroups))
	for locale, path := range opts.LocaleGroups {
		key := strings.ToLower(strings.TrimSpace(locale))
		if key == "" || strings.TrimSpace(path) == "" {
			continue
		}
		groups[key] = strings.TrimSpace(path)
	}
	return &Resolver{
		manager:      opts.Manager,
		defaultGroup: strings.TrimSpace(opts.DefaultGroup),
		localeGroups: groups,
		pageRoute:    strings.TrimSpace(opts.PageRoute),
		slugParam:    strings.TrimSpace(opts.SlugParam),
		localeParam:  strings.TrimSpace(opts.LocaleParam),
		groupCache:   make(map[string]*urlkit.Group),
	}
}

// Resolve builds the URL for p in locale. A blank locale uses the default group.
func (r *Resolver) Resolve(p pages.Page, locale string) (string, error) {
	if p.Type == pages.TypeExternal {
		return strings.TrimSpace(p.ExternalURL), nil
	}
	if r == nil || r.manager == nil {
		return "", ErrRouteManagerMissing
	}

	group, err := r.groupForPath(r.groupPath(locale))
	if err != nil {
		return "", err
	}

	params := map[string]any{}
	route := r.pageRoute
	if p.Type == pages.TypeInternal {
		route = strings.TrimSpace(string(p.InternalType))
		if route == "" {
			return "", ErrInternalTypeMissing
		}
	} else {
		slug := strings.TrimSpace(p.Slug)
		if slug == "" {
			return "", ErrSlugMissing
		}
		params[r.slugParam] = slug
	}
	if r.localeParam != "" && strings.TrimSpace(locale) != "" {
		params[r.localeParam] = strings.TrimSpace(locale)
	}

	builder, err := safeBuilder(group, route)
	if err != nil {
		return "", err
	}
	for key, val := range params {
		builder.WithParam(key, val)
	}
	return builder.Build()
}

func (r *Resolver) groupPath(locale string) string {
	if path, ok := r.localeGroups[strings.ToLower(strings.TrimSpace(locale))]; ok {
		return path
	}
	return r.defaultGroup
}

func (r *Resolver) groupForPath(path string) (*urlkit.Group, error) {
	if path == "" {
		return nil, fmt.Errorf("links: route group not configured")
	}
	r.mu.RLock()
	group, ok := r.groupCache[path]
	r.mu.RUnlock()
	if ok {
		return group, nil
	}

	parts := strings.Split(path, ".")
	current, err := lookup(path, func() *urlkit.Group { return r.manager.Group(parts[0]) })
	if err != nil {
		return nil, err
	}
	for _, part := range parts[1:] {
		parent := current
		current, err = lookup(path, func() *urlkit.Group { return parent.Group(part) })
		if err != nil {
			return nil, err
		}
	}

	r.mu.Lock()
	r.groupCache[path] = current
	r.mu.Unlock()
	return current, nil
}

// urlkit panics on unknown groups and routes.
func lookup(path string, fn func() *urlkit.Group) (group *urlkit.Group, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			group, err = nil, fmt.Errorf("links: route group %q not found", path)
		}
	}()
	group = fn()
	if group == nil {
		return nil, fmt.Errorf("links: route group %q not found", path)
	}
	return group, nil
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			builder, err = nil, fmt.Errorf("links: route %q not found: %v", route, rec)
		}
	}()
	return group.Builder(route), nil
}
