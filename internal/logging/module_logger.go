package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-pagebuilder/internal/domain"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

const (
	rootModule       = "pagebuilder"
	elementsModule   = "pagebuilder.elements"
	containersModule = "pagebuilder.containers"
	pagesModule      = "pagebuilder.pages"
	storageModule    = "pagebuilder.storage"
	seedModule       = "pagebuilder.seed"
	languagesModule  = "pagebuilder.languages"
)

const (
	fieldEntityKind = "entity_kind"
	fieldEntityID   = "entity_id"
	fieldAction     = "lifecycle_action"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// ElementsLogger returns the logger namespace reserved for element services.
func ElementsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, elementsModule)
}

// ContainersLogger returns the logger namespace reserved for container services.
func ContainersLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, containersModule)
}

// PagesLogger returns the logger namespace reserved for page services.
func PagesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, pagesModule)
}

// StorageLogger returns the logger namespace reserved for store adapters.
func StorageLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, storageModule)
}

// SeedLogger returns the logger namespace reserved for layout seeding.
func SeedLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, seedModule)
}

// LanguagesLogger returns the logger namespace reserved for the language catalog.
func LanguagesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, languagesModule)
}

// KindLogger resolves the module logger for an entity kind.
func KindLogger(provider interfaces.LoggerProvider, kind domain.Kind) interfaces.Logger {
	switch kind {
	case domain.KindElement:
		return ElementsLogger(provider)
	case domain.KindContainer:
		return ContainersLogger(provider)
	case domain.KindPage:
		return PagesLogger(provider)
	default:
		return ModuleLogger(provider, rootModule)
	}
}

// WithEntityContext enriches logger with the entity kind, id and lifecycle
// action. Empty values are ignored.
func WithEntityContext(logger interfaces.Logger, kind domain.Kind, id, action string) interfaces.Logger {
	fields := map[string]any{}
	if kind != "" {
		fields[fieldEntityKind] = kind.String()
	}
	if trimmed := strings.TrimSpace(id); trimmed != "" {
		fields[fieldEntityID] = trimmed
	}
	if trimmed := strings.TrimSpace(action); trimmed != "" {
		fields[fieldAction] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
