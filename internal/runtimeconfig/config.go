package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
)

var ErrStorageProviderUnknown = errors.New("pagebuilder config: storage provider is invalid")
var ErrStorageDialectUnknown = errors.New("pagebuilder config: storage dialect is invalid")

// ErrStorageDSNRequired guards bun storage without a connection string or injected database.
var ErrStorageDSNRequired = errors.New("pagebuilder config: storage dsn is required for the bun provider")

// ErrCacheTTLInvalid rejects negative cache durations.
var ErrCacheTTLInvalid = errors.New("pagebuilder config: cache ttl must be zero or positive")
var ErrCacheRequiresBunStorage = errors.New("pagebuilder config: repository cache requires the bun storage provider")
var ErrLoggingProviderUnknown = errors.New("pagebuilder config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("pagebuilder config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("pagebuilder config: logging format is invalid")
var ErrLanguagesPersistRequiresBun = errors.New("pagebuilder config: persisted languages require the bun storage provider")
var ErrLanguageCodeRequired = errors.New("pagebuilder config: language code is required")
var ErrLanguageDuplicate = errors.New("pagebuilder config: language code is duplicated")
var ErrDefaultLanguageUnknown = errors.New("pagebuilder config: default language is not configured")
var ErrFlagConventionUnknown = errors.New("pagebuilder config: lifecycle flag convention is invalid")
var ErrNavigationGroupRequired = errors.New("pagebuilder config: navigation group is required when routes are configured")
var ErrCommandTimeoutInvalid = errors.New("pagebuilder config: command timeout must be zero or positive")

// Config aggregates adapter bindings and behaviour toggles for the page builder module.
type Config struct {
	Storage    StorageConfig
	Cache      CacheConfig
	Logging    LoggingConfig
	Languages  LanguagesConfig
	Lifecycle  LifecycleConfig
	Validation ValidationConfig
	Navigation NavigationConfig
	Commands   CommandsConfig
}

// StorageConfig selects the persistence adapter for layout documents.
type StorageConfig struct {
	Provider    string
	Dialect     string
	DSN         string
	AutoMigrate bool
}

// CacheConfig captures repository cache behaviour for the bun store.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// LoggingConfig selects the go-logger setup. Provider console always writes
// console formatted entries; gologger honours Format.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// LanguagesConfig replaces the bundled language list when Entries is set.
// Persist stores the table in layout_languages so it can be edited at runtime.
type LanguagesConfig struct {
	Default string
	Entries []LanguageConfig
	Persist bool
}

// LanguageConfig mirrors i18n.Language.
type LanguageConfig struct {
	Code string
	Name string
}

// LifecycleConfig picks the draft/publish flag convention used when serializing.
type LifecycleConfig struct {
	FlagConvention string
}

// ValidationConfig toggles checks that need the store.
type ValidationConfig struct {
	CheckReferences bool
}

// NavigationConfig captures routing configuration for page URL resolution.
type NavigationConfig struct {
	RouteConfig  *urlkit.Config
	Group        string
	LocaleGroups map[string]string
	PageRoute    string
	SlugParam    string
}

// CommandsConfig captures command-layer behaviour.
type CommandsConfig struct {
	Timeout time.Duration
}

// DefaultConfig returns defaults suitable for an in-process, memory backed module.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Provider: "memory",
			Dialect:  "sqlite",
		},
		Cache: CacheConfig{
			DefaultTTL: time.Minute,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Languages: LanguagesConfig{
			Default: "en",
		},
		Lifecycle: LifecycleConfig{
			FlagConvention: "legacy",
		},
		Navigation: NavigationConfig{
			Group:     "frontend",
			PageRoute: "page",
			SlugParam: "slug",
		},
		Commands: CommandsConfig{
			Timeout: 30 * time.Second,
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	provider := normalize(cfg.Storage.Provider)
	switch provider {
	case "", "memory":
	case "bun":
		if dialect := normalize(cfg.Storage.Dialect); dialect != "" && !isSupportedDialect(dialect) {
			return fmt.Errorf("%w: %s", ErrStorageDialectUnknown, dialect)
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, provider)
	}

	if cfg.Cache.DefaultTTL < 0 {
		return ErrCacheTTLInvalid
	}
	if cfg.Cache.Enabled && provider != "bun" {
		return ErrCacheRequiresBunStorage
	}
	if cfg.Languages.Persist && provider != "bun" {
		return ErrLanguagesPersistRequiresBun
	}

	if logProvider := normalize(cfg.Logging.Provider); logProvider != "" {
		if !isSupportedProvider(logProvider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, logProvider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if logProvider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}

	if err := cfg.Languages.validate(); err != nil {
		return err
	}

	switch normalize(cfg.Lifecycle.FlagConvention) {
	case "", "legacy", "uniform":
	default:
		return fmt.Errorf("%w: %s", ErrFlagConventionUnknown, cfg.Lifecycle.FlagConvention)
	}

	if cfg.Navigation.RouteConfig != nil && strings.TrimSpace(cfg.Navigation.Group) == "" {
		return ErrNavigationGroupRequired
	}
	if cfg.Commands.Timeout < 0 {
		return ErrCommandTimeoutInvalid
	}
	return nil
}

func (l LanguagesConfig) validate() error {
	if len(l.Entries) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(l.Entries))
	for i, entry := range l.Entries {
		code := normalize(entry.Code)
		if code == "" {
			return fmt.Errorf("%w: entry %d", ErrLanguageCodeRequired, i)
		}
		if _, ok := seen[code]; ok {
			return fmt.Errorf("%w: %s", ErrLanguageDuplicate, code)
		}
		seen[code] = struct{}{}
	}
	if def := normalize(l.Default); def != "" {
		if _, ok := seen[def]; !ok {
			return fmt.Errorf("%w: %s", ErrDefaultLanguageUnknown, def)
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedDialect(dialect string) bool {
	switch dialect {
	case "sqlite", "sqlite3", "postgres", "pg":
		return true
	default:
		return false
	}
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
