package pagebuilder

import "github.com/goliatone/go-pagebuilder/internal/runtimeconfig"

var (
	ErrStorageProviderUnknown      = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDialectUnknown       = runtimeconfig.ErrStorageDialectUnknown
	ErrStorageDSNRequired          = runtimeconfig.ErrStorageDSNRequired
	ErrCacheTTLInvalid             = runtimeconfig.ErrCacheTTLInvalid
	ErrCacheRequiresBunStorage     = runtimeconfig.ErrCacheRequiresBunStorage
	ErrLoggingProviderUnknown      = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid         = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid        = runtimeconfig.ErrLoggingFormatInvalid
	ErrLanguagesPersistRequiresBun = runtimeconfig.ErrLanguagesPersistRequiresBun
	ErrLanguageCodeRequired        = runtimeconfig.ErrLanguageCodeRequired
	ErrLanguageDuplicate           = runtimeconfig.ErrLanguageDuplicate
	ErrDefaultLanguageUnknown      = runtimeconfig.ErrDefaultLanguageUnknown
	ErrFlagConventionUnknown       = runtimeconfig.ErrFlagConventionUnknown
	ErrNavigationGroupRequired     = runtimeconfig.ErrNavigationGroupRequired
	ErrCommandTimeoutInvalid       = runtimeconfig.ErrCommandTimeoutInvalid
)

type (
	Config           = runtimeconfig.Config
	StorageConfig    = runtimeconfig.StorageConfig
	CacheConfig      = runtimeconfig.CacheConfig
	LoggingConfig    = runtimeconfig.LoggingConfig
	LanguagesConfig  = runtimeconfig.LanguagesConfig
	LanguageConfig   = runtimeconfig.LanguageConfig
	LifecycleConfig  = runtimeconfig.LifecycleConfig
	ValidationConfig = runtimeconfig.ValidationConfig
	NavigationConfig = runtimeconfig.NavigationConfig
	CommandsConfig   = runtimeconfig.CommandsConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
