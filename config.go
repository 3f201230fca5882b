package pagebuilder

import "github.com/goliatone/go-pagebuilder/internal/runtimeconfig"

var (
	ErrDefaultLocaleRequired   = runtimeconfig.ErrDefaultLocaleRequired
	ErrDefaultLocaleNotListed  = runtimeconfig.ErrDefaultLocaleNotListed
	ErrStorageProviderUnknown  = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDialectUnknown   = runtimeconfig.ErrStorageDialectUnknown
	ErrFirestoreProjectMissing = runtimeconfig.ErrFirestoreProjectMissing
	ErrAutosaveDelayInvalid    = runtimeconfig.ErrAutosaveDelayInvalid
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
	ErrClientStateTTLInvalid   = runtimeconfig.ErrClientStateTTLInvalid
)

const (
	StorageMemory    = runtimeconfig.StorageMemory
	StorageBun       = runtimeconfig.StorageBun
	StorageFirestore = runtimeconfig.StorageFirestore
)

type (
	Config            = runtimeconfig.Config
	StorageConfig     = runtimeconfig.StorageConfig
	EditorConfig      = runtimeconfig.EditorConfig
	RenderConfig      = runtimeconfig.RenderConfig
	LoggingConfig     = runtimeconfig.LoggingConfig
	ClientStateConfig = runtimeconfig.ClientStateConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
