package constants

// Application Information
const (
	AppName    = "noobgg API"
	AppVersion = "1.0.0"
)

// Environment Types
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Default Application Settings
const (
	DefaultPort        = "3000"
	DefaultEnvironment = EnvDevelopment
	DefaultAPIVersion  = "1"
	DefaultLocale      = "en"
)

// Cache Key Prefixes
const (
	CacheKeyPrefix       = "noobgg:"
	CacheKeyList         = CacheKeyPrefix + "list:"
	CacheKeyGames        = CacheKeyList + "games:"
	CacheKeyPlatforms    = CacheKeyList + "platforms:"
	CacheKeyDistributors = CacheKeyList + "distributors:"
	CacheKeyLanguages    = CacheKeyList + "languages:"
	CacheKeyGameRanks    = CacheKeyList + "game-ranks:"
)

// Log Levels
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
	LogLevelFatal = "fatal"
)

// Update retry budget for writes that carry no row version
const UnconditionalUpdateAttempts = 3
