package domain

// ComposeSettings holds composition behaviour configuration.
type ComposeSettings struct {
	// FillMode decides how unselected slots are filled.
	FillMode FillMode

	// Alpha is the rank-weight exponent for rarity sampling.
	Alpha float64

	// RecursionLimit bounds template expansion passes.
	RecursionLimit int

	// Transitive makes exclusion propagation follow disabled options.
	Transitive bool
}

// PackSettings holds pack storage configuration.
type PackSettings struct {
	// Dir is the directory scanned by "pack load" and the watcher.
	Dir string

	// Watch reloads packs from Dir when files change.
	Watch bool
}

// SourceSettings holds credentials for remote pack sources.
type SourceSettings struct {
	// GitHubToken authenticates GitHub fetches. Optional.
	GitHubToken string

	// GDriveAPIKey authenticates Google Drive downloads.
	GDriveAPIKey string
}

// ServerSettings holds HTTP server configuration.
type ServerSettings struct {
	// Addr is the listen address.
	Addr string

	// AllowedOrigins are the CORS origins. Empty allows all.
	AllowedOrigins []string
}

// Settings holds all application settings.
type Settings struct {
	Compose ComposeSettings
	Packs   PackSettings
	Sources SourceSettings
	Server  ServerSettings
}

// Default values.
const (
	DefaultAlpha          = 1.5
	DefaultRecursionLimit = 10
	DefaultServerAddr     = ":8080"
)

// DefaultSettings returns settings with sensible defaults.
// Remote sources are left unconfigured.
func DefaultSettings() Settings {
	return Settings{
		Compose: ComposeSettings{
			FillMode:       FillRandom,
			Alpha:          DefaultAlpha,
			RecursionLimit: DefaultRecursionLimit,
		},
		Server: ServerSettings{
			Addr: DefaultServerAddr,
		},
	}
}
