package services

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/promptsmith/internal/core/domain"
	"github.com/custodia-labs/promptsmith/internal/core/ports/driven"
	"github.com/custodia-labs/promptsmith/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyFillMode       = "compose.fill_mode"
	KeyAlpha          = "compose.alpha"
	KeyRecursionLimit = "compose.recursion_limit"
	KeyTransitive     = "constraints.transitive"
	KeyPacksDir       = "packs.dir"
	KeyPacksWatch     = "packs.watch"
	KeyGitHubToken    = "github.token"
	KeyGDriveAPIKey   = "gdrive.api_key"
	KeyServerAddr     = "server.addr"
	KeyAllowedOrigins = "server.allowed_origins"
)

// SettingKeys returns every key accepted by Set, sorted.
func SettingKeys() []string {
	keys := []string{
		KeyFillMode, KeyAlpha, KeyRecursionLimit, KeyTransitive, KeyPacksDir,
		KeyPacksWatch, KeyGitHubToken, KeyGDriveAPIKey, KeyServerAddr, KeyAllowedOrigins,
	}
	sort.Strings(keys)
	return keys
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Missing or invalid values
// fall back to their defaults.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := s.GetDefaults()

	return &domain.Settings{
		Compose: domain.ComposeSettings{
			FillMode:       s.getFillMode(defaults.Compose.FillMode),
			Alpha:          s.getPositiveFloat(KeyAlpha, defaults.Compose.Alpha),
			RecursionLimit: s.getPositiveInt(KeyRecursionLimit, defaults.Compose.RecursionLimit),
			Transitive:     s.getBool(KeyTransitive, defaults.Compose.Transitive),
		},
		Packs: domain.PackSettings{
			Dir:   s.getString(KeyPacksDir, defaults.Packs.Dir),
			Watch: s.getBool(KeyPacksWatch, defaults.Packs.Watch),
		},
		Sources: domain.SourceSettings{
			GitHubToken:  s.configStore.GetString(KeyGitHubToken),
			GDriveAPIKey: s.configStore.GetString(KeyGDriveAPIKey),
		},
		Server: domain.ServerSettings{
			Addr:           s.getString(KeyServerAddr, defaults.Server.Addr),
			AllowedOrigins: s.configStore.GetStringSlice(KeyAllowedOrigins),
		},
	}, nil
}

// Save persists application settings. Empty credentials are not written,
// so saving never erases a stored token.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}

	type entry struct {
		key   string
		value any
	}
	values := []entry{
		{KeyFillMode, settings.Compose.FillMode.String()},
		{KeyAlpha, settings.Compose.Alpha},
		{KeyRecursionLimit, settings.Compose.RecursionLimit},
		{KeyTransitive, settings.Compose.Transitive},
		{KeyPacksDir, settings.Packs.Dir},
		{KeyPacksWatch, settings.Packs.Watch},
		{KeyServerAddr, settings.Server.Addr},
		{KeyAllowedOrigins, settings.Server.AllowedOrigins},
	}
	if settings.Sources.GitHubToken != "" {
		values = append(values, entry{KeyGitHubToken, settings.Sources.GitHubToken})
	}
	if settings.Sources.GDriveAPIKey != "" {
		values = append(values, entry{KeyGDriveAPIKey, settings.Sources.GDriveAPIKey})
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set parses value for key's type and stores it.
func (s *SettingsService) Set(key, value string) error {
	value = strings.TrimSpace(value)

	var parsed any
	switch key {
	case KeyFillMode:
		mode := domain.FillMode(strings.ToLower(value))
		if !mode.IsValid() {
			return fmt.Errorf("%w: fill mode must be one of %v", domain.ErrInvalidInput, domain.AllFillModes())
		}
		parsed = mode.String()
	case KeyAlpha:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("%w: %s must be a positive number", domain.ErrInvalidInput, key)
		}
		parsed = f
	case KeyRecursionLimit:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
		parsed = n
	case KeyTransitive, KeyPacksWatch:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		parsed = b
	case KeyAllowedOrigins:
		var origins []string
		for _, o := range strings.Split(value, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		parsed = origins
	case KeyPacksDir, KeyGitHubToken, KeyGDriveAPIKey, KeyServerAddr:
		parsed = value
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// SetFillMode updates the default fill mode.
func (s *SettingsService) SetFillMode(mode domain.FillMode) error {
	if !mode.IsValid() {
		return fmt.Errorf("%w: invalid fill mode: %s", domain.ErrInvalidInput, mode)
	}
	return s.Set(KeyFillMode, mode.String())
}

// Validate checks the stored values. Unlike Get, it reports values that
// would be silently replaced by defaults.
func (s *SettingsService) Validate() error {
	if raw := s.configStore.GetString(KeyFillMode); raw != "" && !domain.FillMode(raw).IsValid() {
		return fmt.Errorf("%w: invalid fill mode: %s", domain.ErrInvalidInput, raw)
	}
	if _, ok := s.configStore.Get(KeyAlpha); ok && s.configStore.GetFloat(KeyAlpha) <= 0 {
		return fmt.Errorf("%w: %s must be a positive number", domain.ErrInvalidInput, KeyAlpha)
	}
	if _, ok := s.configStore.Get(KeyRecursionLimit); ok && s.configStore.GetInt(KeyRecursionLimit) <= 0 {
		return fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, KeyRecursionLimit)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	if settings.Packs.Watch && settings.Packs.Dir == "" {
		return fmt.Errorf("%w: %s requires %s", domain.ErrInvalidInput, KeyPacksWatch, KeyPacksDir)
	}
	return nil
}

// GetDefaults returns default settings, with the packs directory under the
// user's home when it can be determined.
func (s *SettingsService) GetDefaults() domain.Settings {
	d := domain.DefaultSettings()
	if home, err := os.UserHomeDir(); err == nil {
		d.Packs.Dir = filepath.Join(home, ".promptsmith", "packs")
	}
	return d
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getPositiveInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getPositiveFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getFillMode(defaultVal domain.FillMode) domain.FillMode {
	mode := domain.FillMode(s.configStore.GetString(KeyFillMode))
	if !mode.IsValid() {
		return defaultVal
	}
	return mode
}
