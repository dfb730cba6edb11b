package driving

import "github.com/custodia-labs/promptsmith/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.Settings, error)

	// Save persists application settings.
	Save(settings *domain.Settings) error

	// Set updates one setting by config key, parsing value for its type.
	Set(key, value string) error

	// SetFillMode updates the default fill mode.
	SetFillMode(mode domain.FillMode) error

	// Validate checks the current settings.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings
}
