package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/promptsmith/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/promptsmith/internal/core/domain"
)

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()
	require.NoError(t, err)

	defaults := service.GetDefaults()
	assert.Equal(t, domain.FillRandom, settings.Compose.FillMode)
	assert.InDelta(t, domain.DefaultAlpha, settings.Compose.Alpha, 1e-9)
	assert.Equal(t, domain.DefaultRecursionLimit, settings.Compose.RecursionLimit)
	assert.False(t, settings.Compose.Transitive)
	assert.Equal(t, defaults.Packs.Dir, settings.Packs.Dir)
	assert.Equal(t, domain.DefaultServerAddr, settings.Server.Addr)
}

func TestSettingsService_GetDefaults_PacksDir(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	d := NewSettingsService(memory.NewConfigStore()).GetDefaults()
	assert.Equal(t, "/home/tester/.promptsmith/packs", d.Packs.Dir)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set(KeyFillMode, "defaults")
	_ = store.Set(KeyAlpha, 2.5)
	_ = store.Set(KeyRecursionLimit, 4)
	_ = store.Set(KeyTransitive, true)
	_ = store.Set(KeyPacksDir, "/srv/packs")
	_ = store.Set(KeyGitHubToken, "ghp_x")
	_ = store.Set(KeyAllowedOrigins, []string{"http://a"})

	settings, err := NewSettingsService(store).Get()
	require.NoError(t, err)

	assert.Equal(t, domain.FillDefaults, settings.Compose.FillMode)
	assert.InDelta(t, 2.5, settings.Compose.Alpha, 1e-9)
	assert.Equal(t, 4, settings.Compose.RecursionLimit)
	assert.True(t, settings.Compose.Transitive)
	assert.Equal(t, "/srv/packs", settings.Packs.Dir)
	assert.Equal(t, "ghp_x", settings.Sources.GitHubToken)
	assert.Equal(t, []string{"http://a"}, settings.Server.AllowedOrigins)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set(KeyFillMode, "weighted")
	_ = store.Set(KeyAlpha, -1.0)
	_ = store.Set(KeyRecursionLimit, 0)

	settings, err := NewSettingsService(store).Get()
	require.NoError(t, err)

	assert.Equal(t, domain.FillRandom, settings.Compose.FillMode)
	assert.InDelta(t, domain.DefaultAlpha, settings.Compose.Alpha, 1e-9)
	assert.Equal(t, domain.DefaultRecursionLimit, settings.Compose.RecursionLimit)
}

func TestSettingsService_SaveRoundTrip(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	want := service.GetDefaults()
	want.Compose.FillMode = domain.FillDefaults
	want.Compose.Alpha = 2
	want.Compose.Transitive = true
	want.Packs.Watch = true
	want.Sources.GDriveAPIKey = "key"
	want.Server.Addr = ":9000"
	require.NoError(t, service.Save(&want))

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestSettingsService_SaveKeepsStoredCredentials(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set(KeyGitHubToken, "ghp_keep")
	service := NewSettingsService(store)

	settings := service.GetDefaults()
	require.NoError(t, service.Save(&settings))

	assert.Equal(t, "ghp_keep", store.GetString(KeyGitHubToken))
}

func TestSettingsService_SaveNil(t *testing.T) {
	err := NewSettingsService(memory.NewConfigStore()).Save(nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_Set(t *testing.T) {
	tests := []struct {
		key   string
		value string
		check func(t *testing.T, s *domain.Settings)
	}{
		{KeyFillMode, "DEFAULTS", func(t *testing.T, s *domain.Settings) {
			assert.Equal(t, domain.FillDefaults, s.Compose.FillMode)
		}},
		{KeyAlpha, "0.75", func(t *testing.T, s *domain.Settings) {
			assert.InDelta(t, 0.75, s.Compose.Alpha, 1e-9)
		}},
		{KeyRecursionLimit, "3", func(t *testing.T, s *domain.Settings) {
			assert.Equal(t, 3, s.Compose.RecursionLimit)
		}},
		{KeyTransitive, "true", func(t *testing.T, s *domain.Settings) {
			assert.True(t, s.Compose.Transitive)
		}},
		{KeyPacksWatch, "1", func(t *testing.T, s *domain.Settings) {
			assert.True(t, s.Packs.Watch)
		}},
		{KeyAllowedOrigins, "http://a, http://b,", func(t *testing.T, s *domain.Settings) {
			assert.Equal(t, []string{"http://a", "http://b"}, s.Server.AllowedOrigins)
		}},
		{KeyServerAddr, " :7000 ", func(t *testing.T, s *domain.Settings) {
			assert.Equal(t, ":7000", s.Server.Addr)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			service := NewSettingsService(memory.NewConfigStore())
			require.NoError(t, service.Set(tt.key, tt.value))

			settings, err := service.Get()
			require.NoError(t, err)
			tt.check(t, settings)
		})
	}
}

func TestSettingsService_SetRejectsBadValues(t *testing.T) {
	tests := []struct{ key, value string }{
		{KeyFillMode, "weighted"},
		{KeyAlpha, "steep"},
		{KeyAlpha, "0"},
		{KeyRecursionLimit, "-2"},
		{KeyTransitive, "maybe"},
		{"compose.unknown", "x"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			store := memory.NewConfigStore()
			err := NewSettingsService(store).Set(tt.key, tt.value)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			_, stored := store.Get(tt.key)
			assert.False(t, stored)
		})
	}
}

func TestSettingsService_SetFillMode(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.SetFillMode(domain.FillDefaults))
	assert.Equal(t, "defaults", store.GetString(KeyFillMode))

	assert.ErrorIs(t, service.SetFillMode("nope"), domain.ErrInvalidInput)
}

func TestSettingsService_Validate(t *testing.T) {
	t.Run("empty store is valid", func(t *testing.T) {
		assert.NoError(t, NewSettingsService(memory.NewConfigStore()).Validate())
	})

	t.Run("bad fill mode", func(t *testing.T) {
		store := memory.NewConfigStore()
		_ = store.Set(KeyFillMode, "weighted")
		assert.ErrorIs(t, NewSettingsService(store).Validate(), domain.ErrInvalidInput)
	})

	t.Run("non-positive alpha", func(t *testing.T) {
		store := memory.NewConfigStore()
		_ = store.Set(KeyAlpha, 0.0)
		assert.ErrorIs(t, NewSettingsService(store).Validate(), domain.ErrInvalidInput)
	})

	t.Run("non-positive recursion limit", func(t *testing.T) {
		store := memory.NewConfigStore()
		_ = store.Set(KeyRecursionLimit, -1)
		assert.ErrorIs(t, NewSettingsService(store).Validate(), domain.ErrInvalidInput)
	})
}

func TestSettingKeys(t *testing.T) {
	keys := SettingKeys()
	assert.Len(t, keys, 10)
	assert.IsIncreasing(t, keys)
	assert.Contains(t, keys, KeyAlpha)
}
