package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/promptsmith/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/promptsmith/internal/core/services"
)

// testPack has one exclusion: race=elf disables class=barbarian.
const testPack = `{
  "id": "fantasy",
  "name": "Fantasy",
  "description": "Sword and sorcery",
  "tags": ["fantasy"],
  "promptTemplate": "a {race} {class}",
  "promptTemplates": [{"name": "Portrait Shot", "template": "portrait of a {race}"}],
  "slots": [
    {
      "id": "race",
      "defaultOption": "orc",
      "options": [
        {"value": "elf", "exclusions": [{"slotId": "class", "optionValues": ["barbarian"]}]},
        {"value": "orc"}
      ]
    },
    {"id": "class", "options": ["wizard", "barbarian"]},
    {"id": "name", "type": "text"}
  ]
}`

// setupTestServices installs real services over memory stores with the
// fantasy pack imported. Services are cleared when the test ends.
func setupTestServices(t *testing.T) *Services {
	t.Helper()

	packs := memory.NewPackStore()
	comps := memory.NewCompositionStore()
	settings := services.NewSettingsService(memory.NewConfigStore())
	packSvc := services.NewPackService(packs, comps)

	_, err := packSvc.ImportDocument(context.Background(), []byte(testPack))
	require.NoError(t, err)

	svcs := &Services{
		Packs:    packSvc,
		Compose:  services.NewComposeService(packs, comps, settings),
		History:  services.NewHistoryService(comps),
		Settings: settings,
	}
	SetServices(svcs)
	t.Cleanup(func() { SetServices(nil) })
	return svcs
}

// resetFlags restores every flag in the tree to its default so state
// does not leak between executions of the shared rootCmd.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace([]string{})
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs rootCmd with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return executeWithInput(t, "", args...)
}

func executeWithInput(t *testing.T, input string, args ...string) (string, string, error) {
	t.Helper()

	resetFlags(rootCmd)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(bytes.NewBufferString(input))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}

	for _, want := range []string{
		"pack", "compose", "expand", "sample", "lookup", "disabled", "chain",
		"history", "settings", "serve", "mcp", "tui", "version",
	} {
		assert.Contains(t, names, want)
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	for _, name := range []string{"verbose", "data-dir", "ephemeral"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
	assert.Equal(t, "v", rootCmd.PersistentFlags().Lookup("verbose").Shorthand)
}

func TestRootCmd_BuilderInstallsServices(t *testing.T) {
	want := setupTestServices(t)
	SetServices(nil)

	var got Options
	SetBuilder(func(_ context.Context, opts Options) (*Services, func(), error) {
		got = opts
		return want, func() {}, nil
	})
	t.Cleanup(func() {
		SetBuilder(nil)
		cleanup = nil
	})

	stdout, _, err := execute(t, "--ephemeral", "--data-dir", "/tmp/ps", "pack", "list")
	require.NoError(t, err)

	assert.Equal(t, Options{DataDir: "/tmp/ps", Ephemeral: true}, got)
	assert.Contains(t, stdout, "fantasy")
}

func TestRootCmd_BuilderError(t *testing.T) {
	SetBuilder(func(context.Context, Options) (*Services, func(), error) {
		return nil, nil, assert.AnError
	})
	t.Cleanup(func() { SetBuilder(nil) })

	_, _, err := execute(t, "pack", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "initialising")
}

func TestExecute_RunsCleanup(t *testing.T) {
	svcs := setupTestServices(t)

	called := false
	SetBuilder(func(context.Context, Options) (*Services, func(), error) {
		return svcs, func() { called = true }, nil
	})
	t.Cleanup(func() { SetBuilder(nil) })

	resetFlags(rootCmd)
	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, Execute(context.Background()))
	assert.True(t, called)
	assert.Nil(t, cleanup)
}

func TestCommands_ErrorWithoutServices(t *testing.T) {
	SetServices(nil)

	cases := [][]string{
		{"pack", "list"},
		{"compose", "fantasy"},
		{"history"},
		{"settings", "show"},
		{"serve"},
	}
	for _, args := range cases {
		_, _, err := execute(t, args...)
		require.Error(t, err, args)
		assert.Contains(t, err.Error(), "not configured", args)
	}
}
