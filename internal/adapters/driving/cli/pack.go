package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/promptsmith/internal/core/domain"
	"github.com/custodia-labs/promptsmith/internal/schema"
)

var packJSON bool

var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Manage packs",
	Long:  `Import, inspect and remove packs of prompt slots.`,
}

var packListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored packs",
	Args:  cobra.NoArgs,
	RunE:  runPackList,
}

var packShowCmd = &cobra.Command{
	Use:   "show [pack-id]",
	Short: "Show a pack's slots and templates",
	Args:  cobra.ExactArgs(1),
	RunE:  runPackShow,
}

var packImportCmd = &cobra.Command{
	Use:   "import [ref]",
	Short: "Import a pack document",
	Long: `Fetch a pack schema document and store it.

References:
  ./packs/fantasy.json                 local file or pack directory
  file:/abs/path/schema.yaml           explicit local file
  github:owner/repo/path/schema.json   file in a GitHub repository (optional @ref)
  https://github.com/owner/repo/blob/main/schema.json
  gdrive:<file-id>                     Google Drive file shared by link
  https://drive.google.com/file/d/<file-id>/view`,
	Args: cobra.ExactArgs(1),
	RunE: runPackImport,
}

var packRemoveCmd = &cobra.Command{
	Use:     "remove [pack-id]",
	Aliases: []string{"rm"},
	Short:   "Remove a pack and its history",
	Args:    cobra.ExactArgs(1),
	RunE:    runPackRemove,
}

var packLoadCmd = &cobra.Command{
	Use:   "load [dir]",
	Short: "Load every pack directory under dir",
	Long: `Scan a directory of pack folders and store each one.

A pack folder holds a schema document (schema.json, schema.yaml or
<folder>.json) and optionally wildcard lists (<slot>.txt, one option per line).
With no argument the configured packs.dir is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPackLoad,
}

func init() {
	packListCmd.Flags().BoolVar(&packJSON, "json", false, "output as JSON")
	packShowCmd.Flags().BoolVar(&packJSON, "json", false, "output the pack schema document")
	packCmd.AddCommand(packListCmd)
	packCmd.AddCommand(packShowCmd)
	packCmd.AddCommand(packImportCmd)
	packCmd.AddCommand(packRemoveCmd)
	packCmd.AddCommand(packLoadCmd)
	rootCmd.AddCommand(packCmd)
}

func runPackList(cmd *cobra.Command, _ []string) error {
	if packService == nil {
		return errNoPackService
	}

	packs, err := packService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list packs: %w", err)
	}

	if packJSON {
		return printJSON(cmd, packs)
	}

	if len(packs) == 0 {
		cmd.Println("No packs. Import one with 'promptsmith pack import <ref>'.")
		return nil
	}

	for _, p := range packs {
		cmd.Printf("  %-20s %-30s %3d slots\n", p.ID, p.Name, p.SlotCount)
		if p.Description != "" {
			cmd.Printf("  %-20s %s\n", "", p.Description)
		}
	}
	return nil
}

func runPackShow(cmd *cobra.Command, args []string) error {
	if packService == nil {
		return errNoPackService
	}

	pack, err := packService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get pack: %w", err)
	}

	if packJSON {
		data, err := schema.Marshal(pack)
		if err != nil {
			return fmt.Errorf("failed to encode pack: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printPack(cmd, pack)
	return nil
}

func printPack(cmd *cobra.Command, p *domain.Pack) {
	cmd.Printf("%s (%s)\n", p.Name, p.ID)
	if p.Author != "" {
		cmd.Printf("  Author: %s\n", p.Author)
	}
	if p.Version != "" {
		cmd.Printf("  Version: %s\n", p.Version)
	}
	if p.Description != "" {
		cmd.Printf("  %s\n", p.Description)
	}
	if len(p.Tags) > 0 {
		cmd.Printf("  Tags: %s\n", strings.Join(p.Tags, ", "))
	}
	if p.Source != "" {
		cmd.Printf("  Source: %s\n", p.Source)
	}
	cmd.Println()

	cmd.Println("Templates:")
	cmd.Printf("  %-16s %s\n", "default", p.Template)
	for _, t := range p.Templates {
		cmd.Printf("  %-16s %s\n", domain.TemplateKey(t.Name), t.Template)
	}
	cmd.Println()

	cmd.Println("Slots:")
	for i := range p.Slots {
		s := &p.Slots[i]
		switch {
		case s.Locked:
			cmd.Printf("  %-16s locked: %s\n", s.ID, s.DefaultOption)
		case s.Type == domain.SlotTypeText:
			cmd.Printf("  %-16s text\n", s.ID)
		default:
			cmd.Printf("  %-16s %d options [%s]\n", s.ID, len(s.Options), s.Category())
		}
	}
	if len(p.Profile) > 0 {
		cmd.Printf("\nProfile keys: %d\n", len(p.Profile))
	}
}

func runPackImport(cmd *cobra.Command, args []string) error {
	if packService == nil {
		return errNoPackService
	}

	pack, err := packService.Import(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to import pack: %w", err)
	}

	cmd.Printf("Imported pack %s (%s) with %d slots.\n", pack.Name, pack.ID, len(pack.Slots))
	return nil
}

func runPackRemove(cmd *cobra.Command, args []string) error {
	if packService == nil {
		return errNoPackService
	}

	if err := packService.Remove(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to remove pack: %w", err)
	}

	cmd.Printf("Removed pack %s.\n", args[0])
	return nil
}

func runPackLoad(cmd *cobra.Command, args []string) error {
	if packService == nil {
		return errNoPackService
	}

	dir, err := packsDir(args)
	if err != nil {
		return err
	}

	packs, err := packService.LoadDirectory(cmd.Context(), dir)
	if err != nil {
		return fmt.Errorf("failed to load packs: %w", err)
	}

	cmd.Printf("Loaded %d packs from %s.\n", len(packs), dir)
	for _, p := range packs {
		cmd.Printf("  %-20s %s\n", p.ID, p.Name)
	}
	return nil
}

// packsDir returns the directory argument, else the configured packs.dir.
func packsDir(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if settingsService == nil {
		return "", fmt.Errorf("no directory given: %w", domain.ErrInvalidInput)
	}
	settings, err := settingsService.Get()
	if err != nil {
		return "", fmt.Errorf("failed to get settings: %w", err)
	}
	if settings.Packs.Dir == "" {
		return "", fmt.Errorf("no directory given and packs.dir is not set: %w", domain.ErrInvalidInput)
	}
	return settings.Packs.Dir, nil
}
