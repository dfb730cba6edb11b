package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history [pack-id]",
	Short: "List recent compositions",
	Long: `List saved compositions, newest first.
With a pack ID only that pack's compositions are shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [composition-id]",
	Short: "Show a saved composition",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyDeleteCmd = &cobra.Command{
	Use:     "delete [composition-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a saved composition",
	Args:    cobra.ExactArgs(1),
	RunE:    runHistoryDelete,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of compositions")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output as JSON")
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errNoHistoryService
	}

	var packID string
	if len(args) > 0 {
		packID = args[0]
	}

	comps, err := historyService.List(cmd.Context(), packID, historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	if historyJSON {
		return printJSON(cmd, comps)
	}

	if len(comps) == 0 {
		cmd.Println("No saved compositions. Use 'promptsmith compose --save' to record one.")
		return nil
	}

	for i := range comps {
		c := &comps[i]
		cmd.Printf("%s  %s  %-16s seed %d\n", c.ID, c.CreatedAt.Format("2006-01-02 15:04"), c.PackID, c.Seed)
		cmd.Printf("    %s\n", c.Prompt)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errNoHistoryService
	}

	c, err := historyService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get composition: %w", err)
	}
	return printJSON(cmd, c)
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errNoHistoryService
	}

	if err := historyService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete composition: %w", err)
	}
	cmd.Printf("Deleted composition %s.\n", args[0])
	return nil
}
