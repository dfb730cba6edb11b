package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/promptsmith/internal/core/domain"
	"github.com/custodia-labs/promptsmith/internal/core/ports/driving"
	"github.com/custodia-labs/promptsmith/internal/engine"
)

var (
	composeSets     []string
	composeTemplate string
	composeDefaults bool
	composeStrict   bool
	composeSave     bool
	composeJSON     bool

	expandLimit   int
	sampleExplain bool
	disabledSets  []string
	chainLength   int
)

var composeCmd = &cobra.Command{
	Use:   "compose [pack-id]",
	Short: "Compose a prompt from a pack",
	Long: `Fill a pack template and print the prompt.

Slots chosen with --set are used verbatim. Every other slot is sampled by
rarity, or takes its default option with --defaults. The seed printed on
stderr reproduces the result when passed back with --seed.`,
	Example: `  promptsmith compose fantasy
  promptsmith compose fantasy --set race=elf --set class=wizard --seed 42
  promptsmith compose fantasy --template portrait_shot --defaults`,
	Args: cobra.ExactArgs(1),
	RunE: runCompose,
}

var expandCmd = &cobra.Command{
	Use:   "expand [pack-id] [template]",
	Short: "Expand a raw template against a pack",
	Long: `Resolve every {slot} placeholder in template with an option sampled
from the pack. Inline choices such as {red|green|blue} are also supported.`,
	Args: cobra.ExactArgs(2),
	RunE: runExpand,
}

var sampleCmd = &cobra.Command{
	Use:   "sample [pack-id] [slot]",
	Short: "Sample one option from a slot",
	Args:  cobra.ExactArgs(2),
	RunE:  runSample,
}

var lookupCmd = &cobra.Command{
	Use:   "lookup [pack-id] [text]",
	Short: "Find the slot an option value belongs to",
	Args:  cobra.ExactArgs(2),
	RunE:  runLookup,
}

var disabledCmd = &cobra.Command{
	Use:   "disabled [pack-id]",
	Short: "List options disabled by a set of selections",
	Args:  cobra.ExactArgs(1),
	RunE:  runDisabled,
}

var chainCmd = &cobra.Command{
	Use:   "chain [pack-id]",
	Short: "Generate a value sequence from composition history",
	Long: `Train a Markov chain on the pack's saved compositions and walk it.
Compose with --save first to build up history.`,
	Args: cobra.ExactArgs(1),
	RunE: runChain,
}

func init() {
	composeCmd.Flags().StringArrayVar(&composeSets, "set", nil, "select an option (slot=value, repeatable)")
	composeCmd.Flags().StringVarP(&composeTemplate, "template", "t", "", "named template (default template when empty)")
	composeCmd.Flags().String("seed", "", "seed for a reproducible result")
	composeCmd.Flags().BoolVar(&composeDefaults, "defaults", false, "fill unselected slots with their default option")
	composeCmd.Flags().BoolVar(&composeStrict, "strict", false, "reject selections that exclude each other")
	composeCmd.Flags().BoolVar(&composeSave, "save", false, "record the composition in history")
	composeCmd.Flags().BoolVar(&composeJSON, "json", false, "output the composition as JSON")

	expandCmd.Flags().String("seed", "", "seed for a reproducible result")
	expandCmd.Flags().IntVar(&expandLimit, "limit", 0, "maximum expansion passes (0 uses compose.recursion_limit)")

	sampleCmd.Flags().String("seed", "", "seed for a reproducible result")
	sampleCmd.Flags().BoolVar(&sampleExplain, "explain", false, "print the sampling distribution")

	disabledCmd.Flags().StringArrayVar(&disabledSets, "set", nil, "a selection (slot=value, repeatable)")

	chainCmd.Flags().String("seed", "", "seed for a reproducible result")
	chainCmd.Flags().IntVarP(&chainLength, "length", "n", engine.DefaultChainLength, "maximum sequence length")

	rootCmd.AddCommand(composeCmd)
	rootCmd.AddCommand(expandCmd)
	rootCmd.AddCommand(sampleCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(disabledCmd)
	rootCmd.AddCommand(chainCmd)
}

func runCompose(cmd *cobra.Command, args []string) error {
	if composeService == nil {
		return errNoComposeService
	}

	sel, err := parseSelections(composeSets)
	if err != nil {
		return err
	}
	seed, err := seedFlag(cmd)
	if err != nil {
		return err
	}

	req := driving.ComposeRequest{
		PackID:     args[0],
		Template:   composeTemplate,
		Selections: sel,
		Seed:       seed,
		Strict:     composeStrict,
		Save:       composeSave,
	}
	if composeDefaults {
		req.Mode = domain.FillDefaults
	}

	c, err := composeService.Compose(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("failed to compose: %w", err)
	}

	if composeJSON {
		return printJSON(cmd, c)
	}

	cmd.Println(c.Prompt)
	cmd.PrintErrf("seed %d\n", c.Seed)
	if composeSave {
		cmd.PrintErrf("saved %s\n", c.ID)
	}
	return nil
}

func runExpand(cmd *cobra.Command, args []string) error {
	if composeService == nil {
		return errNoComposeService
	}

	seed, err := seedFlag(cmd)
	if err != nil {
		return err
	}

	res, err := composeService.Expand(cmd.Context(), driving.ExpandRequest{
		PackID:   args[0],
		Template: args[1],
		Seed:     seed,
		Limit:    expandLimit,
	})
	if err != nil {
		return fmt.Errorf("failed to expand: %w", err)
	}

	cmd.Println(res.Text)
	cmd.PrintErrf("seed %d\n", res.Seed)
	return nil
}

func runSample(cmd *cobra.Command, args []string) error {
	if composeService == nil {
		return errNoComposeService
	}

	seed, err := seedFlag(cmd)
	if err != nil {
		return err
	}

	res, err := composeService.Sample(cmd.Context(), args[0], args[1], seed)
	if err != nil {
		return fmt.Errorf("failed to sample: %w", err)
	}

	cmd.Println(res.Option.Value)
	if !sampleExplain {
		return nil
	}

	cmd.Println()
	cmd.Printf("  %-24s %4s  %s\n", "VALUE", "RANK", "P")
	for _, w := range res.Distribution {
		marker := " "
		if w.Value == res.Option.Value {
			marker = "*"
		}
		cmd.Printf("%s %-24s %4d  %.4f\n", marker, w.Value, w.Rank, w.Probability)
	}
	cmd.PrintErrf("seed %d\n", res.Seed)
	return nil
}

func runLookup(cmd *cobra.Command, args []string) error {
	if composeService == nil {
		return errNoComposeService
	}

	res, err := composeService.Lookup(cmd.Context(), args[0], args[1])
	if err != nil {
		return fmt.Errorf("failed to look up: %w", err)
	}

	if !res.Found {
		cmd.Printf("No slot matches %q.\n", args[1])
		return nil
	}
	cmd.Printf("%s: %s\n", res.SlotID, res.Value)
	return nil
}

func runDisabled(cmd *cobra.Command, args []string) error {
	if composeService == nil {
		return errNoComposeService
	}

	sel, err := parseSelections(disabledSets)
	if err != nil {
		return err
	}

	res, err := composeService.Disabled(cmd.Context(), args[0], sel)
	if err != nil {
		return fmt.Errorf("failed to compute disabled options: %w", err)
	}

	if len(res.Disabled) == 0 {
		cmd.Println("No options disabled.")
	} else {
		slots := make([]string, 0, len(res.Disabled))
		for s := range res.Disabled {
			slots = append(slots, s)
		}
		sort.Strings(slots)
		for _, s := range slots {
			cmd.Printf("  %-16s %s\n", s, strings.Join(res.Disabled[s], ", "))
		}
	}

	for _, c := range res.Conflicts {
		cmd.Printf("Conflict: %s=%s is excluded by %s=%s\n", c.SlotID, c.Value, c.BySlotID, c.ByValue)
	}
	return nil
}

func runChain(cmd *cobra.Command, args []string) error {
	if composeService == nil {
		return errNoComposeService
	}

	seed, err := seedFlag(cmd)
	if err != nil {
		return err
	}

	seq, err := composeService.Chain(cmd.Context(), args[0], chainLength, seed)
	if err != nil {
		return fmt.Errorf("failed to generate chain: %w", err)
	}

	cmd.Println(strings.Join(seq, " "))
	return nil
}
