package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dexter-cli/internal/core/domain"
)

var (
	listPages int
	listJSON  bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the catalog page by page",
	Long: `Loads the first page of the catalog and, with --pages, the pages after it.

Each entry shows its number, name, primary type and first ability.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var showCmd = &cobra.Command{
	Use:   "show [name-or-id]",
	Short: "Show the details of one entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	listCmd.Flags().IntVarP(&listPages, "pages", "p", 1, "number of pages to load")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output entries as JSON")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}
	ctx := commandContext(cmd)
	if _, err := requireSession(ctx); err != nil {
		return err
	}
	if listPages < 1 {
		return fmt.Errorf("%w: --pages must be at least 1", domain.ErrInvalidInput)
	}

	items, err := catalogService.LoadInitial(ctx)
	if err != nil {
		return fmt.Errorf("list failed: %w", err)
	}
	for page := 1; page < listPages && catalogService.Cursor().HasMore; page++ {
		items, err = catalogService.LoadMore(ctx)
		if err != nil {
			return fmt.Errorf("list failed: %w", err)
		}
	}

	if listJSON {
		return printJSON(cmd, toItemJSON(items))
	}

	printCards(cmd, items)
	cmd.Println()
	cmd.Printf("Showing %d entries\n", len(items))
	if catalogService.Cursor().HasMore {
		cmd.Printf("More available: dexter list --pages %d\n", listPages+1)
	}
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}
	ctx := commandContext(cmd)
	if _, err := requireSession(ctx); err != nil {
		return err
	}

	item, err := catalogService.Lookup(ctx, args[0])
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("no entry named %q", args[0])
	}
	if err != nil {
		return fmt.Errorf("show failed: %w", err)
	}

	printDetail(cmd, &item)
	return nil
}
