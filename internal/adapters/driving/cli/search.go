package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the catalog by name",
	Long: `Searches every catalog name for the query.

Names starting with the query are returned first. Only when none do,
names containing it anywhere are returned. At most 10 entries are shown.
An empty query prints the first page of the catalog.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil || catalogService == nil {
		return errors.New("search service not configured")
	}
	ctx := commandContext(cmd)
	if _, err := requireSession(ctx); err != nil {
		return err
	}

	query := strings.Join(args, " ")
	result, err := searchService.Resolve(ctx, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	items := result.Items
	label := "Found"
	if result.Unfiltered {
		items, err = catalogService.LoadInitial(ctx)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		label = "Showing"
	}

	if searchJSON {
		return printJSON(cmd, toItemJSON(items))
	}

	if len(items) == 0 {
		cmd.Println("No results found.")
		return nil
	}
	printCards(cmd, items)
	cmd.Println()
	cmd.Printf("%s %d entries\n", label, len(items))
	return nil
}
