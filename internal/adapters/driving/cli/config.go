package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application settings",
	Long: `View and change settings stored in the config file.

Keys:
  api.base_url              catalog API root
  api.timeout_seconds       timeout for each request
  api.requests_per_second   client-side request rate
  api.burst                 request burst size
  catalog.page_size         entries per page
  catalog.index_limit       names fetched for search
  catalog.search_limit      maximum search results
  catalog.concurrency       parallel detail fetches
  log.verbose               debug logging`,
	RunE: runConfigGet,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Show one or all settings",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configResetCmd = &cobra.Command{
	Use:   "reset [key]",
	Short: "Restore a setting to its default",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigReset,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configResetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	keys := settingsService.Keys()
	if len(args) == 1 {
		keys = args
	}

	for _, key := range keys {
		value, err := settingsService.Value(key)
		if err != nil {
			return err
		}
		if len(args) == 1 {
			cmd.Println(value)
		} else {
			cmd.Printf("%-26s %s\n", key, value)
		}
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("set %s: %w", args[0], err)
	}
	value, err := settingsService.Value(args[0])
	if err != nil {
		return err
	}
	cmd.Printf("%s = %s\n", args[0], value)
	return nil
}

func runConfigReset(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Reset(args[0]); err != nil {
		return fmt.Errorf("reset %s: %w", args[0], err)
	}
	value, err := settingsService.Value(args[0])
	if err != nil {
		return err
	}
	cmd.Printf("%s = %s (default)\n", args[0], value)
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	cmd.Println(settingsService.Path())
	return nil
}
