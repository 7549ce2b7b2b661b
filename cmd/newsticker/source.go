// ABOUTME: Source management commands: list, add, remove, enable, disable
// ABOUTME: Adding a site URL autodiscovers its feed before saving to config

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/newsticker/internal/discover"
	"github.com/harper/newsticker/internal/fetch"
	"github.com/harper/newsticker/internal/models"
)

var sourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Manage feed sources",
}

var sourceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(cfg.Sources) == 0 {
			fmt.Println("No sources configured. Add one with 'newsticker source add <url>'")
			return nil
		}

		green := color.New(color.FgGreen).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()

		for _, src := range cfg.Sources {
			marker := green("v")
			if !src.Enabled {
				marker = faint("-")
			}
			fmt.Printf("%s %s\n    %s\n", marker, src.DisplayName(), faint(src.URL))
		}
		return nil
	},
}

var sourceAddCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Add a feed source",
	Long: `Add a feed source by URL. If the URL is not itself an RSS/Atom
document, the site's HTML is searched for an alternate feed link and
common feed paths are probed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")

		for _, src := range cfg.Sources {
			if src.URL == args[0] {
				return fmt.Errorf("source already exists: %s", args[0])
			}
		}

		client := fetch.NewClient(cfg.FetchTimeout())
		found, err := discover.Discover(cmd.Context(), client, args[0])
		if err != nil {
			return fmt.Errorf("failed to discover feed: %w", err)
		}

		if name == "" {
			name = found.Title
		}

		cfg.Sources = append(cfg.Sources, models.Source{
			Name:    name,
			URL:     found.URL,
			Enabled: true,
		})
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s added %s (%s)\n", green("v"), name, found.URL)
		return nil
	},
}

var sourceRemoveCmd = &cobra.Command{
	Use:   "remove <url>",
	Short: "Remove a feed source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kept := cfg.Sources[:0]
		removed := false
		for _, src := range cfg.Sources {
			if src.URL == args[0] {
				removed = true
				continue
			}
			kept = append(kept, src)
		}
		if !removed {
			return fmt.Errorf("source not found: %s", args[0])
		}

		cfg.Sources = kept
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Printf("removed %s\n", args[0])
		return nil
	},
}

var sourceEnableCmd = &cobra.Command{
	Use:   "enable <url>",
	Short: "Enable a source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setSourceEnabled(args[0], true)
	},
}

var sourceDisableCmd = &cobra.Command{
	Use:   "disable <url>",
	Short: "Disable a source without removing it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setSourceEnabled(args[0], false)
	},
}

func setSourceEnabled(url string, enabled bool) error {
	for i := range cfg.Sources {
		if cfg.Sources[i].URL != url {
			continue
		}
		cfg.Sources[i].Enabled = enabled
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		state := "disabled"
		if enabled {
			state = "enabled"
		}
		fmt.Printf("%s %s\n", state, cfg.Sources[i].DisplayName())
		return nil
	}
	return fmt.Errorf("source not found: %s", url)
}

func init() {
	sourceAddCmd.Flags().String("name", "", "source display name (default: feed title)")
	sourceCmd.AddCommand(sourceListCmd, sourceAddCmd, sourceRemoveCmd, sourceEnableCmd, sourceDisableCmd)
	rootCmd.AddCommand(sourceCmd)
}
