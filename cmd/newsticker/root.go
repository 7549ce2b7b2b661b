// ABOUTME: Root Cobra command and global flags
// ABOUTME: Loads engine configuration before every command

package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/harper/newsticker/internal/config"
	"github.com/harper/newsticker/internal/engine"
	"github.com/harper/newsticker/internal/normalize"
)

var (
	verbose bool
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "newsticker",
	Short: "Rotating news ticker over RSS/Atom feeds",
	Long: `newsticker aggregates articles from multiple RSS/Atom feeds,
removes near-duplicate stories, ranks them by recency, and rotates
through them one at a time.

Sources and timing live in a JSON config file (see 'newsticker source').
Run 'newsticker run' for a live rotation in the terminal, or
'newsticker mcp' to expose the rotation to AI agents.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log.SetLevel(log.WarnLevel)
		if verbose {
			log.SetLevel(log.DebugLevel)
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

// newEngine builds an engine from the loaded config.
func newEngine() *engine.Engine {
	return engine.New(engine.Config{
		Sources:         cfg.Sources,
		FetchTimeout:    cfg.FetchTimeout(),
		RotateInterval:  cfg.RotateInterval(),
		RefreshInterval: cfg.RefreshInterval(),
		MaxArticles:     cfg.MaxArticles,
		HistoryCap:      cfg.HistorySize,
		Normalize: normalize.Options{
			StripImageBoilerplate: cfg.StripBoilerplate(),
			MaxSummaryRunes:       cfg.SummaryRunes(),
		},
	})
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
