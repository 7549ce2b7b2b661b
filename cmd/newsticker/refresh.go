// ABOUTME: Refresh command running one aggregation cycle with colored per-source output
// ABOUTME: Reports partial failures without aborting and lists the ranked result

package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/newsticker/internal/aggregate"
	"github.com/harper/newsticker/internal/normalize"
	"github.com/harper/newsticker/internal/timeutil"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Fetch all enabled sources once and show the ranked result",
	Long: `Run a single aggregation cycle: fetch every enabled source, drop
near-duplicate stories, rank by recency, and print the result.

A failing source is reported but never stops the others from contributing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(cfg.Sources) == 0 {
			fmt.Println("No sources configured. Add one with 'newsticker source add <url>'")
			return nil
		}

		agg := aggregate.New(aggregate.Config{
			FetchTimeout: cfg.FetchTimeout(),
			MaxArticles:  cfg.MaxArticles,
			Normalize: normalize.Options{
				StripImageBoilerplate: cfg.StripBoilerplate(),
				MaxSummaryRunes:       cfg.SummaryRunes(),
			},
		})

		result := agg.Refresh(cmd.Context(), cfg.Sources)

		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()

		failed := make(map[string]string)
		for _, fe := range result.SourceErrors {
			failed[fe.Source] = fe.Err.Error()
		}
		perSource := make(map[string]int)
		for _, article := range result.Articles {
			perSource[article.SourceName]++
		}

		for _, src := range cfg.Sources {
			if !src.Enabled {
				fmt.Printf("%s %s (disabled)\n", faint("-"), src.DisplayName())
				continue
			}
			if msg, ok := failed[src.DisplayName()]; ok {
				fmt.Printf("%s %s: %s\n", red("x"), src.DisplayName(), msg)
				continue
			}
			fmt.Printf("%s %s: %d article(s) ranked\n", green("v"), src.DisplayName(), perSource[src.Name])
		}

		fmt.Println()
		if !result.OK() {
			fmt.Printf("%s every source failed\n", red("x"))
			return nil
		}

		fmt.Printf("%d article(s) after dedup and ranking:\n\n", len(result.Articles))
		now := time.Now()
		for i, article := range result.Articles {
			age := timeutil.Relative(article.PublishedAt, now)
			fmt.Printf("%2d. %s %s\n", i+1, article.Title, faint(fmt.Sprintf("(%s, %s)", article.SourceName, age)))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}
