// ABOUTME: Show command rendering top-ranked articles with markdown styling
// ABOUTME: Converts HTML article bodies to markdown before terminal display

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/newsticker/internal/aggregate"
	"github.com/harper/newsticker/internal/normalize"
	"github.com/harper/newsticker/internal/render"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Fetch once and render the top ranked articles",
	Long: `Run one aggregation cycle and render the highest-ranked articles in
full, with HTML bodies converted to markdown and styled for the terminal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		agg := aggregate.New(aggregate.Config{
			FetchTimeout: cfg.FetchTimeout(),
			MaxArticles:  cfg.MaxArticles,
			Normalize: normalize.Options{
				StripImageBoilerplate: cfg.StripBoilerplate(),
				MaxSummaryRunes:       cfg.SummaryRunes(),
			},
		})

		result := agg.Refresh(cmd.Context(), cfg.Sources)
		if !result.OK() {
			return fmt.Errorf("every source failed; run 'newsticker refresh' for details")
		}

		if len(result.Articles) == 0 {
			fmt.Println("No articles found.")
			return nil
		}
		if limit > 0 && len(result.Articles) > limit {
			result.Articles = result.Articles[:limit]
		}

		faint := color.New(color.Faint).SprintFunc()
		for _, article := range result.Articles {
			markdown := render.ArticleMarkdown(article)
			rendered, err := render.Terminal(markdown)
			if err != nil {
				fmt.Printf("%s\n", faint("(markdown rendering unavailable, showing plain text)"))
				fmt.Printf("\n%s\n", markdown)
				continue
			}
			fmt.Print(rendered)
		}

		return nil
	},
}

func init() {
	showCmd.Flags().IntP("limit", "l", 3, "number of articles to render")
	rootCmd.AddCommand(showCmd)
}
