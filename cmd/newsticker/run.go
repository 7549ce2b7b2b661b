// ABOUTME: Live rotation view in the terminal, driven by line commands
// ABOUTME: Prints the current article on every change notification

package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/newsticker/internal/engine"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the rotating ticker in the terminal",
	Long: `Start the engine and rotate through articles in the terminal.

Commands (type a letter and press enter):
  n  next article
  b  back one article
  p  pause/resume auto-advance
  r  refresh sources now
  e  show last refresh errors
  q  quit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng := newEngine()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go eng.Run(ctx)

		lines := make(chan string)
		go func() {
			defer close(lines)
			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				select {
				case lines <- strings.TrimSpace(scanner.Text()):
				case <-ctx.Done():
					return
				}
			}
		}()

		fmt.Println("newsticker running; n=next b=back p=pause r=refresh e=errors q=quit")

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-eng.Updates():
				printCurrent(eng)
			case line, ok := <-lines:
				if !ok {
					return nil
				}
				switch line {
				case "n":
					eng.Advance()
				case "b":
					eng.Retreat()
				case "p":
					if eng.Paused() {
						eng.Resume()
						fmt.Println("resumed")
					} else {
						eng.Pause()
						fmt.Println("paused")
					}
				case "r":
					go func() {
						queued, err := eng.Refresh(ctx)
						if err != nil {
							fmt.Printf("refresh failed: %v\n", err)
							return
						}
						fmt.Printf("refresh queued %d new article(s)\n", queued)
					}()
				case "e":
					printErrors(eng)
				case "q":
					return nil
				case "":
					printCurrent(eng)
				}
			}
		}
	},
}

// printCurrent renders the article on display: bold title, cleaned summary,
// faint metadata line, cyan link.
func printCurrent(eng *engine.Engine) {
	article, ok := eng.Current()
	if !ok {
		fmt.Println("(no articles yet)")
		return
	}

	bold := color.New(color.Bold).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	fmt.Println(strings.Repeat("─", 60))
	fmt.Println(bold(article.Title))
	if article.Summary != "" {
		fmt.Printf("\n%s\n", article.Summary)
	}

	meta := article.SourceName
	if !article.PublishedAt.IsZero() {
		meta += " · " + article.PublishedAt.Format("Mon, 02 Jan 2006 15:04")
	}
	if meta != "" {
		fmt.Printf("\n%s\n", faint(meta))
	}
	if article.Link != "" {
		fmt.Println(cyan(article.Link))
	}
}

func printErrors(eng *engine.Engine) {
	errs := eng.LastRefreshErrors()
	if len(errs) == 0 {
		fmt.Println("no refresh errors")
		return
	}
	red := color.New(color.FgRed).SprintFunc()
	for _, fe := range errs {
		fmt.Printf("%s %s: %v\n", red("x"), fe.Source, fe.Err)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
}
