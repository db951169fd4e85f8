package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	suggestionQueries "github.com/manumorante/whats-next/internal/suggestions/application/queries"
)

var (
	suggestLimit    int
	suggestCategory int64
	suggestAt       string
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest what to do now",
	Long: `Score the pending activities against the current moment and show the
best ones, highest score first.

Examples:
  whatsnext suggest
  whatsnext suggest --limit 3
  whatsnext suggest --category 2
  whatsnext suggest --at 2025-06-02T07:30:00Z`,
	Aliases: []string{"next", "s"},
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.GetSuggestionsHandler == nil {
			return ErrNoApp
		}

		query := suggestionQueries.GetSuggestionsQuery{}
		if cmd.Flags().Changed("limit") {
			limit := suggestLimit
			query.Limit = &limit
		}
		if cmd.Flags().Changed("category") {
			category := suggestCategory
			query.CategoryID = &category
		}
		if suggestAt != "" {
			at, err := time.Parse(time.RFC3339, suggestAt)
			if err != nil {
				return fmt.Errorf("invalid --at, use RFC3339: %w", err)
			}
			query.Now = at
		}

		suggestions, err := app.GetSuggestionsHandler.Handle(cmd.Context(), query)
		if err != nil {
			return fmt.Errorf("failed to get suggestions: %w", err)
		}

		printSuggestions(cmd.OutOrStdout(), suggestions)
		return nil
	},
}

func printSuggestions(out io.Writer, suggestions []suggestionQueries.SuggestionDTO) {
	if len(suggestions) == 0 {
		fmt.Fprintln(out, "Nothing to suggest right now.")
		return
	}

	fmt.Fprintln(out, "\n  WHAT'S NEXT")
	fmt.Fprintln(out, strings.Repeat("=", 50))
	for i, s := range suggestions {
		fmt.Fprintf(out, "  %d. %s  [%d]\n", i+1, s.Title, s.Score)
		if s.Reason != "" {
			fmt.Fprintf(out, "     %s\n", s.Reason)
		}
		fmt.Fprintf(out, "     id: %d\n", s.ID)
	}
	fmt.Fprintln(out)
}

func init() {
	suggestCmd.Flags().IntVarP(&suggestLimit, "limit", "n", 0, "maximum number of suggestions (default from config)")
	suggestCmd.Flags().Int64Var(&suggestCategory, "category", 0, "only suggest activities of this category ID")
	suggestCmd.Flags().StringVar(&suggestAt, "at", "", "suggest for this instant instead of now (RFC3339)")
	rootCmd.AddCommand(suggestCmd)
}
