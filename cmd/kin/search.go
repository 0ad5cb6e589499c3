package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search biographies semantically",
		Long: `Searches person biographies by meaning, not by keyword. Notes are
embedded when people are added; use 'kin search reindex' after bulk
imports or config changes.

Examples:
  kin search "who fought in the border wars"
  kin search "exiled lords" --limit 5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args[0], limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultSearchLimit, "Maximum number of results")

	cmd.AddCommand(newSearchReindexCmd())

	return cmd
}

func runSearch(cmd *cobra.Command, query string, limit int) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		matches, err := d.Search.HandleSearch(ctx, globalWorld, query, limit)
		if err != nil {
			return fmt.Errorf("searching: %w", err)
		}

		if len(matches) == 0 {
			fmt.Println("No matches found.")
			return nil
		}

		for _, m := range matches {
			fmt.Printf("%.3f  %s\n", m.Score, m.Name)
			fmt.Printf("       %s\n", m.Bio)
		}
		return nil
	})
}

func newSearchReindexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Re-embed every biography of a world",
		RunE:  runSearchReindex,
	}
}

func runSearchReindex(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		count, err := d.Search.HandleReindex(ctx, globalWorld)
		if err != nil {
			return fmt.Errorf("reindexing: %w", err)
		}
		fmt.Printf("Indexed %d biographies\n", count)
		return nil
	})
}
