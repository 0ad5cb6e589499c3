package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Re-check every record of a world",
		Long: `Runs the full consistency check over the world: every person and
every relationship is re-validated, and dangling edges are reported.`,
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		verdict, err := d.Relationships.HandleValidateWorld(ctx, globalWorld)
		if err != nil {
			return fmt.Errorf("validating world: %w", err)
		}

		if verdict.Clean() {
			fmt.Println("No issues found.")
			return nil
		}

		fmt.Printf("Found %d errors, %d warnings, %d suggestions:\n",
			len(verdict.Errors), len(verdict.Warnings), len(verdict.Suggestions))
		printVerdict(*verdict)
		return nil
	})
}
