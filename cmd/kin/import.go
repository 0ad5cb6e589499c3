package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	var ackWarnings bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import people and relationships from JSON or CSV",
		Long: `Imports a world from a structured file. JSON files carry both
people and relationships; CSV files carry people only. Records that
fail validation are skipped and reported, the rest are saved.

Examples:
  kin import world.json
  kin import people.csv --ack-warnings`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], ackWarnings)
		},
	}

	cmd.Flags().BoolVar(&ackWarnings, "ack-warnings", false, "Save relationships despite warnings")

	return cmd
}

func runImport(cmd *cobra.Command, filePath string, ackWarnings bool) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		file, err := os.Open(filePath)
		if err != nil {
			return fmt.Errorf("opening file: %w", err)
		}
		defer file.Close()

		fmt.Printf("Importing %s...\n", filePath)

		result, err := d.Import.HandleImport(ctx, globalWorld, filePath, file, ackWarnings)
		if err != nil {
			return fmt.Errorf("importing file: %w", err)
		}

		if len(result.Skipped) > 0 {
			fmt.Printf("\nSkipped records (%d):\n", len(result.Skipped))
			for _, s := range result.Skipped {
				fmt.Printf("  %s (line %d) %s: %s\n", s.Kind, s.LineNum, s.Ref, s.Reason)
			}
		}

		fmt.Printf("\nImported: %d people, %d relationships", result.PersonsCreated, result.RelationshipsCreated)
		if len(result.Skipped) > 0 {
			fmt.Printf(", %d skipped", len(result.Skipped))
		}
		fmt.Println()

		return nil
	})
}
