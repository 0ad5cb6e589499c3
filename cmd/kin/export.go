package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var output, format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a world",
		Long: `Writes the complete world (people and relationships) to stdout or
to a file. JSON output can be re-imported with 'kin import'; CSV carries
people only; markdown renders readable tables.

Examples:
  kin export > world.json
  kin export -o world.json
  kin export --format markdown -o world.md`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, output, format)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&format, "format", "json", "Output format: json, csv, markdown")

	return cmd
}

func runExport(cmd *cobra.Command, output, format string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		out := os.Stdout
		if output != "" {
			file, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating output file: %w", err)
			}
			defer file.Close()
			out = file
		}

		export, err := d.Import.HandleExport(ctx, globalWorld, format, out)
		if err != nil {
			return fmt.Errorf("exporting world: %w", err)
		}

		if output != "" {
			fmt.Printf("Exported %d people and %d relationships to %s\n",
				len(export.Persons), len(export.Relationships), output)
		}
		return nil
	})
}
