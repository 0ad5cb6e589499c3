package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResolveCmd() *cobra.Command {
	var showPaths bool

	cmd := &cobra.Command{
		Use:   "resolve <person1> <person2>",
		Short: "Name the relationship between two people",
		Long: `Computes how person1 is related to person2, reading as
"person1 is person2's <relationship>". The search is bounded at ten
generations; beyond that, people are reported as unrelated.

Examples:
  kin resolve "Edmund Crakehall" "Rosalind Crakehall"
  kin resolve Edmund Rosalind --all`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, args, showPaths)
		},
	}

	cmd.Flags().BoolVar(&showPaths, "all", false, "Show every blood connection found")

	return cmd
}

func runResolve(cmd *cobra.Command, args []string, showPaths bool) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		result, err := d.Lineage.HandleResolve(ctx, globalWorld, args[0], args[1])
		if err != nil {
			return fmt.Errorf("resolving relationship: %w", err)
		}

		nameA := result.PersonA.FullName()
		nameB := result.PersonB.FullName()

		if result.Label == nil {
			fmt.Printf("%s and %s have no known relationship\n", nameA, nameB)
			return nil
		}

		fmt.Printf("%s is %s's %s\n", nameA, nameB, result.Label.Display)

		if showPaths && len(result.Paths) > 0 {
			fmt.Printf("\nConnections (%d):\n", len(result.Paths))
			for _, p := range result.Paths {
				ancestor := p.Path.CommonAncestorID
				if anc, err := d.Persons.HandleFind(ctx, globalWorld, ancestor); err == nil {
					ancestor = anc.FullName()
				}
				fmt.Printf("  %s via %s (%d/%d generations up)\n",
					p.Label.Display, ancestor, p.Path.DistA, p.Path.DistB)
			}
		}
		return nil
	})
}
