package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCadencyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cadency <person>",
		Short: "Show a person's agnatic birth order",
		Long: `Computes a person's cadency position: their 1-based rank among
their father's legitimate sons, ordered by birth year. Daughters,
bastards and adopted children are not counted.

Examples:
  kin cadency "Cedric Crakehall"`,
		Args: cobra.ExactArgs(1),
		RunE: runCadency,
	}
}

func runCadency(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		result, err := d.Lineage.HandleCadency(ctx, globalWorld, args[0])
		if err != nil {
			return fmt.Errorf("computing cadency: %w", err)
		}

		name := result.Person.FullName()
		if !result.Order.Eligible {
			fmt.Printf("%s is not eligible for agnatic cadency\n", name)
			return nil
		}
		if result.Order.Position == nil {
			fmt.Printf("%s is eligible but has no recorded birth year (%d eligible siblings)\n",
				name, result.Order.EligibleSiblings)
			return nil
		}

		fmt.Printf("%s is son %d of %d\n", name, *result.Order.Position, result.Order.EligibleSiblings)
		return nil
	})
}

func newAncestorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ancestors <person>",
		Short: "List a person's known ancestors",
		Args:  cobra.ExactArgs(1),
		RunE:  runAncestors,
	}
}

func runAncestors(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		person, ancestors, err := d.Lineage.HandleAncestors(ctx, globalWorld, args[0])
		if err != nil {
			return fmt.Errorf("listing ancestors: %w", err)
		}

		if len(ancestors) == 0 {
			fmt.Printf("No recorded ancestors for %s\n", person.FullName())
			return nil
		}

		fmt.Printf("Ancestors of %s:\n", person.FullName())
		for _, a := range ancestors {
			fmt.Printf("  %d  %s (%s)\n", a.Generations, a.Person.FullName(), a.Person.ID)
		}
		return nil
	})
}
