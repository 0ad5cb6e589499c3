package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHousesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "houses",
		Short: "List the houses of a world",
		Long:  "Houses are created implicitly the first time a person references one.",
		RunE:  runHousesList,
	}
}

func runHousesList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		houses, err := d.Persons.HandleListHouses(ctx, globalWorld)
		if err != nil {
			return fmt.Errorf("listing houses: %w", err)
		}

		if len(houses) == 0 {
			fmt.Println("No houses recorded.")
			return nil
		}

		fmt.Printf("%-38s %-20s %s\n", "ID", "NAME", "MOTTO")
		for _, h := range houses {
			fmt.Printf("%-38s %-20s %s\n", h.ID, h.Name, h.Motto)
		}
		return nil
	})
}
