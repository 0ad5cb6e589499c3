package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/kin-core/internal/application/handlers"
	"github.com/ersonp/kin-core/internal/domain/entities"
)

type personFlags struct {
	lastName   string
	gender     string
	legitimacy string
	born       string
	died       string
	house      string
	notes      string
}

func (f *personFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.lastName, "last", "", "Last name")
	cmd.Flags().StringVar(&f.gender, "gender", "", "Gender (male, female, other, unknown)")
	cmd.Flags().StringVar(&f.legitimacy, "legitimacy", "", "Legitimacy (legitimate, bastard, adopted, unknown)")
	cmd.Flags().StringVar(&f.born, "born", "", "Birth date (YYYY, YYYY-MM, or YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.died, "died", "", "Death date (YYYY, YYYY-MM, or YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.house, "house", "", "House name (created on first use)")
	cmd.Flags().StringVar(&f.notes, "notes", "", "Free-form biography notes")
}

func (f *personFlags) input(firstName string) handlers.PersonInput {
	return handlers.PersonInput{
		FirstName:  firstName,
		LastName:   f.lastName,
		Gender:     f.gender,
		Legitimacy: f.legitimacy,
		Born:       f.born,
		Died:       f.died,
		House:      f.house,
		Notes:      f.notes,
	}
}

func newPeopleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "people",
		Short: "Manage the people of a world",
	}

	cmd.AddCommand(
		newPeopleAddCmd(),
		newPeopleShowCmd(),
		newPeopleListCmd(),
		newPeopleUpdateCmd(),
		newPeopleDeleteCmd(),
		newPeopleHistoryCmd(),
	)

	return cmd
}

func newPeopleAddCmd() *cobra.Command {
	var flags personFlags

	cmd := &cobra.Command{
		Use:   "add <first-name>",
		Short: "Add a person",
		Long: `Adds a person to the world. The record is validated against the
existing genealogy; blocking errors prevent the save.

Examples:
  kin people add Edmund --last Crakehall --gender male --born 1230
  kin people add Rosalind --born 1280-03 --house Crakehall`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPeopleAdd(cmd, args[0], flags)
		},
	}

	flags.register(cmd)
	return cmd
}

func runPeopleAdd(cmd *cobra.Command, firstName string, flags personFlags) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		result, err := d.Persons.HandleCreate(ctx, globalWorld, flags.input(firstName))
		if err != nil {
			return fmt.Errorf("adding person: %w", err)
		}

		if result.Verdict.Blocked() {
			fmt.Println("Not saved, blocking errors found:")
			printVerdict(result.Verdict)
			return nil
		}

		fmt.Printf("Added %s (%s)\n", result.Person.FullName(), result.Person.ID)
		if !result.Verdict.Clean() {
			printVerdict(result.Verdict)
		}
		return nil
	})
}

func newPeopleShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <person>",
		Short: "Show a person and their relationships",
		Args:  cobra.ExactArgs(1),
		RunE:  runPeopleShow,
	}
}

func runPeopleShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		person, rels, err := d.Persons.HandleShow(ctx, globalWorld, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s (%s)\n", person.FullName(), person.ID)
		if person.Gender != entities.GenderUnknown {
			fmt.Printf("  Gender:     %s\n", person.Gender)
		}
		if person.Legitimacy != entities.LegitimacyUnknown {
			fmt.Printf("  Legitimacy: %s\n", person.Legitimacy)
		}
		if !person.Born.IsZero() {
			fmt.Printf("  Born:       %s\n", person.Born)
		}
		if !person.Died.IsZero() {
			fmt.Printf("  Died:       %s\n", person.Died)
		}
		if person.Notes != "" {
			fmt.Printf("  Notes:      %s\n", person.Notes)
		}

		if len(rels) > 0 {
			fmt.Println("  Relationships:")
			for _, rel := range rels {
				fmt.Printf("    %s %s -> %s (%s)\n", rel.Type, rel.Person1ID, rel.Person2ID, rel.ID)
			}
		}
		return nil
	})
}

func newPeopleListCmd() *cobra.Command {
	var limit, offset int
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the people of a world",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPeopleList(cmd, search, limit, offset)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultListLimit, "Maximum number of results")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of results to skip")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Filter by name substring")

	return cmd
}

func runPeopleList(cmd *cobra.Command, search string, limit, offset int) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		var (
			persons []*entities.Person
			err     error
		)
		if search != "" {
			persons, err = d.Persons.HandleSearch(ctx, globalWorld, search, limit)
		} else {
			persons, err = d.Persons.HandleList(ctx, globalWorld, limit, offset)
		}
		if err != nil {
			return fmt.Errorf("listing people: %w", err)
		}

		if len(persons) == 0 {
			fmt.Println("No people found.")
			return nil
		}

		fmt.Printf("%-38s %-25s %-10s %s\n", "ID", "NAME", "BORN", "DIED")
		fmt.Printf("%-38s %-25s %-10s %s\n", strings.Repeat("-", 36), "----", "----", "----")
		for _, p := range persons {
			fmt.Printf("%-38s %-25s %-10s %s\n", p.ID, p.FullName(), p.Born, p.Died)
		}
		return nil
	})
}

func newPeopleUpdateCmd() *cobra.Command {
	var flags personFlags
	var firstName string

	cmd := &cobra.Command{
		Use:   "update <person>",
		Short: "Update a person",
		Long:  "Updates a person, referenced by ID or full name. Only the supplied flags change.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPeopleUpdate(cmd, args[0], firstName, flags)
		},
	}

	cmd.Flags().StringVar(&firstName, "first", "", "First name")
	flags.register(cmd)
	return cmd
}

func runPeopleUpdate(cmd *cobra.Command, ref, firstName string, flags personFlags) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		result, err := d.Persons.HandleUpdate(ctx, globalWorld, ref, flags.input(firstName))
		if err != nil {
			return fmt.Errorf("updating person: %w", err)
		}

		if result.Verdict.Blocked() {
			fmt.Println("Not saved, blocking errors found:")
			printVerdict(result.Verdict)
			return nil
		}

		fmt.Printf("Updated %s (%s)\n", result.Person.FullName(), result.Person.ID)
		if !result.Verdict.Clean() {
			printVerdict(result.Verdict)
		}
		return nil
	})
}

func newPeopleHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <person>",
		Short: "Show the audit trail of a person",
		Args:  cobra.ExactArgs(1),
		RunE:  runPeopleHistory,
	}
}

func runPeopleHistory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		person, entries, err := d.Persons.HandleHistory(ctx, globalWorld, args[0])
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			fmt.Printf("No history recorded for %s\n", person.FullName())
			return nil
		}

		fmt.Printf("History for %s:\n", person.FullName())
		for _, e := range entries {
			fmt.Printf("  %s  %s\n", e.CreatedAt.Format("2006-01-02 15:04"), e.Action)
		}
		return nil
	})
}

func newPeopleDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <person>",
		Short: "Delete a person and their relationships",
		Args:  cobra.ExactArgs(1),
		RunE:  runPeopleDelete,
	}
}

func runPeopleDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		if err := d.Persons.HandleDelete(ctx, globalWorld, args[0]); err != nil {
			return fmt.Errorf("deleting person: %w", err)
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	})
}
