package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/kin-core/internal/domain/entities"
)

func newRelationsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "relations <person>",
		Short: "List the relationships of a person",
		Long: `Shows every recorded relationship edge involving a person.

Examples:
  kin relations "Edmund Crakehall"
  kin relations Edmund --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRelations(cmd, args[0], format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "list", "Output format: list, json")

	return cmd
}

func runRelations(cmd *cobra.Command, ref, format string) error {
	ctx := cmd.Context()

	if format != "list" && format != "json" {
		return fmt.Errorf("invalid format: %s (valid: list, json)", format)
	}

	return withDeps(func(d *Deps) error {
		person, rels, err := d.Relationships.HandleList(ctx, globalWorld, ref)
		if err != nil {
			return fmt.Errorf("listing relationships: %w", err)
		}

		if len(rels) == 0 {
			fmt.Printf("No relationships found for %s\n", person.FullName())
			return nil
		}

		if format == "json" {
			data, err := json.MarshalIndent(rels, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling JSON: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		fmt.Printf("Relationships for %s:\n", person.FullName())
		fmt.Println(strings.Repeat("-", 60))
		for _, rel := range rels {
			fmt.Printf("%s  %s\n", rel.ID, describeEdge(ctx, d, person, rel))
		}
		return nil
	})
}

// describeEdge renders an edge from the queried person's point of view.
func describeEdge(ctx context.Context, d *Deps, person *entities.Person, rel entities.Relationship) string {
	otherID := rel.Person2ID
	if otherID == person.ID {
		otherID = rel.Person1ID
	}
	otherName := otherID
	if other, err := d.Persons.HandleFind(ctx, globalWorld, otherID); err == nil {
		otherName = other.FullName()
	}

	switch {
	case rel.IsParental() && rel.Person1ID == person.ID:
		return fmt.Sprintf("%s of %s", rel.Type, otherName)
	case rel.IsParental():
		return fmt.Sprintf("child of %s (%s)", otherName, rel.Type)
	default:
		label := fmt.Sprintf("spouse of %s", otherName)
		if rel.Status != "" && rel.Status != entities.MarriageMarried {
			label += fmt.Sprintf(" (%s)", rel.Status)
		}
		return label
	}
}
