package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/kin-core/internal/application/handlers"
	"github.com/ersonp/kin-core/internal/domain/services"
)

type relateFlags struct {
	married     string
	divorced    string
	status      string
	ackWarnings bool
}

func newRelateCmd() *cobra.Command {
	var flags relateFlags

	cmd := &cobra.Command{
		Use:   "relate <person1> <type> <person2>",
		Short: "Record a relationship between two people",
		Long: `Records a relationship edge. People may be referenced by ID or full
name; use quotes for names with spaces. For parent and adopted-parent
edges, person1 is the parent.

Valid relationship types:
  - parent, adopted-parent, spouse

The edge is validated against the world graph first. Errors always
block the save; warnings block it unless --ack-warnings is set.

Examples:
  kin relate "Edmund Crakehall" parent "Cedric Crakehall"
  kin relate Edmund spouse Margery --married 1250-06
  kin relate Edmund spouse Olenna --ack-warnings`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRelate(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.married, "married", "", "Marriage date (spouse only)")
	cmd.Flags().StringVar(&flags.divorced, "divorced", "", "Divorce date (spouse only)")
	cmd.Flags().StringVar(&flags.status, "status", "", "Marriage status (married, divorced, widowed, annulled)")
	cmd.Flags().BoolVar(&flags.ackWarnings, "ack-warnings", false, "Save despite warnings")

	cmd.AddCommand(
		newRelateDeleteCmd(),
		newRelateMarriageCmd(),
	)

	return cmd
}

func runRelate(cmd *cobra.Command, args []string, flags relateFlags) error {
	ctx := cmd.Context()
	input := handlers.RelationshipInput{
		Person1:  args[0],
		Type:     args[1],
		Person2:  args[2],
		Married:  flags.married,
		Divorced: flags.divorced,
		Status:   flags.status,
	}

	return withDeps(func(d *Deps) error {
		result, err := d.Relationships.HandleCreate(ctx, globalWorld, input, flags.ackWarnings)
		if err != nil {
			return fmt.Errorf("creating relationship: %w", err)
		}
		return printCreateResult(result, args[0], args[2])
	})
}

func printCreateResult(result *services.CreateResult, ref1, ref2 string) error {
	if result.Created {
		rel := result.Relationship
		fmt.Printf("Created relationship: %s\n", rel.ID)
		fmt.Printf("  %s -[%s]-> %s\n", ref1, rel.Type, ref2)
		if !result.Verdict.Clean() {
			printVerdict(result.Verdict)
		}
		return nil
	}

	if result.Verdict.Blocked() {
		fmt.Println("Not saved, blocking errors found:")
	} else {
		fmt.Println("Not saved, acknowledge the warnings with --ack-warnings:")
	}
	printVerdict(result.Verdict)
	return nil
}

func newRelateDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <relationship-id>",
		Short: "Delete a relationship",
		Args:  cobra.ExactArgs(1),
		RunE:  runRelateDelete,
	}
}

func runRelateDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	relID := args[0]

	return withDeps(func(d *Deps) error {
		if err := d.Relationships.HandleDelete(ctx, globalWorld, relID); err != nil {
			return fmt.Errorf("deleting relationship: %w", err)
		}
		fmt.Printf("Deleted relationship: %s\n", relID)
		return nil
	})
}

func newRelateMarriageCmd() *cobra.Command {
	var flags relateFlags

	cmd := &cobra.Command{
		Use:   "marriage <relationship-id>",
		Short: "Update the status of a marriage",
		Long: `Changes the status and dates of an existing spouse edge.

Examples:
  kin relate marriage a1b2c3 --status divorced --divorced 1260
  kin relate marriage a1b2c3 --status widowed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRelateMarriage(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.status, "status", "", "Marriage status (married, divorced, widowed, annulled)")
	cmd.Flags().StringVar(&flags.married, "married", "", "Marriage date")
	cmd.Flags().StringVar(&flags.divorced, "divorced", "", "Divorce date")
	cmd.Flags().BoolVar(&flags.ackWarnings, "ack-warnings", false, "Save despite warnings")

	return cmd
}

func runRelateMarriage(cmd *cobra.Command, relID string, flags relateFlags) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		result, err := d.Relationships.HandleUpdateMarriage(ctx, globalWorld, relID, flags.status, flags.married, flags.divorced, flags.ackWarnings)
		if err != nil {
			return fmt.Errorf("updating marriage: %w", err)
		}

		if result.Created {
			fmt.Printf("Updated marriage %s: %s\n", relID, result.Relationship.Status)
			if !result.Verdict.Clean() {
				printVerdict(result.Verdict)
			}
			return nil
		}
		return printCreateResult(result, "", "")
	})
}
