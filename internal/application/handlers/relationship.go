package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/kin-core/internal/domain/entities"
	"github.com/ersonp/kin-core/internal/domain/services"
)

// RelationshipHandler handles relationship operations.
type RelationshipHandler struct {
	relationships *services.RelationshipService
	persons       *services.PersonService
}

// NewRelationshipHandler creates a new RelationshipHandler.
func NewRelationshipHandler(relationships *services.RelationshipService, persons *services.PersonService) *RelationshipHandler {
	return &RelationshipHandler{
		relationships: relationships,
		persons:       persons,
	}
}

// RelationshipInput is the raw user input for creating a relationship.
// Person references may be IDs or full names.
type RelationshipInput struct {
	Type     string
	Person1  string
	Person2  string
	Married  string
	Divorced string
	Status   string
}

// HandleCreate resolves both persons, parses the input, and creates the
// relationship. Warnings block the save unless ackWarnings is set.
func (h *RelationshipHandler) HandleCreate(ctx context.Context, worldID string, input RelationshipInput, ackWarnings bool) (*services.CreateResult, error) {
	rel, err := h.buildRelationship(ctx, worldID, input)
	if err != nil {
		return nil, err
	}
	return h.relationships.Create(ctx, rel, ackWarnings)
}

// HandleUpdateMarriage changes the status and dates of an existing
// marriage.
func (h *RelationshipHandler) HandleUpdateMarriage(ctx context.Context, worldID, relID, status, married, divorced string, ackWarnings bool) (*services.CreateResult, error) {
	parsedStatus, ok := entities.ParseMarriageStatus(status)
	if !ok {
		return nil, fmt.Errorf("invalid marriage status: %s (valid: married, divorced, widowed, annulled)", status)
	}

	var marriedDate, divorcedDate entities.PartialDate
	var err error
	if married != "" {
		if marriedDate, err = entities.ParsePartialDate(married); err != nil {
			return nil, fmt.Errorf("invalid marriage date: %w", err)
		}
	}
	if divorced != "" {
		if divorcedDate, err = entities.ParsePartialDate(divorced); err != nil {
			return nil, fmt.Errorf("invalid divorce date: %w", err)
		}
	}

	return h.relationships.UpdateMarriage(ctx, worldID, relID, parsedStatus, marriedDate, divorcedDate, ackWarnings)
}

// HandleDelete removes a relationship by ID.
func (h *RelationshipHandler) HandleDelete(ctx context.Context, worldID, relID string) error {
	return h.relationships.Delete(ctx, worldID, relID)
}

// HandleList returns a person and every relationship involving them.
func (h *RelationshipHandler) HandleList(ctx context.Context, worldID, ref string) (*entities.Person, []entities.Relationship, error) {
	return h.relationships.ListByPerson(ctx, worldID, ref)
}

// HandleCount returns the number of relationships in a world.
func (h *RelationshipHandler) HandleCount(ctx context.Context, worldID string) (int, error) {
	return h.relationships.Count(ctx, worldID)
}

// HandleValidateWorld re-checks every record of a world.
func (h *RelationshipHandler) HandleValidateWorld(ctx context.Context, worldID string) (*entities.Verdict, error) {
	return h.relationships.ValidateWorld(ctx, worldID)
}

func (h *RelationshipHandler) buildRelationship(ctx context.Context, worldID string, input RelationshipInput) (*entities.Relationship, error) {
	relType, ok := entities.ParseRelationType(input.Type)
	if !ok {
		return nil, fmt.Errorf("invalid relationship type: %s (valid: parent, adopted-parent, spouse)", input.Type)
	}

	person1, err := h.persons.Find(ctx, worldID, input.Person1)
	if err != nil {
		return nil, err
	}
	person2, err := h.persons.Find(ctx, worldID, input.Person2)
	if err != nil {
		return nil, err
	}

	rel := &entities.Relationship{
		WorldID:   worldID,
		Person1ID: person1.ID,
		Person2ID: person2.ID,
		Type:      relType,
	}

	if relType == entities.RelationSpouse {
		status, ok := entities.ParseMarriageStatus(input.Status)
		if !ok {
			return nil, fmt.Errorf("invalid marriage status: %s (valid: married, divorced, widowed, annulled)", input.Status)
		}
		rel.Status = status
		if input.Married != "" {
			if rel.Married, err = entities.ParsePartialDate(input.Married); err != nil {
				return nil, fmt.Errorf("invalid marriage date: %w", err)
			}
		}
		if input.Divorced != "" {
			if rel.Divorced, err = entities.ParsePartialDate(input.Divorced); err != nil {
				return nil, fmt.Errorf("invalid divorce date: %w", err)
			}
		}
	} else if input.Married != "" || input.Divorced != "" || input.Status != "" {
		return nil, fmt.Errorf("marriage fields are only valid on spouse relationships")
	}

	return rel, nil
}
