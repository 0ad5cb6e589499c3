package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ersonp/kin-core/internal/domain/entities"
	"github.com/ersonp/kin-core/internal/domain/genealogy"
	"github.com/ersonp/kin-core/internal/domain/ports"
)

// RelationshipService manages the edges of the genealogy graph. Every
// mutation passes through the consistency validator before it is stored.
type RelationshipService struct {
	relationalDB ports.RelationalDB
	cfg          genealogy.Config
}

// NewRelationshipService creates a new RelationshipService.
func NewRelationshipService(relationalDB ports.RelationalDB, cfg genealogy.Config) *RelationshipService {
	return &RelationshipService{relationalDB: relationalDB, cfg: cfg}
}

// CreateResult reports the outcome of a relationship mutation.
type CreateResult struct {
	Relationship *entities.Relationship
	Verdict      entities.Verdict
	// Created is false when blocking issues were found, or when warnings
	// were raised without being acknowledged.
	Created bool
}

// Create validates a prospective relationship against the current world
// graph and stores it. Errors block the save unconditionally; warnings
// block it unless ackWarnings is set.
func (s *RelationshipService) Create(ctx context.Context, rel *entities.Relationship, ackWarnings bool) (*CreateResult, error) {
	if rel.ID == "" {
		rel.ID = uuid.New().String()
	}
	if rel.CreatedAt.IsZero() {
		rel.CreatedAt = time.Now()
	}
	if rel.Type == entities.RelationSpouse && rel.Status == "" {
		rel.Status = entities.MarriageMarried
	}

	persons, rels, err := s.relationalDB.LoadSnapshot(ctx, rel.WorldID)
	if err != nil {
		return nil, fmt.Errorf("loading world snapshot: %w", err)
	}
	g := genealogy.BuildGraph(persons, rels)

	verdict := genealogy.ValidateRelationship(g, *rel, s.cfg)
	result := &CreateResult{Relationship: rel, Verdict: verdict}
	if verdict.Blocked() {
		return result, nil
	}
	if len(verdict.Warnings) > 0 && !ackWarnings {
		return result, nil
	}

	if err := s.relationalDB.SaveRelationship(ctx, rel); err != nil {
		return nil, fmt.Errorf("saving relationship: %w", err)
	}
	_ = s.relationalDB.LogAction(ctx, "relationship.create", rel.ID, map[string]any{
		"type":    string(rel.Type),
		"person1": rel.Person1ID,
		"person2": rel.Person2ID,
	})

	result.Created = true
	return result, nil
}

// UpdateMarriage changes the status and dates of an existing marriage,
// re-validating against the world graph.
func (s *RelationshipService) UpdateMarriage(ctx context.Context, worldID, relID string, status entities.MarriageStatus, married, divorced entities.PartialDate, ackWarnings bool) (*CreateResult, error) {
	persons, rels, err := s.relationalDB.LoadSnapshot(ctx, worldID)
	if err != nil {
		return nil, fmt.Errorf("loading world snapshot: %w", err)
	}

	var updated *entities.Relationship
	remaining := make([]entities.Relationship, 0, len(rels))
	for _, r := range rels {
		if r.ID == relID {
			cp := r
			updated = &cp
			continue
		}
		remaining = append(remaining, r)
	}
	if updated == nil {
		return nil, fmt.Errorf("relationship not found: %s", relID)
	}
	if updated.Type != entities.RelationSpouse {
		return nil, fmt.Errorf("relationship %s is not a marriage", relID)
	}
	updated.Status = status
	if !married.IsZero() {
		updated.Married = married
	}
	if !divorced.IsZero() {
		updated.Divorced = divorced
	}

	// Validate against the graph without the edge being rewritten, so the
	// duplicate check does not trip on the edge itself.
	g := genealogy.BuildGraph(persons, remaining)
	verdict := genealogy.ValidateRelationship(g, *updated, s.cfg)
	result := &CreateResult{Relationship: updated, Verdict: verdict}
	if verdict.Blocked() {
		return result, nil
	}
	if len(verdict.Warnings) > 0 && !ackWarnings {
		return result, nil
	}

	if err := s.relationalDB.SaveRelationship(ctx, updated); err != nil {
		return nil, fmt.Errorf("saving relationship: %w", err)
	}
	_ = s.relationalDB.LogAction(ctx, "relationship.update", updated.ID, map[string]any{
		"status": string(status),
	})

	result.Created = true
	return result, nil
}

// Delete removes a relationship.
func (s *RelationshipService) Delete(ctx context.Context, worldID, relID string) error {
	if err := s.relationalDB.DeleteRelationship(ctx, worldID, relID); err != nil {
		return fmt.Errorf("deleting relationship: %w", err)
	}
	_ = s.relationalDB.LogAction(ctx, "relationship.delete", relID, nil)
	return nil
}

// ListByPerson returns all relationships involving a person, resolved by
// ID or name.
func (s *RelationshipService) ListByPerson(ctx context.Context, worldID, ref string) (*entities.Person, []entities.Relationship, error) {
	person, err := findPerson(ctx, s.relationalDB, worldID, ref)
	if err != nil {
		return nil, nil, err
	}
	rels, err := s.relationalDB.FindRelationshipsByPerson(ctx, worldID, person.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("listing relationships: %w", err)
	}
	return person, rels, nil
}

// Count returns the number of relationships in a world.
func (s *RelationshipService) Count(ctx context.Context, worldID string) (int, error) {
	return s.relationalDB.CountRelationships(ctx, worldID)
}

// ValidateWorld re-checks every person and relationship of a world and
// returns the combined verdict. Each relationship is validated against a
// graph that excludes it, mirroring the check that ran when it was added.
func (s *RelationshipService) ValidateWorld(ctx context.Context, worldID string) (*entities.Verdict, error) {
	persons, rels, err := s.relationalDB.LoadSnapshot(ctx, worldID)
	if err != nil {
		return nil, fmt.Errorf("loading world snapshot: %w", err)
	}

	var combined entities.Verdict
	full := genealogy.BuildGraph(persons, rels)
	for _, p := range persons {
		merge(&combined, genealogy.ValidatePerson(full, p, s.cfg))
	}

	for i, rel := range rels {
		others := make([]entities.Relationship, 0, len(rels)-1)
		others = append(others, rels[:i]...)
		others = append(others, rels[i+1:]...)
		g := genealogy.BuildGraph(persons, others)
		merge(&combined, genealogy.ValidateRelationship(g, rel, s.cfg))
	}

	for _, orphan := range full.Orphaned() {
		combined.Warnings = append(combined.Warnings, entities.Issue{
			Code:      entities.IssueMissingField,
			Severity:  entities.SeverityWarning,
			Message:   fmt.Sprintf("relationship %s references an unknown person", orphan.ID),
			PersonIDs: []string{orphan.Person1ID, orphan.Person2ID},
		})
	}

	return &combined, nil
}

func merge(dst *entities.Verdict, src entities.Verdict) {
	dst.Errors = append(dst.Errors, src.Errors...)
	dst.Warnings = append(dst.Warnings, src.Warnings...)
	dst.Suggestions = append(dst.Suggestions, src.Suggestions...)
}
