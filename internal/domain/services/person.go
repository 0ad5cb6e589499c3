// Package services contains the application's business logic.
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

// PersonService manages the people of a world.
type PersonService struct {
	relationalDB ports.RelationalDB
	vectorDB     ports.VectorDB
	embedder     ports.Embedder
	cfg          genealogy.Config
}

// NewPersonService creates a new PersonService.
func NewPersonService(
	relationalDB ports.RelationalDB,
	vectorDB ports.VectorDB,
	embedder ports.Embedder,
	cfg genealogy.Config,
) *PersonService {
	return &PersonService{
		relationalDB: relationalDB,
		vectorDB:     vectorDB,
		embedder:     embedder,
		cfg:          cfg,
	}
}

// Create validates and stores a new person. Blocking issues prevent the
// save; warnings and suggestions are reported but never block a person
// record. The returned verdict is always non-nil.
func (s *PersonService) Create(ctx context.Context, person *entities.Person) (*entities.Verdict, error) {
	if person.ID == "" {
		person.ID = uuid.New().String()
	}
	if person.CreatedAt.IsZero() {
		person.CreatedAt = time.Now()
	}
	if person.Gender == "" {
		person.Gender = entities.GenderUnknown
	}
	if person.Legitimacy == "" {
		person.Legitimacy = entities.LegitimacyUnknown
	}

	persons, rels, err := s.relationalDB.LoadSnapshot(ctx, person.WorldID)
	if err != nil {
		return nil, fmt.Errorf("loading world snapshot: %w", err)
	}
	g := genealogy.BuildGraph(append(persons, *person), rels)

	verdict := genealogy.ValidatePerson(g, *person, s.cfg)
	if verdict.Blocked() {
		return &verdict, nil
	}

	if err := s.relationalDB.SavePerson(ctx, person); err != nil {
		return nil, fmt.Errorf("saving person: %w", err)
	}
	_ = s.relationalDB.LogAction(ctx, "person.create", person.ID, map[string]any{
		"name": person.FullName(),
	})

	// Bio indexing is best-effort: a missing embedder must not block
	// record keeping.
	if person.Notes != "" {
		_ = s.indexBio(ctx, *person)
	}

	return &verdict, nil
}

// Update validates and stores changes to an existing person.
func (s *PersonService) Update(ctx context.Context, person *entities.Person) (*entities.Verdict, error) {
	existing, err := s.relationalDB.FindPersonByID(ctx, person.WorldID, person.ID)
	if err != nil {
		return nil, fmt.Errorf("finding person: %w", err)
	}
	if existing == nil {
		return nil, fmt.Errorf("person not found: %s", person.ID)
	}
	person.CreatedAt = existing.CreatedAt

	persons, rels, err := s.relationalDB.LoadSnapshot(ctx, person.WorldID)
	if err != nil {
		return nil, fmt.Errorf("loading world snapshot: %w", err)
	}
	for i := range persons {
		if persons[i].ID == person.ID {
			persons[i] = *person
		}
	}
	g := genealogy.BuildGraph(persons, rels)

	verdict := genealogy.ValidatePerson(g, *person, s.cfg)
	if verdict.Blocked() {
		return &verdict, nil
	}

	if err := s.relationalDB.SavePerson(ctx, person); err != nil {
		return nil, fmt.Errorf("saving person: %w", err)
	}
	_ = s.relationalDB.LogAction(ctx, "person.update", person.ID, map[string]any{
		"name": person.FullName(),
	})

	if person.Notes != "" {
		_ = s.indexBio(ctx, *person)
	}

	return &verdict, nil
}

// Find resolves a person by ID or by full name. Name lookups are
// case-insensitive and fail when the name is ambiguous.
func (s *PersonService) Find(ctx context.Context, worldID, ref string) (*entities.Person, error) {
	return findPerson(ctx, s.relationalDB, worldID, ref)
}

// List returns all persons of a world with pagination.
func (s *PersonService) List(ctx context.Context, worldID string, limit, offset int) ([]*entities.Person, error) {
	return s.relationalDB.ListPersons(ctx, worldID, limit, offset)
}

// Search returns persons whose name contains the query.
func (s *PersonService) Search(ctx context.Context, worldID, query string, limit int) ([]*entities.Person, error) {
	return s.relationalDB.SearchPersons(ctx, worldID, query, limit)
}

// Delete removes a person together with every relationship that
// references them and their indexed biography.
func (s *PersonService) Delete(ctx context.Context, worldID, ref string) error {
	person, err := s.Find(ctx, worldID, ref)
	if err != nil {
		return err
	}

	if err := s.relationalDB.DeleteRelationshipsByPerson(ctx, worldID, person.ID); err != nil {
		return fmt.Errorf("deleting relationships: %w", err)
	}
	if err := s.relationalDB.DeletePerson(ctx, worldID, person.ID); err != nil {
		return fmt.Errorf("deleting person: %w", err)
	}
	_ = s.vectorDB.Delete(ctx, person.ID)
	_ = s.relationalDB.LogAction(ctx, "person.delete", person.ID, map[string]any{
		"name": person.FullName(),
	})
	return nil
}

// Count returns the number of persons in a world.
func (s *PersonService) Count(ctx context.Context, worldID string) (int, error) {
	return s.relationalDB.CountPersons(ctx, worldID)
}

func (s *PersonService) indexBio(ctx context.Context, person entities.Person) error {
	embedding, err := s.embedder.Embed(ctx, person.Notes)
	if err != nil {
		return fmt.Errorf("generating embedding: %w", err)
	}
	return s.vectorDB.SaveBio(ctx, entities.PersonBio{
		PersonID:  person.ID,
		WorldID:   person.WorldID,
		Name:      person.FullName(),
		Bio:       person.Notes,
		Embedding: embedding,
	})
}

// findPerson resolves a reference that may be an ID or a full name.
func findPerson(ctx context.Context, db ports.RelationalDB, worldID, ref string) (*entities.Person, error) {
	person, err := db.FindPersonByID(ctx, worldID, ref)
	if err != nil {
		return nil, fmt.Errorf("finding person: %w", err)
	}
	if person != nil {
		return person, nil
	}

	matches, err := db.FindPersonsByName(ctx, worldID, ref)
	if err != nil {
		return nil, fmt.Errorf("finding person by name: %w", err)
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("person not found: %s", ref)
	case 1:
		return &matches[0], nil
	default:
		ids := make([]string, len(matches))
		for i, m := range matches {
			ids[i] = m.ID
		}
		return nil, fmt.Errorf("name %q is ambiguous, use an ID instead: %v", ref, ids)
	}
}
