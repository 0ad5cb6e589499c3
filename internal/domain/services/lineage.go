package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/ersonp/kin-core/internal/domain/entities"
	"github.com/ersonp/kin-core/internal/domain/genealogy"
	"github.com/ersonp/kin-core/internal/domain/ports"
)

// LineageService answers kinship questions over the world graph.
type LineageService struct {
	relationalDB ports.RelationalDB
	cfg          genealogy.Config
}

// NewLineageService creates a new LineageService.
func NewLineageService(relationalDB ports.RelationalDB, cfg genealogy.Config) *LineageService {
	return &LineageService{relationalDB: relationalDB, cfg: cfg}
}

// Resolution is the answer to "how is A related to B".
type Resolution struct {
	PersonA entities.Person
	PersonB entities.Person

	// Label is the primary relationship, nil when the two people are not
	// related within the traversal bound.
	Label *entities.RelationshipLabel

	// Paths lists every distinct blood connection, for the audit view.
	Paths []genealogy.PathLabel
}

// Resolve computes the relationship between two people, referenced by ID
// or name. The label reads "A is B's <label>".
func (s *LineageService) Resolve(ctx context.Context, worldID, refA, refB string) (*Resolution, error) {
	personA, err := findPerson(ctx, s.relationalDB, worldID, refA)
	if err != nil {
		return nil, err
	}
	personB, err := findPerson(ctx, s.relationalDB, worldID, refB)
	if err != nil {
		return nil, err
	}

	persons, rels, err := s.relationalDB.LoadSnapshot(ctx, worldID)
	if err != nil {
		return nil, fmt.Errorf("loading world snapshot: %w", err)
	}
	g := genealogy.BuildGraph(persons, rels)

	return &Resolution{
		PersonA: *personA,
		PersonB: *personB,
		Label:   genealogy.Resolve(g, personA.ID, personB.ID),
		Paths:   genealogy.ResolveAll(g, personA.ID, personB.ID),
	}, nil
}

// CadencyResult pairs a person with their computed birth order.
type CadencyResult struct {
	Person entities.Person
	Order  entities.BirthOrderResult
}

// Cadency computes the agnatic birth order of a person.
func (s *LineageService) Cadency(ctx context.Context, worldID, ref string) (*CadencyResult, error) {
	person, err := findPerson(ctx, s.relationalDB, worldID, ref)
	if err != nil {
		return nil, err
	}

	persons, rels, err := s.relationalDB.LoadSnapshot(ctx, worldID)
	if err != nil {
		return nil, fmt.Errorf("loading world snapshot: %w", err)
	}
	g := genealogy.BuildGraph(persons, rels)

	return &CadencyResult{
		Person: *person,
		Order:  genealogy.BirthOrder(g, person.ID),
	}, nil
}

// Ancestor is one entry of an ancestor listing.
type Ancestor struct {
	Person      entities.Person
	Generations int
}

// Ancestors lists a person's ancestors within the traversal bound,
// nearest generation first.
func (s *LineageService) Ancestors(ctx context.Context, worldID, ref string) (*entities.Person, []Ancestor, error) {
	person, err := findPerson(ctx, s.relationalDB, worldID, ref)
	if err != nil {
		return nil, nil, err
	}

	persons, rels, err := s.relationalDB.LoadSnapshot(ctx, worldID)
	if err != nil {
		return nil, nil, fmt.Errorf("loading world snapshot: %w", err)
	}
	g := genealogy.BuildGraph(persons, rels)

	var result []Ancestor
	for id, dist := range g.AncestorsOf(person.ID) {
		anc, ok := g.Person(id)
		if !ok {
			continue
		}
		result = append(result, Ancestor{Person: anc, Generations: dist})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Generations != result[j].Generations {
			return result[i].Generations < result[j].Generations
		}
		return result[i].Person.ID < result[j].Person.ID
	})
	return person, result, nil
}
