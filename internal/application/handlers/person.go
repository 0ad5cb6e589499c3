// Package handlers contains application use case handlers.
package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ersonp/kin-core/internal/domain/entities"
	"github.com/ersonp/kin-core/internal/domain/ports"
	"github.com/ersonp/kin-core/internal/domain/services"
)

// PersonHandler handles person operations.
type PersonHandler struct {
	service      *services.PersonService
	relationalDB ports.RelationalDB
}

// NewPersonHandler creates a new PersonHandler.
func NewPersonHandler(service *services.PersonService, relationalDB ports.RelationalDB) *PersonHandler {
	return &PersonHandler{
		service:      service,
		relationalDB: relationalDB,
	}
}

// PersonInput is the raw user input for creating or updating a person.
// All fields are strings as typed on the command line.
type PersonInput struct {
	FirstName  string
	LastName   string
	Gender     string
	Legitimacy string
	Born       string
	Died       string
	House      string
	Notes      string
}

// PersonResult pairs the stored person with the validation verdict.
type PersonResult struct {
	Person  *entities.Person `json:"person"`
	Verdict entities.Verdict `json:"verdict"`
}

// HandleCreate validates input, resolves the house, and creates a person.
func (h *PersonHandler) HandleCreate(ctx context.Context, worldID string, input PersonInput) (*PersonResult, error) {
	person, err := h.buildPerson(ctx, worldID, input)
	if err != nil {
		return nil, err
	}

	verdict, err := h.service.Create(ctx, person)
	if err != nil {
		return nil, err
	}
	return &PersonResult{Person: person, Verdict: *verdict}, nil
}

// HandleUpdate applies input to an existing person, resolved by ID or name.
// Empty input fields leave the stored value untouched.
func (h *PersonHandler) HandleUpdate(ctx context.Context, worldID, ref string, input PersonInput) (*PersonResult, error) {
	person, err := h.service.Find(ctx, worldID, ref)
	if err != nil {
		return nil, err
	}

	if input.FirstName != "" {
		person.FirstName = input.FirstName
	}
	if input.LastName != "" {
		person.LastName = input.LastName
	}
	if input.Gender != "" {
		gender, ok := entities.ParseGender(input.Gender)
		if !ok {
			return nil, fmt.Errorf("invalid gender: %s (valid: male, female, other, unknown)", input.Gender)
		}
		person.Gender = gender
	}
	if input.Legitimacy != "" {
		legitimacy, ok := entities.ParseLegitimacy(input.Legitimacy)
		if !ok {
			return nil, fmt.Errorf("invalid legitimacy: %s (valid: legitimate, bastard, adopted, unknown)", input.Legitimacy)
		}
		person.Legitimacy = legitimacy
	}
	if input.Born != "" {
		if person.Born, err = entities.ParsePartialDate(input.Born); err != nil {
			return nil, fmt.Errorf("invalid birth date: %w", err)
		}
	}
	if input.Died != "" {
		if person.Died, err = entities.ParsePartialDate(input.Died); err != nil {
			return nil, fmt.Errorf("invalid death date: %w", err)
		}
	}
	if input.House != "" {
		if person.HouseID, err = h.resolveHouse(ctx, worldID, input.House); err != nil {
			return nil, err
		}
	}
	if input.Notes != "" {
		person.Notes = input.Notes
	}

	verdict, err := h.service.Update(ctx, person)
	if err != nil {
		return nil, err
	}
	return &PersonResult{Person: person, Verdict: *verdict}, nil
}

// HandleShow returns a person with their relationships.
func (h *PersonHandler) HandleShow(ctx context.Context, worldID, ref string) (*entities.Person, []entities.Relationship, error) {
	person, err := h.service.Find(ctx, worldID, ref)
	if err != nil {
		return nil, nil, err
	}
	rels, err := h.relationalDB.FindRelationshipsByPerson(ctx, worldID, person.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("listing relationships: %w", err)
	}
	return person, rels, nil
}

// HandleFind resolves a person by ID or full name.
func (h *PersonHandler) HandleFind(ctx context.Context, worldID, ref string) (*entities.Person, error) {
	return h.service.Find(ctx, worldID, ref)
}

// HandleList returns persons of a world with pagination.
func (h *PersonHandler) HandleList(ctx context.Context, worldID string, limit, offset int) ([]*entities.Person, error) {
	return h.service.List(ctx, worldID, limit, offset)
}

// HandleSearch returns persons whose name contains the query.
func (h *PersonHandler) HandleSearch(ctx context.Context, worldID, query string, limit int) ([]*entities.Person, error) {
	return h.service.Search(ctx, worldID, query, limit)
}

// HandleDelete removes a person and every edge that references them.
func (h *PersonHandler) HandleDelete(ctx context.Context, worldID, ref string) error {
	return h.service.Delete(ctx, worldID, ref)
}

// HandleCount returns the number of persons in a world.
func (h *PersonHandler) HandleCount(ctx context.Context, worldID string) (int, error) {
	return h.service.Count(ctx, worldID)
}

// HandleListHouses returns the houses of a world.
func (h *PersonHandler) HandleListHouses(ctx context.Context, worldID string) ([]entities.House, error) {
	return h.relationalDB.ListHouses(ctx, worldID)
}

// HandleHistory returns the audit trail of a person, newest first.
func (h *PersonHandler) HandleHistory(ctx context.Context, worldID, ref string) (*entities.Person, []entities.AuditEntry, error) {
	person, err := h.service.Find(ctx, worldID, ref)
	if err != nil {
		return nil, nil, err
	}
	entries, err := h.relationalDB.FindAuditLog(ctx, person.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("reading audit log: %w", err)
	}
	return person, entries, nil
}

func (h *PersonHandler) buildPerson(ctx context.Context, worldID string, input PersonInput) (*entities.Person, error) {
	if input.FirstName == "" {
		return nil, fmt.Errorf("first name is required")
	}

	gender, ok := entities.ParseGender(input.Gender)
	if !ok {
		return nil, fmt.Errorf("invalid gender: %s (valid: male, female, other, unknown)", input.Gender)
	}
	legitimacy, ok := entities.ParseLegitimacy(input.Legitimacy)
	if !ok {
		return nil, fmt.Errorf("invalid legitimacy: %s (valid: legitimate, bastard, adopted, unknown)", input.Legitimacy)
	}

	person := &entities.Person{
		ID:         uuid.New().String(),
		WorldID:    worldID,
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Gender:     gender,
		Legitimacy: legitimacy,
		Notes:      input.Notes,
		CreatedAt:  time.Now(),
	}

	var err error
	if input.Born != "" {
		if person.Born, err = entities.ParsePartialDate(input.Born); err != nil {
			return nil, fmt.Errorf("invalid birth date: %w", err)
		}
	}
	if input.Died != "" {
		if person.Died, err = entities.ParsePartialDate(input.Died); err != nil {
			return nil, fmt.Errorf("invalid death date: %w", err)
		}
	}
	if input.House != "" {
		if person.HouseID, err = h.resolveHouse(ctx, worldID, input.House); err != nil {
			return nil, err
		}
	}

	return person, nil
}

// resolveHouse finds a house by name, creating it on first reference.
func (h *PersonHandler) resolveHouse(ctx context.Context, worldID, name string) (string, error) {
	house, err := h.relationalDB.FindHouseByName(ctx, worldID, name)
	if err != nil {
		return "", fmt.Errorf("finding house: %w", err)
	}
	if house != nil {
		return house.ID, nil
	}

	house = &entities.House{
		ID:        uuid.New().String(),
		WorldID:   worldID,
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := h.relationalDB.SaveHouse(ctx, house); err != nil {
		return "", fmt.Errorf("creating house: %w", err)
	}
	return house.ID, nil
}
