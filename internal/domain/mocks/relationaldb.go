package mocks

import (
	"context"
	"sort"
	"strings"

	"github.com/ersonp/kin-core/internal/domain/entities"
)

// RelationalDB is a mock implementation of ports.RelationalDB backed by
// in-memory maps.
type RelationalDB struct {
	Persons       map[string]*entities.Person
	Houses        map[string]*entities.House
	Relationships map[string]*entities.Relationship
	Err           error

	// Call tracking
	SavePersonCallCount       int
	SaveRelationshipCallCount int
	LogActionCallCount        int
	LogActionLastAction       string
	AuditEntries              []entities.AuditEntry
}

// NewRelationalDB creates a new mock RelationalDB.
func NewRelationalDB() *RelationalDB {
	return &RelationalDB{
		Persons:       make(map[string]*entities.Person),
		Houses:        make(map[string]*entities.House),
		Relationships: make(map[string]*entities.Relationship),
	}
}

// EnsureSchema creates the database schema if it doesn't exist.
func (m *RelationalDB) EnsureSchema(_ context.Context) error {
	return m.Err
}

// Close closes the database connection.
func (m *RelationalDB) Close() error {
	return nil
}

// Person methods.

// SavePerson saves or updates a person.
func (m *RelationalDB) SavePerson(_ context.Context, person *entities.Person) error {
	m.SavePersonCallCount++
	if m.Err != nil {
		return m.Err
	}
	p := *person
	m.Persons[person.ID] = &p
	return nil
}

// FindPersonByID finds a person by their ID.
func (m *RelationalDB) FindPersonByID(_ context.Context, worldID, personID string) (*entities.Person, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.Persons[personID]
	if !ok || p.WorldID != worldID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// FindPersonsByName finds persons by full name (case-insensitive).
func (m *RelationalDB) FindPersonsByName(_ context.Context, worldID, name string) ([]entities.Person, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var result []entities.Person
	for _, p := range m.Persons {
		if p.WorldID == worldID && strings.EqualFold(p.FullName(), name) {
			result = append(result, *p)
		}
	}
	sortPersons(result)
	return result, nil
}

// ListPersons lists all persons for a world with pagination.
func (m *RelationalDB) ListPersons(_ context.Context, worldID string, limit, offset int) ([]*entities.Person, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var all []entities.Person
	for _, p := range m.Persons {
		if p.WorldID == worldID {
			all = append(all, *p)
		}
	}
	sortPersons(all)
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	result := make([]*entities.Person, len(all))
	for i := range all {
		result[i] = &all[i]
	}
	return result, nil
}

// SearchPersons searches persons by name pattern.
func (m *RelationalDB) SearchPersons(_ context.Context, worldID, query string, limit int) ([]*entities.Person, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var matched []entities.Person
	for _, p := range m.Persons {
		if p.WorldID == worldID && strings.Contains(strings.ToLower(p.FullName()), strings.ToLower(query)) {
			matched = append(matched, *p)
		}
	}
	sortPersons(matched)
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	result := make([]*entities.Person, len(matched))
	for i := range matched {
		result[i] = &matched[i]
	}
	return result, nil
}

// DeletePerson deletes a person by ID.
func (m *RelationalDB) DeletePerson(_ context.Context, worldID, personID string) error {
	if m.Err != nil {
		return m.Err
	}
	if p, ok := m.Persons[personID]; ok && p.WorldID == worldID {
		delete(m.Persons, personID)
	}
	return nil
}

// CountPersons returns the total number of persons for a world.
func (m *RelationalDB) CountPersons(_ context.Context, worldID string) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	count := 0
	for _, p := range m.Persons {
		if p.WorldID == worldID {
			count++
		}
	}
	return count, nil
}

// House methods.

// SaveHouse saves or updates a house.
func (m *RelationalDB) SaveHouse(_ context.Context, house *entities.House) error {
	if m.Err != nil {
		return m.Err
	}
	h := *house
	m.Houses[house.ID] = &h
	return nil
}

// FindHouseByName finds a house by its name (case-insensitive).
func (m *RelationalDB) FindHouseByName(_ context.Context, worldID, name string) (*entities.House, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, h := range m.Houses {
		if h.WorldID == worldID && strings.EqualFold(h.Name, name) {
			cp := *h
			return &cp, nil
		}
	}
	return nil, nil
}

// ListHouses lists all houses for a world.
func (m *RelationalDB) ListHouses(_ context.Context, worldID string) ([]entities.House, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var result []entities.House
	for _, h := range m.Houses {
		if h.WorldID == worldID {
			result = append(result, *h)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// DeleteHouse deletes a house by ID.
func (m *RelationalDB) DeleteHouse(_ context.Context, worldID, houseID string) error {
	if m.Err != nil {
		return m.Err
	}
	if h, ok := m.Houses[houseID]; ok && h.WorldID == worldID {
		delete(m.Houses, houseID)
	}
	return nil
}

// Relationship methods.

// SaveRelationship saves or updates a relationship.
func (m *RelationalDB) SaveRelationship(_ context.Context, rel *entities.Relationship) error {
	m.SaveRelationshipCallCount++
	if m.Err != nil {
		return m.Err
	}
	r := *rel
	m.Relationships[rel.ID] = &r
	return nil
}

// FindRelationshipsByPerson finds all relationships involving a person.
func (m *RelationalDB) FindRelationshipsByPerson(_ context.Context, worldID, personID string) ([]entities.Relationship, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var result []entities.Relationship
	for _, r := range m.Relationships {
		if r.WorldID == worldID && (r.Person1ID == personID || r.Person2ID == personID) {
			result = append(result, *r)
		}
	}
	sortRelationships(result)
	return result, nil
}

// DeleteRelationship deletes a relationship by ID.
func (m *RelationalDB) DeleteRelationship(_ context.Context, worldID, relID string) error {
	if m.Err != nil {
		return m.Err
	}
	if r, ok := m.Relationships[relID]; ok && r.WorldID == worldID {
		delete(m.Relationships, relID)
	}
	return nil
}

// DeleteRelationshipsByPerson deletes all relationships involving a person.
func (m *RelationalDB) DeleteRelationshipsByPerson(_ context.Context, worldID, personID string) error {
	if m.Err != nil {
		return m.Err
	}
	for id, r := range m.Relationships {
		if r.WorldID == worldID && (r.Person1ID == personID || r.Person2ID == personID) {
			delete(m.Relationships, id)
		}
	}
	return nil
}

// CountRelationships returns the total number of relationships for a world.
func (m *RelationalDB) CountRelationships(_ context.Context, worldID string) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	count := 0
	for _, r := range m.Relationships {
		if r.WorldID == worldID {
			count++
		}
	}
	return count, nil
}

// LoadSnapshot loads every person and relationship of a world.
func (m *RelationalDB) LoadSnapshot(_ context.Context, worldID string) ([]entities.Person, []entities.Relationship, error) {
	if m.Err != nil {
		return nil, nil, m.Err
	}
	var persons []entities.Person
	for _, p := range m.Persons {
		if p.WorldID == worldID {
			persons = append(persons, *p)
		}
	}
	var rels []entities.Relationship
	for _, r := range m.Relationships {
		if r.WorldID == worldID {
			rels = append(rels, *r)
		}
	}
	sortPersons(persons)
	sortRelationships(rels)
	return persons, rels, nil
}

// Audit log methods.

// LogAction logs an action to the audit log.
func (m *RelationalDB) LogAction(_ context.Context, action string, subjectID string, details map[string]any) error {
	m.LogActionCallCount++
	m.LogActionLastAction = action
	if m.Err != nil {
		return m.Err
	}
	m.AuditEntries = append(m.AuditEntries, entities.AuditEntry{
		ID:        int64(len(m.AuditEntries) + 1),
		Action:    action,
		SubjectID: subjectID,
		Details:   details,
	})
	return nil
}

// FindAuditLog finds audit log entries for a specific subject.
func (m *RelationalDB) FindAuditLog(_ context.Context, subjectID string) ([]entities.AuditEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var result []entities.AuditEntry
	for i := len(m.AuditEntries) - 1; i >= 0; i-- {
		if m.AuditEntries[i].SubjectID == subjectID {
			result = append(result, m.AuditEntries[i])
		}
	}
	return result, nil
}

// FindAuditLogByAction finds audit log entries by action type.
func (m *RelationalDB) FindAuditLogByAction(_ context.Context, action string, limit int) ([]entities.AuditEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var result []entities.AuditEntry
	for i := len(m.AuditEntries) - 1; i >= 0 && (limit <= 0 || len(result) < limit); i-- {
		if m.AuditEntries[i].Action == action {
			result = append(result, m.AuditEntries[i])
		}
	}
	return result, nil
}

// Sort by ID for deterministic test results.
func sortPersons(ps []entities.Person) {
	sort.Slice(ps, func(i, j int) bool { return ps[i].ID < ps[j].ID })
}

func sortRelationships(rs []entities.Relationship) {
	sort.Slice(rs, func(i, j int) bool { return rs[i].ID < rs[j].ID })
}
