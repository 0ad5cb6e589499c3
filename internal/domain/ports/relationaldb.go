package ports

import (
	"context"

	"github.com/ersonp/kin-core/internal/domain/entities"
)

// RelationalDB defines the interface for relational database operations.
// This interface handles the persistent genealogy records - persons, houses,
// relationships and the audit log - complementing VectorDB for semantic search.
type RelationalDB interface {
	// EnsureSchema creates the database schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Close closes the database connection.
	Close() error

	// Person operations

	// SavePerson saves or updates a person.
	SavePerson(ctx context.Context, person *entities.Person) error

	// FindPersonByID finds a person by their ID.
	FindPersonByID(ctx context.Context, worldID, personID string) (*entities.Person, error)

	// FindPersonsByName finds persons by full name (case-insensitive).
	// Multiple persons may share a name.
	FindPersonsByName(ctx context.Context, worldID, name string) ([]entities.Person, error)

	// ListPersons lists all persons for a world with pagination.
	ListPersons(ctx context.Context, worldID string, limit, offset int) ([]*entities.Person, error)

	// SearchPersons searches persons by name pattern.
	SearchPersons(ctx context.Context, worldID, query string, limit int) ([]*entities.Person, error)

	// DeletePerson deletes a person by ID.
	DeletePerson(ctx context.Context, worldID, personID string) error

	// CountPersons returns the total number of persons for a world.
	CountPersons(ctx context.Context, worldID string) (int, error)

	// House operations

	// SaveHouse saves or updates a house.
	SaveHouse(ctx context.Context, house *entities.House) error

	// FindHouseByName finds a house by its name (case-insensitive).
	FindHouseByName(ctx context.Context, worldID, name string) (*entities.House, error)

	// ListHouses lists all houses for a world.
	ListHouses(ctx context.Context, worldID string) ([]entities.House, error)

	// DeleteHouse deletes a house by ID.
	DeleteHouse(ctx context.Context, worldID, houseID string) error

	// Relationship operations

	// SaveRelationship saves or updates a relationship.
	SaveRelationship(ctx context.Context, rel *entities.Relationship) error

	// FindRelationshipsByPerson finds all relationships involving a person,
	// on either side of the edge.
	FindRelationshipsByPerson(ctx context.Context, worldID, personID string) ([]entities.Relationship, error)

	// DeleteRelationship deletes a relationship by ID.
	DeleteRelationship(ctx context.Context, worldID, relID string) error

	// DeleteRelationshipsByPerson deletes all relationships involving a person.
	DeleteRelationshipsByPerson(ctx context.Context, worldID, personID string) error

	// CountRelationships returns the total number of relationships for a world.
	CountRelationships(ctx context.Context, worldID string) (int, error)

	// LoadSnapshot loads every person and relationship of a world in one
	// pass, for building the in-memory genealogy graph.
	LoadSnapshot(ctx context.Context, worldID string) ([]entities.Person, []entities.Relationship, error)

	// Audit operations

	// LogAction logs an action to the audit log.
	LogAction(ctx context.Context, action string, subjectID string, details map[string]any) error

	// FindAuditLog finds audit log entries for a specific subject.
	FindAuditLog(ctx context.Context, subjectID string) ([]entities.AuditEntry, error)

	// FindAuditLogByAction finds audit log entries by action type.
	FindAuditLogByAction(ctx context.Context, action string, limit int) ([]entities.AuditEntry, error)
}
