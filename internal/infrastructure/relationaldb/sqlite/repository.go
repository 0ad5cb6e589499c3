// Package sqlite provides a SQLite implementation of the RelationalDB interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/ersonp/kin-core/internal/domain/entities"
	"github.com/ersonp/kin-core/internal/infrastructure/config"
)

// Repository implements ports.RelationalDB using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Enable foreign keys for referential integrity
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	-- People (the nodes of the genealogy graph)
	CREATE TABLE IF NOT EXISTS persons (
		id TEXT PRIMARY KEY,
		world_id TEXT NOT NULL,
		first_name TEXT NOT NULL,
		last_name TEXT,
		normalized_name TEXT NOT NULL,
		gender TEXT NOT NULL,
		legitimacy TEXT NOT NULL,
		born TEXT,
		died TEXT,
		house_id TEXT,
		notes TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_persons_world ON persons(world_id);
	CREATE INDEX IF NOT EXISTS idx_persons_normalized ON persons(world_id, normalized_name);
	CREATE INDEX IF NOT EXISTS idx_persons_house ON persons(house_id);

	-- Houses (dynasties people may belong to)
	CREATE TABLE IF NOT EXISTS houses (
		id TEXT PRIMARY KEY,
		world_id TEXT NOT NULL,
		name TEXT NOT NULL,
		normalized_name TEXT NOT NULL,
		motto TEXT,
		founded_year INTEGER,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(world_id, normalized_name)
	);
	CREATE INDEX IF NOT EXISTS idx_houses_world ON houses(world_id);

	-- Relationship edges. For parent edges person1 is the parent.
	CREATE TABLE IF NOT EXISTS relationships (
		id TEXT PRIMARY KEY,
		world_id TEXT NOT NULL,
		person1_id TEXT NOT NULL,
		person2_id TEXT NOT NULL,
		type TEXT NOT NULL,
		married TEXT,
		divorced TEXT,
		status TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_relationships_world ON relationships(world_id);
	CREATE INDEX IF NOT EXISTS idx_relationships_person1 ON relationships(person1_id);
	CREATE INDEX IF NOT EXISTS idx_relationships_person2 ON relationships(person2_id);
	CREATE INDEX IF NOT EXISTS idx_relationships_type ON relationships(type);

	-- Audit log (tracks all actions)
	CREATE TABLE IF NOT EXISTS audit_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		action TEXT NOT NULL,
		subject_id TEXT,
		details TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_audit_log_subject ON audit_log(subject_id);
	CREATE INDEX IF NOT EXISTS idx_audit_log_action ON audit_log(action);
	CREATE INDEX IF NOT EXISTS idx_audit_log_created ON audit_log(created_at);
	`

	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

const personColumns = `id, world_id, first_name, last_name, gender, legitimacy, born, died, house_id, notes, created_at`

// SavePerson saves or updates a person.
func (r *Repository) SavePerson(ctx context.Context, person *entities.Person) error {
	query := `
		INSERT INTO persons (id, world_id, first_name, last_name, normalized_name, gender, legitimacy, born, died, house_id, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			normalized_name = excluded.normalized_name,
			gender = excluded.gender,
			legitimacy = excluded.legitimacy,
			born = excluded.born,
			died = excluded.died,
			house_id = excluded.house_id,
			notes = excluded.notes
	`
	_, err := r.db.ExecContext(ctx, query,
		person.ID,
		person.WorldID,
		person.FirstName,
		nullable(person.LastName),
		person.NormalizedName(),
		string(person.Gender),
		string(person.Legitimacy),
		nullableDate(person.Born),
		nullableDate(person.Died),
		nullable(person.HouseID),
		nullable(person.Notes),
		person.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving person: %w", err)
	}
	return nil
}

// FindPersonByID finds a person by their ID.
func (r *Repository) FindPersonByID(ctx context.Context, worldID, personID string) (*entities.Person, error) {
	query := `SELECT ` + personColumns + ` FROM persons WHERE world_id = ? AND id = ?`
	row := r.db.QueryRowContext(ctx, query, worldID, personID)

	person, err := scanPerson(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return person, nil
}

// FindPersonsByName finds persons by full name (case-insensitive).
func (r *Repository) FindPersonsByName(ctx context.Context, worldID, name string) ([]entities.Person, error) {
	query := `
		SELECT ` + personColumns + `
		FROM persons
		WHERE world_id = ? AND normalized_name = ?
		ORDER BY id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, worldID, entities.NormalizeName(name))
	if err != nil {
		return nil, fmt.Errorf("querying persons: %w", err)
	}
	defer rows.Close()

	var result []entities.Person
	for rows.Next() {
		person, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *person)
	}
	return result, rows.Err()
}

// ListPersons lists all persons for a world with pagination.
func (r *Repository) ListPersons(ctx context.Context, worldID string, limit, offset int) ([]*entities.Person, error) {
	query := `
		SELECT ` + personColumns + `
		FROM persons
		WHERE world_id = ?
		ORDER BY first_name ASC, last_name ASC
		LIMIT ? OFFSET ?
	`
	rows, err := r.db.QueryContext(ctx, query, worldID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("querying persons: %w", err)
	}
	defer rows.Close()

	result := make([]*entities.Person, 0, limit)
	for rows.Next() {
		person, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, person)
	}
	return result, rows.Err()
}

// SearchPersons searches persons by name pattern.
func (r *Repository) SearchPersons(ctx context.Context, worldID, query string, limit int) ([]*entities.Person, error) {
	normalizedQuery := "%" + entities.NormalizeName(query) + "%"
	sqlQuery := `
		SELECT ` + personColumns + `
		FROM persons
		WHERE world_id = ? AND normalized_name LIKE ?
		ORDER BY first_name ASC, last_name ASC
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, sqlQuery, worldID, normalizedQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("searching persons: %w", err)
	}
	defer rows.Close()

	result := make([]*entities.Person, 0, limit)
	for rows.Next() {
		person, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, person)
	}
	return result, rows.Err()
}

// DeletePerson deletes a person by ID.
func (r *Repository) DeletePerson(ctx context.Context, worldID, personID string) error {
	query := `DELETE FROM persons WHERE world_id = ? AND id = ?`
	result, err := r.db.ExecContext(ctx, query, worldID, personID)
	if err != nil {
		return fmt.Errorf("deleting person: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("person not found: %s", personID)
	}
	return nil
}

// CountPersons returns the total number of persons for a world.
func (r *Repository) CountPersons(ctx context.Context, worldID string) (int, error) {
	query := `SELECT COUNT(*) FROM persons WHERE world_id = ?`
	var count int
	err := r.db.QueryRowContext(ctx, query, worldID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting persons: %w", err)
	}
	return count, nil
}

// SaveHouse saves or updates a house.
func (r *Repository) SaveHouse(ctx context.Context, house *entities.House) error {
	query := `
		INSERT INTO houses (id, world_id, name, normalized_name, motto, founded_year, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(world_id, normalized_name) DO UPDATE SET
			name = excluded.name,
			motto = excluded.motto,
			founded_year = excluded.founded_year
	`
	_, err := r.db.ExecContext(ctx, query,
		house.ID,
		house.WorldID,
		house.Name,
		entities.NormalizeName(house.Name),
		nullable(house.Motto),
		house.FoundedYear,
		house.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving house: %w", err)
	}
	return nil
}

// FindHouseByName finds a house by its name (case-insensitive).
func (r *Repository) FindHouseByName(ctx context.Context, worldID, name string) (*entities.House, error) {
	query := `
		SELECT id, world_id, name, motto, founded_year, created_at
		FROM houses
		WHERE world_id = ? AND normalized_name = ?
	`
	row := r.db.QueryRowContext(ctx, query, worldID, entities.NormalizeName(name))

	var house entities.House
	var motto sql.NullString
	err := row.Scan(&house.ID, &house.WorldID, &house.Name, &motto, &house.FoundedYear, &house.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning house: %w", err)
	}
	house.Motto = motto.String
	return &house, nil
}

// ListHouses lists all houses for a world.
func (r *Repository) ListHouses(ctx context.Context, worldID string) ([]entities.House, error) {
	query := `
		SELECT id, world_id, name, motto, founded_year, created_at
		FROM houses
		WHERE world_id = ?
		ORDER BY name ASC
	`
	rows, err := r.db.QueryContext(ctx, query, worldID)
	if err != nil {
		return nil, fmt.Errorf("querying houses: %w", err)
	}
	defer rows.Close()

	houses := make([]entities.House, 0, 16)
	for rows.Next() {
		var house entities.House
		var motto sql.NullString
		if err := rows.Scan(&house.ID, &house.WorldID, &house.Name, &motto, &house.FoundedYear, &house.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning house: %w", err)
		}
		house.Motto = motto.String
		houses = append(houses, house)
	}
	return houses, rows.Err()
}

// DeleteHouse deletes a house by ID.
func (r *Repository) DeleteHouse(ctx context.Context, worldID, houseID string) error {
	query := `DELETE FROM houses WHERE world_id = ? AND id = ?`
	result, err := r.db.ExecContext(ctx, query, worldID, houseID)
	if err != nil {
		return fmt.Errorf("deleting house: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("house not found: %s", houseID)
	}
	return nil
}

const relationshipColumns = `id, world_id, person1_id, person2_id, type, married, divorced, status, created_at`

// SaveRelationship saves or updates a relationship.
func (r *Repository) SaveRelationship(ctx context.Context, rel *entities.Relationship) error {
	query := `
		INSERT INTO relationships (id, world_id, person1_id, person2_id, type, married, divorced, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			person1_id = excluded.person1_id,
			person2_id = excluded.person2_id,
			type = excluded.type,
			married = excluded.married,
			divorced = excluded.divorced,
			status = excluded.status
	`
	_, err := r.db.ExecContext(ctx, query,
		rel.ID,
		rel.WorldID,
		rel.Person1ID,
		rel.Person2ID,
		string(rel.Type),
		nullableDate(rel.Married),
		nullableDate(rel.Divorced),
		nullable(string(rel.Status)),
		rel.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving relationship: %w", err)
	}
	return nil
}

// FindRelationshipsByPerson finds all relationships involving a person,
// on either side of the edge.
func (r *Repository) FindRelationshipsByPerson(ctx context.Context, worldID, personID string) ([]entities.Relationship, error) {
	query := `
		SELECT ` + relationshipColumns + `
		FROM relationships
		WHERE world_id = ? AND (person1_id = ? OR person2_id = ?)
		ORDER BY created_at ASC, id ASC
	`
	return r.queryRelationships(ctx, query, worldID, personID, personID)
}

// DeleteRelationship deletes a relationship by ID.
func (r *Repository) DeleteRelationship(ctx context.Context, worldID, relID string) error {
	query := `DELETE FROM relationships WHERE world_id = ? AND id = ?`
	result, err := r.db.ExecContext(ctx, query, worldID, relID)
	if err != nil {
		return fmt.Errorf("deleting relationship: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("relationship not found: %s", relID)
	}
	return nil
}

// DeleteRelationshipsByPerson deletes all relationships involving a person.
func (r *Repository) DeleteRelationshipsByPerson(ctx context.Context, worldID, personID string) error {
	query := `DELETE FROM relationships WHERE world_id = ? AND (person1_id = ? OR person2_id = ?)`
	_, err := r.db.ExecContext(ctx, query, worldID, personID, personID)
	if err != nil {
		return fmt.Errorf("deleting relationships by person: %w", err)
	}
	return nil
}

// CountRelationships returns the total number of relationships for a world.
func (r *Repository) CountRelationships(ctx context.Context, worldID string) (int, error) {
	query := `SELECT COUNT(*) FROM relationships WHERE world_id = ?`
	var count int
	err := r.db.QueryRowContext(ctx, query, worldID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting relationships: %w", err)
	}
	return count, nil
}

// LoadSnapshot loads every person and relationship of a world in one pass.
func (r *Repository) LoadSnapshot(ctx context.Context, worldID string) ([]entities.Person, []entities.Relationship, error) {
	personQuery := `SELECT ` + personColumns + ` FROM persons WHERE world_id = ? ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, personQuery, worldID)
	if err != nil {
		return nil, nil, fmt.Errorf("querying persons: %w", err)
	}
	defer rows.Close()

	var persons []entities.Person
	for rows.Next() {
		person, err := scanPerson(rows)
		if err != nil {
			return nil, nil, err
		}
		persons = append(persons, *person)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	relQuery := `SELECT ` + relationshipColumns + ` FROM relationships WHERE world_id = ? ORDER BY id ASC`
	rels, err := r.queryRelationships(ctx, relQuery, worldID)
	if err != nil {
		return nil, nil, err
	}
	return persons, rels, nil
}

// queryRelationships is a helper to execute relationship queries.
func (r *Repository) queryRelationships(ctx context.Context, query string, args ...any) ([]entities.Relationship, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying relationships: %w", err)
	}
	defer rows.Close()

	relationships := make([]entities.Relationship, 0, 16)
	for rows.Next() {
		var rel entities.Relationship
		var relType string
		var married, divorced, status sql.NullString

		if err := rows.Scan(
			&rel.ID,
			&rel.WorldID,
			&rel.Person1ID,
			&rel.Person2ID,
			&relType,
			&married,
			&divorced,
			&status,
			&rel.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning relationship: %w", err)
		}

		rel.Type = entities.RelationType(relType)
		rel.Status = entities.MarriageStatus(status.String)
		if rel.Married, err = parseNullableDate(married); err != nil {
			return nil, err
		}
		if rel.Divorced, err = parseNullableDate(divorced); err != nil {
			return nil, err
		}
		relationships = append(relationships, rel)
	}
	return relationships, rows.Err()
}

// LogAction logs an action to the audit log.
func (r *Repository) LogAction(ctx context.Context, action string, subjectID string, details map[string]any) error {
	var detailsJSON sql.NullString
	if details != nil {
		data, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("marshaling details: %w", err)
		}
		detailsJSON = sql.NullString{String: string(data), Valid: true}
	}

	var subjectIDPtr sql.NullString
	if subjectID != "" {
		subjectIDPtr = sql.NullString{String: subjectID, Valid: true}
	}

	query := `INSERT INTO audit_log (action, subject_id, details) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, action, subjectIDPtr, detailsJSON)
	if err != nil {
		return fmt.Errorf("logging action: %w", err)
	}
	return nil
}

// FindAuditLog finds audit log entries for a specific subject.
func (r *Repository) FindAuditLog(ctx context.Context, subjectID string) ([]entities.AuditEntry, error) {
	query := `
		SELECT id, action, subject_id, details, created_at
		FROM audit_log
		WHERE subject_id = ?
		ORDER BY created_at DESC
	`
	return r.queryAuditLog(ctx, query, subjectID)
}

// FindAuditLogByAction finds audit log entries by action type.
func (r *Repository) FindAuditLogByAction(ctx context.Context, action string, limit int) ([]entities.AuditEntry, error) {
	query := `
		SELECT id, action, subject_id, details, created_at
		FROM audit_log
		WHERE action = ?
		ORDER BY created_at DESC
		LIMIT ?
	`
	return r.queryAuditLog(ctx, query, action, limit)
}

// queryAuditLog is a helper to execute audit log queries.
func (r *Repository) queryAuditLog(ctx context.Context, query string, args ...any) ([]entities.AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying audit log: %w", err)
	}
	defer rows.Close()

	var entries []entities.AuditEntry
	for rows.Next() {
		var entry entities.AuditEntry
		var subjectID, details sql.NullString

		if err := rows.Scan(
			&entry.ID,
			&entry.Action,
			&subjectID,
			&details,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}

		entry.SubjectID = subjectID.String

		if details.Valid && details.String != "" {
			if err := json.Unmarshal([]byte(details.String), &entry.Details); err != nil {
				return nil, fmt.Errorf("unmarshaling details: %w", err)
			}
		}

		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// scanner abstracts sql.Row and sql.Rows for the shared person scan.
type scanner interface {
	Scan(dest ...any) error
}

func scanPerson(row scanner) (*entities.Person, error) {
	var person entities.Person
	var lastName, gender, legitimacy, born, died, houseID, notes sql.NullString

	err := row.Scan(
		&person.ID,
		&person.WorldID,
		&person.FirstName,
		&lastName,
		&gender,
		&legitimacy,
		&born,
		&died,
		&houseID,
		&notes,
		&person.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning person: %w", err)
	}

	person.LastName = lastName.String
	person.Gender = entities.Gender(gender.String)
	person.Legitimacy = entities.Legitimacy(legitimacy.String)
	person.HouseID = houseID.String
	person.Notes = notes.String
	if person.Born, err = parseNullableDate(born); err != nil {
		return nil, err
	}
	if person.Died, err = parseNullableDate(died); err != nil {
		return nil, err
	}
	return &person, nil
}

// Dates are stored as their ISO partial form ("1255", "1255-03-02");
// NULL means unknown.
func nullableDate(d entities.PartialDate) sql.NullString {
	if d.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func parseNullableDate(s sql.NullString) (entities.PartialDate, error) {
	if !s.Valid || s.String == "" {
		return entities.PartialDate{}, nil
	}
	d, err := entities.ParsePartialDate(s.String)
	if err != nil {
		return entities.PartialDate{}, fmt.Errorf("parsing stored date %q: %w", s.String, err)
	}
	return d, nil
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
