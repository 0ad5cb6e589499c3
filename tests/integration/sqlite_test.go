package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/kin-core/internal/domain/entities"
	"github.com/ersonp/kin-core/internal/infrastructure/config"
	"github.com/ersonp/kin-core/internal/infrastructure/relationaldb/sqlite"
)

func TestSQLiteIntegration_FileDatabase(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	repo, err := sqlite.NewRepository(config.SQLiteConfig{Path: dbPath})
	require.NoError(t, err)
	defer repo.Close()

	err = repo.EnsureSchema(context.Background())
	require.NoError(t, err)

	_, err = os.Stat(dbPath)
	require.NoError(t, err, "database file should exist")

	ctx := context.Background()

	person := &entities.Person{
		ID:        "p1",
		WorldID:   "w1",
		FirstName: "Edmund",
		LastName:  "Crakehall",
		Gender:    entities.GenderMale,
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.SavePerson(ctx, person))

	rel := &entities.Relationship{
		ID:        "r1",
		WorldID:   "w1",
		Person1ID: "p1",
		Person2ID: "p2",
		Type:      entities.RelationParent,
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.SaveRelationship(ctx, rel))

	require.NoError(t, repo.LogAction(ctx, "person.create", "p1", map[string]any{"name": "Edmund Crakehall"}))

	// Close and reopen
	repo.Close()

	repo2, err := sqlite.NewRepository(config.SQLiteConfig{Path: dbPath})
	require.NoError(t, err)
	defer repo2.Close()

	// Data should persist
	found, err := repo2.FindPersonByID(ctx, "w1", "p1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Edmund Crakehall", found.FullName())

	rels, err := repo2.FindRelationshipsByPerson(ctx, "w1", "p1")
	require.NoError(t, err)
	assert.Len(t, rels, 1)

	entries, err := repo2.FindAuditLog(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSQLiteIntegration_WALMode(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "wal-test.db")

	repo, err := sqlite.NewRepository(config.SQLiteConfig{Path: dbPath})
	require.NoError(t, err)
	defer repo.Close()

	err = repo.EnsureSchema(context.Background())
	require.NoError(t, err)

	// Perform some writes to trigger WAL file creation
	for i := 0; i < 10; i++ {
		err := repo.LogAction(context.Background(), "test", "", nil)
		require.NoError(t, err)
	}

	entries, err := repo.FindAuditLogByAction(context.Background(), "test", 100)
	require.NoError(t, err)
	assert.Len(t, entries, 10)
}

func TestSQLiteIntegration_ConcurrentReads(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "concurrent-test.db")

	repo, err := sqlite.NewRepository(config.SQLiteConfig{Path: dbPath})
	require.NoError(t, err)
	defer repo.Close()

	err = repo.EnsureSchema(context.Background())
	require.NoError(t, err)

	ctx := context.Background()
	for i := 0; i < 100; i++ {
		p := &entities.Person{
			ID:        fmt.Sprintf("p-%03d", i),
			WorldID:   "w1",
			FirstName: fmt.Sprintf("Person%d", i),
			CreatedAt: time.Now(),
		}
		require.NoError(t, repo.SavePerson(ctx, p))
	}

	// Concurrent reads
	errCh := make(chan error, 10)
	for i := 0; i < 10; i++ {
		go func() {
			count, err := repo.CountPersons(context.Background(), "w1")
			if err != nil {
				errCh <- err
				return
			}
			if count != 100 {
				errCh <- fmt.Errorf("expected 100 persons, got %d", count)
				return
			}
			errCh <- nil
		}()
	}

	for i := 0; i < 10; i++ {
		require.NoError(t, <-errCh)
	}
}

func TestSQLiteIntegration_WorldLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tmpDir := t.TempDir()
	dbPath := config.SQLitePathForWorld(tmpDir, "Test World")
	require.NoError(t, os.MkdirAll(filepath.Dir(dbPath), 0755))

	repo, err := sqlite.NewRepository(config.SQLiteConfig{Path: dbPath})
	require.NoError(t, err)

	err = repo.EnsureSchema(context.Background())
	require.NoError(t, err)

	require.NoError(t, repo.SaveHouse(context.Background(), &entities.House{
		ID:        "h1",
		WorldID:   "w1",
		Name:      "Crakehall",
		CreatedAt: time.Now(),
	}))

	repo.Close()

	_, err = os.Stat(dbPath)
	require.NoError(t, err)

	// Simulate world deletion
	require.NoError(t, os.Remove(dbPath))
	os.Remove(dbPath + "-wal")
	os.Remove(dbPath + "-shm")

	_, err = os.Stat(dbPath)
	require.True(t, os.IsNotExist(err))
}
