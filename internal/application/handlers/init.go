package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/kin-core/internal/domain/ports"
	"github.com/ersonp/kin-core/internal/infrastructure/config"
	"github.com/ersonp/kin-core/internal/infrastructure/embedder/openai"
)

// WorldsHandler manages the lifecycle of worlds: the config directory,
// the per-world database paths, and the Qdrant collections.
type WorldsHandler struct {
	// newCollectionManager builds a collection manager for a named
	// collection. Injected so tests can substitute a mock.
	newCollectionManager func(collection string) (ports.CollectionManager, error)
}

// NewWorldsHandler creates a new WorldsHandler.
func NewWorldsHandler(newCollectionManager func(collection string) (ports.CollectionManager, error)) *WorldsHandler {
	return &WorldsHandler{newCollectionManager: newCollectionManager}
}

// InitResult reports what HandleInit created.
type InitResult struct {
	ConfigPath string
}

// HandleInit writes the default config file. It refuses to overwrite an
// existing one.
func (h *WorldsHandler) HandleInit(basePath string) (*InitResult, error) {
	if config.Exists(basePath) {
		return nil, fmt.Errorf("config already exists at %s", config.ConfigFilePath(basePath))
	}
	if err := config.WriteDefault(basePath); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}
	return &InitResult{ConfigPath: config.ConfigFilePath(basePath)}, nil
}

// CreateWorldResult reports what HandleCreateWorld created.
type CreateWorldResult struct {
	Name       string
	Collection string
	DBPath     string
}

// HandleCreateWorld registers a world, provisions its Qdrant collection,
// and records it in worlds.yaml.
func (h *WorldsHandler) HandleCreateWorld(ctx context.Context, basePath, name, description string) (*CreateWorldResult, error) {
	worlds, err := config.LoadWorlds(basePath)
	if err != nil {
		return nil, err
	}
	if worlds.Exists(name) {
		return nil, fmt.Errorf("world %q already exists", name)
	}

	collection := config.GenerateCollectionName(name)
	manager, err := h.newCollectionManager(collection)
	if err != nil {
		return nil, fmt.Errorf("connecting to vector store: %w", err)
	}
	if err := manager.EnsureCollection(ctx, openai.VectorSize); err != nil {
		return nil, fmt.Errorf("creating collection: %w", err)
	}

	worlds.Add(name, config.WorldEntry{Collection: collection, Description: description})
	if err := worlds.Save(basePath); err != nil {
		return nil, err
	}

	return &CreateWorldResult{
		Name:       name,
		Collection: collection,
		DBPath:     config.SQLitePathForWorld(basePath, name),
	}, nil
}

// HandleListWorlds returns the registered worlds.
func (h *WorldsHandler) HandleListWorlds(basePath string) (*config.WorldsConfig, error) {
	return config.LoadWorlds(basePath)
}

// HandleDeleteWorld removes a world's registration and drops its Qdrant
// collection. The SQLite database file is left on disk.
func (h *WorldsHandler) HandleDeleteWorld(ctx context.Context, basePath, name string) error {
	worlds, err := config.LoadWorlds(basePath)
	if err != nil {
		return err
	}
	entry, err := worlds.Get(name)
	if err != nil {
		return err
	}

	manager, err := h.newCollectionManager(entry.Collection)
	if err != nil {
		return fmt.Errorf("connecting to vector store: %w", err)
	}
	if err := manager.DeleteCollection(ctx); err != nil {
		return fmt.Errorf("deleting collection: %w", err)
	}

	worlds.Remove(name)
	return worlds.Save(basePath)
}
