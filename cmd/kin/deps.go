package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ersonp/kin-core/internal/application/handlers"
	"github.com/ersonp/kin-core/internal/domain/entities"
	"github.com/ersonp/kin-core/internal/domain/ports"
	"github.com/ersonp/kin-core/internal/domain/services"
	"github.com/ersonp/kin-core/internal/infrastructure/config"
	embedder "github.com/ersonp/kin-core/internal/infrastructure/embedder/openai"
	"github.com/ersonp/kin-core/internal/infrastructure/relationaldb/sqlite"
	"github.com/ersonp/kin-core/internal/infrastructure/vectordb/qdrant"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and repositories are internal.
type Deps struct {
	Config        *config.Config
	Worlds        *config.WorldsConfig
	Persons       *handlers.PersonHandler
	Relationships *handlers.RelationshipHandler
	Lineage       *handlers.LineageHandler
	Search        *handlers.SearchHandler
	Import        *handlers.ImportHandler
}

// withDeps loads config and builds dependencies, then calls the provided function.
// It handles cleanup automatically.
func withDeps(fn func(*Deps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	worlds, err := config.LoadWorlds(cwd)
	if err != nil {
		return fmt.Errorf("loading worlds: %w", err)
	}

	if globalWorld == "" {
		return errors.New("world is required (use --world flag)")
	}

	collection, err := worlds.GetCollection(globalWorld)
	if err != nil {
		return err
	}

	qdrantCfg := cfg.Qdrant
	qdrantCfg.Collection = collection

	repo, err := qdrant.NewRepository(qdrantCfg)
	if err != nil {
		return fmt.Errorf("creating qdrant repository: %w", err)
	}
	defer repo.Close()

	sqlitePath := config.SQLitePathForWorld(cwd, globalWorld)
	relationalDB, err := sqlite.NewRepository(config.SQLiteConfig{Path: sqlitePath})
	if err != nil {
		return fmt.Errorf("creating sqlite repository: %w", err)
	}
	defer relationalDB.Close()

	if err := relationalDB.EnsureSchema(context.Background()); err != nil {
		return fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	emb, err := embedder.NewEmbedder(cfg.Embedder)
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}

	personService := services.NewPersonService(relationalDB, repo, emb, cfg.Genealogy)
	relationshipService := services.NewRelationshipService(relationalDB, cfg.Genealogy)
	lineageService := services.NewLineageService(relationalDB, cfg.Genealogy)
	searchService := services.NewSearchService(relationalDB, repo, emb)

	personHandler := handlers.NewPersonHandler(personService, relationalDB)
	relationshipHandler := handlers.NewRelationshipHandler(relationshipService, personService)

	deps := &Deps{
		Config:        cfg,
		Worlds:        worlds,
		Persons:       personHandler,
		Relationships: relationshipHandler,
		Lineage:       handlers.NewLineageHandler(lineageService),
		Search:        handlers.NewSearchHandler(searchService),
		Import:        handlers.NewImportHandler(personHandler, relationshipHandler, relationalDB),
	}

	return fn(deps)
}

// newWorldsHandler builds the worlds handler with a live Qdrant-backed
// collection manager. The caller owns no cleanup; each manager closes
// with its operation.
func newWorldsHandler(cfg *config.Config) *handlers.WorldsHandler {
	return handlers.NewWorldsHandler(func(collection string) (ports.CollectionManager, error) {
		qdrantCfg := cfg.Qdrant
		qdrantCfg.Collection = collection
		repo, err := qdrant.NewRepository(qdrantCfg)
		if err != nil {
			return nil, err
		}
		return repo, nil
	})
}

// printVerdict renders validation findings in a stable order.
func printVerdict(verdict entities.Verdict) {
	for _, issue := range verdict.Errors {
		fmt.Printf("  error   [%s] %s\n", issue.Code, issue.Message)
	}
	for _, issue := range verdict.Warnings {
		fmt.Printf("  warning [%s] %s\n", issue.Code, issue.Message)
	}
	for _, s := range verdict.Suggestions {
		fmt.Printf("  suggest [%s] %s\n", s.Code, s.Message)
	}
}
