package services

import (
	"context"
	"fmt"

	"github.com/ersonp/kin-core/internal/domain/entities"
	"github.com/ersonp/kin-core/internal/domain/ports"
)

// SearchService provides semantic search over person biographies.
type SearchService struct {
	relationalDB ports.RelationalDB
	vectorDB     ports.VectorDB
	embedder     ports.Embedder
}

// NewSearchService creates a new SearchService.
func NewSearchService(relationalDB ports.RelationalDB, vectorDB ports.VectorDB, embedder ports.Embedder) *SearchService {
	return &SearchService{
		relationalDB: relationalDB,
		vectorDB:     vectorDB,
		embedder:     embedder,
	}
}

// Search embeds the query and returns the closest biographies.
func (s *SearchService) Search(ctx context.Context, worldID, query string, limit int) ([]entities.BioMatch, error) {
	if limit <= 0 {
		limit = 10
	}
	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("generating embedding: %w", err)
	}
	matches, err := s.vectorDB.Search(ctx, worldID, embedding, limit)
	if err != nil {
		return nil, fmt.Errorf("searching biographies: %w", err)
	}
	return matches, nil
}

// Reindex rebuilds the biography index for every person of a world that
// has notes. Returns the number of biographies indexed.
func (s *SearchService) Reindex(ctx context.Context, worldID string) (int, error) {
	persons, _, err := s.relationalDB.LoadSnapshot(ctx, worldID)
	if err != nil {
		return 0, fmt.Errorf("loading world snapshot: %w", err)
	}

	var bios []entities.PersonBio
	var texts []string
	for _, p := range persons {
		if p.Notes == "" {
			continue
		}
		bios = append(bios, entities.PersonBio{
			PersonID: p.ID,
			WorldID:  p.WorldID,
			Name:     p.FullName(),
			Bio:      p.Notes,
		})
		texts = append(texts, p.Notes)
	}
	if len(bios) == 0 {
		return 0, nil
	}

	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("generating embeddings: %w", err)
	}
	if len(embeddings) != len(bios) {
		return 0, fmt.Errorf("embedding count mismatch: got %d, want %d", len(embeddings), len(bios))
	}
	for i := range bios {
		bios[i].Embedding = embeddings[i]
	}

	if err := s.vectorDB.SaveBioBatch(ctx, bios); err != nil {
		return 0, fmt.Errorf("saving biographies: %w", err)
	}
	return len(bios), nil
}
