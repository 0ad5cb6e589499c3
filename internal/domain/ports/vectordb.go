package ports

import (
	"context"

	"github.com/ersonp/kin-core/internal/domain/entities"
)

// VectorDB defines the interface for vector database operations.
type VectorDB interface {
	// SaveBio stores a person's biography text with its embedding.
	SaveBio(ctx context.Context, bio entities.PersonBio) error

	// SaveBioBatch stores multiple biographies.
	SaveBioBatch(ctx context.Context, bios []entities.PersonBio) error

	// Search performs a semantic search and returns similar biographies.
	Search(ctx context.Context, worldID string, embedding []float32, limit int) ([]entities.BioMatch, error)

	// Delete removes a person's biography by person ID.
	Delete(ctx context.Context, personID string) error
}
