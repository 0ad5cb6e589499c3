package handlers

import (
	"context"

	"github.com/ersonp/kin-core/internal/domain/entities"
	"github.com/ersonp/kin-core/internal/domain/services"
)

// SearchHandler handles semantic search over person biographies.
type SearchHandler struct {
	search *services.SearchService
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(search *services.SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

// HandleSearch finds persons whose biographies match the query.
func (h *SearchHandler) HandleSearch(ctx context.Context, worldID, query string, limit int) ([]entities.BioMatch, error) {
	return h.search.Search(ctx, worldID, query, limit)
}

// HandleReindex re-embeds every biography of a world and returns the
// number of persons indexed.
func (h *SearchHandler) HandleReindex(ctx context.Context, worldID string) (int, error) {
	return h.search.Reindex(ctx, worldID)
}
