package handlers

import (
	"context"

	"github.com/ersonp/kin-core/internal/domain/entities"
	"github.com/ersonp/kin-core/internal/domain/services"
)

// LineageHandler handles kinship queries.
type LineageHandler struct {
	lineage *services.LineageService
}

// NewLineageHandler creates a new LineageHandler.
func NewLineageHandler(lineage *services.LineageService) *LineageHandler {
	return &LineageHandler{lineage: lineage}
}

// HandleResolve names the relationship between two people. Both
// references may be IDs or full names.
func (h *LineageHandler) HandleResolve(ctx context.Context, worldID, refA, refB string) (*services.Resolution, error) {
	return h.lineage.Resolve(ctx, worldID, refA, refB)
}

// HandleCadency computes a person's birth-order position among their
// father's legitimate sons.
func (h *LineageHandler) HandleCadency(ctx context.Context, worldID, ref string) (*services.CadencyResult, error) {
	return h.lineage.Cadency(ctx, worldID, ref)
}

// HandleAncestors lists a person's known ancestors by generation.
func (h *LineageHandler) HandleAncestors(ctx context.Context, worldID, ref string) (*entities.Person, []services.Ancestor, error) {
	return h.lineage.Ancestors(ctx, worldID, ref)
}
