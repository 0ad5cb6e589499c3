package handlers

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ersonp/kin-core/internal/domain/entities"
	"github.com/ersonp/kin-core/internal/domain/ports"
	"github.com/ersonp/kin-core/internal/infrastructure/parsers"
)

// ImportHandler handles bulk import and export of worlds.
type ImportHandler struct {
	persons       *PersonHandler
	relationships *RelationshipHandler
	relationalDB  ports.RelationalDB
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(persons *PersonHandler, relationships *RelationshipHandler, relationalDB ports.RelationalDB) *ImportHandler {
	return &ImportHandler{
		persons:       persons,
		relationships: relationships,
		relationalDB:  relationalDB,
	}
}

// ImportSkip describes a record that was not imported.
type ImportSkip struct {
	Kind    string `json:"kind"` // "person" or "relationship"
	LineNum int    `json:"line"`
	Ref     string `json:"ref"`
	Reason  string `json:"reason"`
}

// ImportResult summarizes an import run.
type ImportResult struct {
	PersonsCreated       int          `json:"persons_created"`
	RelationshipsCreated int          `json:"relationships_created"`
	Skipped              []ImportSkip `json:"skipped,omitempty"`
}

// HandleImport parses the file and creates its persons and relationships.
// Records that fail validation are skipped and reported; the rest of the
// import continues. Relationship references are resolved against the
// records created in the same run first, then against the stored world.
func (h *ImportHandler) HandleImport(ctx context.Context, worldID, filename string, r io.Reader, ackWarnings bool) (*ImportResult, error) {
	parser := parsers.ForFile(filename)
	if parser == nil {
		return nil, fmt.Errorf("unsupported file format: %s (supported: json, csv)", filename)
	}

	payload, err := parser.Parse(r)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	// Maps source-file references (explicit IDs and full names) to created
	// person IDs so relationships can use either.
	created := make(map[string]string)

	for _, raw := range payload.Persons {
		personResult, err := h.persons.HandleCreate(ctx, worldID, PersonInput{
			FirstName:  raw.FirstName,
			LastName:   raw.LastName,
			Gender:     raw.Gender,
			Legitimacy: raw.Legitimacy,
			Born:       raw.Born,
			Died:       raw.Died,
			House:      raw.House,
			Notes:      raw.Notes,
		})
		if err != nil {
			result.Skipped = append(result.Skipped, ImportSkip{
				Kind:    "person",
				LineNum: raw.LineNum,
				Ref:     raw.FirstName + " " + raw.LastName,
				Reason:  err.Error(),
			})
			continue
		}
		if personResult.Verdict.Blocked() {
			result.Skipped = append(result.Skipped, ImportSkip{
				Kind:    "person",
				LineNum: raw.LineNum,
				Ref:     personResult.Person.FullName(),
				Reason:  verdictSummary(personResult.Verdict),
			})
			continue
		}

		result.PersonsCreated++
		if raw.ID != "" {
			created[raw.ID] = personResult.Person.ID
		}
		created[entities.NormalizeName(personResult.Person.FullName())] = personResult.Person.ID
	}

	for _, raw := range payload.Relationships {
		input := RelationshipInput{
			Type:     raw.Type,
			Person1:  h.resolveRef(created, raw.Person1),
			Person2:  h.resolveRef(created, raw.Person2),
			Married:  raw.Married,
			Divorced: raw.Divorced,
			Status:   raw.Status,
		}
		relResult, err := h.relationships.HandleCreate(ctx, worldID, input, ackWarnings)
		if err != nil {
			result.Skipped = append(result.Skipped, ImportSkip{
				Kind:    "relationship",
				LineNum: raw.LineNum,
				Ref:     raw.Person1 + " -> " + raw.Person2,
				Reason:  err.Error(),
			})
			continue
		}
		if !relResult.Created {
			result.Skipped = append(result.Skipped, ImportSkip{
				Kind:    "relationship",
				LineNum: raw.LineNum,
				Ref:     raw.Person1 + " -> " + raw.Person2,
				Reason:  verdictSummary(relResult.Verdict),
			})
			continue
		}
		result.RelationshipsCreated++
	}

	return result, nil
}

// WorldExport is the payload produced by HandleExport.
type WorldExport struct {
	WorldID       string                  `json:"world_id"`
	Persons       []entities.Person       `json:"persons"`
	Relationships []entities.Relationship `json:"relationships"`
}

// Export formats accepted by HandleExport.
const (
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
)

// HandleExport writes the full world in the requested format. JSON
// carries persons and relationships and can be re-imported; CSV carries
// persons only, in the import column layout; markdown renders both as
// tables for inclusion in world documents.
func (h *ImportHandler) HandleExport(ctx context.Context, worldID, format string, w io.Writer) (*WorldExport, error) {
	persons, rels, err := h.relationalDB.LoadSnapshot(ctx, worldID)
	if err != nil {
		return nil, fmt.Errorf("loading world snapshot: %w", err)
	}

	export := &WorldExport{
		WorldID:       worldID,
		Persons:       persons,
		Relationships: rels,
	}

	switch format {
	case FormatJSON, "":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(export); err != nil {
			return nil, fmt.Errorf("encoding export: %w", err)
		}
	case FormatCSV:
		if err := h.writeCSV(ctx, worldID, export, w); err != nil {
			return nil, err
		}
	case FormatMarkdown:
		if err := h.writeMarkdown(export, w); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported export format: %s (supported: json, csv, markdown)", format)
	}
	return export, nil
}

// writeCSV emits persons in the column layout the CSV importer reads, so
// the output round-trips through 'import'. House IDs are replaced with
// house names for the same reason.
func (h *ImportHandler) writeCSV(ctx context.Context, worldID string, export *WorldExport, w io.Writer) error {
	houseNames, err := h.houseNames(ctx, worldID)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"id", "first_name", "last_name", "gender", "legitimacy", "born", "died", "house", "notes"}); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, p := range export.Persons {
		record := []string{
			p.ID,
			p.FirstName,
			p.LastName,
			string(p.Gender),
			string(p.Legitimacy),
			p.Born.String(),
			p.Died.String(),
			houseNames[p.HouseID],
			p.Notes,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("writing CSV record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return nil
}

// writeMarkdown renders the world as People and Relationships tables.
func (h *ImportHandler) writeMarkdown(export *WorldExport, w io.Writer) error {
	names := make(map[string]string, len(export.Persons))
	for _, p := range export.Persons {
		names[p.ID] = p.FullName()
	}
	displayName := func(id string) string {
		if name, ok := names[id]; ok {
			return name
		}
		return id
	}

	var b strings.Builder
	b.WriteString("# " + export.WorldID + "\n\n")
	b.WriteString("## People\n\n")
	b.WriteString("| Name | Gender | Legitimacy | Born | Died |\n")
	b.WriteString("|------|--------|------------|------|------|\n")
	for _, p := range export.Persons {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			p.FullName(), p.Gender, p.Legitimacy, p.Born, p.Died)
	}

	if len(export.Relationships) > 0 {
		b.WriteString("\n## Relationships\n\n")
		b.WriteString("| Person | Type | Person |\n")
		b.WriteString("|--------|------|--------|\n")
		for _, rel := range export.Relationships {
			fmt.Fprintf(&b, "| %s | %s | %s |\n",
				displayName(rel.Person1ID), rel.Type, displayName(rel.Person2ID))
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing markdown: %w", err)
	}
	return nil
}

// houseNames maps house IDs to names for the world.
func (h *ImportHandler) houseNames(ctx context.Context, worldID string) (map[string]string, error) {
	houses, err := h.relationalDB.ListHouses(ctx, worldID)
	if err != nil {
		return nil, fmt.Errorf("listing houses: %w", err)
	}
	names := make(map[string]string, len(houses))
	for _, house := range houses {
		names[house.ID] = house.Name
	}
	return names, nil
}

// resolveRef maps a source-file reference to a created person ID when
// possible, otherwise returns it unchanged for normal resolution.
func (h *ImportHandler) resolveRef(created map[string]string, ref string) string {
	if id, ok := created[ref]; ok {
		return id
	}
	if id, ok := created[entities.NormalizeName(ref)]; ok {
		return id
	}
	return ref
}

func verdictSummary(v entities.Verdict) string {
	issues := append(append([]entities.Issue{}, v.Errors...), v.Warnings...)
	if len(issues) == 0 {
		return "not created"
	}
	summary := fmt.Sprintf("%s: %s", issues[0].Code, issues[0].Message)
	if len(issues) > 1 {
		summary += fmt.Sprintf(" (and %d more)", len(issues)-1)
	}
	return summary
}
