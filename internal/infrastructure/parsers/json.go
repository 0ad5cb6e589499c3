package parsers

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONParser parses a full world import (persons and relationships) from
// JSON format.
type JSONParser struct{}

// Parse reads JSON from the reader and returns the parsed records.
func (p *JSONParser) Parse(r io.Reader) (*RawImport, error) {
	var payload RawImport

	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	// Set line numbers (array index + 1, 1-indexed)
	for i := range payload.Persons {
		payload.Persons[i].LineNum = i + 1
	}
	for i := range payload.Relationships {
		payload.Relationships[i].LineNum = i + 1
	}

	return &payload, nil
}
