package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CSVParser parses person records from CSV format. Relationships cannot
// be expressed in CSV; use JSON for full world imports.
type CSVParser struct{}

// Parse reads CSV from the reader and returns the parsed persons.
// Expected columns: first_name, last_name, gender, legitimacy, born,
// died, house, notes. Only first_name is required.
func (p *CSVParser) Parse(r io.Reader) (*RawImport, error) {
	reader := csv.NewReader(r)

	colIndex, err := p.readHeader(reader)
	if err != nil {
		return nil, err
	}

	persons, err := p.readRecords(reader, colIndex)
	if err != nil {
		return nil, err
	}
	return &RawImport{Persons: persons}, nil
}

// readHeader reads and validates the CSV header row.
func (p *CSVParser) readHeader(reader *csv.Reader) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		colIndex[col] = i
	}

	if _, ok := colIndex["first_name"]; !ok {
		return nil, fmt.Errorf("missing required column: first_name")
	}

	return colIndex, nil
}

// readRecords reads all data rows and converts them to RawPersons.
func (p *CSVParser) readRecords(reader *csv.Reader, colIndex map[string]int) ([]RawPerson, error) {
	var persons []RawPerson
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		persons = append(persons, RawPerson{
			ID:         getColumn(record, colIndex, "id"),
			FirstName:  getColumn(record, colIndex, "first_name"),
			LastName:   getColumn(record, colIndex, "last_name"),
			Gender:     getColumn(record, colIndex, "gender"),
			Legitimacy: getColumn(record, colIndex, "legitimacy"),
			Born:       getColumn(record, colIndex, "born"),
			Died:       getColumn(record, colIndex, "died"),
			House:      getColumn(record, colIndex, "house"),
			Notes:      getColumn(record, colIndex, "notes"),
			LineNum:    lineNum,
		})
	}

	return persons, nil
}

// getColumn safely retrieves a column value from a record.
func getColumn(record []string, colIndex map[string]int, col string) string {
	if idx, ok := colIndex[col]; ok && idx < len(record) {
		return record[idx]
	}
	return ""
}
