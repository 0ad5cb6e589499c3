// Package parsers provides parsers for importing genealogy records from
// various formats.
package parsers

import (
	"io"
	"path/filepath"
	"strings"
)

// RawPerson is a person record parsed from an external source before
// validation.
type RawPerson struct {
	ID         string `json:"id,omitempty"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name,omitempty"`
	Gender     string `json:"gender,omitempty"`
	Legitimacy string `json:"legitimacy,omitempty"`
	Born       string `json:"born,omitempty"`
	Died       string `json:"died,omitempty"`
	House      string `json:"house,omitempty"`
	Notes      string `json:"notes,omitempty"`
	LineNum    int    `json:"-"` // Line number in source file (set by parser)
}

// RawRelationship is a relationship record parsed from an external source.
// Person references may be IDs or full names; the importer resolves them.
type RawRelationship struct {
	ID       string `json:"id,omitempty"`
	Type     string `json:"type"`
	Person1  string `json:"person1"`
	Person2  string `json:"person2"`
	Married  string `json:"married,omitempty"`
	Divorced string `json:"divorced,omitempty"`
	Status   string `json:"status,omitempty"`
	LineNum  int    `json:"-"`
}

// RawImport is a complete parsed import payload.
type RawImport struct {
	Persons       []RawPerson       `json:"persons"`
	Relationships []RawRelationship `json:"relationships,omitempty"`
}

// Parser defines the interface for parsing genealogy records.
type Parser interface {
	Parse(r io.Reader) (*RawImport, error)
}

// ForFormat returns the appropriate parser for the given format.
// Supported formats: "json", "csv".
func ForFormat(format string) Parser {
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}
	case "csv":
		return &CSVParser{}
	default:
		return nil
	}
}

// ForFile returns the appropriate parser based on file extension.
func ForFile(filename string) Parser {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		return &JSONParser{}
	case ".csv":
		return &CSVParser{}
	default:
		return nil
	}
}
