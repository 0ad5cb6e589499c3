package genealogy

import (
	"time"

	"github.com/ersonp/kin-core/internal/domain/entities"
)

// date parses an ISO partial date for test fixtures.
func date(s string) entities.PartialDate {
	d, err := entities.ParsePartialDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// man builds a legitimate male person for test fixtures.
func man(id, name, born string) entities.Person {
	return testPerson(id, name, entities.GenderMale, entities.LegitimacyLegitimate, born)
}

// woman builds a legitimate female person for test fixtures.
func woman(id, name, born string) entities.Person {
	return testPerson(id, name, entities.GenderFemale, entities.LegitimacyLegitimate, born)
}

func testPerson(id, name string, gender entities.Gender, legitimacy entities.Legitimacy, born string) entities.Person {
	return entities.Person{
		ID:         id,
		WorldID:    "w1",
		FirstName:  name,
		Gender:     gender,
		Legitimacy: legitimacy,
		Born:       date(born),
		CreatedAt:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// parentOf builds a biological parent edge.
func parentOf(id, parentID, childID string) entities.Relationship {
	return entities.Relationship{
		ID:        id,
		WorldID:   "w1",
		Person1ID: parentID,
		Person2ID: childID,
		Type:      entities.RelationParent,
	}
}

// adoptedParentOf builds an adoptive parent edge.
func adoptedParentOf(id, parentID, childID string) entities.Relationship {
	rel := parentOf(id, parentID, childID)
	rel.Type = entities.RelationAdoptedParent
	return rel
}

// spouseOf builds an active marriage edge.
func spouseOf(id, aID, bID string) entities.Relationship {
	return entities.Relationship{
		ID:        id,
		WorldID:   "w1",
		Person1ID: aID,
		Person2ID: bID,
		Type:      entities.RelationSpouse,
		Status:    entities.MarriageMarried,
	}
}

// issueCodes extracts the codes from a list of issues.
func issueCodes(issues []entities.Issue) []entities.IssueCode {
	codes := make([]entities.IssueCode, len(issues))
	for i, issue := range issues {
		codes[i] = issue.Code
	}
	return codes
}

// suggestionCodes extracts the codes from a list of suggestions.
func suggestionCodes(suggestions []entities.Suggestion) []entities.SuggestionCode {
	codes := make([]entities.SuggestionCode, len(suggestions))
	for i, s := range suggestions {
		codes[i] = s.Code
	}
	return codes
}
