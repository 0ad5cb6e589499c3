package services

import (
	"time"

	"github.com/ersonp/kin-core/internal/domain/entities"
	"github.com/ersonp/kin-core/internal/domain/mocks"
)

func testDate(s string) entities.PartialDate {
	d, err := entities.ParsePartialDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testPerson(id, first string, born string) entities.Person {
	return entities.Person{
		ID:         id,
		WorldID:    "w1",
		FirstName:  first,
		Gender:     entities.GenderMale,
		Legitimacy: entities.LegitimacyLegitimate,
		Born:       testDate(born),
		CreatedAt:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func parentRel(id, parentID, childID string) entities.Relationship {
	return entities.Relationship{
		ID:        id,
		WorldID:   "w1",
		Person1ID: parentID,
		Person2ID: childID,
		Type:      entities.RelationParent,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// seededDB builds a mock store holding Edmund (1230) with son Cedric
// (1255).
func seededDB() *mocks.RelationalDB {
	db := mocks.NewRelationalDB()
	for _, p := range []entities.Person{
		testPerson("edmund", "Edmund", "1230"),
		testPerson("cedric", "Cedric", "1255"),
	} {
		cp := p
		db.Persons[p.ID] = &cp
	}
	rel := parentRel("r1", "edmund", "cedric")
	db.Relationships[rel.ID] = &rel
	return db
}
