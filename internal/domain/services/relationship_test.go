package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/kin-core/internal/domain/entities"
	"github.com/ersonp/kin-core/internal/domain/genealogy"
	"github.com/ersonp/kin-core/internal/domain/mocks"
)

func TestRelationshipCreate(t *testing.T) {
	db := seededDB()
	margery := testPerson("margery", "Margery", "1232")
	db.Persons["margery"] = &margery
	svc := NewRelationshipService(db, genealogy.DefaultConfig())

	rel := entities.Relationship{
		WorldID:   "w1",
		Person1ID: "margery",
		Person2ID: "cedric",
		Type:      entities.RelationParent,
	}
	result, err := svc.Create(context.Background(), &rel, false)
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.True(t, result.Verdict.Clean())
	assert.NotEmpty(t, rel.ID)
	assert.Contains(t, db.Relationships, rel.ID)
}

func TestRelationshipCreateBlocked(t *testing.T) {
	db := seededDB()
	svc := NewRelationshipService(db, genealogy.DefaultConfig())

	rel := entities.Relationship{
		WorldID:   "w1",
		Person1ID: "edmund",
		Person2ID: "edmund",
		Type:      entities.RelationSpouse,
	}
	result, err := svc.Create(context.Background(), &rel, false)
	require.NoError(t, err)
	assert.False(t, result.Created)
	require.True(t, result.Verdict.Blocked())
	assert.Equal(t, entities.IssueSelfRelationship, result.Verdict.Errors[0].Code)
	assert.Len(t, db.Relationships, 1, "only the seeded edge remains")
}

func TestRelationshipCreateWarningsNeedAck(t *testing.T) {
	db := mocks.NewRelationalDB()
	young := testPerson("young", "Tom", "1250")
	child := testPerson("child", "Rob", "1260")
	db.Persons["young"] = &young
	db.Persons["child"] = &child
	svc := NewRelationshipService(db, genealogy.DefaultConfig())

	rel := entities.Relationship{
		WorldID:   "w1",
		Person1ID: "young",
		Person2ID: "child",
		Type:      entities.RelationParent,
	}

	result, err := svc.Create(context.Background(), &rel, false)
	require.NoError(t, err)
	assert.False(t, result.Created, "unacknowledged warnings hold the write")
	require.NotEmpty(t, result.Verdict.Warnings)
	assert.Equal(t, entities.IssueParentTooYoung, result.Verdict.Warnings[0].Code)
	assert.Empty(t, db.Relationships)

	acked, err := svc.Create(context.Background(), &rel, true)
	require.NoError(t, err)
	assert.True(t, acked.Created)
	assert.Contains(t, db.Relationships, rel.ID)
}

func TestRelationshipSpouseDefaultsToMarried(t *testing.T) {
	db := seededDB()
	margery := testPerson("margery", "Margery", "1232")
	db.Persons["margery"] = &margery
	svc := NewRelationshipService(db, genealogy.DefaultConfig())

	rel := entities.Relationship{
		WorldID:   "w1",
		Person1ID: "edmund",
		Person2ID: "margery",
		Type:      entities.RelationSpouse,
	}
	result, err := svc.Create(context.Background(), &rel, false)
	require.NoError(t, err)
	require.True(t, result.Created)
	assert.Equal(t, entities.MarriageMarried, rel.Status)
}

func TestRelationshipUpdateMarriage(t *testing.T) {
	db := seededDB()
	margery := testPerson("margery", "Margery", "1232")
	db.Persons["margery"] = &margery
	marriage := entities.Relationship{
		ID:        "m1",
		WorldID:   "w1",
		Person1ID: "edmund",
		Person2ID: "margery",
		Type:      entities.RelationSpouse,
		Status:    entities.MarriageMarried,
		Married:   testDate("1250"),
	}
	db.Relationships["m1"] = &marriage
	svc := NewRelationshipService(db, genealogy.DefaultConfig())

	result, err := svc.UpdateMarriage(context.Background(), "w1", "m1",
		entities.MarriageDivorced, entities.PartialDate{}, testDate("1255"), false)
	require.NoError(t, err)
	require.True(t, result.Created)
	assert.Equal(t, entities.MarriageDivorced, db.Relationships["m1"].Status)
	assert.Equal(t, "1255", db.Relationships["m1"].Divorced.String())
}

func TestRelationshipUpdateMarriageRejectsParentEdge(t *testing.T) {
	db := seededDB()
	svc := NewRelationshipService(db, genealogy.DefaultConfig())

	_, err := svc.UpdateMarriage(context.Background(), "w1", "r1",
		entities.MarriageDivorced, entities.PartialDate{}, entities.PartialDate{}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a marriage")
}

func TestRelationshipListByPerson(t *testing.T) {
	db := seededDB()
	svc := NewRelationshipService(db, genealogy.DefaultConfig())

	person, rels, err := svc.ListByPerson(context.Background(), "w1", "Cedric")
	require.NoError(t, err)
	assert.Equal(t, "cedric", person.ID)
	require.Len(t, rels, 1)
	assert.Equal(t, "r1", rels[0].ID)
}

func TestValidateWorldFlagsCorruptData(t *testing.T) {
	db := seededDB()
	// A duplicate of the seeded parent edge, as if imported unchecked.
	dup := parentRel("r2", "edmund", "cedric")
	db.Relationships["r2"] = &dup
	svc := NewRelationshipService(db, genealogy.DefaultConfig())

	verdict, err := svc.ValidateWorld(context.Background(), "w1")
	require.NoError(t, err)
	require.True(t, verdict.Blocked())
	for _, issue := range verdict.Errors {
		assert.Equal(t, entities.IssueDuplicateRelationship, issue.Code)
	}
}

func TestValidateWorldCleanWorld(t *testing.T) {
	db := seededDB()
	svc := NewRelationshipService(db, genealogy.DefaultConfig())

	verdict, err := svc.ValidateWorld(context.Background(), "w1")
	require.NoError(t, err)
	assert.False(t, verdict.Blocked())
	assert.Empty(t, verdict.Warnings)
}

func TestValidateWorldFlagsOrphanedEdges(t *testing.T) {
	db := seededDB()
	ghost := parentRel("r9", "edmund", "ghost")
	db.Relationships["r9"] = &ghost
	svc := NewRelationshipService(db, genealogy.DefaultConfig())

	verdict, err := svc.ValidateWorld(context.Background(), "w1")
	require.NoError(t, err)
	require.NotEmpty(t, verdict.Warnings)
	assert.Equal(t, entities.IssueMissingField, verdict.Warnings[len(verdict.Warnings)-1].Code)
}
