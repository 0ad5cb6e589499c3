package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/kin-core/internal/domain/entities"
	"github.com/ersonp/kin-core/internal/domain/genealogy"
	"github.com/ersonp/kin-core/internal/domain/mocks"
	"github.com/ersonp/kin-core/internal/domain/services"
)

func newTestPersonHandler(db *mocks.RelationalDB) *PersonHandler {
	service := services.NewPersonService(db, &mocks.VectorDB{}, &mocks.Embedder{}, genealogy.DefaultConfig())
	return NewPersonHandler(service, db)
}

func TestPersonHandler_HandleCreate(t *testing.T) {
	db := mocks.NewRelationalDB()
	handler := newTestPersonHandler(db)

	result, err := handler.HandleCreate(context.Background(), "w1", PersonInput{
		FirstName:  "Edmund",
		LastName:   "Crakehall",
		Gender:     "male",
		Legitimacy: "legitimate",
		Born:       "1230-03",
		House:      "Crakehall",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.Person.ID)
	assert.Equal(t, entities.GenderMale, result.Person.Gender)
	assert.Equal(t, "1230-03", result.Person.Born.String())
	assert.Empty(t, result.Verdict.Errors)

	// The house is created on first reference.
	house, err := db.FindHouseByName(context.Background(), "w1", "Crakehall")
	require.NoError(t, err)
	require.NotNil(t, house)
	assert.Equal(t, house.ID, result.Person.HouseID)
}

func TestPersonHandler_HandleCreate_ReusesExistingHouse(t *testing.T) {
	db := mocks.NewRelationalDB()
	handler := newTestPersonHandler(db)

	first, err := handler.HandleCreate(context.Background(), "w1", PersonInput{FirstName: "Edmund", House: "Crakehall"})
	require.NoError(t, err)
	second, err := handler.HandleCreate(context.Background(), "w1", PersonInput{FirstName: "Cedric", House: "crakehall"})
	require.NoError(t, err)

	assert.Equal(t, first.Person.HouseID, second.Person.HouseID)
	assert.Len(t, db.Houses, 1)
}

func TestPersonHandler_HandleCreate_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		input   PersonInput
		wantErr string
	}{
		{
			name:    "missing first name",
			input:   PersonInput{LastName: "Crakehall"},
			wantErr: "first name is required",
		},
		{
			name:    "invalid gender",
			input:   PersonInput{FirstName: "Edmund", Gender: "wizard"},
			wantErr: "invalid gender",
		},
		{
			name:    "invalid legitimacy",
			input:   PersonInput{FirstName: "Edmund", Legitimacy: "royal"},
			wantErr: "invalid legitimacy",
		},
		{
			name:    "invalid birth date",
			input:   PersonInput{FirstName: "Edmund", Born: "the third age"},
			wantErr: "invalid birth date",
		},
		{
			name:    "invalid death date",
			input:   PersonInput{FirstName: "Edmund", Died: "13-01-01"},
			wantErr: "invalid death date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestPersonHandler(mocks.NewRelationalDB())
			_, err := handler.HandleCreate(context.Background(), "w1", tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPersonHandler_HandleUpdate_PartialInput(t *testing.T) {
	db := mocks.NewRelationalDB()
	handler := newTestPersonHandler(db)

	created, err := handler.HandleCreate(context.Background(), "w1", PersonInput{
		FirstName: "Edmund",
		LastName:  "Crakehall",
		Gender:    "male",
		Born:      "1230",
	})
	require.NoError(t, err)

	// Only the death date is supplied; everything else stays.
	updated, err := handler.HandleUpdate(context.Background(), "w1", created.Person.ID, PersonInput{Died: "1290"})
	require.NoError(t, err)

	assert.Equal(t, "Edmund", updated.Person.FirstName)
	assert.Equal(t, entities.GenderMale, updated.Person.Gender)
	assert.Equal(t, "1230", updated.Person.Born.String())
	assert.Equal(t, "1290", updated.Person.Died.String())
}

func TestPersonHandler_HandleUpdate_ByName(t *testing.T) {
	db := mocks.NewRelationalDB()
	handler := newTestPersonHandler(db)

	_, err := handler.HandleCreate(context.Background(), "w1", PersonInput{FirstName: "Edmund", LastName: "Crakehall"})
	require.NoError(t, err)

	updated, err := handler.HandleUpdate(context.Background(), "w1", "Edmund Crakehall", PersonInput{Notes: "Lord of the marches"})
	require.NoError(t, err)
	assert.Equal(t, "Lord of the marches", updated.Person.Notes)
}

func TestPersonHandler_HandleShow(t *testing.T) {
	db := mocks.NewRelationalDB()
	handler := newTestPersonHandler(db)

	created, err := handler.HandleCreate(context.Background(), "w1", PersonInput{FirstName: "Edmund"})
	require.NoError(t, err)
	db.Relationships["r1"] = &entities.Relationship{
		ID: "r1", WorldID: "w1", Person1ID: created.Person.ID, Person2ID: "other", Type: entities.RelationParent,
	}

	person, rels, err := handler.HandleShow(context.Background(), "w1", created.Person.ID)
	require.NoError(t, err)
	assert.Equal(t, "Edmund", person.FirstName)
	require.Len(t, rels, 1)
	assert.Equal(t, "r1", rels[0].ID)
}

func TestPersonHandler_HandleDelete(t *testing.T) {
	db := mocks.NewRelationalDB()
	handler := newTestPersonHandler(db)

	created, err := handler.HandleCreate(context.Background(), "w1", PersonInput{FirstName: "Edmund"})
	require.NoError(t, err)

	require.NoError(t, handler.HandleDelete(context.Background(), "w1", "Edmund"))
	assert.Empty(t, db.Persons)

	_, err = handler.HandleUpdate(context.Background(), "w1", created.Person.ID, PersonInput{Notes: "gone"})
	require.Error(t, err)
}
