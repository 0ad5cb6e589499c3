package parsers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONParser_Parse_ValidInput(t *testing.T) {
	input := `{
		"persons": [
			{"first_name": "Edmund", "last_name": "Crakehall", "gender": "male", "born": "1230"}
		],
		"relationships": [
			{"type": "parent", "person1": "Edmund Crakehall", "person2": "Cedric Crakehall"}
		]
	}`

	parser := &JSONParser{}
	result, err := parser.Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, result.Persons, 1)
	assert.Equal(t, "Edmund", result.Persons[0].FirstName)
	assert.Equal(t, "1230", result.Persons[0].Born)
	assert.Equal(t, 1, result.Persons[0].LineNum)

	require.Len(t, result.Relationships, 1)
	assert.Equal(t, "parent", result.Relationships[0].Type)
	assert.Equal(t, "Edmund Crakehall", result.Relationships[0].Person1)
}

func TestJSONParser_Parse_AllFields(t *testing.T) {
	input := `{
		"persons": [{
			"id": "p1",
			"first_name": "Edmund",
			"last_name": "Crakehall",
			"gender": "male",
			"legitimacy": "legitimate",
			"born": "1230-03-02",
			"died": "1290",
			"house": "Crakehall",
			"notes": "Lord of the eastern marches"
		}],
		"relationships": [{
			"id": "r1",
			"type": "spouse",
			"person1": "p1",
			"person2": "p2",
			"married": "1250-06",
			"divorced": "1260",
			"status": "divorced"
		}]
	}`

	parser := &JSONParser{}
	result, err := parser.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Persons, 1)
	require.Len(t, result.Relationships, 1)

	p := result.Persons[0]
	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, "1230-03-02", p.Born)
	assert.Equal(t, "1290", p.Died)
	assert.Equal(t, "Crakehall", p.House)
	assert.Equal(t, "Lord of the eastern marches", p.Notes)

	r := result.Relationships[0]
	assert.Equal(t, "spouse", r.Type)
	assert.Equal(t, "1250-06", r.Married)
	assert.Equal(t, "divorced", r.Status)
}

func TestJSONParser_Parse_EmptyPayload(t *testing.T) {
	parser := &JSONParser{}
	result, err := parser.Parse(strings.NewReader(`{}`))
	require.NoError(t, err)
	assert.Empty(t, result.Persons)
	assert.Empty(t, result.Relationships)
}

func TestJSONParser_Parse_InvalidInput(t *testing.T) {
	parser := &JSONParser{}
	_, err := parser.Parse(strings.NewReader("not json"))
	require.Error(t, err)
}

func TestCSVParser_Parse_ValidInput(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []RawPerson
	}{
		{
			name:  "required column only",
			input: "first_name\nEdmund\n",
			expected: []RawPerson{
				{FirstName: "Edmund", LineNum: 2},
			},
		},
		{
			name:     "empty CSV (header only)",
			input:    "first_name\n",
			expected: nil,
		},
		{
			name:  "columns in different order",
			input: "born,last_name,first_name\n1230,Crakehall,Edmund\n",
			expected: []RawPerson{
				{FirstName: "Edmund", LastName: "Crakehall", Born: "1230", LineNum: 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := &CSVParser{}
			result, err := parser.Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.Persons)
			assert.Empty(t, result.Relationships)
		})
	}
}

func TestCSVParser_Parse_AllColumns(t *testing.T) {
	input := "id,first_name,last_name,gender,legitimacy,born,died,house,notes\n" +
		"p1,Edmund,Crakehall,male,legitimate,1230-03,1290,Crakehall,Stern and fierce\n"

	parser := &CSVParser{}
	result, err := parser.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Persons, 1)

	p := result.Persons[0]
	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, "Edmund", p.FirstName)
	assert.Equal(t, "Crakehall", p.LastName)
	assert.Equal(t, "male", p.Gender)
	assert.Equal(t, "legitimate", p.Legitimacy)
	assert.Equal(t, "1230-03", p.Born)
	assert.Equal(t, "1290", p.Died)
	assert.Equal(t, "Stern and fierce", p.Notes)
}

func TestCSVParser_Parse_MissingRequiredColumn(t *testing.T) {
	parser := &CSVParser{}
	_, err := parser.Parse(strings.NewReader("last_name,born\nCrakehall,1230\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required column: first_name")
}

func TestForFormat(t *testing.T) {
	assert.IsType(t, &JSONParser{}, ForFormat("json"))
	assert.IsType(t, &CSVParser{}, ForFormat("csv"))
	assert.Nil(t, ForFormat("unknown"))
}

func TestForFile(t *testing.T) {
	assert.IsType(t, &JSONParser{}, ForFile("people.json"))
	assert.IsType(t, &CSVParser{}, ForFile("people.csv"))
	assert.Nil(t, ForFile("file.txt"))
	assert.Nil(t, ForFile("noextension"))
}
