package genealogy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/kin-core/internal/domain/entities"
)

func TestValidateRelationshipMissingFields(t *testing.T) {
	g := BuildGraph(nil, nil)

	v := ValidateRelationship(g, entities.Relationship{}, DefaultConfig())
	require.True(t, v.Blocked())
	assert.Contains(t, issueCodes(v.Errors), entities.IssueMissingField)

	v = ValidateRelationship(g, entities.Relationship{Person1ID: "a", Person2ID: "b", Type: "friend"}, DefaultConfig())
	require.True(t, v.Blocked())
	assert.Contains(t, issueCodes(v.Errors), entities.IssueMissingField)
}

func TestValidateRelationshipSelf(t *testing.T) {
	g := BuildGraph([]entities.Person{man("a", "A", "1200")}, nil)

	v := ValidateRelationship(g, parentOf("", "a", "a"), DefaultConfig())
	require.True(t, v.Blocked())
	assert.Equal(t, []entities.IssueCode{entities.IssueSelfRelationship}, issueCodes(v.Errors))
}

func TestValidateRelationshipDuplicate(t *testing.T) {
	people := []entities.Person{man("a", "A", "1200"), man("b", "B", "1230")}
	g := BuildGraph(people, []entities.Relationship{parentOf("r1", "a", "b")})

	v := ValidateRelationship(g, parentOf("", "a", "b"), DefaultConfig())
	assert.Contains(t, issueCodes(v.Errors), entities.IssueDuplicateRelationship)

	// The reversed pair is a different (and separately invalid) edge, not
	// a duplicate.
	v = ValidateRelationship(g, parentOf("", "b", "a"), DefaultConfig())
	assert.NotContains(t, issueCodes(v.Errors), entities.IssueDuplicateRelationship)
}

func TestValidateRelationshipCircularAncestry(t *testing.T) {
	people := []entities.Person{man("a", "A", "1200"), man("b", "B", "1230"), man("c", "C", "1260")}
	rels := []entities.Relationship{
		parentOf("r1", "a", "b"),
		parentOf("r2", "b", "c"),
	}
	g := BuildGraph(people, rels)

	// Making a (c's grandparent) a child of c closes a cycle.
	v := ValidateRelationship(g, parentOf("", "c", "a"), DefaultConfig())
	require.True(t, v.Blocked())
	assert.Contains(t, issueCodes(v.Errors), entities.IssueCircularAncestry)
	assert.NotContains(t, issueCodes(v.Warnings), entities.IssueCircularAncestry)
}

func TestValidateRelationshipPreExistingCycle(t *testing.T) {
	people := []entities.Person{
		man("a", "A", ""), man("b", "B", ""), man("c", "C", ""), man("d", "D", ""),
	}
	rels := []entities.Relationship{
		parentOf("r1", "b", "a"),
		parentOf("r2", "c", "b"),
		parentOf("r3", "a", "c"),
	}
	g := BuildGraph(people, rels)

	// Any new edge touching the corrupted chain must surface the cycle
	// rather than hang, whatever the edge type.
	tests := []struct {
		name      string
		candidate entities.Relationship
	}{
		{"parent edge from cycle member", parentOf("", "a", "d")},
		{"parent edge onto cycle member", parentOf("", "d", "a")},
		{"spouse edge touching cycle member", spouseOf("", "a", "d")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ValidateRelationship(g, tt.candidate, DefaultConfig())
			require.True(t, v.Blocked())
			assert.Contains(t, issueCodes(v.Errors), entities.IssueCircularAncestry)
		})
	}

	// Edges between records outside the corrupted chain stay unaffected.
	v := ValidateRelationship(g, spouseOf("", "d", "e"), DefaultConfig())
	assert.NotContains(t, issueCodes(v.Errors), entities.IssueCircularAncestry)
}

func TestValidateRelationshipParentBornAfterChild(t *testing.T) {
	people := []entities.Person{man("edmund", "Edmund", "1230"), man("old", "Oldric", "1225")}
	g := BuildGraph(people, nil)

	v := ValidateRelationship(g, parentOf("", "edmund", "old"), DefaultConfig())
	require.True(t, v.Blocked())
	assert.Contains(t, issueCodes(v.Errors), entities.IssueParentBornAfterChild)
}

func TestValidateRelationshipParentDiedBeforeBirth(t *testing.T) {
	father := man("f", "Father", "1200")
	father.Died = date("1240")

	tests := []struct {
		name      string
		childBorn string
		blocked   bool
	}{
		{"posthumous child within a year", "1241", false},
		{"two years after death", "1242", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			child := man("c", "Child", tt.childBorn)
			g := BuildGraph([]entities.Person{father, child}, nil)

			v := ValidateRelationship(g, parentOf("", "f", "c"), DefaultConfig())
			if tt.blocked {
				assert.Contains(t, issueCodes(v.Errors), entities.IssueParentDiedBeforeBirth)
			} else {
				assert.Empty(t, v.Errors)
			}
		})
	}
}

func TestValidateRelationshipParentAgeWarnings(t *testing.T) {
	tests := []struct {
		name       string
		parentBorn string
		childBorn  string
		wantCode   entities.IssueCode
	}{
		{"parent aged ten", "1240", "1250", entities.IssueParentTooYoung},
		{"parent aged thirteen is fine", "1240", "1253", ""},
		{"parent aged ninety", "1160", "1250", entities.IssueParentTooOld},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			people := []entities.Person{man("p", "Parent", tt.parentBorn), man("c", "Child", tt.childBorn)}
			g := BuildGraph(people, nil)

			v := ValidateRelationship(g, parentOf("", "p", "c"), DefaultConfig())
			assert.Empty(t, v.Errors)
			if tt.wantCode == "" {
				assert.Empty(t, v.Warnings)
			} else {
				assert.Contains(t, issueCodes(v.Warnings), tt.wantCode)
			}
		})
	}
}

func TestValidateRelationshipExtraParent(t *testing.T) {
	people := []entities.Person{
		man("p1", "P1", "1200"), woman("p2", "P2", "1202"),
		man("p3", "P3", "1204"), man("c", "C", "1230"),
	}
	rels := []entities.Relationship{
		parentOf("r1", "p1", "c"),
		parentOf("r2", "p2", "c"),
	}
	g := BuildGraph(people, rels)

	v := ValidateRelationship(g, parentOf("", "p3", "c"), DefaultConfig())
	assert.Empty(t, v.Errors)
	assert.Contains(t, issueCodes(v.Warnings), entities.IssueExtraParent)
}

func TestValidateRelationshipTooManyChildren(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxChildren = 2

	people := []entities.Person{
		man("p", "Prolific", "1200"),
		man("c1", "C1", "1230"), man("c2", "C2", "1232"), man("c3", "C3", "1234"),
	}
	rels := []entities.Relationship{
		parentOf("r1", "p", "c1"),
		parentOf("r2", "p", "c2"),
	}
	g := BuildGraph(people, rels)

	v := ValidateRelationship(g, parentOf("", "p", "c3"), cfg)
	assert.Contains(t, issueCodes(v.Warnings), entities.IssueTooManyChildren)
}

func TestValidateRelationshipTwinYearMismatch(t *testing.T) {
	people := []entities.Person{
		man("p1", "P1", "1230"), woman("p2", "P2", "1232"),
		man("t1", "T1", "1260-12"), man("t2", "T2", "1261-01"),
	}
	rels := []entities.Relationship{
		parentOf("r1", "p1", "t1"), parentOf("r2", "p2", "t1"),
		parentOf("r3", "p2", "t2"),
	}
	g := BuildGraph(people, rels)

	// Completing t2's parent pair makes t1 and t2 full siblings born a
	// month apart across a year boundary.
	v := ValidateRelationship(g, parentOf("", "p1", "t2"), DefaultConfig())
	assert.Contains(t, issueCodes(v.Warnings), entities.IssueTwinBirthYearMismatch)
}

func TestValidateRelationshipCoParentSuggestion(t *testing.T) {
	people := []entities.Person{
		man("edmund", "Edmund", "1230"), woman("margery", "Margery", "1232"),
		man("outsider", "Osric", "1228"), man("c", "C", "1260"),
	}
	rels := []entities.Relationship{
		parentOf("r1", "edmund", "c"),
		spouseOf("r2", "edmund", "margery"),
	}
	g := BuildGraph(people, rels)

	v := ValidateRelationship(g, parentOf("", "outsider", "c"), DefaultConfig())
	require.Contains(t, suggestionCodes(v.Suggestions), entities.SuggestLinkCoParentSpouse)
}

func TestValidateSpouseMarriageAfterDeath(t *testing.T) {
	bride := woman("b", "Bride", "1230")
	groom := man("g", "Groom", "1228")
	groom.Died = date("1250")
	g := BuildGraph([]entities.Person{bride, groom}, nil)

	candidate := spouseOf("", "b", "g")
	candidate.Married = date("1255")

	v := ValidateRelationship(g, candidate, DefaultConfig())
	require.True(t, v.Blocked())
	assert.Contains(t, issueCodes(v.Errors), entities.IssueMarriageAfterDeath)
}

func TestValidateSpouseDivorceBeforeMarriage(t *testing.T) {
	g := BuildGraph([]entities.Person{woman("b", "B", "1230"), man("g", "G", "1228")}, nil)

	candidate := spouseOf("", "b", "g")
	candidate.Married = date("1250")
	candidate.Divorced = date("1248")

	v := ValidateRelationship(g, candidate, DefaultConfig())
	assert.Contains(t, issueCodes(v.Errors), entities.IssueDivorceBeforeMarriage)
}

func TestValidateSpouseWarnings(t *testing.T) {
	t.Run("marriage too young", func(t *testing.T) {
		g := BuildGraph([]entities.Person{woman("b", "B", "1240"), man("g", "G", "1228")}, nil)
		candidate := spouseOf("", "b", "g")
		candidate.Married = date("1252")

		v := ValidateRelationship(g, candidate, DefaultConfig())
		assert.Empty(t, v.Errors)
		assert.Contains(t, issueCodes(v.Warnings), entities.IssueMarriageTooYoung)
	})

	t.Run("spouse age gap", func(t *testing.T) {
		g := BuildGraph([]entities.Person{woman("b", "B", "1290"), man("g", "G", "1228")}, nil)

		v := ValidateRelationship(g, spouseOf("", "b", "g"), DefaultConfig())
		assert.Contains(t, issueCodes(v.Warnings), entities.IssueSpouseAgeGap)
	})

	t.Run("already married", func(t *testing.T) {
		people := []entities.Person{
			man("g", "G", "1228"), woman("w1", "W1", "1230"), woman("w2", "W2", "1235"),
		}
		g := BuildGraph(people, []entities.Relationship{spouseOf("r1", "g", "w1")})

		v := ValidateRelationship(g, spouseOf("", "g", "w2"), DefaultConfig())
		assert.Contains(t, issueCodes(v.Warnings), entities.IssueAlreadyMarried)
	})

	t.Run("divorced spouse can remarry", func(t *testing.T) {
		divorced := spouseOf("r1", "g", "w1")
		divorced.Status = entities.MarriageDivorced
		people := []entities.Person{
			man("g", "G", "1228"), woman("w1", "W1", "1230"), woman("w2", "W2", "1235"),
		}
		g := BuildGraph(people, []entities.Relationship{divorced})

		v := ValidateRelationship(g, spouseOf("", "g", "w2"), DefaultConfig())
		assert.NotContains(t, issueCodes(v.Warnings), entities.IssueAlreadyMarried)
	})
}

func TestValidateSpouseChildrenSuggestion(t *testing.T) {
	people := []entities.Person{
		man("g", "G", "1228"), woman("w", "W", "1235"), man("c", "C", "1250"),
	}
	g := BuildGraph(people, []entities.Relationship{parentOf("r1", "g", "c")})

	v := ValidateRelationship(g, spouseOf("", "g", "w"), DefaultConfig())
	assert.Contains(t, suggestionCodes(v.Suggestions), entities.SuggestLinkSpouseToChildren)
}

func TestValidateRelationshipUnknownPeopleTolerated(t *testing.T) {
	// A candidate may reference a person not yet persisted; date checks
	// are skipped, structural checks still run.
	g := BuildGraph([]entities.Person{man("a", "A", "1200")}, nil)

	v := ValidateRelationship(g, parentOf("", "a", "pending-id"), DefaultConfig())
	assert.Empty(t, v.Errors)
}

func TestValidatePersonDeathBeforeBirth(t *testing.T) {
	p := man("p", "P", "1250")
	p.Died = date("1240")
	g := BuildGraph(nil, nil)

	v := ValidatePerson(g, p, DefaultConfig())
	require.True(t, v.Blocked())
	assert.Contains(t, issueCodes(v.Errors), entities.IssueDeathBeforeBirth)
}

func TestValidatePersonExtremeLifespan(t *testing.T) {
	p := man("p", "Elder", "1000")
	p.Died = date("1250")
	g := BuildGraph(nil, nil)

	v := ValidatePerson(g, p, DefaultConfig())
	assert.Empty(t, v.Errors, "long lives warn, they do not block")
	assert.Contains(t, issueCodes(v.Warnings), entities.IssueExtremeLifespan)

	relaxed := DefaultConfig()
	relaxed.MaxLifespan = 500
	v = ValidatePerson(g, p, relaxed)
	assert.Empty(t, v.Warnings)
}

func TestValidatePersonNearDuplicateName(t *testing.T) {
	existing := man("p1", "Edmund", "1230")
	existing.LastName = "Crakehall"
	g := BuildGraph([]entities.Person{existing}, nil)

	dupe := man("p2", "Edmond", "1230")
	dupe.LastName = "Crakehall"

	v := ValidatePerson(g, dupe, DefaultConfig())
	assert.Contains(t, issueCodes(v.Warnings), entities.IssuePossibleDuplicate)

	unrelated := man("p3", "Walder", "1230")
	unrelated.LastName = "Frey"
	v = ValidatePerson(g, unrelated, DefaultConfig())
	assert.NotContains(t, issueCodes(v.Warnings), entities.IssuePossibleDuplicate)
}

func TestValidatePersonWidowSuggestion(t *testing.T) {
	husband := man("h", "H", "1230")
	wife := woman("w", "W", "1232")
	g := BuildGraph([]entities.Person{husband, wife}, []entities.Relationship{spouseOf("r1", "h", "w")})

	deceased := husband
	deceased.Died = date("1270")

	v := ValidatePerson(g, deceased, DefaultConfig())
	require.Contains(t, suggestionCodes(v.Suggestions), entities.SuggestMarkWidowed)
}
