package genealogy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/kin-core/internal/domain/entities"
)

func TestBuildGraphAdjacency(t *testing.T) {
	people := []entities.Person{
		man("edmund", "Edmund", "1230"),
		woman("margery", "Margery", "1234"),
		man("cedric", "Cedric", "1255"),
	}
	rels := []entities.Relationship{
		parentOf("r1", "edmund", "cedric"),
		parentOf("r2", "margery", "cedric"),
		spouseOf("r3", "edmund", "margery"),
	}

	g := BuildGraph(people, rels)

	require.Equal(t, 3, g.PersonCount())
	assert.Equal(t, []ParentLink{
		{ParentID: "edmund", Kind: entities.ParentBiological},
		{ParentID: "margery", Kind: entities.ParentBiological},
	}, g.ParentsOf("cedric"))
	assert.Equal(t, []ChildLink{{ChildID: "cedric", Kind: entities.ParentBiological}}, g.ChildrenOf("edmund"))

	require.Len(t, g.SpousesOf("edmund"), 1)
	assert.Equal(t, "margery", g.SpousesOf("edmund")[0].SpouseID)
	require.Len(t, g.SpousesOf("margery"), 1)
	assert.Equal(t, "edmund", g.SpousesOf("margery")[0].SpouseID)

	assert.Empty(t, g.Orphaned())
}

func TestBuildGraphToleratesDanglingReferences(t *testing.T) {
	people := []entities.Person{man("edmund", "Edmund", "1230")}
	rels := []entities.Relationship{
		parentOf("r1", "edmund", "ghost"),
		spouseOf("r2", "nobody", "edmund"),
	}

	g := BuildGraph(people, rels)

	assert.Empty(t, g.ChildrenOf("edmund"))
	assert.Empty(t, g.SpousesOf("edmund"))
	require.Len(t, g.Orphaned(), 2)
	assert.Equal(t, "r1", g.Orphaned()[0].ID)
	assert.Equal(t, "r2", g.Orphaned()[1].ID)
}

func TestBuildGraphEmptyInputs(t *testing.T) {
	g := BuildGraph(nil, nil)
	assert.Equal(t, 0, g.PersonCount())
	assert.Empty(t, g.Orphaned())
	assert.Nil(t, Resolve(g, "a", "b"))
}

func TestBuildGraphOrderIndependent(t *testing.T) {
	people := []entities.Person{
		man("edmund", "Edmund", "1230"),
		woman("margery", "Margery", "1234"),
		man("cedric", "Cedric", "1255"),
		woman("alice", "Alice", "1257"),
	}
	rels := []entities.Relationship{
		parentOf("r1", "edmund", "cedric"),
		parentOf("r2", "margery", "cedric"),
		parentOf("r3", "edmund", "alice"),
		parentOf("r4", "margery", "alice"),
		spouseOf("r5", "edmund", "margery"),
	}

	reversedPeople := make([]entities.Person, len(people))
	reversedRels := make([]entities.Relationship, len(rels))
	for i := range people {
		reversedPeople[len(people)-1-i] = people[i]
	}
	for i := range rels {
		reversedRels[len(rels)-1-i] = rels[i]
	}

	g1 := BuildGraph(people, rels)
	g2 := BuildGraph(reversedPeople, reversedRels)

	for _, p := range people {
		assert.Equal(t, g1.ParentsOf(p.ID), g2.ParentsOf(p.ID), p.ID)
		assert.Equal(t, g1.ChildrenOf(p.ID), g2.ChildrenOf(p.ID), p.ID)
		assert.Equal(t, g1.SpousesOf(p.ID), g2.SpousesOf(p.ID), p.ID)
	}
	assert.Equal(t, g1.Relationships(), g2.Relationships())
}

func TestNoSelfAncestryInValidGraph(t *testing.T) {
	people := []entities.Person{
		man("a", "A", "1200"), man("b", "B", "1225"), man("c", "C", "1250"), man("d", "D", "1275"),
	}
	rels := []entities.Relationship{
		parentOf("r1", "a", "b"),
		parentOf("r2", "b", "c"),
		parentOf("r3", "c", "d"),
	}
	g := BuildGraph(people, rels)

	for _, p := range people {
		_, found := g.AncestorsOf(p.ID)[p.ID]
		assert.False(t, found, "person %s must not be their own ancestor", p.ID)
	}
}

func TestAncestorSearchIsBounded(t *testing.T) {
	// A chain of 15 generations; ascent must stop at MaxGenerations.
	var people []entities.Person
	var rels []entities.Relationship
	ids := make([]string, 16)
	for i := range ids {
		ids[i] = string(rune('a' + i))
		people = append(people, man(ids[i], ids[i], "1200"))
	}
	for i := 1; i < len(ids); i++ {
		rels = append(rels, parentOf("r"+ids[i], ids[i-1], ids[i]))
	}
	g := BuildGraph(people, rels)

	anc := g.AncestorsOf(ids[len(ids)-1])
	assert.Len(t, anc, MaxGenerations)
	assert.Nil(t, Resolve(g, ids[0], ids[len(ids)-1]), "relation beyond the bound is undiscoverable")
}

func TestAncestorSearchTerminatesOnCycle(t *testing.T) {
	people := []entities.Person{man("a", "A", ""), man("b", "B", ""), man("c", "C", "")}
	rels := []entities.Relationship{
		parentOf("r1", "b", "a"),
		parentOf("r2", "c", "b"),
		parentOf("r3", "a", "c"),
	}
	g := BuildGraph(people, rels)

	anc, cyclic := g.ancestorsOf("a")
	assert.True(t, cyclic)
	assert.NotEmpty(t, anc)
}

func TestIsAncestorOf(t *testing.T) {
	people := []entities.Person{man("a", "A", "1200"), man("b", "B", "1230"), man("c", "C", "1260")}
	rels := []entities.Relationship{
		parentOf("r1", "a", "b"),
		parentOf("r2", "b", "c"),
	}
	g := BuildGraph(people, rels)

	assert.True(t, g.IsAncestorOf("a", "c"))
	assert.False(t, g.IsAncestorOf("c", "a"))
	assert.False(t, g.IsAncestorOf("a", "a"))
}
