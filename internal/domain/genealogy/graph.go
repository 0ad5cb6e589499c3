// Package genealogy implements the derived-fact engine over a world's
// person and relationship records: adjacency construction, relationship
// labeling, consistency validation and birth-order computation for
// heraldic cadency. Every operation is a pure, synchronous function over
// an immutable snapshot; callers rebuild the graph after any record
// change rather than mutating it in place.
package genealogy

import (
	"sort"

	"github.com/ersonp/kin-core/internal/domain/entities"
)

// MaxGenerations bounds ancestor ascent. The bound guarantees termination
// on corrupt cyclic data and keeps resolution cheap on deep trees.
const MaxGenerations = 10

// ParentLink is one edge from a person up to a recorded parent.
type ParentLink struct {
	ParentID string
	Kind     entities.ParentKind
}

// ChildLink is one edge from a person down to a recorded child.
type ChildLink struct {
	ChildID string
	Kind    entities.ParentKind
}

// SpouseLink is one spouse edge seen from one side.
type SpouseLink struct {
	SpouseID     string
	Relationship entities.Relationship
}

// Graph holds the in-memory adjacency built from a flat record snapshot.
// It is immutable after BuildGraph returns.
type Graph struct {
	persons       map[string]entities.Person
	parents       map[string][]ParentLink
	children      map[string][]ChildLink
	spouses       map[string][]SpouseLink
	relationships []entities.Relationship
	orphaned      []entities.Relationship
}

// BuildGraph constructs adjacency maps from person and relationship
// records. Construction is deterministic and order-independent, never
// fails, and tolerates malformed data: a relationship referencing an
// unknown person id is omitted from the maps and reported via Orphaned.
func BuildGraph(people []entities.Person, relationships []entities.Relationship) *Graph {
	g := &Graph{
		persons:  make(map[string]entities.Person, len(people)),
		parents:  make(map[string][]ParentLink),
		children: make(map[string][]ChildLink),
		spouses:  make(map[string][]SpouseLink),
	}

	for _, p := range people {
		g.persons[p.ID] = p
	}

	for _, rel := range relationships {
		_, ok1 := g.persons[rel.Person1ID]
		_, ok2 := g.persons[rel.Person2ID]
		if !ok1 || !ok2 {
			g.orphaned = append(g.orphaned, rel)
			continue
		}
		g.relationships = append(g.relationships, rel)

		switch rel.Type {
		case entities.RelationParent, entities.RelationAdoptedParent:
			kind := rel.ParentKind()
			g.parents[rel.Person2ID] = append(g.parents[rel.Person2ID], ParentLink{ParentID: rel.Person1ID, Kind: kind})
			g.children[rel.Person1ID] = append(g.children[rel.Person1ID], ChildLink{ChildID: rel.Person2ID, Kind: kind})
		case entities.RelationSpouse:
			g.spouses[rel.Person1ID] = append(g.spouses[rel.Person1ID], SpouseLink{SpouseID: rel.Person2ID, Relationship: rel})
			g.spouses[rel.Person2ID] = append(g.spouses[rel.Person2ID], SpouseLink{SpouseID: rel.Person1ID, Relationship: rel})
		default:
			g.orphaned = append(g.orphaned, rel)
		}
	}

	// Sort adjacency so identical inputs in any order build structurally
	// equal graphs.
	for _, links := range g.parents {
		sort.Slice(links, func(i, j int) bool { return links[i].ParentID < links[j].ParentID })
	}
	for _, links := range g.children {
		sort.Slice(links, func(i, j int) bool { return links[i].ChildID < links[j].ChildID })
	}
	for _, links := range g.spouses {
		sort.Slice(links, func(i, j int) bool { return links[i].SpouseID < links[j].SpouseID })
	}
	sort.Slice(g.orphaned, func(i, j int) bool { return g.orphaned[i].ID < g.orphaned[j].ID })
	sort.Slice(g.relationships, func(i, j int) bool { return g.relationships[i].ID < g.relationships[j].ID })

	return g
}

// Person returns the person record for an id.
func (g *Graph) Person(id string) (entities.Person, bool) {
	p, ok := g.persons[id]
	return p, ok
}

// PersonCount returns the number of people in the snapshot.
func (g *Graph) PersonCount() int {
	return len(g.persons)
}

// ParentsOf returns the recorded parent links of a person. More than two
// parents is unusual but tolerated.
func (g *Graph) ParentsOf(id string) []ParentLink {
	return g.parents[id]
}

// ChildrenOf returns the recorded child links of a person.
func (g *Graph) ChildrenOf(id string) []ChildLink {
	return g.children[id]
}

// SpousesOf returns the spouse links of a person, past marriages included.
func (g *Graph) SpousesOf(id string) []SpouseLink {
	return g.spouses[id]
}

// Relationships returns every well-formed relationship in the snapshot.
func (g *Graph) Relationships() []entities.Relationship {
	return g.relationships
}

// Orphaned returns relationships that reference a person missing from the
// snapshot, for diagnostic use.
func (g *Graph) Orphaned() []entities.Relationship {
	return g.orphaned
}

// ParentIDSet returns the set of parent ids of a person.
func (g *Graph) ParentIDSet(id string) map[string]bool {
	links := g.parents[id]
	set := make(map[string]bool, len(links))
	for _, l := range links {
		set[l.ParentID] = true
	}
	return set
}

// HasRelationship reports whether an equivalent relationship already
// exists: same ordered pair and type for parent edges, either order for
// spouse edges.
func (g *Graph) HasRelationship(person1ID, person2ID string, relType entities.RelationType) bool {
	for _, rel := range g.relationships {
		if rel.Type != relType {
			continue
		}
		if rel.Person1ID == person1ID && rel.Person2ID == person2ID {
			return true
		}
		if relType == entities.RelationSpouse && rel.Person1ID == person2ID && rel.Person2ID == person1ID {
			return true
		}
	}
	return false
}

// ancestor holds what the bounded ascent learned about one ancestor.
type ancestor struct {
	// dist is the generational distance from the start person
	// (0 = self, 1 = parent, ...). When several paths reach the same
	// ancestor the shortest wins.
	dist int
	// adopted is true when the shortest path crossed an adopted edge.
	adopted bool
}

// ancestorsOf walks parent edges breadth-first from start, bounded at
// MaxGenerations with a visited set so corrupt cyclic data terminates.
// The returned map includes start itself at distance 0. cyclic is true
// when the walk re-encountered start above itself, which only happens on
// a pre-existing ancestry cycle.
func (g *Graph) ancestorsOf(start string) (result map[string]ancestor, cyclic bool) {
	result = map[string]ancestor{start: {dist: 0}}
	frontier := []string{start}

	for depth := 1; depth <= MaxGenerations && len(frontier) > 0; depth++ {
		var next []string
		for _, id := range frontier {
			viaAdopted := result[id].adopted
			for _, link := range g.parents[id] {
				if link.ParentID == start {
					cyclic = true
					continue
				}
				if _, seen := result[link.ParentID]; seen {
					continue
				}
				result[link.ParentID] = ancestor{
					dist:    depth,
					adopted: viaAdopted || link.Kind == entities.ParentAdopted,
				}
				next = append(next, link.ParentID)
			}
		}
		frontier = next
	}
	return result, cyclic
}

// AncestorsOf returns every ancestor reachable within MaxGenerations,
// keyed by person id with the generational distance as value. The person
// itself is not included.
func (g *Graph) AncestorsOf(id string) map[string]int {
	anc, _ := g.ancestorsOf(id)
	out := make(map[string]int, len(anc))
	for aid, info := range anc {
		if aid == id {
			continue
		}
		out[aid] = info.dist
	}
	return out
}

// IsAncestorOf reports whether ancestorID appears in the bounded ancestor
// set of personID.
func (g *Graph) IsAncestorOf(ancestorID, personID string) bool {
	if ancestorID == personID {
		return false
	}
	anc, _ := g.ancestorsOf(personID)
	_, ok := anc[ancestorID]
	return ok
}
