package genealogy

import (
	"sort"

	"github.com/ersonp/kin-core/internal/domain/entities"
)

// Path describes one common-ancestor route between two people.
type Path struct {
	CommonAncestorID string
	DistA            int
	DistB            int
	Adopted          bool
}

// PathLabel pairs a path with its classification, for callers auditing
// every discoverable route between two people.
type PathLabel struct {
	Path  Path
	Label entities.RelationshipLabel
}

// Resolve classifies person A relative to person B ("A is B's X") and
// returns nil when no relationship is discoverable within the search
// bound. Callers render nil as "no known relationship", not as a failure.
//
// Blood relationships win over marriage-derived ones. When several common
// ancestors tie at the same summed distance, the one in the most recent
// shared generation is preferred; surviving ties classify identically, so
// the closest label is returned and ResolveAll exposes the full set.
func Resolve(g *Graph, idA, idB string) *entities.RelationshipLabel {
	if idA == idB {
		// Callers should treat a self lookup as a caller bug, but it gets
		// a label rather than a silent nil.
		return &entities.RelationshipLabel{Kind: entities.LabelSelf, Display: "self"}
	}

	personA, _ := g.Person(idA)
	gender := personA.Gender

	if paths := commonPaths(g, idA, idB); len(paths) > 0 {
		label := classifyPath(g, idA, idB, paths[0], gender)
		return &label
	}

	// Direct marriage.
	for _, link := range g.SpousesOf(idA) {
		if link.SpouseID == idB {
			return &entities.RelationshipLabel{
				Kind:    entities.LabelSpouse,
				Display: renderDisplay(entities.LabelSpouse, 0, 0, 0, entities.ModifierNone, gender),
			}
		}
	}

	if label := stepSibling(g, idA, idB, gender); label != nil {
		return label
	}

	// A married into B's blood family: resolve A's spouse against B and
	// qualify the result. A spouse of B's parent is a step-parent rather
	// than an in-law.
	for _, link := range g.SpousesOf(idA) {
		paths := commonPaths(g, link.SpouseID, idB)
		if len(paths) == 0 {
			continue
		}
		blood := classifyPath(g, link.SpouseID, idB, paths[0], gender)
		switch blood.Kind {
		case entities.LabelParent, entities.LabelAncestor:
			blood.Modifier = entities.ModifierStep
		default:
			blood.Modifier = entities.ModifierInLaw
		}
		blood.Display = renderDisplay(blood.Kind, blood.Generations, blood.Degree, blood.Removal, blood.Modifier, gender)
		return &blood
	}

	// A is blood kin of B's spouse: the classic parent-in-law and
	// sibling-in-law cases. A child of B's spouse is B's stepchild.
	for _, link := range g.SpousesOf(idB) {
		paths := commonPaths(g, idA, link.SpouseID)
		if len(paths) == 0 {
			continue
		}
		blood := classifyPath(g, idA, link.SpouseID, paths[0], gender)
		switch blood.Kind {
		case entities.LabelChild, entities.LabelDescendant:
			blood.Modifier = entities.ModifierStep
		default:
			blood.Modifier = entities.ModifierInLaw
		}
		blood.Display = renderDisplay(blood.Kind, blood.Generations, blood.Degree, blood.Removal, blood.Modifier, gender)
		return &blood
	}

	return nil
}

// ResolveAll returns one classified label per discoverable common
// ancestor, ordered closest-first. People with several recorded parents
// can surface multiple paths; Resolve reports only the first.
func ResolveAll(g *Graph, idA, idB string) []PathLabel {
	if idA == idB {
		return nil
	}
	personA, _ := g.Person(idA)

	paths := commonPaths(g, idA, idB)
	out := make([]PathLabel, 0, len(paths))
	for _, p := range paths {
		out = append(out, PathLabel{
			Path:  p,
			Label: classifyPath(g, idA, idB, p, personA.Gender),
		})
	}
	return out
}

// commonPaths finds every common ancestor of A and B within the search
// bound, ordered by summed distance, then by most recent shared
// generation, then by ancestor id for determinism.
func commonPaths(g *Graph, idA, idB string) []Path {
	ancA, _ := g.ancestorsOf(idA)
	ancB, _ := g.ancestorsOf(idB)

	var paths []Path
	for id, a := range ancA {
		b, ok := ancB[id]
		if !ok {
			continue
		}
		paths = append(paths, Path{
			CommonAncestorID: id,
			DistA:            a.dist,
			DistB:            b.dist,
			Adopted:          a.adopted || b.adopted,
		})
	}

	sort.Slice(paths, func(i, j int) bool {
		si, sj := paths[i].DistA+paths[i].DistB, paths[j].DistA+paths[j].DistB
		if si != sj {
			return si < sj
		}
		mi, mj := max(paths[i].DistA, paths[i].DistB), max(paths[j].DistA, paths[j].DistB)
		if mi != mj {
			return mi < mj
		}
		return paths[i].CommonAncestorID < paths[j].CommonAncestorID
	})

	// A shared parent makes every shared ancestor above that parent
	// redundant: the sibling path dominates the cousin path implied
	// further up. Distinct lines (say half-siblings who are also cousins
	// through the other parent) survive the pruning.
	kept := paths[:0]
	for _, p := range paths {
		dominated := false
		for _, q := range kept {
			if g.IsAncestorOf(p.CommonAncestorID, q.CommonAncestorID) {
				dominated = true
				break
			}
		}
		if !dominated {
			kept = append(kept, p)
		}
	}
	return kept
}

// classifyPath turns one common-ancestor path into a relationship label
// for A relative to B.
func classifyPath(g *Graph, idA, idB string, p Path, gender entities.Gender) entities.RelationshipLabel {
	label := entities.RelationshipLabel{}

	switch {
	case p.DistA == 0:
		// A is the common ancestor: a direct forebear of B.
		label.Generations = p.DistB
		if p.DistB == 1 {
			label.Kind = entities.LabelParent
		} else {
			label.Kind = entities.LabelAncestor
		}
		if p.Adopted {
			label.Modifier = entities.ModifierAdopted
		}

	case p.DistB == 0:
		label.Generations = p.DistA
		if p.DistA == 1 {
			label.Kind = entities.LabelChild
		} else {
			label.Kind = entities.LabelDescendant
		}
		if p.Adopted {
			label.Modifier = entities.ModifierAdopted
		}

	case p.DistA == 1 && p.DistB == 1:
		label.Kind = entities.LabelSibling
		if sharedParents(g, idA, idB) == 1 {
			label.Modifier = entities.ModifierHalf
		} else if p.Adopted {
			label.Modifier = entities.ModifierAdopted
		}

	case p.DistA == 1:
		// A is a sibling of one of B's ancestors.
		label.Kind = entities.LabelAuncle
		label.Removal = p.DistB - 1

	case p.DistB == 1:
		label.Kind = entities.LabelNibling
		label.Removal = p.DistA - 1

	default:
		label.Kind = entities.LabelCousin
		label.Degree = min(p.DistA, p.DistB) - 1
		label.Removal = p.DistA - p.DistB
		if label.Removal < 0 {
			label.Removal = -label.Removal
		}
	}

	label.Display = renderDisplay(label.Kind, label.Generations, label.Degree, label.Removal, label.Modifier, gender)
	return label
}

// sharedParents counts parent ids A and B have in common.
func sharedParents(g *Graph, idA, idB string) int {
	setB := g.ParentIDSet(idB)
	n := 0
	for _, link := range g.ParentsOf(idA) {
		if setB[link.ParentID] {
			n++
		}
	}
	return n
}

// stepSibling reports A and B as step-siblings when they share no parent
// but a parent of A is married to a parent of B.
func stepSibling(g *Graph, idA, idB string, gender entities.Gender) *entities.RelationshipLabel {
	if sharedParents(g, idA, idB) > 0 {
		return nil
	}
	setB := g.ParentIDSet(idB)
	for _, pa := range g.ParentsOf(idA) {
		for _, link := range g.SpousesOf(pa.ParentID) {
			if setB[link.SpouseID] {
				return &entities.RelationshipLabel{
					Kind:     entities.LabelSibling,
					Modifier: entities.ModifierStep,
					Display:  renderDisplay(entities.LabelSibling, 0, 0, 0, entities.ModifierStep, gender),
				}
			}
		}
	}
	return nil
}
