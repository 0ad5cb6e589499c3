package genealogy

import (
	"sort"

	"github.com/ersonp/kin-core/internal/domain/entities"
)

// BirthOrder computes agnatic cadency input for one person: whether they
// are eligible at all, and their 1-based rank among the eligible children
// of the same parent pair ordered by birth year. Eligibility and
// orderability are independent: a person with no recorded birth year can
// be eligible yet hold no position.
func BirthOrder(g *Graph, personID string) entities.BirthOrderResult {
	person, ok := g.Person(personID)
	if !ok {
		return entities.BirthOrderResult{}
	}

	result := entities.BirthOrderResult{
		Eligible: cadencyEligible(person),
	}

	siblings := samePairSiblings(g, personID)

	var eligible []entities.Person
	for _, id := range siblings {
		if p, ok := g.Person(id); ok && cadencyEligible(p) {
			eligible = append(eligible, p)
		}
	}
	result.EligibleSiblings = len(eligible)

	if !result.Eligible || person.Born.IsZero() {
		return result
	}

	sort.Slice(eligible, func(i, j int) bool {
		bi, bj := eligible[i].Born, eligible[j].Born
		// Unknown birth years sort last; their order cannot be determined.
		if bi.IsZero() != bj.IsZero() {
			return !bi.IsZero()
		}
		if bi.Year != bj.Year {
			return bi.Year < bj.Year
		}
		if bi.Before(bj) != bj.Before(bi) {
			return bi.Before(bj)
		}
		return eligible[i].ID < eligible[j].ID
	})

	for i, p := range eligible {
		if p.ID == personID {
			pos := i + 1
			result.Position = &pos
			break
		}
	}
	return result
}

// cadencyEligible reports whether a person counts for agnatic cadency:
// recorded male and legitimate. Bastard and adopted lines are excluded.
func cadencyEligible(p entities.Person) bool {
	return p.Gender == entities.GenderMale && p.Legitimacy == entities.LegitimacyLegitimate
}

// samePairSiblings returns the ids of everyone sharing exactly the
// person's recorded parent set, the person included. A person with no
// recorded parents is their own only sibling.
func samePairSiblings(g *Graph, personID string) []string {
	parents := g.ParentIDSet(personID)
	if len(parents) == 0 {
		return []string{personID}
	}

	seen := map[string]bool{personID: true}
	out := []string{personID}
	for parentID := range parents {
		for _, link := range g.ChildrenOf(parentID) {
			if seen[link.ChildID] {
				continue
			}
			seen[link.ChildID] = true
			if sameIDSet(g.ParentIDSet(link.ChildID), parents) {
				out = append(out, link.ChildID)
			}
		}
	}
	sort.Strings(out)
	return out
}
