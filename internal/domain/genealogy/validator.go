package genealogy

import (
	"fmt"
	"sort"

	"github.com/agnivade/levenshtein"

	"github.com/ersonp/kin-core/internal/domain/entities"
)

// nearDuplicateDistance is the edit distance at or under which two person
// names are flagged as a possible duplicate record.
const nearDuplicateDistance = 2

// minLengthForFuzzyMatch keeps short names from fuzzy-matching everything.
const minLengthForFuzzyMatch = 6

// ValidateRelationship checks a candidate relationship against the
// current snapshot and returns a structured verdict. It never fails:
// malformed candidates produce blocking issues, not errors. The candidate
// may reference a person missing from the snapshot (not yet persisted),
// in which case checks needing that person's record are skipped.
func ValidateRelationship(g *Graph, candidate entities.Relationship, cfg Config) entities.Verdict {
	v := &verdictBuilder{}

	if candidate.Person1ID == "" || candidate.Person2ID == "" {
		v.errorf(entities.IssueMissingField, nil, "candidate relationship must reference two people")
		return v.verdict()
	}
	if _, ok := entities.ParseRelationType(string(candidate.Type)); !ok {
		v.errorf(entities.IssueMissingField, nil, "candidate relationship has no valid type")
		return v.verdict()
	}
	if candidate.Person1ID == candidate.Person2ID {
		v.errorf(entities.IssueSelfRelationship, []string{candidate.Person1ID},
			"a person cannot be in a relationship with themselves")
		return v.verdict()
	}

	if g.HasRelationship(candidate.Person1ID, candidate.Person2ID, candidate.Type) {
		v.errorf(entities.IssueDuplicateRelationship, []string{candidate.Person1ID, candidate.Person2ID},
			"an identical %s relationship already exists", candidate.Type)
	}

	// The stored graph may already contain an ancestry cycle around either
	// endpoint. Any new edge there, spousal included, gets rejected rather
	// than classified on top of corrupt records.
	_, cyclic1 := g.ancestorsOf(candidate.Person1ID)
	_, cyclic2 := g.ancestorsOf(candidate.Person2ID)
	if cyclic1 || cyclic2 {
		v.errorf(entities.IssueCircularAncestry, []string{candidate.Person1ID, candidate.Person2ID},
			"existing records around %s and %s contain an ancestry cycle",
			personName(g, candidate.Person1ID), personName(g, candidate.Person2ID))
	}

	switch candidate.Type {
	case entities.RelationParent, entities.RelationAdoptedParent:
		validateParentEdge(g, candidate, cfg, v)
	case entities.RelationSpouse:
		validateSpouseEdge(g, candidate, cfg, v)
	}

	// Temporal sanity of both endpoints, whatever the edge type.
	for _, id := range []string{candidate.Person1ID, candidate.Person2ID} {
		if p, ok := g.Person(id); ok {
			validateLifespan(p, cfg, v)
		}
	}

	return v.verdict()
}

// validateParentEdge applies the parent-specific rules. Person1 is the
// proposed parent, Person2 the child.
func validateParentEdge(g *Graph, candidate entities.Relationship, cfg Config, v *verdictBuilder) {
	parentID, childID := candidate.Person1ID, candidate.Person2ID
	pair := []string{parentID, childID}

	// Reachability from the proposed parent back up to the proposed
	// child. Finding the child there means the edge would close a cycle.
	// Pre-existing cycles around either endpoint are caught for all edge
	// types in ValidateRelationship.
	ancOfParent, _ := g.ancestorsOf(parentID)
	if _, ok := ancOfParent[childID]; ok {
		v.errorf(entities.IssueCircularAncestry, pair,
			"%s is an ancestor of %s; this edge would make them their own descendant",
			personName(g, childID), personName(g, parentID))
	}

	parent, haveParent := g.Person(parentID)
	child, haveChild := g.Person(childID)

	if haveParent && haveChild && !parent.Born.IsZero() && !child.Born.IsZero() {
		if child.Born.Before(parent.Born) {
			v.errorf(entities.IssueParentBornAfterChild, pair,
				"%s was born %s, after child %s (%s)",
				parent.FullName(), parent.Born, child.FullName(), child.Born)
		} else {
			age := parent.Born.YearsUntil(child.Born)
			if age < cfg.MinParentAge {
				v.warnf(entities.IssueParentTooYoung, pair,
					"%s would have been %d at the birth of %s (minimum %d)",
					parent.FullName(), age, child.FullName(), cfg.MinParentAge)
			}
			if age > cfg.MaxParentAge {
				v.warnf(entities.IssueParentTooOld, pair,
					"%s would have been %d at the birth of %s (maximum %d)",
					parent.FullName(), age, child.FullName(), cfg.MaxParentAge)
			}
		}
	}

	// A death up to a year before the birth still allows a posthumous
	// child.
	if haveParent && haveChild && !parent.Died.IsZero() && !child.Born.IsZero() {
		if parent.Died.Year+1 < child.Born.Year {
			v.errorf(entities.IssueParentDiedBeforeBirth, pair,
				"%s died %s, more than a year before the birth of %s (%s)",
				parent.FullName(), parent.Died, child.FullName(), child.Born)
		}
	}

	existingParents := g.ParentsOf(childID)
	if len(existingParents) >= 2 {
		v.warnf(entities.IssueExtraParent, pair,
			"%s already has %d recorded parents", personName(g, childID), len(existingParents))
	}

	if n := len(g.ChildrenOf(parentID)); n >= cfg.MaxChildren {
		v.warnf(entities.IssueTooManyChildren, pair,
			"%s would have %d recorded children (threshold %d)",
			personName(g, parentID), n+1, cfg.MaxChildren)
	}

	validateTwins(g, candidate, v)

	// Cascade: a sole existing parent with a spouse probably shares this
	// child.
	if len(existingParents) == 1 && existingParents[0].ParentID != parentID {
		other := existingParents[0].ParentID
		for _, link := range g.SpousesOf(other) {
			if link.SpouseID == parentID {
				continue
			}
			v.suggestf(entities.SuggestLinkCoParentSpouse, []string{link.SpouseID, childID},
				"%s is married to %s's other parent; consider linking them as co-parent",
				personName(g, link.SpouseID), personName(g, childID))
		}
	}
}

// validateTwins flags full siblings whose recorded births are close
// enough to be twins but land in different calendar years.
func validateTwins(g *Graph, candidate entities.Relationship, v *verdictBuilder) {
	parentID, childID := candidate.Person1ID, candidate.Person2ID
	child, ok := g.Person(childID)
	if !ok || child.Born.IsZero() {
		return
	}

	prospective := g.ParentIDSet(childID)
	prospective[parentID] = true

	for _, link := range g.ChildrenOf(parentID) {
		if link.ChildID == childID {
			continue
		}
		sibSet := g.ParentIDSet(link.ChildID)
		if !sameIDSet(prospective, sibSet) {
			continue
		}
		sib, ok := g.Person(link.ChildID)
		if !ok || sib.Born.IsZero() {
			continue
		}
		gap := child.Born.MonthsUntil(sib.Born)
		if gap < 0 {
			gap = -gap
		}
		if gap > 0 && gap < 9 && child.Born.Year != sib.Born.Year {
			v.warnf(entities.IssueTwinBirthYearMismatch, []string{childID, link.ChildID},
				"%s (%s) and %s (%s) look like twins but are recorded in different years",
				child.FullName(), child.Born, sib.FullName(), sib.Born)
		}
	}
}

// validateSpouseEdge applies the marriage-specific rules.
func validateSpouseEdge(g *Graph, candidate entities.Relationship, cfg Config, v *verdictBuilder) {
	pair := []string{candidate.Person1ID, candidate.Person2ID}

	if !candidate.Married.IsZero() && !candidate.Divorced.IsZero() && candidate.Divorced.Before(candidate.Married) {
		v.errorf(entities.IssueDivorceBeforeMarriage, pair,
			"divorce date %s precedes marriage date %s", candidate.Divorced, candidate.Married)
	}

	p1, have1 := g.Person(candidate.Person1ID)
	p2, have2 := g.Person(candidate.Person2ID)

	for _, p := range []struct {
		person entities.Person
		known  bool
	}{{p1, have1}, {p2, have2}} {
		if !p.known {
			continue
		}
		if !candidate.Married.IsZero() && !p.person.Died.IsZero() && p.person.Died.Before(candidate.Married) {
			v.errorf(entities.IssueMarriageAfterDeath, []string{p.person.ID},
				"%s died %s, before the marriage date %s", p.person.FullName(), p.person.Died, candidate.Married)
		}
		if !candidate.Married.IsZero() && !p.person.Born.IsZero() {
			age := p.person.Born.YearsUntil(candidate.Married)
			if age >= 0 && age < cfg.MinMarriageAge {
				v.warnf(entities.IssueMarriageTooYoung, []string{p.person.ID},
					"%s would marry at %d (minimum %d)", p.person.FullName(), age, cfg.MinMarriageAge)
			}
		}
	}

	if have1 && have2 && !p1.Born.IsZero() && !p2.Born.IsZero() {
		gap := p1.Born.YearsUntil(p2.Born)
		if gap < 0 {
			gap = -gap
		}
		if gap > cfg.MaxSpouseAgeGap {
			v.warnf(entities.IssueSpouseAgeGap, pair,
				"spouses' births are %d years apart (threshold %d)", gap, cfg.MaxSpouseAgeGap)
		}
	}

	if candidate.ActiveMarriage() {
		for _, id := range pair {
			for _, link := range g.SpousesOf(id) {
				if link.SpouseID == otherOf(pair, id) {
					continue
				}
				if link.Relationship.ActiveMarriage() {
					v.warnf(entities.IssueAlreadyMarried, []string{id, link.SpouseID},
						"%s is already in an active marriage with %s",
						personName(g, id), personName(g, link.SpouseID))
				}
			}
		}
	}

	// Cascade: a new spouse of someone with children likely relates to
	// those children too.
	for _, id := range pair {
		if children := g.ChildrenOf(id); len(children) > 0 {
			spouse := otherOf(pair, id)
			v.suggestf(entities.SuggestLinkSpouseToChildren, append([]string{spouse}, childIDs(children)...),
				"%s has %d recorded children; consider linking %s to them",
				personName(g, id), len(children), personName(g, spouse))
		}
	}
}

// ValidatePerson checks a new or edited person record against the
// snapshot: internal date sanity, extreme lifespans, near-duplicate names
// and the widowhood cascade when a death date is recorded.
func ValidatePerson(g *Graph, p entities.Person, cfg Config) entities.Verdict {
	v := &verdictBuilder{}

	if p.FirstName == "" {
		v.errorf(entities.IssueMissingField, []string{p.ID}, "person has no first name")
	}

	validateLifespan(p, cfg, v)
	validateDuplicateNames(g, p, v)

	if !p.Died.IsZero() {
		for _, link := range g.SpousesOf(p.ID) {
			if !link.Relationship.ActiveMarriage() {
				continue
			}
			spouse, ok := g.Person(link.SpouseID)
			if ok && spouse.Died.IsZero() {
				v.suggestf(entities.SuggestMarkWidowed, []string{link.SpouseID},
					"%s survives %s; consider marking them widowed", spouse.FullName(), p.FullName())
			}
		}
	}

	return v.verdict()
}

// validateLifespan applies the person-level date rules shared by both
// entry points.
func validateLifespan(p entities.Person, cfg Config, v *verdictBuilder) {
	if p.Born.IsZero() || p.Died.IsZero() {
		return
	}
	if p.Died.Before(p.Born) {
		v.errorf(entities.IssueDeathBeforeBirth, []string{p.ID},
			"%s is recorded dying %s, before being born %s", p.FullName(), p.Died, p.Born)
		return
	}
	if span := p.Born.YearsUntil(p.Died); span > cfg.MaxLifespan {
		v.warnf(entities.IssueExtremeLifespan, []string{p.ID},
			"%s lived %d years (threshold %d)", p.FullName(), span, cfg.MaxLifespan)
	}
}

// validateDuplicateNames hunts for records that look like the same person
// entered twice.
func validateDuplicateNames(g *Graph, p entities.Person, v *verdictBuilder) {
	name := p.NormalizedName()
	if name == "" {
		return
	}

	var matches []entities.Person
	for id, other := range g.persons {
		if id == p.ID {
			continue
		}
		otherName := other.NormalizedName()
		if otherName == name {
			matches = append(matches, other)
			continue
		}
		if len(name) >= minLengthForFuzzyMatch && len(otherName) >= minLengthForFuzzyMatch &&
			levenshtein.ComputeDistance(name, otherName) <= nearDuplicateDistance {
			matches = append(matches, other)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })

	for _, m := range matches {
		v.warnf(entities.IssuePossibleDuplicate, []string{p.ID, m.ID},
			"%q is very close to existing person %q; possible duplicate record", p.FullName(), m.FullName())
	}
}

// verdictBuilder accumulates findings for one validation call.
type verdictBuilder struct {
	errors      []entities.Issue
	warnings    []entities.Issue
	suggestions []entities.Suggestion
}

func (v *verdictBuilder) errorf(code entities.IssueCode, personIDs []string, format string, args ...any) {
	v.errors = append(v.errors, entities.Issue{
		Code:      code,
		Severity:  entities.SeverityError,
		Message:   fmt.Sprintf(format, args...),
		PersonIDs: personIDs,
	})
}

func (v *verdictBuilder) warnf(code entities.IssueCode, personIDs []string, format string, args ...any) {
	v.warnings = append(v.warnings, entities.Issue{
		Code:      code,
		Severity:  entities.SeverityWarning,
		Message:   fmt.Sprintf(format, args...),
		PersonIDs: personIDs,
	})
}

func (v *verdictBuilder) suggestf(code entities.SuggestionCode, personIDs []string, format string, args ...any) {
	v.suggestions = append(v.suggestions, entities.Suggestion{
		Code:      code,
		Message:   fmt.Sprintf(format, args...),
		PersonIDs: personIDs,
	})
}

func (v *verdictBuilder) verdict() entities.Verdict {
	return entities.Verdict{
		Errors:      v.errors,
		Warnings:    v.warnings,
		Suggestions: v.suggestions,
	}
}

// personName returns a display name for messages, falling back to the id
// for people missing from the snapshot.
func personName(g *Graph, id string) string {
	if p, ok := g.Person(id); ok {
		return p.FullName()
	}
	return id
}

func sameIDSet(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for id := range a {
		if !b[id] {
			return false
		}
	}
	return true
}

func otherOf(pair []string, id string) string {
	if pair[0] == id {
		return pair[1]
	}
	return pair[0]
}

func childIDs(links []ChildLink) []string {
	ids := make([]string, len(links))
	for i, l := range links {
		ids[i] = l.ChildID
	}
	return ids
}
