package entities

import (
	"strings"
	"time"
)

// RelationType defines the kind of recorded relationship between two people.
// Parent edges are directed (Person1 is the parent); spouse edges are
// symmetric.
type RelationType string

const (
	RelationParent        RelationType = "parent"
	RelationAdoptedParent RelationType = "adopted-parent"
	RelationSpouse        RelationType = "spouse"
)

// ParentKind distinguishes biological from adoptive parent edges so the
// resolver and validator handle both exhaustively.
type ParentKind int

const (
	ParentBiological ParentKind = iota
	ParentAdopted
)

// MarriageStatus is the current state of a spouse relationship.
type MarriageStatus string

const (
	MarriageMarried  MarriageStatus = "married"
	MarriageDivorced MarriageStatus = "divorced"
	MarriageWidowed  MarriageStatus = "widowed"
	MarriageAnnulled MarriageStatus = "annulled"
)

// Relationship represents a recorded connection between two people.
// For parent and adopted-parent edges Person1 is the parent and Person2
// the child. For spouse edges the order carries no meaning.
type Relationship struct {
	ID        string       `json:"id"`
	WorldID   string       `json:"world_id"`
	Person1ID string       `json:"person1_id"`
	Person2ID string       `json:"person2_id"`
	Type      RelationType `json:"type"`

	// Spouse-only fields.
	Married  PartialDate    `json:"married,omitempty"`
	Divorced PartialDate    `json:"divorced,omitempty"`
	Status   MarriageStatus `json:"status,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// IsParental reports whether the relationship is a parent edge of either
// kind.
func (r Relationship) IsParental() bool {
	return r.Type == RelationParent || r.Type == RelationAdoptedParent
}

// ParentKind returns the parent edge kind. Only meaningful when
// IsParental is true.
func (r Relationship) ParentKind() ParentKind {
	if r.Type == RelationAdoptedParent {
		return ParentAdopted
	}
	return ParentBiological
}

// ActiveMarriage reports whether a spouse edge represents a marriage that
// has not ended by divorce, widowhood or annulment.
func (r Relationship) ActiveMarriage() bool {
	if r.Type != RelationSpouse {
		return false
	}
	switch r.Status {
	case MarriageDivorced, MarriageWidowed, MarriageAnnulled:
		return false
	}
	return true
}

// ParseRelationType validates and converts a string to a RelationType.
func ParseRelationType(s string) (RelationType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "parent":
		return RelationParent, true
	case "adopted-parent", "adopted_parent":
		return RelationAdoptedParent, true
	case "spouse":
		return RelationSpouse, true
	default:
		return "", false
	}
}

// ParseMarriageStatus validates and converts a string to a MarriageStatus,
// defaulting to married for empty input.
func ParseMarriageStatus(s string) (MarriageStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "married":
		return MarriageMarried, true
	case "divorced":
		return MarriageDivorced, true
	case "widowed":
		return MarriageWidowed, true
	case "annulled":
		return MarriageAnnulled, true
	default:
		return "", false
	}
}
