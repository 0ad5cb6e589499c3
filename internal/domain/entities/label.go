package entities

// LabelKind classifies a derived relationship between two people.
type LabelKind string

const (
	LabelSelf       LabelKind = "self"
	LabelParent     LabelKind = "parent"
	LabelChild      LabelKind = "child"
	LabelAncestor   LabelKind = "ancestor"   // grandparent and beyond
	LabelDescendant LabelKind = "descendant" // grandchild and beyond
	LabelSibling    LabelKind = "sibling"
	LabelCousin     LabelKind = "cousin"
	LabelAuncle     LabelKind = "auncle" // aunt/uncle (unequal distance, closer side is 1)
	LabelNibling    LabelKind = "nibling"
	LabelSpouse     LabelKind = "spouse"
)

// LabelModifier qualifies a relationship label.
type LabelModifier string

const (
	ModifierNone    LabelModifier = ""
	ModifierHalf    LabelModifier = "half"
	ModifierStep    LabelModifier = "step"
	ModifierInLaw   LabelModifier = "in-law"
	ModifierAdopted LabelModifier = "adopted"
)

// RelationshipLabel is the derived classification of person A relative to
// person B ("A is B's <Display>"). It is computed on demand and never
// persisted.
type RelationshipLabel struct {
	Kind LabelKind `json:"kind"`

	// Generations is the ancestor-chain length for lineal labels
	// (1 = parent/child, 2 = grandparent/grandchild, ...).
	Generations int `json:"generations,omitempty"`

	// Degree and Removal describe collateral relations: first cousins are
	// degree 1 removal 0; "second cousin once removed" is degree 2
	// removal 1.
	Degree  int `json:"degree,omitempty"`
	Removal int `json:"removal,omitempty"`

	Modifier LabelModifier `json:"modifier,omitempty"`

	// Display is the human-readable term, gendered by person A when A's
	// gender is recorded ("grandfather", "second cousin once removed",
	// "stepmother", "brother-in-law").
	Display string `json:"display"`
}
