package genealogy

import (
	"fmt"
	"strings"

	"github.com/ersonp/kin-core/internal/domain/entities"
)

// ordinals covers the cousin degrees reachable within MaxGenerations.
var ordinals = []string{"", "first", "second", "third", "fourth", "fifth", "sixth", "seventh", "eighth", "ninth"}

func ordinal(n int) string {
	if n > 0 && n < len(ordinals) {
		return ordinals[n]
	}
	return fmt.Sprintf("%dth", n)
}

func removalSuffix(removal int) string {
	switch removal {
	case 0:
		return ""
	case 1:
		return " once removed"
	case 2:
		return " twice removed"
	default:
		return fmt.Sprintf(" %d times removed", removal)
	}
}

// greats builds the "great-" chain for lineal terms beyond grandparent.
func greats(n int) string {
	return strings.Repeat("great-", n)
}

func pick(gender entities.Gender, male, female, neutral string) string {
	switch gender {
	case entities.GenderMale:
		return male
	case entities.GenderFemale:
		return female
	default:
		return neutral
	}
}

func ancestorTerm(gender entities.Gender, generations int) string {
	if generations == 1 {
		return pick(gender, "father", "mother", "parent")
	}
	return greats(generations-2) + pick(gender, "grandfather", "grandmother", "grandparent")
}

func descendantTerm(gender entities.Gender, generations int) string {
	if generations == 1 {
		return pick(gender, "son", "daughter", "child")
	}
	return greats(generations-2) + pick(gender, "grandson", "granddaughter", "grandchild")
}

func siblingTerm(gender entities.Gender) string {
	return pick(gender, "brother", "sister", "sibling")
}

func auncleTerm(gender entities.Gender, removal int) string {
	base := pick(gender, "uncle", "aunt", "uncle/aunt")
	if removal == 1 {
		return base
	}
	return greats(removal-2) + "grand" + base
}

func niblingTerm(gender entities.Gender, removal int) string {
	base := pick(gender, "nephew", "niece", "nephew/niece")
	if removal == 1 {
		return base
	}
	return greats(removal-2) + "grand" + base
}

func cousinTerm(degree, removal int) string {
	return ordinal(degree) + " cousin" + removalSuffix(removal)
}

func spouseTerm(gender entities.Gender) string {
	return pick(gender, "husband", "wife", "spouse")
}

// renderDisplay builds the human term for a classified relationship,
// gendered by person A's recorded gender with a neutral fallback.
func renderDisplay(kind entities.LabelKind, generations, degree, removal int, modifier entities.LabelModifier, gender entities.Gender) string {
	var base string
	switch kind {
	case entities.LabelSelf:
		return "self"
	case entities.LabelParent, entities.LabelAncestor:
		base = ancestorTerm(gender, generations)
		if modifier == entities.ModifierAdopted {
			return "adoptive " + base
		}
		if modifier == entities.ModifierStep {
			return "step" + base
		}
	case entities.LabelChild, entities.LabelDescendant:
		base = descendantTerm(gender, generations)
		if modifier == entities.ModifierAdopted {
			return "adopted " + base
		}
		if modifier == entities.ModifierStep {
			return "step" + base
		}
	case entities.LabelSibling:
		base = siblingTerm(gender)
		if modifier == entities.ModifierHalf {
			return "half-" + base
		}
		if modifier == entities.ModifierStep {
			return "step" + base
		}
	case entities.LabelAuncle:
		base = auncleTerm(gender, removal)
	case entities.LabelNibling:
		base = niblingTerm(gender, removal)
	case entities.LabelCousin:
		base = cousinTerm(degree, removal)
	case entities.LabelSpouse:
		base = spouseTerm(gender)
	default:
		base = string(kind)
	}

	if modifier == entities.ModifierInLaw {
		return base + "-in-law"
	}
	return base
}
