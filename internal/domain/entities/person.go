package entities

import (
	"strings"
	"time"
)

// Gender is the recorded gender of a person, used only to pick gendered
// relationship terms ("father" vs "mother"); unknown falls back to
// neutral terms.
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderOther   Gender = "other"
	GenderUnknown Gender = "unknown"
)

// Legitimacy is a person's birth status, which gates agnatic cadency.
type Legitimacy string

const (
	LegitimacyLegitimate Legitimacy = "legitimate"
	LegitimacyBastard    Legitimacy = "bastard"
	LegitimacyAdopted    Legitimacy = "adopted"
	LegitimacyUnknown    Legitimacy = "unknown"
)

// Person represents an individual in a world's genealogical record.
type Person struct {
	ID         string      `json:"id"`
	WorldID    string      `json:"world_id"`
	FirstName  string      `json:"first_name"`
	LastName   string      `json:"last_name,omitempty"`
	Gender     Gender      `json:"gender"`
	Legitimacy Legitimacy  `json:"legitimacy"`
	Born       PartialDate `json:"born,omitempty"`
	Died       PartialDate `json:"died,omitempty"`
	HouseID    string      `json:"house_id,omitempty"`
	Notes      string      `json:"notes,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// FullName returns the display name ("Edmund Crakehall" or just "Edmund").
func (p Person) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// NormalizedName returns the lowercase full name for case-insensitive
// matching and duplicate detection.
func (p Person) NormalizedName() string {
	return NormalizeName(p.FullName())
}

// NormalizeName converts a name to lowercase for case-insensitive matching.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ParseGender converts a user-supplied string to a Gender, defaulting to
// unknown for empty input.
func ParseGender(s string) (Gender, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return GenderMale, true
	case "female", "f":
		return GenderFemale, true
	case "other":
		return GenderOther, true
	case "", "unknown":
		return GenderUnknown, true
	default:
		return "", false
	}
}

// ParseLegitimacy converts a user-supplied string to a Legitimacy,
// defaulting to unknown for empty input.
func ParseLegitimacy(s string) (Legitimacy, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "legitimate":
		return LegitimacyLegitimate, true
	case "bastard":
		return LegitimacyBastard, true
	case "adopted":
		return LegitimacyAdopted, true
	case "", "unknown":
		return LegitimacyUnknown, true
	default:
		return "", false
	}
}
