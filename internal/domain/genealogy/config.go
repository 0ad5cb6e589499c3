package genealogy

// Config holds the biological and temporal thresholds the validator
// applies. Values are plain numbers so fantasy settings can relax rules
// (long-lived species, dynastic child betrothals). The zero value is not
// usable; start from DefaultConfig.
type Config struct {
	// MinParentAge and MaxParentAge bound a parent's age at a child's
	// birth; violations warn rather than block.
	MinParentAge int `yaml:"min_parent_age"`
	MaxParentAge int `yaml:"max_parent_age"`

	// MaxChildren warns when one person accumulates more recorded
	// children than this.
	MaxChildren int `yaml:"max_children"`

	// MinMarriageAge warns when someone marries younger than this.
	MinMarriageAge int `yaml:"min_marriage_age"`

	// MaxSpouseAgeGap warns when spouses' birth years differ by more.
	MaxSpouseAgeGap int `yaml:"max_spouse_age_gap"`

	// MaxLifespan flags lifespans above this as extreme instead of
	// blocking them.
	MaxLifespan int `yaml:"max_lifespan"`
}

// DefaultConfig returns the thresholds for a baseline human setting.
func DefaultConfig() Config {
	return Config{
		MinParentAge:    12,
		MaxParentAge:    80,
		MaxChildren:     20,
		MinMarriageAge:  14,
		MaxSpouseAgeGap: 50,
		MaxLifespan:     200,
	}
}
