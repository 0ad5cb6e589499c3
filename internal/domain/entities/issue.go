package entities

// IssueSeverity distinguishes blocking errors from acknowledgeable
// warnings.
type IssueSeverity string

const (
	SeverityError   IssueSeverity = "error"
	SeverityWarning IssueSeverity = "warning"
)

// IssueCode is a stable identifier for a validation finding, for
// programmatic handling and localization.
type IssueCode string

// Blocking issue codes.
const (
	IssueMissingField          IssueCode = "MISSING_FIELD"
	IssueSelfRelationship      IssueCode = "SELF_RELATIONSHIP"
	IssueDuplicateRelationship IssueCode = "DUPLICATE_RELATIONSHIP"
	IssueCircularAncestry      IssueCode = "CIRCULAR_ANCESTRY"
	IssueParentBornAfterChild  IssueCode = "PARENT_BORN_AFTER_CHILD"
	IssueParentDiedBeforeBirth IssueCode = "PARENT_DIED_BEFORE_BIRTH"
	IssueMarriageAfterDeath    IssueCode = "MARRIAGE_AFTER_DEATH"
	IssueDivorceBeforeMarriage IssueCode = "DIVORCE_BEFORE_MARRIAGE"
	IssueDeathBeforeBirth      IssueCode = "DEATH_BEFORE_BIRTH"
)

// Warning issue codes.
const (
	IssueParentTooYoung         IssueCode = "PARENT_TOO_YOUNG"
	IssueParentTooOld           IssueCode = "PARENT_TOO_OLD"
	IssueExtraParent            IssueCode = "EXTRA_PARENT"
	IssueTooManyChildren        IssueCode = "TOO_MANY_CHILDREN"
	IssueMarriageTooYoung       IssueCode = "MARRIAGE_TOO_YOUNG"
	IssueSpouseAgeGap           IssueCode = "SPOUSE_AGE_GAP"
	IssueAlreadyMarried         IssueCode = "ALREADY_MARRIED"
	IssueTwinBirthYearMismatch  IssueCode = "TWIN_BIRTHYEAR_MISMATCH"
	IssueExtremeLifespan        IssueCode = "EXTREME_LIFESPAN"
	IssuePossibleDuplicate      IssueCode = "POSSIBLE_DUPLICATE_PERSON"
)

// SuggestionCode identifies a cascade suggestion the caller may apply.
type SuggestionCode string

const (
	SuggestLinkCoParentSpouse   SuggestionCode = "LINK_COPARENT_SPOUSE"
	SuggestLinkSpouseToChildren SuggestionCode = "LINK_SPOUSE_TO_CHILDREN"
	SuggestMarkWidowed          SuggestionCode = "MARK_WIDOWED"
)

// Issue is a single data-quality finding. Issues are returned as values,
// never raised as errors.
type Issue struct {
	Code     IssueCode     `json:"code"`
	Severity IssueSeverity `json:"severity"`
	Message  string        `json:"message"`

	// PersonIDs lists the people the finding is about, when known.
	PersonIDs []string `json:"person_ids,omitempty"`
}

// Suggestion is an informational cascade hint ("also link the spouse as
// co-parent"). Suggestions never gate a write.
type Suggestion struct {
	Code    SuggestionCode `json:"code"`
	Message string         `json:"message"`

	// PersonIDs lists the people the suggested follow-up involves.
	PersonIDs []string `json:"person_ids,omitempty"`
}

// Verdict is the structured result of validating a candidate change.
// A candidate may be committed only when Errors is empty, and warnings
// require explicit acknowledgment.
type Verdict struct {
	Errors      []Issue      `json:"errors"`
	Warnings    []Issue      `json:"warnings"`
	Suggestions []Suggestion `json:"suggestions"`
}

// Blocked reports whether the candidate must not be committed.
func (v Verdict) Blocked() bool {
	return len(v.Errors) > 0
}

// Clean reports whether the verdict carries no findings at all.
func (v Verdict) Clean() bool {
	return len(v.Errors) == 0 && len(v.Warnings) == 0 && len(v.Suggestions) == 0
}

// BirthOrderResult is the cadency input computed for one person.
type BirthOrderResult struct {
	// Eligible reports whether the person counts for agnatic cadency
	// (recorded male and legitimate; adopted lines are excluded).
	Eligible bool `json:"eligible"`

	// Position is the 1-based rank among eligible same-parent siblings by
	// birth year, nil when the person's own birth year is unknown.
	Position *int `json:"position"`

	// EligibleSiblings counts all cadency-eligible children of the same
	// parent pair, the queried person included.
	EligibleSiblings int `json:"eligible_siblings"`
}
