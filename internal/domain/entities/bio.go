package entities

// PersonBio is the free-text biography of a person, stored alongside its
// embedding for semantic search.
type PersonBio struct {
	PersonID  string    `json:"person_id"`
	WorldID   string    `json:"world_id"`
	Name      string    `json:"name"`
	Bio       string    `json:"bio"`
	Embedding []float32 `json:"-"`
}

// BioMatch is a semantic search hit against stored biographies.
type BioMatch struct {
	PersonID string  `json:"person_id"`
	Name     string  `json:"name"`
	Bio      string  `json:"bio"`
	Score    float32 `json:"score"`
}
