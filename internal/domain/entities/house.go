package entities

import "time"

// House represents a noble house or family line that people belong to.
// Heraldic rendering is handled elsewhere; the record only carries the
// facts a renderer or the cadency calculator needs.
type House struct {
	ID          string    `json:"id"`
	WorldID     string    `json:"world_id"`
	Name        string    `json:"name"`
	Motto       string    `json:"motto,omitempty"`
	FoundedYear int       `json:"founded_year,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
