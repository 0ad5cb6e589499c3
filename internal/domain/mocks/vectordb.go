package mocks

import (
	"context"

	"github.com/ersonp/kin-core/internal/domain/entities"
)

// VectorDB is a mock implementation of ports.VectorDB.
type VectorDB struct {
	Bios []entities.PersonBio
	Err  error

	// Call tracking
	SaveBioCallCount      int
	SaveBioBatchCallCount int
	SaveBioBatchLastBios  []entities.PersonBio
	DeleteCallCount       int
	DeleteLastPersonID    string
}

// SaveBio stores a single biography.
func (m *VectorDB) SaveBio(ctx context.Context, bio entities.PersonBio) error {
	m.SaveBioCallCount++
	if m.Err != nil {
		return m.Err
	}
	for i := range m.Bios {
		if m.Bios[i].PersonID == bio.PersonID {
			m.Bios[i] = bio
			return nil
		}
	}
	m.Bios = append(m.Bios, bio)
	return nil
}

// SaveBioBatch stores multiple biographies.
func (m *VectorDB) SaveBioBatch(ctx context.Context, bios []entities.PersonBio) error {
	m.SaveBioBatchCallCount++
	m.SaveBioBatchLastBios = bios
	if m.Err != nil {
		return m.Err
	}
	for _, bio := range bios {
		if err := m.SaveBio(ctx, bio); err != nil {
			return err
		}
	}
	return nil
}

// Search returns the stored biographies of a world, up to limit, with a
// fixed descending score.
func (m *VectorDB) Search(ctx context.Context, worldID string, embedding []float32, limit int) ([]entities.BioMatch, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var matches []entities.BioMatch
	for i := range m.Bios {
		if m.Bios[i].WorldID != worldID {
			continue
		}
		if len(matches) >= limit {
			break
		}
		matches = append(matches, entities.BioMatch{
			PersonID: m.Bios[i].PersonID,
			Name:     m.Bios[i].Name,
			Bio:      m.Bios[i].Bio,
			Score:    1.0 - float32(len(matches))*0.1,
		})
	}
	return matches, nil
}

// Delete removes a biography by person ID.
func (m *VectorDB) Delete(ctx context.Context, personID string) error {
	m.DeleteCallCount++
	m.DeleteLastPersonID = personID
	if m.Err != nil {
		return m.Err
	}
	for i := range m.Bios {
		if m.Bios[i].PersonID == personID {
			m.Bios = append(m.Bios[:i], m.Bios[i+1:]...)
			break
		}
	}
	return nil
}
