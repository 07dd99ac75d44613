package storage

import "malunita/internal/mind"

// Storage satisfies mind.Store.
var _ mind.Store = (*Storage)(nil)

// LoadEmotions returns persisted emotional state for userID, if any.
func (s *Storage) LoadEmotions(userID string) (*mind.EmotionalMemoryState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.getOrCreateRecord(userID)
	if err != nil || rec.Emotions == nil {
		return nil, false
	}
	e := *rec.Emotions
	return &e, true
}

// SaveEmotions persists emotional state for userID.
func (s *Storage) SaveEmotions(userID string, state *mind.EmotionalMemoryState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.getOrCreateRecord(userID)
	if err != nil {
		return err
	}
	e := *state
	rec.Emotions = &e
	return s.putRecord(userID, rec)
}

// AddBondPoints adds delta to the engagement score and returns the new
// total. The score never drops below zero.
func (s *Storage) AddBondPoints(userID string, delta float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.getOrCreateRecord(userID)
	if err != nil {
		return 0, err
	}
	rec.BondScore += delta
	if rec.BondScore < 0 {
		rec.BondScore = 0
	}
	if err := s.putRecord(userID, rec); err != nil {
		return 0, err
	}
	return rec.BondScore, nil
}

// BondScore returns the accumulated engagement score.
func (s *Storage) BondScore(userID string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.getOrCreateRecord(userID)
	if err != nil {
		return 0, err
	}
	return rec.BondScore, nil
}

// OrbStage returns the persisted evolution stage, if set.
func (s *Storage) OrbStage(userID string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.getOrCreateRecord(userID)
	if err != nil {
		return 0, false
	}
	return rec.OrbStage, rec.OrbStage >= 1
}

// SetOrbStage persists the evolution stage.
func (s *Storage) SetOrbStage(userID string, stage int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.getOrCreateRecord(userID)
	if err != nil {
		return err
	}
	rec.OrbStage = stage
	return s.putRecord(userID, rec)
}
