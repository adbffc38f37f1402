package scorer

import "sync"

// ModelStore holds the active predictor and may be swapped at runtime.
type ModelStore struct {
	mu sync.RWMutex
	p  *Predictor
}

// NewModelStore starts with p, which may be nil.
func NewModelStore(p *Predictor) *ModelStore {
	return &ModelStore{p: p}
}

// Set swaps the active predictor.
func (s *ModelStore) Set(p *Predictor) {
	s.mu.Lock()
	s.p = p
	s.mu.Unlock()
}

func (s *ModelStore) Get() *Predictor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.p
}

// PredictPage scores a page with the active predictor.
func (s *ModelStore) PredictPage(signals PageSignals, page PageContent) (*Prediction, error) {
	p := s.Get()
	if p == nil {
		return nil, ErrNoModel
	}
	pred := p.PredictPage(signals, page)
	return &pred, nil
}
