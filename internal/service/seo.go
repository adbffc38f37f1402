package service

import (
	"context"

	"seo-ai/pkg/analyzer"
	"seo-ai/pkg/scorer"
)

// ScoredPage is analyzer output paired with its heuristic score.
type ScoredPage struct {
	Features *analyzer.Features `json:"features"`
	Score    scorer.Result      `json:"score"`
}

// SEOService runs the analyzer and the heuristic scorer together.
type SEOService struct {
	*analyzer.Service
}

func NewSEOService(a *analyzer.Service) *SEOService {
	return &SEOService{Service: a}
}

// AnalyzeAndScore analyzes in and attaches the heuristic score.
func (s *SEOService) AnalyzeAndScore(ctx context.Context, in analyzer.Input) (*ScoredPage, error) {
	features, err := s.Analyze(ctx, in)
	if err != nil {
		return nil, err
	}
	return &ScoredPage{Features: features, Score: scorer.ComputeOverallScore(features)}, nil
}
