package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"expired-leads/models"
	"expired-leads/storage"
	"expired-leads/utils"
)

// ListingService handles single-entry listings outside bulk import.
type ListingService struct {
	store  storage.ListingStore
	scorer *ScoringEngine
	logger *utils.Logger
}

// NewListingService creates a ListingService backed by store.
func NewListingService(store storage.ListingStore, scorer *ScoringEngine, logger *utils.Logger) *ListingService {
	return &ListingService{store: store, scorer: scorer, logger: logger}
}

// Create scores and inserts l. Listings the owner already has at the same
// address and city are returned as warnings; they never block the insert.
func (s *ListingService) Create(ctx context.Context, l *models.Listing) (*models.Listing, []*models.Listing, error) {
	if strings.TrimSpace(l.Address) == "" {
		return nil, nil, errors.New("listing: address is required")
	}
	if l.UserID == "" {
		return nil, nil, errors.New("listing: owner is required")
	}

	var similar []*models.Listing
	if l.City != nil && *l.City != "" {
		found, err := s.store.FindByAddressAndCity(ctx, l.Address, *l.City, l.UserID)
		if err != nil {
			return nil, nil, fmt.Errorf("listing: duplicate check: %w", err)
		}
		similar = found
	}
	if len(similar) > 0 {
		s.logger.Warn("[listings] %s, %s already tracked %d time(s)", l.Address, *l.City, len(similar))
	}

	if l.Stage == "" {
		l.Stage = models.StageNew
	}
	if l.Status == "" {
		l.Status = lifecycleFor(l.ListingStatus)
	}
	if l.ListingStatus == "" {
		l.ListingStatus = models.StatusExpired
	}
	if l.ExpiryDate.IsZero() {
		l.ExpiryDate = startOfDay(s.scorer.Now())
	}
	l.Score = s.scorer.Score(l.ScoreInput())

	created, err := s.store.Insert(ctx, l)
	if err != nil {
		return nil, nil, fmt.Errorf("listing: insert: %w", err)
	}
	return created, similar, nil
}

// Rescore recomputes the score of listing id from its stored snapshot and
// saves it when it changed.
func (s *ListingService) Rescore(ctx context.Context, id string) (*models.Listing, error) {
	l, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing: rescore %s: %w", id, err)
	}

	score := s.scorer.Score(l.ScoreInput())
	if score == l.Score {
		return l, nil
	}
	l.Score = score
	if err := s.store.Update(ctx, l); err != nil {
		return nil, fmt.Errorf("listing: rescore %s: %w", id, err)
	}
	s.logger.Debug("[listings] Rescored %s → %d", id, score)
	return l, nil
}

// Breakdown explains the current score of listing id.
func (s *ListingService) Breakdown(ctx context.Context, id string) (models.ScoreBreakdown, error) {
	l, err := s.store.Get(ctx, id)
	if err != nil {
		return models.ScoreBreakdown{}, fmt.Errorf("listing: breakdown %s: %w", id, err)
	}
	return s.scorer.Breakdown(l.ScoreInput()), nil
}
