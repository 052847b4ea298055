package models

import "time"

// ScoreInput is the snapshot the scoring engine reads.
type ScoreInput struct {
	ExpiryDate   time.Time
	Price        *float64
	PropertyType *PropertyType
	City         *string
	OwnerName    *string
	OwnerPhone   *string
	OwnerEmail   *string
}

// ScoreInput returns the scoring snapshot of a persisted listing.
func (l *Listing) ScoreInput() ScoreInput {
	return ScoreInput{
		ExpiryDate:   l.ExpiryDate,
		Price:        l.Price,
		PropertyType: l.PropertyType,
		City:         l.City,
		OwnerName:    l.OwnerName,
		OwnerPhone:   l.OwnerPhone,
		OwnerEmail:   l.OwnerEmail,
	}
}

// FactorScore is one line of a score breakdown.
type FactorScore struct {
	Name         string
	RawScore     int
	WeightPct    int
	Contribution float64
}

// ScoreBreakdown explains how a lead score was derived.
type ScoreBreakdown struct {
	Factors []FactorScore
	Total   int
}

// PreviewReport summarises a parsed import before the user confirms it.
type PreviewReport struct {
	TotalRows       int
	ValidRows       int
	InvalidRows     int
	ErrorsByReason  map[string]int
	RowsByCity      map[string]int
	RowsByType      map[string]int
	DuplicateMLS    []string
	AveragePrice    float64
	CancelProtected int
}
