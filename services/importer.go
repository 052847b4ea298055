package services

import (
	"context"
	"fmt"

	"expired-leads/models"
	"expired-leads/storage"
	"expired-leads/utils"
)

const reasonDuplicate = "duplicate MLS number"

// Importer inserts reviewed candidates into the listing store.
type Importer struct {
	store  storage.ListingStore
	scorer *ScoringEngine
	logger *utils.Logger
}

// NewImporter creates an Importer writing to store.
func NewImporter(store storage.ListingStore, scorer *ScoringEngine, logger *utils.Logger) *Importer {
	return &Importer{store: store, scorer: scorer, logger: logger}
}

// ImportSelected inserts every valid candidate for ownerID, one at a time so
// each duplicate check sees the rows inserted before it. A failed row is
// counted and skipped; earlier inserts are kept.
func (im *Importer) ImportSelected(ctx context.Context, candidates []*models.ParsedListing, ownerID string) models.ImportResult {
	var res models.ImportResult

	for _, c := range candidates {
		if !c.Valid {
			res.Skipped++
			continue
		}
		if err := ctx.Err(); err != nil {
			im.fail(&res, c, err.Error())
			continue
		}

		if c.MLSNumber != "" {
			existing, err := im.store.FindByMLSAndOwner(ctx, c.MLSNumber, ownerID)
			if err != nil {
				im.fail(&res, c, fmt.Sprintf("duplicate check: %v", err))
				continue
			}
			if existing != nil {
				im.fail(&res, c, reasonDuplicate)
				continue
			}
		}

		listing := im.newListing(c, ownerID)
		if _, err := im.store.Insert(ctx, listing); err != nil {
			im.fail(&res, c, err.Error())
			continue
		}
		res.SuccessCount++
	}

	im.logger.Info("[importer] Imported %d listings for %s (failed %d, skipped %d)",
		res.SuccessCount, ownerID, res.FailedCount, res.Skipped)
	return res
}

func (im *Importer) fail(res *models.ImportResult, c *models.ParsedListing, reason string) {
	im.logger.Warn("[importer] %s (%s) not imported: %s", c.MLSNumber, c.Address, reason)
	res.FailedCount++
	res.Failures = append(res.Failures, models.ImportFailure{
		MLSNumber: c.MLSNumber,
		Address:   c.Address,
		Reason:    reason,
	})
}

// newListing builds the listing to insert. Bulk imports are assumed freshly
// expired, so today stands in for the expiry date. Coordinates stay at 0,0
// until geocoded.
func (im *Importer) newListing(c *models.ParsedListing, ownerID string) *models.Listing {
	l := &models.Listing{
		UserID:              ownerID,
		MLSNumber:           c.MLSNumber,
		Address:             c.Address,
		Neighborhood:        c.Neighborhood,
		City:                c.City,
		Board:               c.Board,
		Price:               c.Price,
		DaysOnMarket:        c.DaysOnMarket,
		Bedrooms:            c.Bedrooms,
		YearBuilt:           c.YearBuilt,
		LotSize:             c.LotSize,
		PropertyType:        c.PropertyType,
		ListingStatus:       c.Status,
		CancelProtectedDate: c.CancelProtectedDate,
		Status:              lifecycleFor(c.Status),
		ExpiryDate:          startOfDay(im.scorer.Now()),
		OwnerName:           c.OwnerName,
		OwnerPhone:          c.OwnerPhone,
		OwnerEmail:          c.OwnerEmail,
		Stage:               models.StageNew,
	}
	l.Score = im.scorer.Score(l.ScoreInput())
	return l
}

func lifecycleFor(s models.ListingStatus) models.LifecycleStatus {
	if s == models.StatusTerminated {
		return models.LifecycleTerminated
	}
	return models.LifecycleExpired
}
