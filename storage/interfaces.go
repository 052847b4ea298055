package storage

import (
	"context"
	"errors"

	"expired-leads/models"
)

// ErrNotFound is returned when a listing id does not exist.
var ErrNotFound = errors.New("listing not found")

// ListingStore is the interface any listing backend must satisfy.
type ListingStore interface {
	// FindByMLSAndOwner returns nil, nil when the owner has no listing with mls.
	FindByMLSAndOwner(ctx context.Context, mls, ownerID string) (*models.Listing, error)
	FindByAddressAndCity(ctx context.Context, address, city, ownerID string) ([]*models.Listing, error)
	Insert(ctx context.Context, l *models.Listing) (*models.Listing, error)
	Get(ctx context.Context, id string) (*models.Listing, error)
	Update(ctx context.Context, l *models.Listing) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f models.ListingFilter) ([]*models.Listing, error)
	Close() error
}

// PreviewWriter persists parsed candidates for offline review.
type PreviewWriter interface {
	WritePreview(candidates []*models.ParsedListing) error
	Close() error
}
