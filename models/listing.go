package models

import "time"

// RawImportRow is one line of an MLS export keyed by the vendor's column
// header. Header spellings vary between boards and export tools.
type RawImportRow map[string]string

// PropertyType is the canonical dwelling classification.
type PropertyType string

const (
	PropertyHouse     PropertyType = "house"
	PropertyTownhouse PropertyType = "townhouse"
	PropertyRowHome   PropertyType = "row_home"
	PropertyCondo     PropertyType = "condo"
	PropertyMobile    PropertyType = "mobile"
)

// ListingStatus is the status reported by the MLS export.
type ListingStatus string

const (
	StatusExpired         ListingStatus = "expired"
	StatusTerminated      ListingStatus = "terminated"
	StatusCancelProtected ListingStatus = "cancel_protected"
)

// LifecycleStatus is the current state of a persisted listing.
type LifecycleStatus string

const (
	LifecycleExpired    LifecycleStatus = "expired"
	LifecycleTerminated LifecycleStatus = "terminated"
	LifecycleActive     LifecycleStatus = "active"
)

// StageNew is the pipeline stage every freshly imported listing starts in.
const StageNew = "new"

// Location is a resolved board/city/neighborhood triple.
type Location struct {
	Board        string
	City         string
	Neighborhood string
}

// ParsedListing is a candidate produced from a RawImportRow. It is shown to
// the user for review and only imported when selected and Valid.
type ParsedListing struct {
	MLSNumber    string
	Address      string
	Neighborhood string
	Price        *float64
	DaysOnMarket *int
	Bedrooms     *int
	YearBuilt    *int
	LotSize      *float64
	PropertyType *PropertyType
	Status       ListingStatus
	// CancelProtectedDate is only set when Status is StatusCancelProtected.
	CancelProtectedDate *time.Time
	City                *string
	Board               *string

	OwnerName  *string
	OwnerPhone *string
	OwnerEmail *string

	Valid bool
	Error *string
}

// Listing is the persisted lead owned by a single user.
type Listing struct {
	ID                  string
	UserID              string
	MLSNumber           string
	Address             string
	Neighborhood        string
	City                *string
	Board               *string
	Price               *float64
	DaysOnMarket        *int
	Bedrooms            *int
	YearBuilt           *int
	LotSize             *float64
	PropertyType        *PropertyType
	ListingStatus       ListingStatus
	CancelProtectedDate *time.Time
	Status              LifecycleStatus
	ExpiryDate          time.Time
	OwnerName           *string
	OwnerPhone          *string
	OwnerEmail          *string
	Score               int
	Stage               string
	Latitude            float64
	Longitude           float64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ListingFilter narrows a store query. Zero values are ignored.
type ListingFilter struct {
	UserID   string
	Status   LifecycleStatus
	Stage    string
	City     string
	MinScore int
	Limit    uint64
}

// ImportResult is the aggregate outcome of a batch import.
type ImportResult struct {
	SuccessCount int
	FailedCount  int
	// Skipped counts selected candidates that were not valid.
	Skipped  int
	Failures []ImportFailure
}

// ImportFailure explains why one candidate was not inserted.
type ImportFailure struct {
	MLSNumber string
	Address   string
	Reason    string
}
