package services

import (
	"context"
	"errors"
	"testing"

	"expired-leads/models"
	"expired-leads/storage"
	"expired-leads/utils"
)

// failingStore rejects inserts for selected MLS numbers.
type failingStore struct {
	*storage.MemoryStore
	rejectMLS map[string]bool
	findErr   error
}

func (f *failingStore) Insert(ctx context.Context, l *models.Listing) (*models.Listing, error) {
	if f.rejectMLS[l.MLSNumber] {
		return nil, errors.New("insert rejected")
	}
	return f.MemoryStore.Insert(ctx, l)
}

func (f *failingStore) FindByMLSAndOwner(ctx context.Context, mls, owner string) (*models.Listing, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.MemoryStore.FindByMLSAndOwner(ctx, mls, owner)
}

func newTestImporter(store storage.ListingStore) *Importer {
	return NewImporter(store, newTestScorer(), utils.NewDiscardLogger())
}

func validCandidate(mls, address string) *models.ParsedListing {
	city, board := "Vancouver", "Greater Vancouver"
	condo := models.PropertyCondo
	return &models.ParsedListing{
		MLSNumber: mls, Address: address, Neighborhood: "Kitsilano",
		City: &city, Board: &board, Price: fptr(899_000), PropertyType: &condo,
		Status: models.StatusExpired, Valid: true,
	}
}

func TestImportSelectedInsertsScoredListings(t *testing.T) {
	store := storage.NewMemoryStore()
	im := newTestImporter(store)

	terminated := validCandidate("R2", "2 Main St")
	terminated.Status = models.StatusTerminated

	res := im.ImportSelected(context.Background(), []*models.ParsedListing{
		validCandidate("R1", "1 Main St"), terminated,
	}, "agent-1")

	if res.SuccessCount != 2 || res.FailedCount != 0 {
		t.Fatalf("got success=%d failed=%d; want 2/0", res.SuccessCount, res.FailedCount)
	}

	l, err := store.FindByMLSAndOwner(context.Background(), "R1", "agent-1")
	if err != nil || l == nil {
		t.Fatalf("R1 not stored: %v", err)
	}
	if l.Stage != models.StageNew {
		t.Errorf("Stage: got %q, want new", l.Stage)
	}
	if l.Latitude != 0 || l.Longitude != 0 {
		t.Errorf("coordinates should default to 0,0")
	}
	if l.Status != models.LifecycleExpired {
		t.Errorf("Status: got %s, want expired", l.Status)
	}
	if got := l.ExpiryDate.Format("2006-01-02"); got != "2026-10-16" {
		t.Errorf("ExpiryDate: got %s, want today", got)
	}
	want := newTestScorer().Score(l.ScoreInput())
	if l.Score != want || l.Score == 0 {
		t.Errorf("Score: got %d, want %d", l.Score, want)
	}

	t2, _ := store.FindByMLSAndOwner(context.Background(), "R2", "agent-1")
	if t2 == nil || t2.Status != models.LifecycleTerminated {
		t.Errorf("terminated candidate should be stored as terminated, got %+v", t2)
	}
}

func TestImportSelectedSameMLSImportsOnce(t *testing.T) {
	store := storage.NewMemoryStore()
	im := newTestImporter(store)

	const n = 5
	batch := make([]*models.ParsedListing, n)
	for i := range batch {
		batch[i] = validCandidate("R777", "7 Repeat Ave")
	}

	res := im.ImportSelected(context.Background(), batch, "agent-1")
	if res.SuccessCount != 1 || res.FailedCount != n-1 {
		t.Errorf("got success=%d failed=%d; want 1/%d", res.SuccessCount, res.FailedCount, n-1)
	}
	for _, f := range res.Failures {
		if f.Reason != reasonDuplicate {
			t.Errorf("failure reason %q; want %q", f.Reason, reasonDuplicate)
		}
	}
}

func TestImportSelectedDuplicatesAreScopedToOwner(t *testing.T) {
	store := storage.NewMemoryStore()
	im := newTestImporter(store)
	ctx := context.Background()

	im.ImportSelected(ctx, []*models.ParsedListing{validCandidate("R1", "1 Main St")}, "agent-1")
	res := im.ImportSelected(ctx, []*models.ParsedListing{validCandidate("R1", "1 Main St")}, "agent-2")
	if res.SuccessCount != 1 {
		t.Errorf("another owner should be able to import the same MLS, got %+v", res)
	}
}

func TestImportSelectedSkipsInvalid(t *testing.T) {
	store := storage.NewMemoryStore()
	im := newTestImporter(store)

	invalid := validCandidate("R3", "")
	invalid.Valid = false
	invalid.Error = sptr("Missing address")

	res := im.ImportSelected(context.Background(), []*models.ParsedListing{invalid}, "agent-1")
	if res.SuccessCount != 0 || res.FailedCount != 0 || res.Skipped != 1 {
		t.Errorf("got %+v; want only skipped=1", res)
	}
}

func TestImportSelectedContinuesAfterInsertError(t *testing.T) {
	store := &failingStore{MemoryStore: storage.NewMemoryStore(), rejectMLS: map[string]bool{"R2": true}}
	im := newTestImporter(store)

	res := im.ImportSelected(context.Background(), []*models.ParsedListing{
		validCandidate("R1", "1 Main St"),
		validCandidate("R2", "2 Main St"),
		validCandidate("R3", "3 Main St"),
	}, "agent-1")

	if res.SuccessCount != 2 || res.FailedCount != 1 {
		t.Fatalf("got success=%d failed=%d; want 2/1", res.SuccessCount, res.FailedCount)
	}
	if res.Failures[0].MLSNumber != "R2" {
		t.Errorf("failure recorded for %q; want R2", res.Failures[0].MLSNumber)
	}
	listed, _ := store.List(context.Background(), models.ListingFilter{UserID: "agent-1"})
	if len(listed) != 2 {
		t.Errorf("earlier and later inserts should be kept, got %d", len(listed))
	}
}

func TestImportSelectedCountsLookupErrors(t *testing.T) {
	store := &failingStore{MemoryStore: storage.NewMemoryStore(), findErr: errors.New("store unreachable")}
	im := newTestImporter(store)

	res := im.ImportSelected(context.Background(), []*models.ParsedListing{
		validCandidate("R1", "1 Main St"),
		validCandidate("R2", "2 Main St"),
	}, "agent-1")

	if res.SuccessCount != 0 || res.FailedCount != 2 {
		t.Errorf("got success=%d failed=%d; want 0/2", res.SuccessCount, res.FailedCount)
	}
}

func TestImportSelectedWithoutMLSSkipsDuplicateCheck(t *testing.T) {
	store := storage.NewMemoryStore()
	im := newTestImporter(store)

	res := im.ImportSelected(context.Background(), []*models.ParsedListing{
		validCandidate("", "1 Main St"),
		validCandidate("", "2 Main St"),
	}, "agent-1")

	if res.SuccessCount != 2 {
		t.Errorf("rows without MLS number should not collide, got %+v", res)
	}
}

func TestImportSelectedCancelledContext(t *testing.T) {
	store := storage.NewMemoryStore()
	im := newTestImporter(store)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := im.ImportSelected(ctx, []*models.ParsedListing{validCandidate("R1", "1 Main St")}, "agent-1")
	if res.SuccessCount != 0 || res.FailedCount != 1 {
		t.Errorf("got %+v; want the row counted as failed", res)
	}
}

func TestParseThenImportRoundTrip(t *testing.T) {
	n := newTestNormalizer()
	candidates, err := n.ParseCSV("ML #,Address,S/A,Price,TypeDwel,Status\n" +
		"R10,10 Pine St,Kitsilano,\"$899,000\",CONDO,X\n" +
		"R11,11 Pine St,Atlantis,\"$500,000\",HOUSE,X\n" +
		"R10,10 Pine St,Kitsilano,\"$899,000\",CONDO,X\n")
	if err != nil {
		t.Fatal(err)
	}

	store := storage.NewMemoryStore()
	res := newTestImporter(store).ImportSelected(context.Background(), candidates, "agent-1")
	if res.SuccessCount != 1 || res.FailedCount != 1 || res.Skipped != 1 {
		t.Errorf("got %+v; want 1 imported, 1 duplicate, 1 skipped", res)
	}
}
