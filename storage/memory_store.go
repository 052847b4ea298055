package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"expired-leads/models"
)

// MemoryStore keeps listings in process memory. It backs dry runs and tests.
// It is safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	listings map[string]*models.Listing
	order    []string
}

var _ ListingStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{listings: make(map[string]*models.Listing)}
}

func (m *MemoryStore) FindByMLSAndOwner(_ context.Context, mls, ownerID string) (*models.Listing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, id := range m.order {
		l := m.listings[id]
		if l.UserID == ownerID && l.MLSNumber == mls {
			return clone(l), nil
		}
	}
	return nil, nil
}

// FindByAddressAndCity matches address and city case-insensitively.
func (m *MemoryStore) FindByAddressAndCity(_ context.Context, address, city, ownerID string) ([]*models.Listing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*models.Listing
	for _, id := range m.order {
		l := m.listings[id]
		if l.UserID != ownerID || !strings.EqualFold(l.Address, address) {
			continue
		}
		if l.City == nil || !strings.EqualFold(*l.City, city) {
			continue
		}
		out = append(out, clone(l))
	}
	return out, nil
}

func (m *MemoryStore) Insert(_ context.Context, l *models.Listing) (*models.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := clone(l)
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	now := time.Now()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	m.listings[stored.ID] = stored
	m.order = append(m.order, stored.ID)
	return clone(stored), nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*models.Listing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	l, ok := m.listings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(l), nil
}

func (m *MemoryStore) Update(_ context.Context, l *models.Listing) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.listings[l.ID]
	if !ok {
		return ErrNotFound
	}
	updated := clone(l)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()
	m.listings[l.ID] = updated
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.listings[id]; !ok {
		return ErrNotFound
	}
	delete(m.listings, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns matching listings, highest score first.
func (m *MemoryStore) List(_ context.Context, f models.ListingFilter) ([]*models.Listing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*models.Listing
	for _, id := range m.order {
		l := m.listings[id]
		if f.UserID != "" && l.UserID != f.UserID {
			continue
		}
		if f.Status != "" && l.Status != f.Status {
			continue
		}
		if f.Stage != "" && l.Stage != f.Stage {
			continue
		}
		if f.City != "" && (l.City == nil || !strings.EqualFold(*l.City, f.City)) {
			continue
		}
		if l.Score < f.MinScore {
			continue
		}
		out = append(out, clone(l))
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if f.Limit > 0 && uint64(len(out)) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *MemoryStore) Close() error { return nil }

// clone copies the struct; pointer fields are shared but never mutated in place.
func clone(l *models.Listing) *models.Listing {
	c := *l
	return &c
}
