// Package memory keeps every engine collaborator in process memory. It backs the
// "memory" store driver and the orchestrator tests, and honours the same
// compare-and-swap contract as the postgres repositories.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"auction-house/internal/domain/listing"
	"auction-house/internal/infra"
	"auction-house/internal/usecase/shared"

	"github.com/google/uuid"
)

type ListingStore struct {
	mu       sync.RWMutex
	listings map[uuid.UUID]*listing.Listing
}

func NewListingStore() *ListingStore {
	return &ListingStore{listings: make(map[uuid.UUID]*listing.Listing)}
}

func (s *ListingStore) Insert(_ context.Context, l *listing.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.listings[l.ID()]; exists {
		return infra.NewRepoErr(infra.KindDuplicateKey, "listing "+l.ID().String())
	}
	s.listings[l.ID()] = l
	return nil
}

func (s *ListingStore) FindByID(_ context.Context, id uuid.UUID) (*listing.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.listings[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "listing "+id.String())
	}
	return l, nil
}

func (s *ListingStore) FindActive(_ context.Context, filter shared.ActiveFilter, sort shared.SortOrder, page shared.Page) ([]*listing.Listing, error) {
	out := s.collect(func(l *listing.Listing) bool {
		if !l.IsActive() {
			return false
		}
		if filter.Seller != nil && l.Seller() != *filter.Seller {
			return false
		}
		if filter.Kind != "" && l.Good().Kind() != filter.Kind {
			return false
		}
		if filter.MaxPrice != nil && l.Price().Cents() > filter.MaxPrice.Cents() {
			return false
		}
		return true
	})
	slices.SortFunc(out, comparator(sort))
	return paginate(out, page), nil
}

func (s *ListingStore) FindBySeller(_ context.Context, seller uuid.UUID, includeInactive bool, page shared.Page) ([]*listing.Listing, error) {
	out := s.collect(func(l *listing.Listing) bool {
		return l.Seller() == seller && (includeInactive || l.IsActive())
	})
	slices.SortFunc(out, comparator(shared.SortNewest))
	return paginate(out, page), nil
}

func (s *ListingStore) FindExpiredUpTo(_ context.Context, now time.Time, limit int) ([]*listing.Listing, error) {
	out := s.collect(func(l *listing.Listing) bool {
		return l.IsActive() && l.IsExpiredAt(now)
	})
	slices.SortFunc(out, comparator(shared.SortEndingSoon))
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *ListingStore) CountActiveBySeller(_ context.Context, seller uuid.UUID) (int, error) {
	return len(s.collect(func(l *listing.Listing) bool {
		return l.IsActive() && l.Seller() == seller
	})), nil
}

func (s *ListingStore) UpdateIfVersionMatches(_ context.Context, l *listing.Listing, expectedVersion int64) (bool, error) {
	if l.Version() != expectedVersion+1 {
		return false, infra.NewRepoErr(infra.KindDBFailure, "listing version must advance by exactly one")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Terminal listings accept no further writes, whatever the version says.
	current, ok := s.listings[l.ID()]
	if !ok || current.Version() != expectedVersion || !current.IsActive() {
		return false, nil
	}
	s.listings[l.ID()] = l
	return true, nil
}

func (s *ListingStore) collect(keep func(*listing.Listing) bool) []*listing.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*listing.Listing, 0, len(s.listings))
	for _, l := range s.listings {
		if keep(l) {
			out = append(out, l)
		}
	}
	return out
}

// comparator orders listings like the postgres queries do, with the id as tiebreaker.
func comparator(sort shared.SortOrder) func(a, b *listing.Listing) int {
	byID := func(a, b *listing.Listing) int { return cmp.Compare(a.ID().String(), b.ID().String()) }
	return func(a, b *listing.Listing) int {
		var c int
		switch sort {
		case shared.SortNewest:
			c = b.CreatedAt().Compare(a.CreatedAt())
		case shared.SortPriceAsc:
			c = cmp.Compare(a.Price().Cents(), b.Price().Cents())
		case shared.SortPriceDesc:
			c = cmp.Compare(b.Price().Cents(), a.Price().Cents())
		default:
			c = a.EndAt().Compare(b.EndAt())
		}
		if c != 0 {
			return c
		}
		return byID(a, b)
	}
}

func paginate[T any](items []T, page shared.Page) []T {
	if page.Offset >= len(items) {
		return []T{}
	}
	items = items[page.Offset:]
	if page.Limit > 0 && len(items) > page.Limit {
		items = items[:page.Limit]
	}
	return items
}
