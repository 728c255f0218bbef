package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/utkarshagawade17/flex-reviews/internal/domain"
)

type QueryService struct {
	store    domain.ReviewStore
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(store domain.ReviewStore, cache domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{store: store, cache: cache, cacheTTL: ttl}
}

// List answers the dashboard query. It runs entirely on a store
// snapshot, so concurrent moderation never reorders a page mid-flight.
func (s *QueryService) List(ctx context.Context, spec domain.FilterSpec) domain.ReviewsPage {
	return RunQuery(s.store.Snapshot(), spec)
}

// ListApproved returns the public-page reviews: approved AND selected
// for web, newest first, optionally narrowed to one listing. Results
// are cached; moderation invalidates the affected keys.
func (s *QueryService) ListApproved(ctx context.Context, listingID string) ([]domain.Review, error) {
	key := ApprovedCacheKey(listingID)
	if s.cache != nil {
		var cached []domain.Review
		if ok, _ := s.cache.Get(ctx, key, &cached); ok {
			return cached, nil
		}
	}

	var out []domain.Review
	for _, r := range s.store.Snapshot() {
		if !r.Approved || !r.SelectedForWeb {
			continue
		}
		if listingID != "" && !matchListing(r, listingID) {
			continue
		}
		out = append(out, r)
	}
	sortReviews(out, domain.SortNewest)

	if s.cache != nil {
		// size guard as for any cached listing
		if b, _ := json.Marshal(out); len(b) < 1_000_000 {
			_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
		}
	}
	return out, nil
}

func ApprovedCacheKey(listingID string) string {
	return fmt.Sprintf("approved:%s", strings.ToLower(listingID))
}
