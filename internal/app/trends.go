package app

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/utkarshagawade17/flex-reviews/internal/domain"
)

// DefaultTrendsStart anchors the month axis. Charts need a contiguous,
// gap-free axis, so every month from here through the current month is
// emitted even when empty.
var DefaultTrendsStart = time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)

type TrendsService struct {
	store    domain.ReviewStore
	cache    domain.Cache
	cacheTTL time.Duration
	start    time.Time
	now      func() time.Time
}

func NewTrendsService(store domain.ReviewStore, cache domain.Cache, ttl time.Duration, start time.Time) *TrendsService {
	if start.IsZero() {
		start = DefaultTrendsStart
	}
	return &TrendsService{store: store, cache: cache, cacheTTL: ttl, start: start, now: time.Now}
}

// Compute buckets the (optionally listing-filtered) review set by
// calendar month, category and source. rangeDays bounds which reviews
// contribute; it never truncates the seeded month axis.
func (s *TrendsService) Compute(ctx context.Context, rangeDays int, listingID string) (domain.TrendsResult, error) {
	if rangeDays <= 0 {
		rangeDays = 180
	}
	key := fmt.Sprintf("trends:%d:%s", rangeDays, listingID)
	if s.cache != nil {
		var cached domain.TrendsResult
		if ok, _ := s.cache.Get(ctx, key, &cached); ok {
			return cached, nil
		}
	}

	now := s.now().UTC()
	cutoff := now.AddDate(0, 0, -rangeDays)

	var filtered []domain.Review
	for _, r := range s.store.Snapshot() {
		if listingID != "" && !matchListing(r, listingID) {
			continue
		}
		if r.SubmittedAt.Before(cutoff) {
			continue
		}
		filtered = append(filtered, r)
	}

	out := domain.TrendsResult{
		ByMonth:    s.byMonth(filtered, now),
		ByCategory: byCategory(filtered),
		BySource:   bySource(filtered),
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	}
	return out, nil
}

// byMonth pre-seeds every month from the analysis start through the
// current month, then averages non-null ratings per bucket.
func (s *TrendsService) byMonth(reviews []domain.Review, now time.Time) []domain.MonthBucket {
	type agg struct {
		total float64
		count int
	}
	buckets := map[string]*agg{}
	var months []string

	end := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for m := time.Date(s.start.Year(), s.start.Month(), 1, 0, 0, 0, 0, time.UTC); !m.After(end); m = m.AddDate(0, 1, 0) {
		key := m.Format("2006-01")
		buckets[key] = &agg{}
		months = append(months, key)
	}

	for _, r := range reviews {
		if r.Rating == nil {
			continue
		}
		key := r.SubmittedAt.UTC().Format("2006-01")
		if b, ok := buckets[key]; ok {
			b.total += *r.Rating
			b.count++
		}
	}

	out := make([]domain.MonthBucket, 0, len(months))
	for _, m := range months {
		b := buckets[m]
		bucket := domain.MonthBucket{Month: m, Count: b.count}
		if b.count > 0 {
			bucket.AvgRating = round1(b.total / float64(b.count))
		}
		out = append(out, bucket)
	}
	return out
}

// byCategory averages every observed category on the 0-10 presentation
// scale. Sources report categories on mixed scales: a value <= 5 is a
// 1-5 rating and is doubled; values above 5 are already 0-10.
func byCategory(reviews []domain.Review) []domain.CategoryAvg {
	type agg struct {
		total float64
		count int
	}
	cats := map[string]*agg{}
	for _, r := range reviews {
		for name, v := range r.Categories {
			if v <= 5 {
				v *= 2
			}
			b, ok := cats[name]
			if !ok {
				b = &agg{}
				cats[name] = b
			}
			b.total += v
			b.count++
		}
	}

	out := make([]domain.CategoryAvg, 0, len(cats))
	for name, b := range cats {
		out = append(out, domain.CategoryAvg{Name: name, Avg: round1(b.total / float64(b.count))})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func bySource(reviews []domain.Review) []domain.SourceCount {
	counts := map[domain.Source]int{}
	for _, r := range reviews {
		counts[r.Source]++
	}
	out := make([]domain.SourceCount, 0, len(counts))
	for _, s := range domain.KnownSources() {
		if n := counts[s]; n > 0 {
			out = append(out, domain.SourceCount{Source: s, Count: n})
		}
	}
	return out
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
