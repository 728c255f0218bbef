package hostaway

import (
	"math"
	"time"

	"github.com/utkarshagawade17/flex-reviews/internal/adapters/upstream"
	"github.com/utkarshagawade17/flex-reviews/internal/domain"
)

// Hostaway reports overall and per-category scores on a 0-10 scale;
// the canonical overall rating is 1-5.

const hostawayTimeLayout = "2006-01-02 15:04:05"

// Normalize converts raw Hostaway review payloads into canonical
// records. Records missing an id or a parseable submission date are
// excluded rather than emitted with fabricated data; the count of
// exclusions is reported alongside.
func Normalize(raw []map[string]any) domain.FetchResult {
	out := domain.FetchResult{Reviews: make([]domain.Review, 0, len(raw))}
	for _, r := range raw {
		rv, ok := normalizeOne(r)
		if !ok {
			out.Excluded++
			continue
		}
		out.Reviews = append(out.Reviews, rv)
	}
	return out
}

func normalizeOne(r map[string]any) (domain.Review, bool) {
	id := upstream.FirstID(r, "id", "reviewId", "review_id")
	if id == "" {
		return domain.Review{}, false
	}
	submitted, ok := parseTime(upstream.Str(r, "submittedAt"))
	if !ok {
		return domain.Review{}, false
	}

	rv := domain.Review{
		ID:          id,
		Source:      domain.SourceHostaway,
		Channel:     string(domain.SourceHostaway),
		ListingID:   upstream.FirstID(r, "listingMapId", "listingId"),
		ListingName: upstream.Str(r, "listingName"),
		Type:        mapType(upstream.Str(r, "type")),
		Status:      mapStatus(upstream.Str(r, "status")),
		SubmittedAt: submitted,
		Categories:  mapCategories(r),
		Text:        upstream.Str(r, "publicReview"),
		GuestName:   upstream.FirstStr(r, "guestName", "guest_name"),
		Tags:        []string{},
	}
	if rv.Text == "" {
		rv.Text = upstream.Str(r, "privateFeedback")
	}

	// Overall: scale down a 0-10 score; when the provider sent none,
	// derive it from the category mean so guest reviews stay sortable.
	if f := upstream.FirstFloat(r, "rating", "score"); f != nil {
		v := *f
		if v > 5 {
			v = v / 2
		}
		v = round1(v)
		rv.Rating = &v
	} else if len(rv.Categories) > 0 {
		var sum float64
		for _, c := range rv.Categories {
			sum += c
		}
		v := round1(sum / float64(len(rv.Categories)) / 2)
		rv.Rating = &v
	}
	return rv, true
}

func mapCategories(r map[string]any) map[string]float64 {
	raw, ok := upstream.Lookup(r, "reviewCategory").([]any)
	if !ok || len(raw) == 0 {
		return map[string]float64{}
	}
	out := make(map[string]float64, len(raw))
	for _, it := range raw {
		entry, ok := it.(map[string]any)
		if !ok {
			continue
		}
		name := upstream.Str(entry, "category")
		score := upstream.FirstFloat(entry, "rating")
		if name == "" || score == nil {
			continue
		}
		out[name] = *score
	}
	return out
}

func mapType(t string) domain.ReviewType {
	if t == "host-to-guest" || t == "host_to_guest" {
		return domain.HostToGuest
	}
	return domain.GuestToHost
}

func mapStatus(s string) domain.ReviewStatus {
	switch s {
	case "published":
		return domain.StatusPublished
	case "pending", "awaiting":
		return domain.StatusPending
	default:
		// Hostaway "rejected"/"expired" never reach the public page.
		return domain.StatusHidden
	}
}

func parseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{hostawayTimeLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
