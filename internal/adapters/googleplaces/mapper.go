package googleplaces

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/utkarshagawade17/flex-reviews/internal/adapters/upstream"
	"github.com/utkarshagawade17/flex-reviews/internal/domain"
)

// Places ratings are already on the canonical 1-5 scale. Reviews carry
// no stable id of their own, so one is synthesized from the content.

// NormalizePlace converts the raw reviews of a single place into
// canonical records. A record without a parseable submission time is
// excluded and counted rather than given a fabricated date.
func NormalizePlace(placeID, listingName string, raw []map[string]any) domain.FetchResult {
	out := domain.FetchResult{Reviews: make([]domain.Review, 0, len(raw))}
	for _, r := range raw {
		submitted, ok := parseTime(r)
		if !ok {
			out.Excluded++
			continue
		}

		rv := domain.Review{
			Source:      domain.SourceGoogle,
			Channel:     string(domain.SourceGoogle),
			ListingID:   placeID,
			ListingName: listingName,
			Type:        domain.GuestToHost,
			Status:      domain.StatusPublished,
			SubmittedAt: submitted,
			Categories:  mapAspects(r),
			Text:        upstream.Str(r, "text"),
			GuestName:   upstream.FirstStr(r, "author_name", "authorName"),
			Rating:      upstream.FirstFloat(r, "rating"),
			Tags:        []string{},
		}

		if id := upstream.FirstID(r, "review_id", "id"); id != "" {
			rv.ID = id
		} else {
			rv.ID = synthesizeID(rv)
		}
		out.Reviews = append(out.Reviews, rv)
	}
	return out
}

// mapAspects lifts the optional per-aspect scores (1-5 as reported;
// the trends aggregator aligns scales at presentation time).
func mapAspects(r map[string]any) map[string]float64 {
	raw, ok := upstream.Lookup(r, "aspects").([]any)
	if !ok || len(raw) == 0 {
		return map[string]float64{}
	}
	out := make(map[string]float64, len(raw))
	for _, it := range raw {
		entry, ok := it.(map[string]any)
		if !ok {
			continue
		}
		name := upstream.Str(entry, "type")
		score := upstream.FirstFloat(entry, "rating")
		if name == "" || score == nil {
			continue
		}
		out[name] = *score
	}
	return out
}

func parseTime(r map[string]any) (time.Time, bool) {
	if f := upstream.FirstFloat(r, "time"); f != nil && *f > 0 {
		return time.Unix(int64(*f), 0).UTC(), true
	}
	if s := upstream.Str(r, "submittedAt"); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// synthesizeID builds a stable id from the review content, so repeated
// ingests upsert instead of duplicating.
func synthesizeID(rv domain.Review) string {
	name := ""
	if rv.GuestName != nil {
		name = *rv.GuestName
	}
	sig := strings.Join([]string{
		name,
		rv.SubmittedAt.Format(time.RFC3339),
		rv.Text,
		fmt.Sprintf("%.3f", rv.RatingOrZero()),
	}, "|")
	sum := sha1.Sum([]byte(sig))
	return hex.EncodeToString(sum[:])
}
