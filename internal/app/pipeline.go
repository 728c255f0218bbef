package app

import (
	"sort"
	"strconv"
	"strings"

	"github.com/utkarshagawade17/flex-reviews/internal/domain"
)

// RunQuery executes the canonical filter pipeline over a store snapshot:
// source selection, free-text search, listing filter, tag filter, type
// filter, rating range, stable sort, offset pagination. Stage order is
// fixed; each stage only narrows or reorders the working set.
func RunQuery(reviews []domain.Review, spec domain.FilterSpec) domain.ReviewsPage {
	working := filterSources(reviews, spec)
	working = filterSearch(working, spec.Q)
	working = filterListing(working, spec.ListingID)
	working = filterTags(working, spec.Tags)
	working = filterTypes(working, spec.Types)
	working = filterRating(working, spec.RatingMin, spec.RatingMax)
	sortReviews(working, spec.Sort)
	return paginate(working, spec.Limit, spec.Cursor)
}

func filterSources(in []domain.Review, spec domain.FilterSpec) []domain.Review {
	if !spec.SourcesSet {
		// Default: all known sources. Copy so later sorting never
		// reorders the caller's snapshot.
		out := make([]domain.Review, len(in))
		copy(out, in)
		return out
	}
	want := make(map[domain.Source]struct{}, len(spec.Sources))
	for _, s := range spec.Sources {
		want[s] = struct{}{}
	}
	// An explicitly empty restriction matches nothing, by contract.
	out := make([]domain.Review, 0, len(in))
	for _, r := range in {
		if _, ok := want[r.Source]; ok {
			out = append(out, r)
		}
	}
	return out
}

// filterSearch keeps reviews where any of guestName, text or listingName
// contains q case-insensitively (OR, not AND).
func filterSearch(in []domain.Review, q string) []domain.Review {
	if q == "" {
		return in
	}
	needle := strings.ToLower(q)
	out := in[:0]
	for _, r := range in {
		if containsFold(r.Text, needle) ||
			containsFold(r.ListingName, needle) ||
			(r.GuestName != nil && containsFold(*r.GuestName, needle)) {
			out = append(out, r)
		}
	}
	return out
}

// filterListing supports both typed listing ids and ad hoc text lookup:
// exact listingId, listingName substring, or exact review id.
func filterListing(in []domain.Review, listingID string) []domain.Review {
	if listingID == "" {
		return in
	}
	out := in[:0]
	for _, r := range in {
		if matchListing(r, listingID) {
			out = append(out, r)
		}
	}
	return out
}

func matchListing(r domain.Review, listingID string) bool {
	return r.ListingID == listingID ||
		containsFold(r.ListingName, strings.ToLower(listingID)) ||
		r.ID == listingID
}

// filterTags keeps reviews whose tag set intersects the requested set;
// one matching tag is enough.
func filterTags(in []domain.Review, tags []string) []domain.Review {
	if len(tags) == 0 {
		return in
	}
	out := in[:0]
	for _, r := range in {
		for _, t := range tags {
			if r.HasTag(t) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

func filterTypes(in []domain.Review, types []domain.ReviewType) []domain.Review {
	if len(types) == 0 {
		return in
	}
	out := in[:0]
	for _, r := range in {
		for _, t := range types {
			if r.Type == t {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// filterRating applies inclusive bounds; a nil rating counts as 0, so
// any ratingMin >= 1 excludes unrated reviews. min > max legally yields
// an empty set.
func filterRating(in []domain.Review, min, max *float64) []domain.Review {
	if min == nil && max == nil {
		return in
	}
	out := in[:0]
	for _, r := range in {
		v := r.RatingOrZero()
		if min != nil && v < *min {
			continue
		}
		if max != nil && v > *max {
			continue
		}
		out = append(out, r)
	}
	return out
}

// sortReviews sorts in place. Stability is required: ties keep their
// original relative order so pagination stays reproducible.
func sortReviews(in []domain.Review, by domain.Sort) {
	switch by {
	case domain.SortOldest:
		sort.SliceStable(in, func(i, j int) bool { return in[i].SubmittedAt.Before(in[j].SubmittedAt) })
	case domain.SortRatingDesc:
		sort.SliceStable(in, func(i, j int) bool { return in[i].RatingOrZero() > in[j].RatingOrZero() })
	case domain.SortRatingAsc:
		sort.SliceStable(in, func(i, j int) bool { return in[i].RatingOrZero() < in[j].RatingOrZero() })
	default: // newest
		sort.SliceStable(in, func(i, j int) bool { return in[i].SubmittedAt.After(in[j].SubmittedAt) })
	}
}

func paginate(in []domain.Review, limit, cursor int) domain.ReviewsPage {
	if limit <= 0 {
		limit = domain.DefaultPageSize
	}
	if limit > domain.MaxPageSize {
		limit = domain.MaxPageSize
	}
	start := cursor
	if start > len(in) {
		start = len(in)
	}
	end := start + limit
	if end > len(in) {
		end = len(in)
	}

	page := domain.ReviewsPage{Count: len(in)}
	page.Reviews = make([]domain.Review, end-start)
	copy(page.Reviews, in[start:end])
	if end < len(in) {
		next := strconv.Itoa(end)
		page.NextCursor = &next
	}
	return page
}

func containsFold(haystack, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(haystack), lowerNeedle)
}
