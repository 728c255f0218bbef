package app

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/utkarshagawade17/flex-reviews/internal/domain"
)

// ParseFilterSpec builds a FilterSpec from request query parameters.
// Malformed numeric values (ratingMin, ratingMax, limit, cursor) fail
// with ErrInvalidArgument instead of being coerced to defaults; silent
// coercion makes pagination nondeterministic.
func ParseFilterSpec(q url.Values) (domain.FilterSpec, error) {
	spec := domain.FilterSpec{
		Q:         strings.TrimSpace(q.Get("q")),
		ListingID: strings.TrimSpace(q.Get("listingId")),
		Sort:      domain.SortNewest,
	}

	if _, ok := q["source"]; ok {
		spec.SourcesSet = true
		for _, s := range splitCSV(q.Get("source")) {
			src := domain.Source(s)
			if !domain.ValidSource(src) {
				return domain.FilterSpec{}, fmt.Errorf("%w: unknown source %q", domain.ErrInvalidArgument, s)
			}
			spec.Sources = append(spec.Sources, src)
		}
	}

	spec.Tags = splitCSV(q.Get("tags"))

	for _, t := range splitCSV(q.Get("type")) {
		rt := domain.ReviewType(t)
		if rt != domain.GuestToHost && rt != domain.HostToGuest {
			return domain.FilterSpec{}, fmt.Errorf("%w: unknown review type %q", domain.ErrInvalidArgument, t)
		}
		spec.Types = append(spec.Types, rt)
	}

	var err error
	if spec.RatingMin, err = parseRating(q.Get("ratingMin"), "ratingMin"); err != nil {
		return domain.FilterSpec{}, err
	}
	if spec.RatingMax, err = parseRating(q.Get("ratingMax"), "ratingMax"); err != nil {
		return domain.FilterSpec{}, err
	}

	if s := q.Get("sort"); s != "" {
		spec.Sort = domain.Sort(s)
		if !domain.ValidSort(spec.Sort) {
			return domain.FilterSpec{}, fmt.Errorf("%w: unknown sort %q", domain.ErrInvalidArgument, s)
		}
	}

	spec.Limit = domain.DefaultPageSize
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return domain.FilterSpec{}, fmt.Errorf("%w: limit must be a positive integer", domain.ErrInvalidArgument)
		}
		if n > domain.MaxPageSize {
			n = domain.MaxPageSize
		}
		spec.Limit = n
	}

	if s := q.Get("cursor"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return domain.FilterSpec{}, fmt.Errorf("%w: cursor must be a non-negative integer", domain.ErrInvalidArgument)
		}
		spec.Cursor = n
	}

	return spec, nil
}

func parseRating(s, name string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be numeric", domain.ErrInvalidArgument, name)
	}
	if v < 1 || v > 5 {
		return nil, fmt.Errorf("%w: %s must be within [1,5]", domain.ErrInvalidArgument, name)
	}
	return &v, nil
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
