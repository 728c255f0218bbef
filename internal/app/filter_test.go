package app_test

import (
	"errors"
	"net/url"
	"testing"

	"github.com/utkarshagawade17/flex-reviews/internal/app"
	"github.com/utkarshagawade17/flex-reviews/internal/domain"
)

func TestParseFilterSpec_Defaults(t *testing.T) {
	spec, err := app.ParseFilterSpec(url.Values{})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if spec.Sort != domain.SortNewest {
		t.Fatalf("sort: %s", spec.Sort)
	}
	if spec.Limit != domain.DefaultPageSize {
		t.Fatalf("limit: %d", spec.Limit)
	}
	if spec.SourcesSet {
		t.Fatalf("SourcesSet should default false")
	}
	if spec.RatingMin != nil || spec.RatingMax != nil {
		t.Fatalf("rating bounds should default nil")
	}
}

func TestParseFilterSpec_FullQuery(t *testing.T) {
	q := url.Values{}
	q.Set("q", " wifi ")
	q.Set("source", "hostaway,google")
	q.Set("listingId", "shoreditch")
	q.Set("tags", "vip,spam")
	q.Set("type", "guest_to_host")
	q.Set("ratingMin", "2")
	q.Set("ratingMax", "4.5")
	q.Set("sort", "rating_asc")
	q.Set("limit", "20")
	q.Set("cursor", "40")

	spec, err := app.ParseFilterSpec(q)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if spec.Q != "wifi" {
		t.Fatalf("q: %q", spec.Q)
	}
	if len(spec.Sources) != 2 || !spec.SourcesSet {
		t.Fatalf("sources: %+v set=%v", spec.Sources, spec.SourcesSet)
	}
	if len(spec.Tags) != 2 || len(spec.Types) != 1 {
		t.Fatalf("tags=%v types=%v", spec.Tags, spec.Types)
	}
	if *spec.RatingMin != 2 || *spec.RatingMax != 4.5 {
		t.Fatalf("bounds: %v %v", *spec.RatingMin, *spec.RatingMax)
	}
	if spec.Sort != domain.SortRatingAsc || spec.Limit != 20 || spec.Cursor != 40 {
		t.Fatalf("sort=%s limit=%d cursor=%d", spec.Sort, spec.Limit, spec.Cursor)
	}
}

func TestParseFilterSpec_RejectsMalformedValues(t *testing.T) {
	cases := map[string]url.Values{
		"unknown source":  {"source": {"yelp"}},
		"unknown type":    {"type": {"sideways"}},
		"unknown sort":    {"sort": {"banana"}},
		"ratingMin text":  {"ratingMin": {"abc"}},
		"ratingMax range": {"ratingMax": {"9"}},
		"ratingMin range": {"ratingMin": {"0.5"}},
		"limit zero":      {"limit": {"0"}},
		"limit negative":  {"limit": {"-5"}},
		"limit text":      {"limit": {"ten"}},
		"cursor negative": {"cursor": {"-1"}},
		"cursor text":     {"cursor": {"next"}},
	}
	for name, q := range cases {
		if _, err := app.ParseFilterSpec(q); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("%s: err = %v, want ErrInvalidArgument", name, err)
		}
	}
}

func TestParseFilterSpec_LimitClampsToMax(t *testing.T) {
	spec, err := app.ParseFilterSpec(url.Values{"limit": {"500"}})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if spec.Limit != domain.MaxPageSize {
		t.Fatalf("limit: %d", spec.Limit)
	}
}

func TestParseFilterSpec_EmptySourceParamRestricts(t *testing.T) {
	spec, err := app.ParseFilterSpec(url.Values{"source": {""}})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !spec.SourcesSet || len(spec.Sources) != 0 {
		t.Fatalf("want explicit empty restriction, got %+v set=%v", spec.Sources, spec.SourcesSet)
	}
}
