package googleplaces_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/utkarshagawade17/flex-reviews/internal/adapters/googleplaces"
)

func TestFetch_QueriesEachPlace(t *testing.T) {
	var places []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		placeID := r.URL.Query().Get("place_id")
		places = append(places, placeID)
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Errorf("key param: %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "OK",
			"result": map[string]any{
				"name": "Listing " + placeID,
				"reviews": []any{
					map[string]any{
						"review_id": "r-" + placeID,
						"rating":    4.0,
						"time":      1722519000.0,
					},
				},
			},
		})
	}))
	defer ts.Close()

	cl := googleplaces.New(ts.URL, "test-key", []string{"p1", "p2"}, 100)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	res, err := cl.Fetch(ctx)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(res.Reviews) != 2 {
		t.Fatalf("reviews: %+v", res.Reviews)
	}
	if len(places) != 2 || places[0] != "p1" || places[1] != "p2" {
		t.Fatalf("places queried: %v", places)
	}
	if res.Reviews[0].ListingName != "Listing p1" {
		t.Fatalf("listing name: %q", res.Reviews[0].ListingName)
	}
}

func TestFetch_NonOKStatusFails(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "REQUEST_DENIED"})
	}))
	defer ts.Close()

	cl := googleplaces.New(ts.URL, "test-key", []string{"p1"}, 100)
	if _, err := cl.Fetch(context.Background()); err == nil {
		t.Fatalf("expected error for non-OK status")
	}
}

func TestFetch_NoKeyServesFixtures(t *testing.T) {
	cl := googleplaces.New("http://unused.invalid", "", nil, 100)
	res, err := cl.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(res.Reviews) == 0 {
		t.Fatalf("expected fixture reviews")
	}
}
