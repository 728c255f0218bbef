package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpserver "github.com/utkarshagawade17/flex-reviews/internal/adapters/http_server"
	"github.com/utkarshagawade17/flex-reviews/internal/app"
	"github.com/utkarshagawade17/flex-reviews/internal/domain"
	"github.com/utkarshagawade17/flex-reviews/internal/storage/memory"
)

type stubSource struct {
	src domain.Source
	res domain.FetchResult
	err error
}

func (s *stubSource) Source() domain.Source { return s.src }
func (s *stubSource) Fetch(ctx context.Context) (domain.FetchResult, error) {
	return s.res, s.err
}

func newHandlersServer(t *testing.T, sources ...domain.ReviewSource) *httptest.Server {
	t.Helper()
	store := memory.New()
	ing := app.NewIngestionService(sources, store, nil, nil, 2, time.Second)
	ing.IngestAll(context.Background())

	tags := app.NewTagRegistry(nil)
	h := &httpserver.Handlers{
		Q:      app.NewQueryService(store, nil, time.Minute),
		Trends: app.NewTrendsService(store, nil, time.Minute, time.Time{}),
		Mod:    app.NewModerationService(store, nil, tags, nil),
		Tags:   tags,
		Ingest: ing,
	}
	srv := httpserver.New()
	srv.MountHandlers(h)
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts
}

func TestListReviews_ReportsPartialSources(t *testing.T) {
	rating := 4.0
	ok := &stubSource{src: domain.SourceHostaway, res: domain.FetchResult{Reviews: []domain.Review{{
		ID: "1", Source: domain.SourceHostaway, SubmittedAt: time.Now().UTC(), Rating: &rating,
	}}}}
	down := &stubSource{src: domain.SourceGoogle, err: errors.New("upstream gone")}
	ts := newHandlersServer(t, ok, down)

	res, err := http.Get(ts.URL + "/v1/reviews")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status: %d", res.StatusCode)
	}

	var body struct {
		Count          int             `json:"count"`
		PartialSources []domain.Source `json:"partialSources"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Count != 1 {
		t.Fatalf("count: %d", body.Count)
	}
	if len(body.PartialSources) != 1 || body.PartialSources[0] != domain.SourceGoogle {
		t.Fatalf("partialSources: %+v", body.PartialSources)
	}
}

func TestListReviews_OmitsPartialSourcesWhenHealthy(t *testing.T) {
	ok := &stubSource{src: domain.SourceHostaway}
	ts := newHandlersServer(t, ok)

	res, err := http.Get(ts.URL + "/v1/reviews")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, present := raw["partialSources"]; present {
		t.Fatalf("partialSources should be omitted when all sources are healthy")
	}
}

func TestErrorMapping(t *testing.T) {
	ts := newHandlersServer(t, &stubSource{src: domain.SourceHostaway})

	cases := []struct {
		method, path, body string
		want               int
	}{
		{"GET", "/v1/reviews?source=yelp", "", http.StatusBadRequest},
		{"GET", "/v1/reviews?limit=zero", "", http.StatusBadRequest},
		{"GET", "/v1/reviews/trends?range=soon", "", http.StatusBadRequest},
		{"PATCH", "/v1/reviews/yelp/1", `{"approved":true}`, http.StatusBadRequest},
		{"PATCH", "/v1/reviews/hostaway/1", `{}`, http.StatusBadRequest},
		{"PATCH", "/v1/reviews/hostaway/missing", `{"approved":true}`, http.StatusNotFound},
		{"POST", "/v1/reviews/hostaway/missing/tags", `{"tag":"vip"}`, http.StatusNotFound},
		{"DELETE", "/v1/tags/wifi", "", http.StatusForbidden},
		{"DELETE", "/v1/tags/custom_nope", "", http.StatusNotFound},
		{"POST", "/v1/tags", `{"name":""}`, http.StatusBadRequest},
	}
	for _, c := range cases {
		var req *http.Request
		var err error
		if c.body != "" {
			req, err = http.NewRequest(c.method, ts.URL+c.path, bytes.NewBufferString(c.body))
		} else {
			req, err = http.NewRequest(c.method, ts.URL+c.path, nil)
		}
		if err != nil {
			t.Fatalf("new request: %v", err)
		}
		res, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("%s %s: %v", c.method, c.path, err)
		}
		if res.StatusCode != c.want {
			t.Errorf("%s %s: status %d, want %d", c.method, c.path, res.StatusCode, c.want)
		}
		if ct := res.Header.Get("Content-Type"); ct != "application/problem+json" {
			t.Errorf("%s %s: content type %q", c.method, c.path, ct)
		}
		res.Body.Close()
	}
}

func TestHealthz(t *testing.T) {
	ts := newHandlersServer(t, &stubSource{src: domain.SourceHostaway})
	res, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status: %d", res.StatusCode)
	}
}
