//go:build integration || !unit

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/utkarshagawade17/flex-reviews/internal/adapters/googleplaces"
	"github.com/utkarshagawade17/flex-reviews/internal/adapters/hostaway"
	httpserver "github.com/utkarshagawade17/flex-reviews/internal/adapters/http_server"
	redisad "github.com/utkarshagawade17/flex-reviews/internal/adapters/redis"
	"github.com/utkarshagawade17/flex-reviews/internal/app"
	"github.com/utkarshagawade17/flex-reviews/internal/domain"
	"github.com/utkarshagawade17/flex-reviews/internal/storage/memory"
)

// Boots the whole stack in fixture mode (no API keys, no MySQL) with a
// miniredis-backed cache, then walks the dashboard flows end to end.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mr := miniredis.RunT(t)
	cache := redisad.New(mr.Addr(), "", 0)
	store := memory.New()

	sources := []domain.ReviewSource{
		hostaway.New("http://unused.invalid", "", 100),
		googleplaces.New("http://unused.invalid", "", nil, 100),
	}
	ing := app.NewIngestionService(sources, store, nil, cache, 2, 5*time.Second)
	report := ing.IngestAll(context.Background())
	for _, sr := range report.Sources {
		if sr.Error != "" {
			t.Fatalf("fixture ingest failed for %s: %s", sr.Source, sr.Error)
		}
	}

	tags := app.NewTagRegistry(nil)
	q := app.NewQueryService(store, cache, time.Minute)
	trends := app.NewTrendsService(store, cache, time.Minute, time.Time{})
	mod := app.NewModerationService(store, nil, tags, cache)

	srv := httpserver.New()
	srv.MountHandlers(&httpserver.Handlers{Q: q, Trends: trends, Mod: mod, Tags: tags, Ingest: ing})

	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	res, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusOK && out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return res
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return res
}

type listBody struct {
	Count   int             `json:"count"`
	Cursor  *string         `json:"cursor"`
	Reviews []domain.Review `json:"reviews"`
}

func TestHTTP_EndToEnd_DashboardFlows(t *testing.T) {
	ts := newTestServer(t)

	// Full list: all fixture reviews from both sources, newest first.
	var all listBody
	res := getJSON(t, ts.URL+"/v1/reviews", &all)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("list status: %d", res.StatusCode)
	}
	if all.Count != 11 || len(all.Reviews) != 11 {
		t.Fatalf("count=%d len=%d", all.Count, len(all.Reviews))
	}
	if all.Reviews[0].ID != "7453" {
		t.Fatalf("newest review: %s", all.Reviews[0].ID)
	}
	for i := 1; i < len(all.Reviews); i++ {
		if all.Reviews[i].SubmittedAt.After(all.Reviews[i-1].SubmittedAt) {
			t.Fatalf("not sorted newest first at %d", i)
		}
	}

	// Source filter
	var googleOnly listBody
	getJSON(t, ts.URL+"/v1/reviews?source=google", &googleOnly)
	if googleOnly.Count != 5 {
		t.Fatalf("google count: %d", googleOnly.Count)
	}

	// Malformed filter is a problem response, not a coerced default
	res = getJSON(t, ts.URL+"/v1/reviews?ratingMin=nine", nil)
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad filter status: %d", res.StatusCode)
	}

	// Nothing approved yet
	var approved struct {
		Count   int             `json:"count"`
		Reviews []domain.Review `json:"reviews"`
	}
	getJSON(t, ts.URL+"/v1/reviews/approved", &approved)
	if approved.Count != 0 {
		t.Fatalf("approved before moderation: %d", approved.Count)
	}

	// Approve and select one review, then it shows on the public list
	res = doJSON(t, http.MethodPatch, ts.URL+"/v1/reviews/hostaway/7453",
		map[string]any{"approved": true, "selectedForWeb": true})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("patch status: %d", res.StatusCode)
	}
	res.Body.Close()

	getJSON(t, ts.URL+"/v1/reviews/approved", &approved)
	if approved.Count != 1 || approved.Reviews[0].ID != "7453" {
		t.Fatalf("approved after moderation: %+v", approved)
	}

	// Patch on a missing review is 404
	res = doJSON(t, http.MethodPatch, ts.URL+"/v1/reviews/hostaway/99999",
		map[string]any{"approved": true})
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("missing patch status: %d", res.StatusCode)
	}
	res.Body.Close()

	// Tag a review, then filter by tag
	res = doJSON(t, http.MethodPost, ts.URL+"/v1/reviews/hostaway/7453/tags",
		map[string]any{"tag": "vip"})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("add tag status: %d", res.StatusCode)
	}
	res.Body.Close()

	var vip listBody
	getJSON(t, ts.URL+"/v1/reviews?tags=vip", &vip)
	if vip.Count != 1 || vip.Reviews[0].ID != "7453" {
		t.Fatalf("tag filter: %+v", vip)
	}

	// Bulk approve with one missing key: per-item outcomes
	res = doJSON(t, http.MethodPost, ts.URL+"/v1/reviews/bulk-approve", map[string]any{
		"approved": true,
		"reviewIds": []map[string]string{
			{"source": "hostaway", "reviewId": "7454"},
			{"source": "hostaway", "reviewId": "99999"},
		},
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("bulk status: %d", res.StatusCode)
	}
	var bulk struct {
		Results []domain.BulkResult `json:"results"`
	}
	if err := json.NewDecoder(res.Body).Decode(&bulk); err != nil {
		t.Fatalf("decode bulk: %v", err)
	}
	res.Body.Close()
	if len(bulk.Results) != 2 || !bulk.Results[0].Success || bulk.Results[1].Success {
		t.Fatalf("bulk results: %+v", bulk.Results)
	}

	// Trends over a window covering the fixture data
	var trends domain.TrendsResult
	getJSON(t, ts.URL+"/v1/reviews/trends?range=3650d", &trends)
	if len(trends.ByMonth) == 0 || trends.ByMonth[0].Month != "2024-07" {
		t.Fatalf("trends months: %+v", trends.ByMonth)
	}
	var bySource = map[domain.Source]int{}
	for _, s := range trends.BySource {
		bySource[s.Source] = s.Count
	}
	if bySource[domain.SourceHostaway] != 6 || bySource[domain.SourceGoogle] != 5 {
		t.Fatalf("trends sources: %+v", trends.BySource)
	}
}

func TestHTTP_EndToEnd_TagRegistry(t *testing.T) {
	ts := newTestServer(t)

	var tags struct {
		Tags []domain.ReviewTag `json:"tags"`
	}
	getJSON(t, ts.URL+"/v1/tags", &tags)
	if len(tags.Tags) != 10 {
		t.Fatalf("predefined tags: %d", len(tags.Tags))
	}

	res := doJSON(t, http.MethodPost, ts.URL+"/v1/tags", map[string]string{"name": "Quiet Hours"})
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("create tag status: %d", res.StatusCode)
	}
	var created domain.ReviewTag
	if err := json.NewDecoder(res.Body).Decode(&created); err != nil {
		t.Fatalf("decode tag: %v", err)
	}
	res.Body.Close()
	if !created.Custom || created.Name != "Quiet Hours" {
		t.Fatalf("created: %+v", created)
	}

	// predefined tags refuse deletion
	res = doJSON(t, http.MethodDelete, ts.URL+"/v1/tags/wifi", nil)
	if res.StatusCode != http.StatusForbidden {
		t.Fatalf("delete predefined status: %d", res.StatusCode)
	}
	res.Body.Close()

	res = doJSON(t, http.MethodDelete, ts.URL+"/v1/tags/"+created.ID, nil)
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("delete custom status: %d", res.StatusCode)
	}
	res.Body.Close()
}

func TestHTTP_EndToEnd_ETagRevalidation(t *testing.T) {
	ts := newTestServer(t)

	res, err := http.Get(ts.URL + "/v1/reviews")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	etag := res.Header.Get("ETag")
	res.Body.Close()
	if etag == "" {
		t.Fatalf("no ETag on list response")
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/v1/reviews", nil)
	req.Header.Set("If-None-Match", etag)
	res2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("conditional GET: %v", err)
	}
	defer res2.Body.Close()
	if res2.StatusCode != http.StatusNotModified {
		t.Fatalf("conditional status: %d", res2.StatusCode)
	}
	if res2.Header.Get("ETag") != etag {
		t.Fatalf("304 must echo the ETag")
	}
}
