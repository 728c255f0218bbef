package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/utkarshagawade17/flex-reviews/internal/app"
	"github.com/utkarshagawade17/flex-reviews/internal/domain"
)

type Handlers struct {
	Q      *app.QueryService
	Trends *app.TrendsService
	Mod    *app.ModerationService
	Tags   *app.TagRegistry
	Ingest *app.IngestionService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/v1/reviews", func(r chi.Router) {
		r.Get("/", h.listReviews)
		r.Get("/approved", h.listApproved)
		r.Get("/trends", h.getTrends)
		r.Post("/bulk-approve", h.bulkApprove)
		r.Post("/bulk-show", h.bulkShow)
		r.Patch("/{source}/{id}", h.patchReview)
		r.Post("/{source}/{id}/tags", h.addTag)
		r.Delete("/{source}/{id}/tags/{tag}", h.removeTag)
	})

	s.mux.Route("/v1/tags", func(r chi.Router) {
		r.Get("/", h.listTags)
		r.Post("/", h.createTag)
		r.Delete("/{id}", h.deleteTag)
	})

	s.mux.Post("/v1/ingest/refresh", h.refresh)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps domain sentinels onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		writeProblem(w, http.StatusBadRequest, "Invalid Request", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrPermissionDenied):
		writeProblem(w, http.StatusForbidden, "Forbidden", err.Error())
	default:
		writeProblem(w, http.StatusInternalServerError, "Internal Error", err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		// Log but don't fail the whole response; return empty ETag and best-effort body.
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeJSONCached writes v with a weak ETag, answering 304 when the
// client already holds this version.
func writeJSONCached(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func reviewKey(r *http.Request) (domain.Key, error) {
	src := domain.Source(chi.URLParam(r, "source"))
	if !domain.ValidSource(src) {
		return domain.Key{}, fmt.Errorf("%w: unknown source %q", domain.ErrInvalidArgument, chi.URLParam(r, "source"))
	}
	id := chi.URLParam(r, "id")
	if id == "" {
		return domain.Key{}, fmt.Errorf("%w: review id is required", domain.ErrInvalidArgument)
	}
	return domain.Key{Source: src, ID: id}, nil
}

// ---- queries ----

type listResponse struct {
	domain.ReviewsPage
	PartialSources []domain.Source `json:"partialSources,omitempty"`
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	spec, err := app.ParseFilterSpec(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	page := h.Q.List(r.Context(), spec)

	resp := listResponse{ReviewsPage: page}
	if h.Ingest != nil {
		resp.PartialSources = h.Ingest.Unavailable()
	}
	writeJSONCached(w, r, resp)
}

func (h *Handlers) listApproved(w http.ResponseWriter, r *http.Request) {
	listingID := strings.TrimSpace(r.URL.Query().Get("listingId"))
	out, err := h.Q.ListApproved(r.Context(), listingID)
	if err != nil {
		writeError(w, err)
		return
	}
	if out == nil {
		out = []domain.Review{}
	}
	writeJSONCached(w, r, map[string]any{"count": len(out), "reviews": out})
}

func (h *Handlers) getTrends(w http.ResponseWriter, r *http.Request) {
	rangeDays, err := parseRangeDays(r.URL.Query().Get("range"))
	if err != nil {
		writeError(w, err)
		return
	}
	listingID := strings.TrimSpace(r.URL.Query().Get("listingId"))
	out, err := h.Trends.Compute(r.Context(), rangeDays, listingID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSONCached(w, r, out)
}

// parseRangeDays accepts "90d" or a bare day count; empty means the
// service default.
func parseRangeDays(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	s = strings.TrimSuffix(s, "d")
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: range must look like 90d", domain.ErrInvalidArgument)
	}
	return n, nil
}

// ---- moderation ----

type patchBody struct {
	Approved       *bool `json:"approved"`
	SelectedForWeb *bool `json:"selectedForWeb"`
}

func (h *Handlers) patchReview(w http.ResponseWriter, r *http.Request) {
	key, err := reviewKey(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var body patchBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	if body.Approved == nil && body.SelectedForWeb == nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", "approved or selectedForWeb is required")
		return
	}
	out, err := h.Mod.SetApproval(r.Context(), key, body.Approved, body.SelectedForWeb)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type bulkBody struct {
	ReviewIDs      []domain.BulkItem `json:"reviewIds"`
	Approved       *bool             `json:"approved"`
	SelectedForWeb *bool             `json:"selectedForWeb"`
}

func (h *Handlers) bulkApprove(w http.ResponseWriter, r *http.Request) {
	var body bulkBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	if len(body.ReviewIDs) == 0 || body.Approved == nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", "reviewIds and approved are required")
		return
	}
	results := h.Mod.BulkSetApproved(r.Context(), body.ReviewIDs, *body.Approved)
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (h *Handlers) bulkShow(w http.ResponseWriter, r *http.Request) {
	var body bulkBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	if len(body.ReviewIDs) == 0 || body.SelectedForWeb == nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", "reviewIds and selectedForWeb are required")
		return
	}
	results := h.Mod.BulkSetSelectedForWeb(r.Context(), body.ReviewIDs, *body.SelectedForWeb)
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

// ---- review tags ----

func (h *Handlers) addTag(w http.ResponseWriter, r *http.Request) {
	key, err := reviewKey(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var body struct {
		Tag string `json:"tag"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	out, err := h.Mod.AddTag(r.Context(), key, strings.TrimSpace(body.Tag))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) removeTag(w http.ResponseWriter, r *http.Request) {
	key, err := reviewKey(r)
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := h.Mod.RemoveTag(r.Context(), key, chi.URLParam(r, "tag"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// ---- tag registry ----

func (h *Handlers) listTags(w http.ResponseWriter, r *http.Request) {
	writeJSONCached(w, r, map[string]any{"tags": h.Tags.List()})
}

func (h *Handlers) createTag(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return
	}
	tag, err := h.Tags.Create(r.Context(), body.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tag)
}

func (h *Handlers) deleteTag(w http.ResponseWriter, r *http.Request) {
	if err := h.Tags.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- ingestion ----

func (h *Handlers) refresh(w http.ResponseWriter, r *http.Request) {
	report := h.Ingest.IngestAll(r.Context())
	writeJSON(w, http.StatusOK, report)
}
