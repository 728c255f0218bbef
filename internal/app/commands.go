package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/utkarshagawade17/flex-reviews/internal/adapters/observability"
	"github.com/utkarshagawade17/flex-reviews/internal/domain"
)

// ---- Ingestion ----

// SourceReport is one provider's outcome for an ingest run.
type SourceReport struct {
	Source   domain.Source `json:"source"`
	Fetched  int           `json:"fetched"`
	Excluded int           `json:"excluded"`
	Error    string        `json:"error,omitempty"`
}

type IngestReport struct {
	Sources []SourceReport `json:"sources"`
}

// IngestionService fetches every registered provider, overlays the
// persisted moderation state onto the fresh canonical records and
// upserts them into the store. One failing provider degrades to zero
// reviews from that source; it never fails the whole run.
type IngestionService struct {
	sources []domain.ReviewSource
	store   domain.ReviewStore
	states  domain.StateRepository // nil in stateless mode
	cache   domain.Cache
	workers int64
	timeout time.Duration

	mu   sync.Mutex
	down map[domain.Source]bool
}

func NewIngestionService(sources []domain.ReviewSource, store domain.ReviewStore, states domain.StateRepository, cache domain.Cache, workers int, timeout time.Duration) *IngestionService {
	if workers <= 0 {
		workers = 4
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &IngestionService{
		sources: sources,
		store:   store,
		states:  states,
		cache:   cache,
		workers: int64(workers),
		timeout: timeout,
		down:    map[domain.Source]bool{},
	}
}

func (s *IngestionService) IngestAll(ctx context.Context) IngestReport {
	states := map[domain.Key]domain.ReviewState{}
	if s.states != nil {
		loaded, err := s.states.LoadStates(ctx)
		if err != nil {
			// Degrade to provider defaults rather than refusing to ingest.
			log.Warn().Err(err).Msg("loading moderation state failed")
		} else {
			states = loaded
		}
	}

	sem := semaphore.NewWeighted(s.workers)
	var wg sync.WaitGroup
	reports := make([]SourceReport, len(s.sources))

	for i, src := range s.sources {
		if err := sem.Acquire(ctx, 1); err != nil {
			reports[i] = SourceReport{Source: src.Source(), Error: err.Error()}
			continue
		}
		wg.Add(1)
		go func(i int, src domain.ReviewSource) {
			defer wg.Done()
			defer sem.Release(1)
			reports[i] = s.ingestOne(ctx, src, states)
		}(i, src)
	}
	wg.Wait()

	s.mu.Lock()
	for _, r := range reports {
		s.down[r.Source] = r.Error != ""
	}
	s.mu.Unlock()

	if s.cache != nil {
		s.invalidateListings(ctx)
	}
	return IngestReport{Sources: reports}
}

func (s *IngestionService) ingestOne(ctx context.Context, src domain.ReviewSource, states map[domain.Key]domain.ReviewState) SourceReport {
	fctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := src.Fetch(fctx)
	if err != nil {
		observability.ObserveIngest(string(src.Source()), "failed")
		log.Warn().Str("source", string(src.Source())).Err(err).Msg("source fetch failed")
		return SourceReport{
			Source: src.Source(),
			Error:  fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err).Error(),
		}
	}

	for _, r := range res.Reviews {
		if st, ok := states[r.Key()]; ok {
			r.Approved = st.Approved
			r.SelectedForWeb = st.SelectedForWeb
			if st.Tags != nil {
				r.Tags = st.Tags
			}
		}
		s.store.Upsert(r)
	}
	observability.ObserveIngest(string(src.Source()), "ok")
	observability.ObserveExcluded(string(src.Source()), res.Excluded)
	if res.Excluded > 0 {
		log.Warn().Str("source", string(src.Source())).Int("excluded", res.Excluded).Msg("records excluded during normalization")
	}
	return SourceReport{Source: src.Source(), Fetched: len(res.Reviews), Excluded: res.Excluded}
}

// Unavailable lists the sources whose last fetch failed; list responses
// surface it as a partial-failure indicator.
func (s *IngestionService) Unavailable() []domain.Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Source
	for _, src := range domain.KnownSources() {
		if s.down[src] {
			out = append(out, src)
		}
	}
	return out
}

// invalidate the most common approved-list cache variants
func (s *IngestionService) invalidateListings(ctx context.Context) {
	_ = s.cache.Del(ctx, ApprovedCacheKey(""))
	for _, r := range s.store.Snapshot() {
		if r.ListingID != "" {
			_ = s.cache.Del(ctx, ApprovedCacheKey(r.ListingID))
		}
	}
}

// ---- Moderation ----

// ModerationService mutates approval flags and tags, writing committed
// state through to the moderation-state repository and invalidating the
// affected public-list caches.
type ModerationService struct {
	store  domain.ReviewStore
	states domain.StateRepository // nil in stateless mode
	tags   *TagRegistry
	cache  domain.Cache
}

func NewModerationService(store domain.ReviewStore, states domain.StateRepository, tags *TagRegistry, cache domain.Cache) *ModerationService {
	return &ModerationService{store: store, states: states, tags: tags, cache: cache}
}

// SetApproval applies a partial update; nil fields stay unchanged.
// selectedForWeb is deliberately not gated on approved here: the public
// listing requires both flags, so an unapproved selection never leaks.
func (m *ModerationService) SetApproval(ctx context.Context, key domain.Key, approved, selectedForWeb *bool) (domain.Review, error) {
	r, err := m.store.Patch(key, domain.StatePatch{Approved: approved, SelectedForWeb: selectedForWeb})
	if err != nil {
		return domain.Review{}, err
	}
	m.persist(ctx, r)
	return r, nil
}

func (m *ModerationService) BulkSetApproved(ctx context.Context, items []domain.BulkItem, value bool) []domain.BulkResult {
	return m.bulkPatch(ctx, items, domain.StatePatch{Approved: &value}, value)
}

func (m *ModerationService) BulkSetSelectedForWeb(ctx context.Context, items []domain.BulkItem, value bool) []domain.BulkResult {
	return m.bulkPatch(ctx, items, domain.StatePatch{SelectedForWeb: &value}, value)
}

// bulkPatch applies the same patch to every key, continuing past
// missing keys and reporting each item's outcome.
func (m *ModerationService) bulkPatch(ctx context.Context, items []domain.BulkItem, p domain.StatePatch, value bool) []domain.BulkResult {
	out := make([]domain.BulkResult, 0, len(items))
	for _, it := range items {
		key := domain.Key{Source: it.Source, ID: it.ID}
		r, err := m.store.Patch(key, p)
		if err != nil {
			out = append(out, domain.BulkResult{Source: it.Source, ID: it.ID, Error: err.Error()})
			continue
		}
		m.persist(ctx, r)
		out = append(out, domain.BulkResult{Source: it.Source, ID: it.ID, Success: true, NewValue: value})
	}
	return out
}

// AddTag attaches a known tag; adding an already-present tag is a no-op
// success.
func (m *ModerationService) AddTag(ctx context.Context, key domain.Key, tag string) (domain.Review, error) {
	if tag == "" {
		return domain.Review{}, fmt.Errorf("%w: tag is required", domain.ErrInvalidArgument)
	}
	if m.tags != nil && !m.tags.Known(tag) {
		return domain.Review{}, fmt.Errorf("%w: unknown tag %q", domain.ErrInvalidArgument, tag)
	}

	r, err := m.store.GetByKey(key)
	if err != nil {
		return domain.Review{}, err
	}
	if r.HasTag(tag) {
		return r, nil
	}
	next := append(append([]string{}, r.Tags...), tag)
	r, err = m.store.Patch(key, domain.StatePatch{Tags: &next})
	if err != nil {
		return domain.Review{}, err
	}
	m.persist(ctx, r)
	return r, nil
}

// RemoveTag detaches a tag; removing an absent tag is a no-op success.
func (m *ModerationService) RemoveTag(ctx context.Context, key domain.Key, tag string) (domain.Review, error) {
	if tag == "" {
		return domain.Review{}, fmt.Errorf("%w: tag is required", domain.ErrInvalidArgument)
	}

	r, err := m.store.GetByKey(key)
	if err != nil {
		return domain.Review{}, err
	}
	if !r.HasTag(tag) {
		return r, nil
	}
	next := make([]string, 0, len(r.Tags)-1)
	for _, t := range r.Tags {
		if t != tag {
			next = append(next, t)
		}
	}
	r, err = m.store.Patch(key, domain.StatePatch{Tags: &next})
	if err != nil {
		return domain.Review{}, err
	}
	m.persist(ctx, r)
	return r, nil
}

// persist writes the committed state through and evicts the public-list
// caches the mutation could have changed. The in-memory commit is the
// source of truth for this process; a write-through failure is logged,
// not surfaced, so the dashboard keeps working through store outages.
func (m *ModerationService) persist(ctx context.Context, r domain.Review) {
	if m.states != nil {
		st := domain.ReviewState{
			Key:            r.Key(),
			Approved:       r.Approved,
			SelectedForWeb: r.SelectedForWeb,
			Tags:           r.Tags,
		}
		if err := m.states.UpsertState(ctx, st); err != nil {
			log.Warn().Str("source", string(r.Source)).Str("id", r.ID).Err(err).Msg("moderation write-through failed")
		}
	}
	if m.cache != nil {
		_ = m.cache.Del(ctx, ApprovedCacheKey(""))
		if r.ListingID != "" {
			_ = m.cache.Del(ctx, ApprovedCacheKey(r.ListingID))
		}
	}
}
