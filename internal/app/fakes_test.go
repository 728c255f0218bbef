package app_test

import (
	"context"
	"encoding/json"
	"time"

	"github.com/utkarshagawade17/flex-reviews/internal/domain"
)

// ---- fakes ----

type fakeCache struct {
	store map[string][]byte
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	c.dels = append(c.dels, key)
	return nil
}

type fakeStates struct {
	states    map[domain.Key]domain.ReviewState
	upsertErr error
	loadErr   error
}

func (f *fakeStates) UpsertState(ctx context.Context, st domain.ReviewState) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	if f.states == nil {
		f.states = map[domain.Key]domain.ReviewState{}
	}
	f.states[st.Key] = st
	return nil
}

func (f *fakeStates) LoadStates(ctx context.Context) (map[domain.Key]domain.ReviewState, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.states, nil
}

type fakeTagRepo struct {
	tags      []domain.ReviewTag
	insertErr error
}

func (f *fakeTagRepo) InsertCustomTag(ctx context.Context, t domain.ReviewTag) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.tags = append(f.tags, t)
	return nil
}

func (f *fakeTagRepo) DeleteCustomTag(ctx context.Context, id string) error {
	for i, t := range f.tags {
		if t.ID == id {
			f.tags = append(f.tags[:i], f.tags[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeTagRepo) LoadCustomTags(ctx context.Context) ([]domain.ReviewTag, error) {
	return f.tags, nil
}

type fakeSource struct {
	src domain.Source
	res domain.FetchResult
	err error
}

func (f *fakeSource) Source() domain.Source { return f.src }
func (f *fakeSource) Fetch(ctx context.Context) (domain.FetchResult, error) {
	return f.res, f.err
}

// ---- builders ----

func mkReview(source domain.Source, id string, submitted time.Time, rating *float64) domain.Review {
	return domain.Review{
		ID:          id,
		Source:      source,
		ListingID:   "1",
		ListingName: "2B N1 A - 29 Shoreditch Heights",
		Channel:     string(source),
		Type:        domain.GuestToHost,
		Status:      domain.StatusPublished,
		SubmittedAt: submitted,
		Rating:      rating,
		Categories:  map[string]float64{},
		Tags:        []string{},
	}
}

func pfloat(f float64) *float64 { return &f }
func pstr(s string) *string     { return &s }
func pbool(b bool) *bool        { return &b }

func day(d int) time.Time {
	return time.Date(2024, time.August, d, 12, 0, 0, 0, time.UTC)
}
