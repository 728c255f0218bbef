package memory

import (
	"sync"

	"github.com/utkarshagawade17/flex-reviews/internal/domain"
)

// Store is the in-process canonical review collection. Writes take the
// exclusive lock; reads work on copies, so the query pipeline and the
// trends aggregator never hold a lock while filtering.
//
// Insertion order is preserved across upserts, which keeps sorts stable
// and pagination reproducible between calls.
type Store struct {
	mu    sync.RWMutex
	index map[domain.Key]int
	items []domain.Review
}

func New() *Store {
	return &Store{index: make(map[domain.Key]int)}
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Snapshot returns a consistent copy of every review. Tags slices are
// replaced wholesale on mutation, so sharing their backing arrays with
// the snapshot is safe.
func (s *Store) Snapshot() []domain.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Review, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) GetByKey(key domain.Key) (domain.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[key]
	if !ok {
		return domain.Review{}, domain.ErrNotFound
	}
	return s.items[i], nil
}

// Upsert inserts or replaces the record for r's key. A replaced record
// keeps its position so relative order survives re-ingestion.
func (s *Store) Upsert(r domain.Review) {
	r.Tags = cloneTags(r.Tags)
	s.mu.Lock()
	defer s.mu.Unlock()
	if i, ok := s.index[r.Key()]; ok {
		s.items[i] = r
		return
	}
	s.index[r.Key()] = len(s.items)
	s.items = append(s.items, r)
}

// Patch applies a partial moderation update. It fails with ErrNotFound
// when the key is absent and never creates records.
func (s *Store) Patch(key domain.Key, p domain.StatePatch) (domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[key]
	if !ok {
		return domain.Review{}, domain.ErrNotFound
	}
	r := s.items[i]
	if p.Approved != nil {
		r.Approved = *p.Approved
	}
	if p.SelectedForWeb != nil {
		r.SelectedForWeb = *p.SelectedForWeb
	}
	if p.Tags != nil {
		r.Tags = cloneTags(*p.Tags)
	}
	s.items[i] = r
	return r, nil
}

func cloneTags(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
