package app

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/utkarshagawade17/flex-reviews/internal/domain"
)

// TagRegistry manages the known tag set: the fixed predefined palette
// seeded at construction plus runtime-created custom tags. Custom tags
// persist through the TagRepository when one is configured.
type TagRegistry struct {
	repo domain.TagRepository // nil in stateless mode

	mu          sync.RWMutex
	predefined  []domain.ReviewTag
	isPredef    map[string]bool
	custom      map[string]domain.ReviewTag
	customOrder []string
}

func NewTagRegistry(repo domain.TagRepository) *TagRegistry {
	t := &TagRegistry{
		repo:       repo,
		predefined: domain.PredefinedTags(),
		isPredef:   map[string]bool{},
		custom:     map[string]domain.ReviewTag{},
	}
	for _, p := range t.predefined {
		t.isPredef[p.ID] = true
	}
	return t
}

// Load restores persisted custom tags; call once at startup.
func (t *TagRegistry) Load(ctx context.Context) error {
	if t.repo == nil {
		return nil
	}
	tags, err := t.repo.LoadCustomTags(ctx)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, tag := range tags {
		if t.isPredef[tag.ID] {
			continue
		}
		if _, ok := t.custom[tag.ID]; !ok {
			t.customOrder = append(t.customOrder, tag.ID)
		}
		tag.Custom = true
		t.custom[tag.ID] = tag
	}
	return nil
}

// List returns the predefined palette followed by custom tags in
// creation order.
func (t *TagRegistry) List() []domain.ReviewTag {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]domain.ReviewTag, 0, len(t.predefined)+len(t.customOrder))
	out = append(out, t.predefined...)
	for _, id := range t.customOrder {
		out = append(out, t.custom[id])
	}
	return out
}

// Known reports whether id refers to an existing tag; moderation
// consults this before attaching tags to reviews.
func (t *TagRegistry) Known(id string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.isPredef[id] {
		return true
	}
	_, ok := t.custom[id]
	return ok
}

// Create registers a custom tag with a generated unique id, the default
// color and an empty description.
func (t *TagRegistry) Create(ctx context.Context, name string) (domain.ReviewTag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ReviewTag{}, fmt.Errorf("%w: tag name is required", domain.ErrInvalidArgument)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	lower := strings.ToLower(name)
	for _, p := range t.predefined {
		if strings.ToLower(p.Name) == lower || p.ID == lower {
			return domain.ReviewTag{}, fmt.Errorf("%w: tag %q already exists", domain.ErrInvalidArgument, name)
		}
	}
	for _, c := range t.custom {
		if strings.ToLower(c.Name) == lower {
			return domain.ReviewTag{}, fmt.Errorf("%w: tag %q already exists", domain.ErrInvalidArgument, name)
		}
	}

	tag := domain.ReviewTag{
		ID:     "custom_" + uuid.NewString(),
		Name:   name,
		Color:  "blue",
		Custom: true,
	}
	if t.repo != nil {
		if err := t.repo.InsertCustomTag(ctx, tag); err != nil {
			return domain.ReviewTag{}, err
		}
	}
	t.custom[tag.ID] = tag
	t.customOrder = append(t.customOrder, tag.ID)
	return tag, nil
}

// Delete removes a custom tag. Predefined tags reject deletion with
// ErrPermissionDenied; an unknown id is ErrNotFound, never a silent
// no-op.
func (t *TagRegistry) Delete(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.isPredef[id] {
		return fmt.Errorf("%w: %q is a predefined tag", domain.ErrPermissionDenied, id)
	}
	if _, ok := t.custom[id]; !ok {
		return fmt.Errorf("%w: tag %q", domain.ErrNotFound, id)
	}
	if t.repo != nil {
		if err := t.repo.DeleteCustomTag(ctx, id); err != nil {
			return err
		}
	}
	delete(t.custom, id)
	for i, cid := range t.customOrder {
		if cid == id {
			t.customOrder = append(t.customOrder[:i], t.customOrder[i+1:]...)
			break
		}
	}
	return nil
}
