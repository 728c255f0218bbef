package mysql

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/utkarshagawade17/flex-reviews/internal/domain"
)

// Repo persists moderation state and custom tags, keyed by
// (source, review_id). Canonical review content never lands here; it is
// re-fetched from the providers and this state is overlaid at ingest.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertState(ctx context.Context, st domain.ReviewState) error {
	tags, err := json.Marshal(st.Tags)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, upsertStateSQL,
		string(st.Key.Source),
		st.Key.ID,
		st.Approved,
		st.SelectedForWeb,
		string(tags),
	)
	return err
}

func (r *Repo) LoadStates(ctx context.Context) (map[domain.Key]domain.ReviewState, error) {
	rows, err := r.db.QueryContext(ctx, loadStatesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[domain.Key]domain.ReviewState{}
	for rows.Next() {
		var (
			source, id string
			st         domain.ReviewState
			tagsRaw    sql.NullString
		)
		if err := rows.Scan(&source, &id, &st.Approved, &st.SelectedForWeb, &tagsRaw); err != nil {
			return nil, err
		}
		st.Key = domain.Key{Source: domain.Source(source), ID: id}
		if tagsRaw.Valid && tagsRaw.String != "" {
			if err := json.Unmarshal([]byte(tagsRaw.String), &st.Tags); err != nil {
				return nil, err
			}
		}
		out[st.Key] = st
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) InsertCustomTag(ctx context.Context, t domain.ReviewTag) error {
	_, err := r.db.ExecContext(ctx, insertCustomTagSQL, t.ID, t.Name, t.Color, t.Description)
	return err
}

func (r *Repo) DeleteCustomTag(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteCustomTagSQL, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repo) LoadCustomTags(ctx context.Context) ([]domain.ReviewTag, error) {
	rows, err := r.db.QueryContext(ctx, loadCustomTagsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ReviewTag
	for rows.Next() {
		var t domain.ReviewTag
		var desc sql.NullString
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &desc); err != nil {
			return nil, err
		}
		t.Description = desc.String
		t.Custom = true
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
