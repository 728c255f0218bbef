package googleplaces

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rs/zerolog/log"

	"github.com/utkarshagawade17/flex-reviews/internal/adapters/upstream"
	"github.com/utkarshagawade17/flex-reviews/internal/domain"
)

// Client pulls review content for configured place ids from the Places
// Details API. Like the Hostaway adapter it runs on embedded fixtures
// when no API key is configured.
type Client struct {
	up       *upstream.Client
	base     string
	key      string
	placeIDs []string
}

func New(base, key string, placeIDs []string, rps int) *Client {
	return &Client{up: upstream.New(rps), base: base, key: key, placeIDs: placeIDs}
}

func (c *Client) Source() domain.Source { return domain.SourceGoogle }

func (c *Client) Fetch(ctx context.Context) (domain.FetchResult, error) {
	if c.key == "" {
		log.Debug().Msg("googleplaces: no API key, serving fixture reviews")
		return fixtureResult(), nil
	}

	var out domain.FetchResult
	for _, placeID := range c.placeIDs {
		u := fmt.Sprintf("%s/details/json?place_id=%s&fields=name,reviews&key=%s",
			c.base, url.QueryEscape(placeID), url.QueryEscape(c.key))
		var env struct {
			Status string         `json:"status"`
			Result map[string]any `json:"result"`
		}
		if err := c.up.GetJSON(ctx, u, nil, &env); err != nil {
			return domain.FetchResult{}, err
		}
		if env.Status != "OK" {
			return domain.FetchResult{}, fmt.Errorf("places status %q for %s", env.Status, placeID)
		}

		name := upstream.Str(env.Result, "name")
		raw, _ := upstream.Lookup(env.Result, "reviews").([]any)
		reviews := make([]map[string]any, 0, len(raw))
		for _, it := range raw {
			if m, ok := it.(map[string]any); ok {
				reviews = append(reviews, m)
			}
		}
		res := NormalizePlace(placeID, name, reviews)
		out.Reviews = append(out.Reviews, res.Reviews...)
		out.Excluded += res.Excluded
	}
	return out, nil
}
