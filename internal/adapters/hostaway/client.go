package hostaway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/utkarshagawade17/flex-reviews/internal/adapters/upstream"
	"github.com/utkarshagawade17/flex-reviews/internal/domain"
)

// Client fetches reviews from the Hostaway property-management API and
// normalizes them into canonical records. With no API key configured it
// serves the embedded fixture payloads instead, so the dashboard works
// in sandbox mode.
type Client struct {
	up   *upstream.Client
	base string
	key  string
}

func New(base, key string, rps int) *Client {
	return &Client{up: upstream.New(rps), base: base, key: key}
}

func (c *Client) Source() domain.Source { return domain.SourceHostaway }

func (c *Client) Fetch(ctx context.Context) (domain.FetchResult, error) {
	if c.key == "" {
		log.Debug().Msg("hostaway: no API key, serving fixture reviews")
		return Normalize(fixtureReviews()), nil
	}

	candidates := []string{
		fmt.Sprintf("%s/v1/reviews?limit=500", c.base), // preferred
		fmt.Sprintf("%s/reviews?limit=500", c.base),    // legacy
	}
	var env struct {
		Status string           `json:"status"`
		Result []map[string]any `json:"result"`
	}
	header := http.Header{}
	header.Set("Authorization", "Bearer "+c.key)
	if err := c.up.GetFirst(ctx, candidates, header, &env); err != nil {
		return domain.FetchResult{}, err
	}
	return Normalize(env.Result), nil
}
