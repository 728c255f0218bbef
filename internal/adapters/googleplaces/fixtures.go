package googleplaces

import "github.com/utkarshagawade17/flex-reviews/internal/domain"

// Fixture payloads in the raw Places wire shape (unix timestamps,
// 1-5 ratings), used when no API key is configured.

const fixturePlaceID = "ChIJ-shoreditch-heights"

func fixtureResult() domain.FetchResult {
	return NormalizePlace(fixturePlaceID, "2B N1 A - 29 Shoreditch Heights", []map[string]any{
		{
			"review_id":   "g1",
			"author_name": "Alice Wonderland",
			"rating":      5.0,
			"text":        "Amazing experience! The place was exactly as described, very clean and comfortable. Great location, easy to get around. Highly recommend!",
			"time":        1723300200.0, // 2024-08-10T14:30:00Z
			"aspects": []any{
				map[string]any{"type": "cleanliness", "rating": 5.0},
				map[string]any{"type": "location", "rating": 5.0},
				map[string]any{"type": "value", "rating": 5.0},
			},
		},
		{
			"review_id":   "g2",
			"author_name": "Bob The Builder",
			"rating":      4.0,
			"text":        "Good stay overall. The apartment was nice, but the check-in process was a bit confusing. Otherwise, no complaints.",
			"time":        1723108500.0, // 2024-08-08T09:15:00Z
			"aspects": []any{
				map[string]any{"type": "cleanliness", "rating": 4.0},
				map[string]any{"type": "location", "rating": 5.0},
				map[string]any{"type": "value", "rating": 4.0},
			},
		},
		{
			"review_id":   "g3",
			"author_name": "Charlie Chaplin",
			"rating":      3.0,
			"text":        "Decent place. A bit noisy at night and the bed wasn't very comfortable. Good value for money though.",
			"time":        1722876300.0, // 2024-08-05T16:45:00Z
			"aspects": []any{
				map[string]any{"type": "cleanliness", "rating": 3.0},
				map[string]any{"type": "location", "rating": 4.0},
				map[string]any{"type": "value", "rating": 3.0},
			},
		},
		{
			"review_id":   "g4",
			"author_name": "Diana Prince",
			"rating":      5.0,
			"text":        "Exceptional stay! The apartment was immaculate and the location was perfect. The host was very helpful and responsive. Will definitely return!",
			"time":        1722684000.0, // 2024-08-03T11:20:00Z
			"aspects": []any{
				map[string]any{"type": "cleanliness", "rating": 5.0},
				map[string]any{"type": "location", "rating": 5.0},
				map[string]any{"type": "value", "rating": 5.0},
			},
		},
		{
			// No review_id: exercises the synthesized stable id path.
			"author_name": "Edward Norton",
			"rating":      4.0,
			"text":        "Great location and comfortable stay. The apartment was clean and well-equipped. Minor issue with the wifi but overall good experience.",
			"time":        1722519000.0, // 2024-08-01T13:30:00Z
		},
	})
}
