package hostaway

// Fixture payloads in the raw Hostaway wire shape (0-10 scores,
// "YYYY-MM-DD hh:mm:ss" timestamps), used when no API key is
// configured. Taken from the sandbox dataset for the Shoreditch
// Heights listing.

func fixtureReviews() []map[string]any {
	return []map[string]any{
		{
			"id":           7453.0,
			"type":         "guest-to-host",
			"status":       "published",
			"rating":       10.0,
			"publicReview": "Absolutely fantastic stay! The apartment was spotless, beautifully decorated, and had everything we needed. The location was perfect - close to all the main attractions but still quiet at night. Would definitely recommend and will be back!",
			"reviewCategory": []any{
				map[string]any{"category": "cleanliness", "rating": 10.0},
				map[string]any{"category": "communication", "rating": 10.0},
				map[string]any{"category": "location", "rating": 10.0},
				map[string]any{"category": "value", "rating": 10.0},
			},
			"submittedAt": "2024-08-15 10:30:00",
			"guestName":   "Jerome Calloway",
			"listingMapId": 1.0,
			"listingName":  "2B N1 A - 29 Shoreditch Heights",
		},
		{
			"id":           7454.0,
			"type":         "host-to-guest",
			"status":       "published",
			"rating":       nil,
			"publicReview": "Excellent guest! Very respectful of the property and left everything in perfect condition. Great communication throughout their stay. Would welcome them back anytime.",
			"reviewCategory": []any{
				map[string]any{"category": "cleanliness", "rating": 10.0},
				map[string]any{"category": "communication", "rating": 10.0},
				map[string]any{"category": "respect_house_rules", "rating": 10.0},
			},
			"submittedAt":  "2024-08-14 14:30:00",
			"guestName":    "Flex Living Host",
			"listingMapId": 1.0,
			"listingName":  "2B N1 A - 29 Shoreditch Heights",
		},
		{
			"id":           7455.0,
			"type":         "guest-to-host",
			"status":       "pending",
			"rating":       6.0,
			"publicReview": "The apartment was okay, but the wifi was a bit slow. Good location though. Could be cleaner.",
			"reviewCategory": []any{
				map[string]any{"category": "cleanliness", "rating": 6.0},
				map[string]any{"category": "communication", "rating": 8.0},
				map[string]any{"category": "location", "rating": 8.0},
				map[string]any{"category": "value", "rating": 6.0},
			},
			"submittedAt":  "2024-08-13 09:15:00",
			"guestName":    "Sarah Johnson",
			"listingMapId": 1.0,
			"listingName":  "2B N1 A - 29 Shoreditch Heights",
		},
		{
			"id":           7456.0,
			"type":         "guest-to-host",
			"status":       "published",
			"rating":       8.0,
			"publicReview": "Great location and the apartment was well-equipped. The host was very helpful with local recommendations. Would stay again!",
			"reviewCategory": []any{
				map[string]any{"category": "cleanliness", "rating": 8.0},
				map[string]any{"category": "communication", "rating": 10.0},
				map[string]any{"category": "location", "rating": 8.0},
				map[string]any{"category": "value", "rating": 8.0},
			},
			"submittedAt":  "2024-07-12 16:45:00",
			"guestName":    "Michael Brown",
			"listingMapId": 1.0,
			"listingName":  "2B N1 A - 29 Shoreditch Heights",
		},
		{
			"id":           7457.0,
			"type":         "guest-to-host",
			"status":       "published",
			"rating":       10.0,
			"publicReview": "Perfect stay! Everything was exactly as described. The apartment was spotless and the location couldn't be better. Highly recommend!",
			"reviewCategory": []any{
				map[string]any{"category": "cleanliness", "rating": 10.0},
				map[string]any{"category": "communication", "rating": 10.0},
				map[string]any{"category": "location", "rating": 10.0},
				map[string]any{"category": "value", "rating": 10.0},
			},
			"submittedAt":  "2024-07-11 11:20:00",
			"guestName":    "Emma Wilson",
			"listingMapId": 1.0,
			"listingName":  "2B N1 A - 29 Shoreditch Heights",
		},
		{
			"id":           7458.0,
			"type":         "guest-to-host",
			"status":       "pending",
			"rating":       4.0,
			"publicReview": "Disappointing stay. The apartment was not as clean as expected and there were some maintenance issues. The location was good though.",
			"reviewCategory": []any{
				map[string]any{"category": "cleanliness", "rating": 4.0},
				map[string]any{"category": "communication", "rating": 6.0},
				map[string]any{"category": "location", "rating": 8.0},
				map[string]any{"category": "value", "rating": 4.0},
			},
			"submittedAt":  "2024-07-07 12:30:00",
			"guestName":    "Robert Taylor",
			"listingMapId": 1.0,
			"listingName":  "2B N1 A - 29 Shoreditch Heights",
		},
	}
}
