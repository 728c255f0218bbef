package domain

import "time"

// Source identifies the upstream provider a review came from.
type Source string

const (
	SourceHostaway Source = "hostaway"
	SourceGoogle   Source = "google"
	// Reserved for upcoming channel integrations.
	SourceAirbnb  Source = "airbnb"
	SourceBooking Source = "booking"
)

func KnownSources() []Source {
	return []Source{SourceHostaway, SourceGoogle, SourceAirbnb, SourceBooking}
}

func ValidSource(s Source) bool {
	switch s {
	case SourceHostaway, SourceGoogle, SourceAirbnb, SourceBooking:
		return true
	}
	return false
}

type ReviewType string

const (
	GuestToHost ReviewType = "guest_to_host"
	HostToGuest ReviewType = "host_to_guest"
)

type ReviewStatus string

const (
	StatusPublished ReviewStatus = "published"
	StatusPending   ReviewStatus = "pending"
	StatusHidden    ReviewStatus = "hidden"
)

// Key is the global identity of a review; provider ids are only unique
// within their source.
type Key struct {
	Source Source `json:"source"`
	ID     string `json:"id"`
}

// Review is the canonical, source-agnostic record every pipeline stage
// operates on. Only Approved, SelectedForWeb and Tags are mutable after
// creation; everything else is fixed by the source adapter.
type Review struct {
	ID          string             `json:"id"`
	Source      Source             `json:"source"`
	ListingID   string             `json:"listingId,omitempty"`
	ListingName string             `json:"listingName"`
	Channel     string             `json:"channel"`
	Type        ReviewType         `json:"type"`
	Status      ReviewStatus       `json:"status"`
	SubmittedAt time.Time          `json:"submittedAt"`
	Rating      *float64           `json:"rating"` // 1-5, nil when the provider gave no overall score
	Categories  map[string]float64 `json:"categories"`
	Text        string             `json:"text"`
	GuestName   *string            `json:"guestName"`

	Approved       bool     `json:"approved"`
	SelectedForWeb bool     `json:"selectedForWeb"`
	Tags           []string `json:"tags"`
}

func (r Review) Key() Key { return Key{Source: r.Source, ID: r.ID} }

// RatingOrZero is the value rating filters and rating sorts operate on.
func (r Review) RatingOrZero() float64 {
	if r.Rating == nil {
		return 0
	}
	return *r.Rating
}

func (r Review) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// StatePatch is a partial moderation update; nil fields are left unchanged.
type StatePatch struct {
	Approved       *bool
	SelectedForWeb *bool
	Tags           *[]string
}
