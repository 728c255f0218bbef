package domain

// ReviewTag is a moderation label. Predefined tags are seeded at process
// start and can never be deleted; custom tags are created at runtime.
type ReviewTag struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description,omitempty"`
	Custom      bool   `json:"custom,omitempty"`
}

// PredefinedTags mirrors the fixed dashboard tag palette.
func PredefinedTags() []ReviewTag {
	return []ReviewTag{
		{ID: "wifi", Name: "WiFi", Color: "blue", Description: "Issues or mentions related to internet connectivity"},
		{ID: "cleanliness", Name: "Cleanliness", Color: "green", Description: "Cleanliness-related feedback"},
		{ID: "noise", Name: "Noise", Color: "orange", Description: "Noise complaints or mentions"},
		{ID: "location", Name: "Location", Color: "purple", Description: "Location-related feedback"},
		{ID: "host_response", Name: "Host Response", Color: "cyan", Description: "Host communication and responsiveness"},
		{ID: "long_stay", Name: "Long Stay", Color: "indigo", Description: "Extended stay reviews"},
		{ID: "vip", Name: "VIP", Color: "gold", Description: "High-priority or VIP guest reviews"},
		{ID: "spam", Name: "Spam", Color: "red", Description: "Suspected spam or fake reviews"},
		{ID: "todo", Name: "Todo", Color: "yellow", Description: "Requires follow-up action"},
		{ID: "featured", Name: "Featured", Color: "pink", Description: "Featured reviews for public display"},
	}
}
