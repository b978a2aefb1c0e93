package chat

// Profile is the display data resolved from an account directory.
// Resolved is false for placeholders built when the lookup failed.
type Profile struct {
	ID        string   `json:"id" msgpack:"id"`
	Category  Category `json:"category" msgpack:"category"`
	Name      string   `json:"name" msgpack:"name"`
	Title     string   `json:"title,omitempty" msgpack:"title"`
	AvatarURL string   `json:"avatarUrl,omitempty" msgpack:"avatar_url"`
	Resolved  bool     `json:"resolved" msgpack:"-"`
}

func PlaceholderProfile(account Account) Profile {
	return Profile{ID: account.ID, Category: account.Category}
}
