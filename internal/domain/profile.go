package domain

// AccountProfile is the public identity of a social account as shown in the profile card.
type AccountProfile struct {
	Name     string `json:"name"`
	Handle   string `json:"handle"`
	ImageURL string `json:"imageUrl"`
}
