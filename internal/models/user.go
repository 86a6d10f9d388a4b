package models

// User is an identity record. Usernames are unique and case-sensitive within
// the active registry; the id is opaque (server-assigned in remote mode,
// locally generated otherwise).
type User struct {
	ID       ID     `json:"id"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Email    string `json:"email,omitempty"`
}
