package users

// User is the profile returned by the backend's current-user endpoint.
type User struct {
	ID        int    `json:"id,omitempty"`         // Backend identifier
	Username  string `json:"username"`             // Login identifier
	Email     string `json:"email,omitempty"`      // User's email address
	FirstName string `json:"first_name,omitempty"` // First name of the user
	LastName  string `json:"last_name,omitempty"`  // Last name of the user
	IsStaff   bool   `json:"is_staff,omitempty"`   // Backend admin flag
}

// Minimal builds the fallback profile used when a login succeeds but the
// profile fetch does not. The session stays authenticated on the strength
// of the issued token; only the display data is degraded.
func Minimal(username string) *User {
	return &User{Username: username}
}

// FullName returns the user's display name, falling back to the username.
func (u *User) FullName() string {
	switch {
	case u == nil:
		return ""
	case u.FirstName == "" && u.LastName == "":
		return u.Username
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
