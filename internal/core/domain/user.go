package domain

import "regexp"

// DefaultUserName is used when a user signs up without a name.
const DefaultUserName = "Anonymous"

// User represents a customer or staff account. Email is the login name.
type User struct {
	UserID       string `json:"userID"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	Phone        string `json:"phone,omitempty"`
	Gender       string `json:"gender,omitempty"`
	IsStaff      bool   `json:"isStaff"`
	IsSuperuser  bool   `json:"isSuperuser"`
	IsActive     bool   `json:"isActive"`
	Timestamps
}

// Public returns a copy of the user with the password hash removed.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}

// Capabilities derives the capability set granted by the user's role flags.
func (u *User) Capabilities() map[Capability]bool {
	caps := make(map[Capability]bool, 3)
	if u == nil || !u.IsActive {
		return caps
	}
	caps[CapAuthenticated] = true
	if u.IsStaff || u.IsSuperuser {
		caps[CapStaff] = true
	}
	if u.IsSuperuser {
		caps[CapSuperuser] = true
	}
	return caps
}

// emailPattern is the storefront's historical email rule: word characters,
// dots, plus and dash before the @, a single-label domain and a 2–3 letter
// lowercase TLD. It rejects many valid addresses and is kept as-is.
var emailPattern = regexp.MustCompile(`^[\w.+\-]+@\w+\.[a-z]{2,3}$`)

// MinPasswordLength is the shortest password accepted at sign-in and signup.
const MinPasswordLength = 3

// IsValidEmail reports whether email satisfies the storefront email rule.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
