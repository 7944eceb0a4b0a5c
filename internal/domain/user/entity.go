// Package user defines the signed-in user and the credentials that identify them
package user

import (
	"strings"
	"time"
)

// DemoToken is the sentinel token of the local demo session. It is never
// sent to the backend.
const DemoToken = "demo-token"

// User is the profile returned by the backend for the current token
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Token is the sign-in / sign-up response
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// DemoUser returns the fixed user of the demo session
func DemoUser() User {
	return User{
		ID:    "demo-user",
		Name:  "Demo User",
		Email: "demo@recipeai.app",
	}
}

// IsDemoToken reports whether token is the demo sentinel
func IsDemoToken(token string) bool {
	return token == DemoToken
}

// DisplayName returns the name, falling back to the email local part
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	if at := strings.Index(u.Email, "@"); at > 0 {
		return u.Email[:at]
	}
	return u.Email
}

// Account is a user as stored by the backend, with its password hash
type Account struct {
	User
	PasswordHash string `json:"-"`
}
