// Package models holds the JSON shapes exchanged with the storefront API.
package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/oauth2"
)

// Role is the backend's integer role code.
type Role int

const (
	RoleCustomer Role = 0
	RoleAdmin    Role = 1
)

func (r Role) String() string {
	switch r {
	case RoleCustomer:
		return "CUSTOMER"
	case RoleAdmin:
		return "ADMIN"
	default:
		return "ROLE(" + strconv.Itoa(int(r)) + ")"
	}
}

// IsAdmin reports whether r is exactly the admin role.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

// UnmarshalJSON accepts the numeric code or the role name.
func (r *Role) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*r = Role(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("role: %w", err)
	}
	switch strings.ToUpper(s) {
	case "CUSTOMER", "USER":
		*r = RoleCustomer
	case "ADMIN":
		*r = RoleAdmin
	default:
		return fmt.Errorf("role: unknown name %q", s)
	}
	return nil
}

// User is the profile returned by login, /auth/me and profile updates.
type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email,omitempty"`
	Name        string `json:"name,omitempty"`
	Role        Role   `json:"role"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	Province    string `json:"province,omitempty"`
}

// Credentials is the body of POST /auth/login. Username may also be an email.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the body returned by a successful login. The embedded
// token carries access_token and refresh_token.
type LoginResponse struct {
	oauth2.Token
	Message string `json:"message,omitempty"`
	User    *User  `json:"user"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Name        string `json:"name,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	Province    string `json:"province,omitempty"`
}

// UserResponse wraps a user with the server's status message.
type UserResponse struct {
	Message string `json:"message,omitempty"`
	User    *User  `json:"user"`
}

// ProfileUpdate is the body of PUT /auth/profile. Nil fields are not sent.
type ProfileUpdate struct {
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Address     *string `json:"address,omitempty"`
	City        *string `json:"city,omitempty"`
	Province    *string `json:"province,omitempty"`
}

// PasswordChange is the body of PUT /auth/change-password.
type PasswordChange struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// Message is the generic {"message": "..."} acknowledgement.
type Message struct {
	Message string `json:"message"`
}
