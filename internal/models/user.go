package models

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

var _ Model = (*User)(nil)

// User is an account. The profile fields (names, username) are public; the email and password hash are not.
type User struct {
	base
	email        string
	username     string
	firstName    string
	lastName     string
	passwordHash string
	deletedAt    *time.Time
}

// NewUser creates a user with timestamps set to now.
func NewUser(sequence int, email, username, firstName, lastName string) *User {
	return &User{
		base:      newBase(sequence),
		email:     email,
		username:  username,
		firstName: firstName,
		lastName:  lastName,
	}
}

func (u *User) Email() string                 { return u.email }
func (u *User) Username() string              { return u.username }
func (u *User) SetUsername(s string)          { u.username = s }
func (u *User) FirstName() string             { return u.firstName }
func (u *User) SetFirstName(s string)         { u.firstName = s }
func (u *User) LastName() string              { return u.lastName }
func (u *User) SetLastName(s string)          { u.lastName = s }
func (u *User) PasswordHash() string          { return u.passwordHash }
func (u *User) SetPasswordHash(h string)      { u.passwordHash = h }
func (u *User) DeletedAt() *time.Time         { return u.deletedAt }
func (u *User) SetDeletedAt(t *time.Time)     { u.deletedAt = t }
func (u *User) FullName() string              { return strings.TrimSpace(u.firstName + " " + u.lastName) }

// Validate checks required fields and the email format.
func (u *User) Validate() error {
	if u.id == "" {
		return fmt.Errorf("user ID is required")
	}
	if _, err := mail.ParseAddress(u.email); err != nil {
		return fmt.Errorf("invalid email %q", u.email)
	}
	if strings.TrimSpace(u.username) == "" {
		return fmt.Errorf("username is required")
	}
	if strings.ContainsAny(u.username, " \t\n/") {
		return fmt.Errorf("username may not contain spaces or slashes")
	}
	if strings.TrimSpace(u.firstName) == "" || strings.TrimSpace(u.lastName) == "" {
		return fmt.Errorf("first and last name are required")
	}
	if u.passwordHash == "" {
		return fmt.Errorf("password hash is required")
	}
	return nil
}

// Profile is the public view of a [User].
type Profile struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Profile returns the public fields of u.
func (u *User) Profile() Profile {
	return Profile{ID: u.id, Username: u.username, FirstName: u.firstName, LastName: u.lastName}
}
