// package models defines the data model for the random user cache
package models

import (
	"fmt"
	"strings"
	"time"
)

// BirthdayLayout renders birthdays as "January 02 2006".
const BirthdayLayout = "January 02 2006"

// User is a cached profile record sourced from the remote random user API.
type User struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Gender      string `json:"gender"`
	Email       string `json:"email"`
	Thumbnail   string `json:"thumbnail"`
	Nationality string `json:"nationality"`
	Birthday    int64  `json:"birthday"` // Unix seconds
}

// Address is a cached location record associated one-to-one with a [User].
type Address struct {
	UserID   string `json:"user_id"`
	Street   string `json:"street"`
	City     string `json:"city"`
	State    string `json:"state"`
	Country  string `json:"country"`
	Postcode string `json:"postcode"`
}

// UserResult records the 1-based position of a user in the most recent batch.
type UserResult struct {
	Index  int64  `json:"index"`
	UserID string `json:"user_id"`
}

// UserDetail pairs a user with its address.
type UserDetail struct {
	User    User    `json:"user"`
	Address Address `json:"address"`
}

// UserID derives the cache identifier for a user from their first and last name.
func UserID(first, last string) string {
	return strings.ToLower(first + "-" + last)
}

// FullName joins first and last name.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// DisplayName includes the title when present, e.g. "Ms Gema Herrera".
func (u User) DisplayName() string {
	if u.Title == "" {
		return u.FullName()
	}
	return u.Title + " " + u.FullName()
}

// BirthDate returns the birthday as a UTC time.
func (u User) BirthDate() time.Time {
	return time.Unix(u.Birthday, 0).UTC()
}

// FormattedBirthday renders the birthday with [BirthdayLayout].
func (u User) FormattedBirthday() string {
	return u.BirthDate().Format(BirthdayLayout)
}

// Validate checks the fields the cache depends on.
func (u User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("user id is required")
	}
	if u.FirstName == "" || u.LastName == "" {
		return fmt.Errorf("user %s: first and last name are required", u.ID)
	}
	if u.Email == "" {
		return fmt.Errorf("user %s: email is required", u.ID)
	}
	return nil
}

// String renders the address as "street, city, state country, postcode".
func (a Address) String() string {
	return fmt.Sprintf("%s, %s, %s %s, %s", a.Street, a.City, a.State, a.Country, a.Postcode)
}

// Validate checks that the address is attached to a user.
func (a Address) Validate() error {
	if a.UserID == "" {
		return fmt.Errorf("address user id is required")
	}
	return nil
}
