package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/desertthunder/randusr/internal/models"
)

// UsersResponse is the top-level document returned by GET /api.
type UsersResponse struct {
	Results []UserResponse `json:"results" validate:"dive"`
	Info    Info           `json:"info"`
}

// Info describes the request that produced a batch.
type Info struct {
	Seed    string `json:"seed"`
	Results int    `json:"results"`
	Page    int    `json:"page"`
	Version string `json:"version"`
}

// UserResponse is a single generated profile. Fields the cache does not use are omitted.
type UserResponse struct {
	Gender      string           `json:"gender"`
	Name        NameResponse     `json:"name"`
	Location    LocationResponse `json:"location"`
	Email       string           `json:"email" validate:"required"`
	DateOfBirth DateOfBirth      `json:"dob"`
	Picture     PictureResponse  `json:"picture"`
	Nationality string           `json:"nat"`
}

// NameResponse holds the name parts of a profile.
type NameResponse struct {
	Title string `json:"title"`
	First string `json:"first" validate:"required"`
	Last  string `json:"last" validate:"required"`
}

// LocationResponse holds the postal address of a profile.
type LocationResponse struct {
	Street   StreetResponse `json:"street"`
	City     string         `json:"city"`
	State    string         `json:"state"`
	Country  string         `json:"country"`
	Postcode Postcode       `json:"postcode"`
}

type StreetResponse struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

// DateOfBirth holds the ISO-8601 birth timestamp.
type DateOfBirth struct {
	Date string `json:"date" validate:"required"`
	Age  int    `json:"age"`
}

type PictureResponse struct {
	Large     string `json:"large"`
	Medium    string `json:"medium"`
	Thumbnail string `json:"thumbnail"`
}

// Postcode accepts both JSON strings and numbers; the API emits either depending on nationality.
type Postcode string

// UnmarshalJSON implements [json.Unmarshaler].
func (p *Postcode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Postcode(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("postcode must be a string or number: %w", err)
	}
	if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		*p = Postcode(strconv.FormatInt(i, 10))
		return nil
	}
	*p = Postcode(n.String())
	return nil
}

// ID returns the cache identifier derived from the profile name.
func (u UserResponse) ID() string {
	return models.UserID(u.Name.First, u.Name.Last)
}

// ToUser maps the wire profile onto a [models.User].
func (u UserResponse) ToUser() (models.User, error) {
	dob, err := time.Parse(time.RFC3339, u.DateOfBirth.Date)
	if err != nil {
		return models.User{}, fmt.Errorf("invalid date of birth %q for %s: %w", u.DateOfBirth.Date, u.ID(), err)
	}

	return models.User{
		ID:          u.ID(),
		Title:       u.Name.Title,
		FirstName:   u.Name.First,
		LastName:    u.Name.Last,
		Gender:      u.Gender,
		Email:       u.Email,
		Thumbnail:   u.Picture.Large,
		Nationality: u.Nationality,
		Birthday:    dob.Unix(),
	}, nil
}

// ToAddress maps the wire location onto a [models.Address] owned by [UserResponse.ID].
func (u UserResponse) ToAddress() models.Address {
	return models.Address{
		UserID:   u.ID(),
		Street:   fmt.Sprintf("%d %s", u.Location.Street.Number, u.Location.Street.Name),
		City:     u.Location.City,
		State:    u.Location.State,
		Country:  u.Location.Country,
		Postcode: string(u.Location.Postcode),
	}
}
