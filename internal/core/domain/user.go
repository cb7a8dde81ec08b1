package domain

import "fmt"

// Sex is the profile sex enumeration. The wire format uses the full variant
// name; the database stores a single-character code (F/M/O).
type Sex string

const (
	SexFemale Sex = "Female"
	SexMale   Sex = "Male"
	SexOther  Sex = "Other"
)

// Valid reports whether s is one of the known variants.
func (s Sex) Valid() bool {
	switch s {
	case SexFemale, SexMale, SexOther:
		return true
	}
	return false
}

// Code returns the single-character storage code for s.
func (s Sex) Code() (string, error) {
	switch s {
	case SexFemale:
		return "F", nil
	case SexMale:
		return "M", nil
	case SexOther:
		return "O", nil
	}
	return "", fmt.Errorf("unknown sex %q", string(s))
}

// SexFromCode converts a storage code back to the enumeration.
func SexFromCode(code string) (Sex, error) {
	switch code {
	case "F":
		return SexFemale, nil
	case "M":
		return SexMale, nil
	case "O":
		return SexOther, nil
	}
	return "", fmt.Errorf("unknown sex code %q", code)
}

// Address is the structured postal address embedded (as JSON) in user
// profiles, markers and contact info. It is never normalized into columns.
type Address struct {
	Street string `json:"street"`
	Number string `json:"number"`
	City   string `json:"city"`
}

// User is the credentials row. PasswordHash is a bcrypt hash with the salt
// embedded, so no separate salt column exists.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
}

// UserProfile is the 1:1 extension row created in the same transaction as
// the User it belongs to.
type UserProfile struct {
	Name       string
	Surname    string
	Sex        Sex
	Address    Address
	Reputation int
}

// PublicProfile is what anyone may see about a user.
type PublicProfile struct {
	Username   string `json:"username"`
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	Sex        Sex    `json:"sex"`
	Reputation int    `json:"reputation"`
}

// PrivateProfile is the owner's own view; it additionally carries the email
// and the stored address.
type PrivateProfile struct {
	Username   string  `json:"username"`
	Name       string  `json:"name"`
	Surname    string  `json:"surname"`
	Email      string  `json:"email"`
	Sex        Sex     `json:"sex"`
	Address    Address `json:"address"`
	Reputation int     `json:"reputation"`
}
