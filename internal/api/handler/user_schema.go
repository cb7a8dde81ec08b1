package handler

import (
	"github.com/cosiedzieje/markers-api/internal/core/domain"
	"github.com/cosiedzieje/markers-api/internal/core/ports"
)

// --- Request types ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type addressRequest struct {
	Street string `json:"street" validate:"required"`
	Number string `json:"number" validate:"required"`
	City   string `json:"city"   validate:"required"`
}

// registerRequest mirrors the client registration payload: the credentials
// nested under "login", the public display name under "username", and the
// profile fields alongside. Reputation defaults to zero when omitted.
type registerRequest struct {
	Login      loginRequest   `json:"login"`
	Username   string         `json:"username" validate:"required"`
	Name       string         `json:"name"     validate:"required"`
	Surname    string         `json:"surname"  validate:"required"`
	Sex        domain.Sex     `json:"sex"      validate:"required,oneof=Female Male Other"`
	Address    addressRequest `json:"address"`
	Reputation int            `json:"reputation"`
}

// --- Request to service input ---

func toRegistrationInput(r registerRequest) ports.RegistrationInput {
	return ports.RegistrationInput{
		Email:      r.Login.Email,
		Password:   r.Login.Password,
		Username:   r.Username,
		Name:       r.Name,
		Surname:    r.Surname,
		Sex:        r.Sex,
		Address:    toAddress(r.Address),
		Reputation: r.Reputation,
	}
}

func toAddress(r addressRequest) domain.Address {
	return domain.Address{Street: r.Street, Number: r.Number, City: r.City}
}
