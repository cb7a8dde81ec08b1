package handler

import (
	"github.com/cosiedzieje/markers-api/internal/core/domain"
)

// --- Request types ---

type contactMethodRequest struct {
	Type string `json:"type" validate:"required,oneof=Email PhoneNumber"`
	Val  string `json:"val"  validate:"required"`
}

type contactInfoRequest struct {
	Name    string               `json:"name"    validate:"required"`
	Surname string               `json:"surname" validate:"required"`
	Address addressRequest       `json:"address"`
	Method  contactMethodRequest `json:"method"`
}

// createMarkerRequest is the marker publication payload. addTime is accepted
// for wire compatibility but discarded: the server assigns its own creation
// timestamp. No plausibility check relates startTime and endTime.
type createMarkerRequest struct {
	Latitude    float64            `json:"latitude"    validate:"min=-90,max=90"`
	Longitude   float64            `json:"longitude"   validate:"min=-180,max=180"`
	Title       string             `json:"title"       validate:"required"`
	Description string             `json:"description" validate:"required"`
	Type        domain.EventType   `json:"type"        validate:"required,oneof=NeighborHelp Happening Charity MassEvent"`
	AddTime     *domain.UnixTime   `json:"addTime"`
	StartTime   *domain.UnixTime   `json:"startTime"`
	EndTime     *domain.UnixTime   `json:"endTime"`
	Address     addressRequest     `json:"address"`
	ContactInfo contactInfoRequest `json:"contactInfo"`
}

// --- Request to domain ---

func toMarker(r createMarkerRequest) *domain.Marker {
	return &domain.Marker{
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		Title:       r.Title,
		Description: r.Description,
		Type:        r.Type,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Address:     toAddress(r.Address),
		ContactInfo: domain.ContactInfo{
			Name:    r.ContactInfo.Name,
			Surname: r.ContactInfo.Surname,
			Address: toAddress(r.ContactInfo.Address),
			Method: domain.ContactMethod{
				Type: r.ContactInfo.Method.Type,
				Val:  r.ContactInfo.Method.Val,
			},
		},
	}
}
