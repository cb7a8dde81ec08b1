package domain

import (
	"bytes"
	"fmt"
	"strconv"
	"time"
)

// EventType classifies a marker. The wire format uses the full variant name;
// the database stores a single-character code (A–D).
type EventType string

const (
	EventNeighborHelp EventType = "NeighborHelp"
	EventHappening    EventType = "Happening"
	EventCharity      EventType = "Charity"
	EventMassEvent    EventType = "MassEvent"
)

// Valid reports whether t is one of the known variants.
func (t EventType) Valid() bool {
	switch t {
	case EventNeighborHelp, EventHappening, EventCharity, EventMassEvent:
		return true
	}
	return false
}

// Code returns the single-character storage code for t.
func (t EventType) Code() (string, error) {
	switch t {
	case EventNeighborHelp:
		return "A", nil
	case EventHappening:
		return "B", nil
	case EventCharity:
		return "C", nil
	case EventMassEvent:
		return "D", nil
	}
	return "", fmt.Errorf("unknown event type %q", string(t))
}

// EventTypeFromCode converts a storage code back to the enumeration.
func EventTypeFromCode(code string) (EventType, error) {
	switch code {
	case "A":
		return EventNeighborHelp, nil
	case "B":
		return EventHappening, nil
	case "C":
		return EventCharity, nil
	case "D":
		return EventMassEvent, nil
	}
	return "", fmt.Errorf("unknown event type code %q", code)
}

// Contact method discriminants.
const (
	ContactEmail       = "Email"
	ContactPhoneNumber = "PhoneNumber"
)

// ContactMethod is a tagged union: either an email address or a phone
// number, discriminated by Type and carrying the value in Val.
type ContactMethod struct {
	Type string `json:"type"`
	Val  string `json:"val"`
}

// ContactInfo is the structured contact block embedded (as JSON) in a marker.
type ContactInfo struct {
	Name    string        `json:"name"`
	Surname string        `json:"surname"`
	Address Address       `json:"address"`
	Method  ContactMethod `json:"method"`
}

// UnixTime is a time.Time that marshals to/from integer unix seconds,
// matching the wire contract for addTime/startTime/endTime.
type UnixTime struct {
	time.Time
}

// NewUnixTime truncates t to second precision, the granularity the wire
// format and the add_time column carry.
func NewUnixTime(t time.Time) UnixTime {
	return UnixTime{t.UTC().Truncate(time.Second)}
}

func (t UnixTime) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, t.UTC().Unix(), 10), nil
}

func (t *UnixTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	secs, err := strconv.ParseInt(string(bytes.TrimSpace(b)), 10, 64)
	if err != nil {
		return fmt.Errorf("unix timestamp: %w", err)
	}
	t.Time = time.Unix(secs, 0).UTC()
	return nil
}

// Marker is a single published geotagged event record. AddTime is always
// assigned by the server at insert time; a client-supplied value is ignored.
// Markers are never updated in place.
type Marker struct {
	ID          int64       `json:"id"`
	Latitude    float64     `json:"latitude"`
	Longitude   float64     `json:"longitude"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Type        EventType   `json:"type"`
	AddTime     UnixTime    `json:"addTime"`
	StartTime   *UnixTime   `json:"startTime"`
	EndTime     *UnixTime   `json:"endTime"`
	Address     Address     `json:"address"`
	ContactInfo ContactInfo `json:"contactInfo"`
	UserID      int64       `json:"userID"`
}

// MarkerWithDistance is a proximity search result: the marker plus its
// great-circle distance from the query point, in kilometers.
type MarkerWithDistance struct {
	Marker
	DistanceInKm float64 `json:"distanceInKm"`
}
