package schema

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RequestCollection  = "requests"
	HelplineCollection = "helplines"
)

const (
	RequestStatusPending   = "pending"
	RequestStatusCompleted = "completed"

	// RequestStatusAll is a filter value only and is never persisted.
	RequestStatusAll = "all"
)

const (
	HelpTypeMedical              = "medical"
	HelpTypeFood                 = "food"
	HelpTypeShelter              = "shelter"
	HelpTypeEmergencyTransport   = "emergencyTransport"
	HelpTypeMosquitoNetTarpaulin = "mosquitoNetTarpaulin"
	HelpTypeAnimalFeedMedicine   = "animalFeedMedicine"
)

// HelpTypes is the fixed set of help categories a request may carry.
var HelpTypes = map[string]struct{}{
	HelpTypeMedical:              {},
	HelpTypeFood:                 {},
	HelpTypeShelter:              {},
	HelpTypeEmergencyTransport:   {},
	HelpTypeMosquitoNetTarpaulin: {},
	HelpTypeAnimalFeedMedicine:   {},
}

// ContactNumberCheck matches Indian mobile numbers: ten digits, first 6-9.
var ContactNumberCheck = regexp.MustCompile(`^[6-9][0-9]{9}$`)

// Coordinates is the raw geolocation attached to a request when the
// requester shared a device position instead of typing an address.
type Coordinates struct {
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
	Accuracy  float64 `json:"accuracy,omitempty" bson:"accuracy,omitempty"`
}

// HelpRequest is a persisted request for assistance. Timestamps are unix
// milliseconds so that the (ts, _id) pair gives a total sort order.
type HelpRequest struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name          string             `json:"name,omitempty" bson:"name,omitempty"`
	Location      string             `json:"location" bson:"location"`
	Coordinates   *Coordinates       `json:"coordinates,omitempty" bson:"coordinates,omitempty"`
	ContactNumber string             `json:"contact_number" bson:"contact_number"`
	TypeOfHelp    []string           `json:"type_of_help" bson:"type_of_help"`
	Description   string             `json:"description,omitempty" bson:"description,omitempty"`
	SessionID     string             `json:"session_id" bson:"session_id"`
	Status        string             `json:"status" bson:"status"`
	Timestamp     int64              `json:"ts" bson:"ts"`
	CompletedAt   int64              `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
}

// HelpRequestParams is the submission payload before it becomes a record.
type HelpRequestParams struct {
	Name          string       `json:"name"`
	Location      string       `json:"location"`
	Coordinates   *Coordinates `json:"coordinates"`
	ContactNumber string       `json:"contact_number"`
	TypeOfHelp    []string     `json:"type_of_help"`
	Description   string       `json:"description"`
}

// TimestampNow returns the current time in unix milliseconds.
func TimestampNow() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}
