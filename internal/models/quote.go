package models

import "time"

const (
	QuoteStatusPending   = "pending"
	QuoteStatusAccepted  = "accepted"
	QuoteStatusRejected  = "rejected"
	QuoteStatusCompleted = "completed"
)

const (
	MeasurementArea   = "area"
	MeasurementLinear = "linear"
)

type Address struct {
	Street       string   `json:"street"`
	Number       string   `json:"number"`
	Complement   string   `json:"complement,omitempty"`
	Neighborhood string   `json:"neighborhood"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	ZipCode      string   `json:"zip_code"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
}

type RoomMeasurement struct {
	ID       string   `json:"id"`
	RoomName string   `json:"room_name"`
	Width    float64  `json:"width"`
	Length   float64  `json:"length"`
	Height   *float64 `json:"height,omitempty"`
	Kind     string   `json:"kind"`
	Area     *float64 `json:"area,omitempty"`
}

type QuestionAnswer struct {
	QuestionID int    `json:"question_id"`
	Answer     string `json:"answer"`
}

// QuoteDetails is the client's request, assembled step by step in the wizard
// and stored as a request row on submission. serviceId is always present;
// sub-service and specialty only if the user drilled down that far.
type QuoteDetails struct {
	ID               int               `json:"id,omitempty"`
	ServiceID        int               `json:"service_id"`
	SubServiceID     *int              `json:"sub_service_id,omitempty"`
	SpecialtyID      *int              `json:"specialty_id,omitempty"`
	ServiceName      string            `json:"service_name,omitempty"`
	SubServiceName   string            `json:"sub_service_name,omitempty"`
	SpecialtyName    string            `json:"specialty_name,omitempty"`
	Address          Address           `json:"address"`
	Description      string            `json:"description,omitempty"`
	Items            map[int]int       `json:"items,omitempty"`
	Answers          []QuestionAnswer  `json:"answers,omitempty"`
	Measurements     []RoomMeasurement `json:"measurements,omitempty"`
	PreferredDate    *time.Time        `json:"preferred_date,omitempty"`
	PreferredDateEnd *time.Time        `json:"preferred_date_end,omitempty"`
	TimePreference   string            `json:"time_preference,omitempty"`
	PhotoURLs        []string          `json:"photo_urls,omitempty"`
	ClientID         *int              `json:"client_id,omitempty"`
	Status           string            `json:"status,omitempty"`
	CreatedAt        time.Time         `json:"created_at,omitempty"`
}
