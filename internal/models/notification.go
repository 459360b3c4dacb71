package models

import "time"

// Notification is the frame the websocket hub pushes to a connected user.
type Notification struct {
	Event     string      `json:"event"`
	Payload   interface{} `json:"payload,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}
