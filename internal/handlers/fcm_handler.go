package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"firebase.google.com/go/messaging"

	"servioBack/internal/services"
)

// FCMHandler owns the Firebase messaging client. It doubles as the push
// sender the billing and quote services use.
type FCMHandler struct {
	Client   *messaging.Client
	Users    *services.UserService
	ErrorLog *log.Logger
}

func NewFCMHandler(client *messaging.Client, users *services.UserService, errorLog *log.Logger) *FCMHandler {
	return &FCMHandler{Client: client, Users: users, ErrorLog: errorLog}
}

// SendPush implements services.PushSender.
func (h *FCMHandler) SendPush(ctx context.Context, token, title, body string) error {
	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority_channel",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority": "10",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{
						Title: title,
						Body:  body,
					},
					Sound: "default",
				},
			},
		},
	}

	_, err := h.Client.Send(ctx, message)
	if err != nil && h.ErrorLog != nil {
		h.ErrorLog.Printf("fcm send: %v", err)
	}
	return err
}

// RegisterToken stores the device token for the authenticated user.
func (h *FCMHandler) RegisterToken(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)
	if userID == 0 {
		http.Error(w, "user not authorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Users.RegisterFCMToken(r.Context(), userID, req.Token); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
}
