// internal/workers/engagement/deliver-nudge/models.go
package delivernudge

import "finlight-engine/internal/nudge"

type Input struct {
	UserID      string `json:"userId"`
	CurrentDate string `json:"currentDate,omitempty"`
	// Channels defaults to every enabled channel.
	Channels []string `json:"channels,omitempty"`
}

type Output struct {
	NotificationID string        `json:"notificationId"`
	Status         string        `json:"status"`
	Nudges         []nudge.Nudge `json:"nudges"`
	Channels       []string      `json:"channels"`
	SentAt         string        `json:"sentAt"` // ISO 8601
}

// Delivery channels
const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// Statuses
const (
	StatusSent    = "sent"
	StatusSkipped = "skipped"
)
