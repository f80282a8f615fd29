package core

import "context"

// Notification is the payload published to the message channel on every
// successful support transition. It is built from the post-mutation record
// snapshot and is immutable once built.
//
// Recipients is an ordered sequence of directory user ids: duplicates
// removed, insertion order preserved.
type Notification struct {
	SupportID  string `json:"support_id"`
	Title      string `json:"title"`
	Recipients []int  `json:"recipients"`
	OwnerID    int    `json:"owner_id"`
	Status     string `json:"status"`
	Level      string `json:"level,omitempty"`
	Subject    string `json:"subject,omitempty"`
}

// NotificationService publishes support event notifications to the message
// channel. Publish is synchronous up to broker acknowledgment; consumer
// processing is never awaited. Delivery is at-least-once as assumed of the
// channel, not guaranteed here.
type NotificationService interface {
	PublishSupportEvent(ctx context.Context, notif Notification) error
}
