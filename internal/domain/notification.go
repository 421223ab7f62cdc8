package domain

import "time"

// ClassificationChat tags every payload and audit record produced by the
// chat fan-out.
const ClassificationChat = "chat"

// NotificationPayload is built per recipient, handed to the push transport
// once and discarded.
type NotificationPayload struct {
	Title          string
	Body           string
	Classification string
	ConversationID string
	TargetAddress  string
}

// AuditRecord captures one attempted delivery in the durable notification
// log. Exactly one append is attempted per resolved recipient with a known
// push address, independent of whether the push itself succeeds.
// CreatedAt is assigned by the store, not by the caller.
type AuditRecord struct {
	ID             string
	RecipientID    string
	Title          string
	Body           string
	Classification string
	ConversationID string
	CreatedAt      time.Time
}
