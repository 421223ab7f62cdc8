package domain

// RecipientStatus classifies the result of one per-recipient dispatch.
type RecipientStatus string

const (
	// StatusDelivered means the push transport accepted the notification.
	StatusDelivered RecipientStatus = "delivered"
	// StatusSkipped means the recipient has no known push address. Soft
	// failure: no payload was built and no audit record was written.
	StatusSkipped RecipientStatus = "skipped"
	// StatusDeliveryFailed means the push transport rejected the send.
	// Not retried.
	StatusDeliveryFailed RecipientStatus = "delivery_failed"
	// StatusAuditFailed means the audit append failed. Tracked
	// independently of the delivery result.
	StatusAuditFailed RecipientStatus = "audit_failed"
)

// RecipientOutcome is the terminal result for one recipient of one event.
type RecipientOutcome struct {
	RecipientID string
	Status      RecipientStatus
	DeliveryID  string
	Err         error
}

// EventStatus is the overall result of one fan-out invocation.
type EventStatus string

const (
	// EventCompleted is the outcome of every event that reached dispatch,
	// regardless of individual recipient failures.
	EventCompleted EventStatus = "completed"
	// EventNoOp means the message was malformed and nothing was dispatched.
	EventNoOp EventStatus = "no_op"
	// EventAborted means the directory was unavailable and resolution
	// could not proceed.
	EventAborted EventStatus = "aborted"
)

// EventOutcome aggregates the per-recipient outcomes of one event.
type EventOutcome struct {
	Status     EventStatus
	Recipients []RecipientOutcome
}
