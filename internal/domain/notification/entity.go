package notification

import "time"

type Kind string

const (
	KindRequestSubmitted Kind = "request_submitted"
	KindRequestApproved  Kind = "request_approved"
	KindRequestRejected  Kind = "request_rejected"
	KindRequestCancelled Kind = "request_cancelled"
	KindSwapResponse     Kind = "swap_response"
	KindLetterHandled    Kind = "letter_handled"
	KindOTDecision       Kind = "ot_decision"
)

type Notification struct {
	ID         string
	UserID     string
	Kind       Kind
	Title      string
	Body       string
	ResourceID *string
	IsRead     bool
	CreatedAt  time.Time
}
