package models

// Status is the moderation flag controlling public visibility of an entity.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusClosed   Status = "closed"
)

func (s Status) String() string { return string(s) }
