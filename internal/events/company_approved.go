package events

import "time"

const CompanyApprovedTopic = "compliance.company.lifecycle.v1"

type CompanyApprovedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	CompanyID    string    `json:"company_id"`
	CompanyRegNo string    `json:"company_reg_no"`
	CompanyEmail string    `json:"company_email"`
	OccurredAt   time.Time `json:"occurred_at"`
}
