package events

import "time"

const EmployeeCreatedTopic = "compliance.employee.lifecycle.v1"

type EmployeeCreatedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	EmployeeID   string    `json:"employee_id"`
	CompanyRegNo string    `json:"company_reg_no"`
	OccurredAt   time.Time `json:"occurred_at"`
}
