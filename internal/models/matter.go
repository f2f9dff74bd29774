package models

import (
	"time"

	"github.com/google/uuid"
)

// Matter types
const (
	MatterTypeState      = "state"
	MatterTypeFederal    = "federal"
	MatterTypeBankruptcy = "bankruptcy"
	MatterTypeBusiness   = "business"
	MatterTypeOther      = "other"
)

// Matter statuses
const (
	MatterStatusActive   = "active"
	MatterStatusClosed   = "closed"
	MatterStatusOnHold   = "on_hold"
	MatterStatusArchived = "archived"
)

var matterTypes = map[string]bool{
	MatterTypeState: true, MatterTypeFederal: true, MatterTypeBankruptcy: true,
	MatterTypeBusiness: true, MatterTypeOther: true,
}

var matterStatuses = map[string]bool{
	MatterStatusActive: true, MatterStatusClosed: true, MatterStatusOnHold: true, MatterStatusArchived: true,
}

func IsValidMatterType(t string) bool { return matterTypes[t] }
func IsValidMatterStatus(s string) bool { return matterStatuses[s] }

type Matter struct {
	ID           uuid.UUID  `json:"id"`
	MatterNumber string     `json:"matter_number"`
	MatterName   string     `json:"matter_name"`
	MatterType   string     `json:"matter_type"`
	Jurisdiction *string    `json:"jurisdiction,omitempty"`
	CourtName    *string    `json:"court_name,omitempty"`
	CaseNumber   *string    `json:"case_number,omitempty"`
	Status       string     `json:"status"`
	Description  *string    `json:"description,omitempty"`
	OpenedDate   *time.Time `json:"opened_date,omitempty"`
	ClosedDate   *time.Time `json:"closed_date,omitempty"`
	CreatedBy    *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
