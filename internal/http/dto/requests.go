package dto

type CreateActivityRequest struct {
	ActionType   string         `json:"action_type"`
	ResourceType string         `json:"resource_type"`
	ResourceID   string         `json:"resource_id"`
	MatterID     string         `json:"matter_id,omitempty"`
	Description  string         `json:"description"`
	Username     string         `json:"username,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

type CreateMatterRequest struct {
	MatterNumber string  `json:"matter_number"`
	MatterName   string  `json:"matter_name"`
	MatterType   string  `json:"matter_type"`
	Jurisdiction *string `json:"jurisdiction,omitempty"`
	CourtName    *string `json:"court_name,omitempty"`
	CaseNumber   *string `json:"case_number,omitempty"`
	Status       string  `json:"status,omitempty"`
	Description  *string `json:"description,omitempty"`
	// OpenedDate is YYYY-MM-DD.
	OpenedDate *string `json:"opened_date,omitempty"`
}
