package dto

type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type SuccessResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data,omitempty"`
}

type PageMeta struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Count  int `json:"count"`
}

type PagedResponse struct {
	OK   bool     `json:"ok"`
	Data any      `json:"data"`
	Page PageMeta `json:"page"`
}

type MeResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}
