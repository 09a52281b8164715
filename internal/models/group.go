package models

// Group represents a Google Workspace Group as listed by the Directory API.
type Group struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
