package models

// OperationResult is the outcome of a single dashboard-initiated operation.
type OperationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Group   string `json:"group,omitempty"`
	Email   string `json:"email,omitempty"`
	Role    string `json:"role,omitempty"`
	OldName string `json:"old_name,omitempty"`
	NewName string `json:"new_name,omitempty"`
}

// BulkAddResult reports the per-email outcome of a bulk member add.
type BulkAddResult struct {
	Added  []string          `json:"added"`
	Failed map[string]string `json:"failed,omitempty"`
}
