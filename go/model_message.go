package backofficeserver

// MessageResponse acknowledges a write. ID is only set on create.
type MessageResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id,omitempty"`
}
