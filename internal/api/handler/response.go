package handler

// envelope is the canonical response shape: {success, message?, data?}.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func ok(data any, message string) envelope {
	return envelope{Success: true, Message: message, Data: data}
}
