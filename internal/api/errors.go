package api

import (
	"encoding/json"
	"fmt"
)

// Error is a non-2xx answer from the budgeting API, carrying the HTTP status
// and the server-provided (or generic) message.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

// serverMessage extracts a human-readable message from an error response
// body. The API answers with {"error": "..."} or {"message": "..."};
// anything else yields "".
func serverMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}
