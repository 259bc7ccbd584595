package proxy

import (
	"encoding/json"
	"net/http"

	"github.com/AsrarMemon/event-management-frontend/pkg/response"
)

// writeError writes the JSON error envelope outside of a gin context
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(response.Response{
		Success: false,
		Error: &response.ErrorData{
			Code:    code,
			Message: message,
		},
	})
}
