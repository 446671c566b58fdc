package respond

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Machine-readable error kinds carried alongside the user-facing
// message so callers can tell bad input from an upstream failure.
const (
	CodeValidation = "VALIDATION"
	CodeAuth       = "AUTH"
	CodeUpstream   = "UPSTREAM"
	CodeInternal   = "INTERNAL"
)

// Envelope is the standard API response wrapper used across handlers.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Token   string `json:"token,omitempty"`
	User    any    `json:"user,omitempty"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// Success writes a 200 envelope carrying data.
func Success(w http.ResponseWriter, data any) {
	write(w, http.StatusOK, Envelope{Success: true, Data: data})
}

// Token writes the login success shape: token plus a trimmed user echo.
func Token(w http.ResponseWriter, token string, user any) {
	write(w, http.StatusOK, Envelope{Success: true, Token: token, User: user})
}

// Error writes a failure envelope with the shared structure.
func Error(w http.ResponseWriter, status int, code, message string) {
	write(w, status, Envelope{Success: false, Message: message, Code: code})
}

func write(w http.ResponseWriter, status int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("respond: encode payload failed")
	}
}
