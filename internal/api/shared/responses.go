package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/tourbase/tours-api/internal/redact"
)

// Envelope is the response shape every endpoint speaks:
// {status: "success"|"fail"|"error", results?, token?, data?, message?}.
// "fail" covers client errors, "error" covers server errors.
type Envelope struct {
	Status  string `json:"status"`
	Results *int   `json:"results,omitempty"`
	Token   string `json:"token,omitempty"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// statusWord maps an HTTP status code to the envelope status field.
func statusWord(status int) string {
	switch {
	case status < http.StatusBadRequest:
		return "success"
	case status < http.StatusInternalServerError:
		return "fail"
	default:
		return "error"
	}
}

// writeJSON writes the envelope with the given status code.
func writeJSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithData writes a success envelope wrapping data.
func RespondWithData(w http.ResponseWriter, r *http.Request, status int, data any) {
	writeJSON(w, status, Envelope{Status: statusWord(status), Data: data})
}

// RespondWithList writes a success envelope wrapping a list payload,
// with the results count alongside the data.
func RespondWithList(w http.ResponseWriter, r *http.Request, status, results int, data any) {
	writeJSON(w, status, Envelope{Status: statusWord(status), Results: &results, Data: data})
}

// RespondWithToken writes a success envelope carrying a freshly issued
// credential, optionally with data.
func RespondWithToken(w http.ResponseWriter, r *http.Request, status int, token string, data any) {
	writeJSON(w, status, Envelope{Status: statusWord(status), Token: token, Data: data})
}

// RespondWithError writes a fail/error envelope with the given message.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	slog.Debug("sending error response",
		"status_code", status,
		"message", message,
		"path", r.URL.Path,
		"method", r.Method)

	writeJSON(w, status, Envelope{Status: statusWord(status), Message: message})
}

// RespondWithErrorAndLog writes a sanitized fail/error envelope and logs the
// underlying error with its details redacted. 5xx responses log at ERROR,
// everything else at DEBUG; the raw error never reaches the client.
func RespondWithErrorAndLog(w http.ResponseWriter, r *http.Request, status int, userMessage string, err error) {
	logAttrs := []slog.Attr{
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}
	slog.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	writeJSON(w, status, Envelope{Status: statusWord(status), Message: userMessage})
}
