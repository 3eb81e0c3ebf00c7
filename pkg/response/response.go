// pkg/response/response.go
package response

import (
	"encoding/json"
	"net/http"
)

// Envelope is the fixed response shape for every API endpoint.
// Failure bodies carry a stable machine-readable code; data is omitted
// when nil so failure payloads stay minimal.
type Envelope struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func OK(data any) Envelope {
	return Envelope{Success: true, Code: "OK", Message: "Request successful", Data: data}
}

func Fail(code, message string) Envelope {
	return Envelope{Success: false, Code: code, Message: message}
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteOK writes a 200 success envelope.
func WriteOK(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, OK(data))
}

// WriteFail writes a failure envelope with the given HTTP status.
func WriteFail(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, Fail(code, message))
}
