package docsite

import (
	"encoding/json"
	"net/http"
)

// Response is the JSON envelope of every API answer.
type Response struct {
	Data  any          `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail describes a rejected request.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

// HTTPError is an API failure with its status code and machine-readable key.
type HTTPError struct {
	Code int
	Key  string
}

func (e HTTPError) Error() string {
	return e.Key
}

var (
	ErrBadRequest        = HTTPError{Code: http.StatusBadRequest, Key: "bad_request"}
	ErrNotFound          = HTTPError{Code: http.StatusNotFound, Key: "not_found"}
	ErrUnsupportedLocale = HTTPError{Code: http.StatusUnprocessableEntity, Key: "unsupported_locale"}
)

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Response{Data: data})
}

func writeError(w http.ResponseWriter, err HTTPError, msg string) {
	if msg == "" {
		msg = http.StatusText(err.Code)
	}
	writeJSON(w, err.Code, Response{Error: &ErrorDetail{Code: err.Key, Message: msg}})
}
