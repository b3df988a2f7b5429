package response

import (
	"encoding/json"
	"net/http"
)

type Response[T any] struct {
	Status  int    `json:"status"`
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
	Error   T      `json:"error,omitempty"`
}

// Message is the body of endpoints that only confirm an action.
type Message struct {
	Message string `json:"message"`
}

// JSONOk writes v as the whole 200 body.
func JSONOk(w http.ResponseWriter, v any) error {
	return JSONWithStatus(w, http.StatusOK, v, nil)
}

func JSONOkMessage(w http.ResponseWriter, message string) error {
	return JSONWithStatus(w, http.StatusOK, Message{Message: message}, nil)
}

// JSONWithStatus writes v as the whole body. Success payloads are sent this way; errors use the envelope.
func JSONWithStatus(w http.ResponseWriter, status int, v any, headers http.Header) error {
	js, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return err
	}

	writeJSON(w, status, js, headers)
	return nil
}

func JSONErrorResponse(w http.ResponseWriter, err any, message string, status int, headers http.Header) error {
	if message == "" {
		message = "Request failed"
	}
	if status == 0 {
		status = http.StatusInternalServerError
	}
	response := &Response[any]{
		Status:  status,
		Success: false,
		Message: message,
		Error:   err,
	}

	return JSONWithHeaders(w, response, headers)
}

func JSONWithHeaders[T any](w http.ResponseWriter, response *Response[T], headers http.Header) error {
	js, err := json.MarshalIndent(response, "", "\t")
	if err != nil {
		return err
	}

	writeJSON(w, response.Status, js, headers)
	return nil
}

func writeJSON(w http.ResponseWriter, status int, js []byte, headers http.Header) {
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	w.Write(js)
}
