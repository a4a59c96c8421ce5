package response

import (
	"encoding/json"
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
)

type failureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func RenderMessage(rw http.ResponseWriter, msg string, status int) {
	Render(rw, MessageResponse{Success: true, Message: msg}, status)
}

func RenderUnauthorized(rw http.ResponseWriter) {
	RenderError(rw, "Invalid authentication token", http.StatusUnauthorized)
}

func RenderInternalError(rw http.ResponseWriter) {
	RenderError(rw, "Internal error", http.StatusInternalServerError)
}

func RenderInvalidRequest(rw http.ResponseWriter) {
	RenderError(rw, "Invalid request data", http.StatusBadRequest)
}

// RenderValidationError renders ozzo validation errors as a 400 failure with
// a message naming the offending fields.
func RenderValidationError(rw http.ResponseWriter, err error) {
	var errs validation.Errors
	if errors.As(err, &errs) {
		RenderError(rw, errs.Error(), http.StatusBadRequest)
		return
	}
	RenderInvalidRequest(rw)
}

func RenderError(rw http.ResponseWriter, msg string, status int) {
	Render(rw, failureResponse{Success: false, Message: msg}, status)
}

func Render(rw http.ResponseWriter, res interface{}, status int) {
	rw.Header().Set("Content-Type", "application/json")

	content, err := json.Marshal(res)
	if err != nil {
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}

	rw.WriteHeader(status)
	rw.Write(content)
}
