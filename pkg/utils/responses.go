package utils

import (
	"encoding/json"
	"net/http"

	"electrifind/pkg/apperr"
)

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Token   string `json:"token,omitempty"`
	User    any    `json:"user,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// ResponseJSON writes JSON response with custom status code
func ResponseJSON(w http.ResponseWriter, code int, response Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}

// ------------- Success responses -------------

// returns 200 OK
func ResponseSuccess(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusOK, Response{Success: true, Message: message, Data: data})
}

// returns 200 OK with data only (no message)
func ResponseData(w http.ResponseWriter, data any) {
	ResponseJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

// ResponseAuth returns token + user payload, used by register and login
func ResponseAuth(w http.ResponseWriter, code int, message, token string, user any) {
	ResponseJSON(w, code, Response{Success: true, Message: message, Token: token, User: user})
}

// ResponseToken returns a fresh token without user payload
func ResponseToken(w http.ResponseWriter, message, token string) {
	ResponseJSON(w, http.StatusOK, Response{Success: true, Message: message, Token: token})
}

// ------------- Error responses -------------

// returns 400 Bad Request
func ResponseBadRequest(w http.ResponseWriter, message string, errors any) {
	ResponseJSON(w, http.StatusBadRequest, Response{Error: message, Errors: errors})
}

// returns 401 Unauthorized
func ResponseUnauthorized(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusUnauthorized, Response{Error: message})
}

// returns 403 Forbidden
func ResponseForbidden(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusForbidden, Response{Error: message})
}

// returns 404 Not Found
func ResponseNotFound(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusNotFound, Response{Error: message})
}

// returns 409 Conflict
func ResponseConflict(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusConflict, Response{Error: message})
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusInternalServerError, Response{Error: message})
}

// ResponseError maps a service error to the matching status code.
// Every handler failure funnels through here.
func ResponseError(w http.ResponseWriter, err error) {
	message := apperr.MessageOf(err)

	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		ResponseBadRequest(w, message, nil)
	case apperr.KindUnauthorized:
		ResponseUnauthorized(w, message)
	case apperr.KindForbidden:
		ResponseForbidden(w, message)
	case apperr.KindNotFound:
		ResponseNotFound(w, message)
	case apperr.KindConflict:
		ResponseConflict(w, message)
	default:
		ResponseInternalError(w, "Internal server error")
	}
}
