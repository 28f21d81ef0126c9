package http

import (
	"encoding/json"
	"net/http"
)

// body is the JSON shape of every response: {"data": ...} on success,
// {"message": ..., "errors": [...]} on failure.
type body struct {
	Data    any      `json:"data,omitempty"`
	Message string   `json:"message,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// Response writes JSON bodies to an http.ResponseWriter.
type Response struct {
	w http.ResponseWriter
}

func NewResponse(w http.ResponseWriter) *Response {
	return &Response{w: w}
}

// JSON encodes v with the given status.
//
//	res.JSON(http.StatusOK, map[string]any{"message": "ok"})
func (res *Response) JSON(status int, v any) {
	res.w.Header().Set("Content-Type", "application/json")
	res.w.WriteHeader(status)
	_ = json.NewEncoder(res.w).Encode(v)
}

// Success sends 200 {"data": v}.
func (res *Response) Success(v any) {
	res.JSON(http.StatusOK, body{Data: v})
}

// Error sends {"message": message} with status.
func (res *Response) Error(status int, message string) {
	res.JSON(status, body{Message: message})
}

func (res *Response) BadRequest(message string) {
	res.Error(http.StatusBadRequest, message)
}

func (res *Response) NotFound(message string) {
	res.Error(http.StatusNotFound, message)
}

// Unprocessable sends 422 with a summary and one entry per failure.
func (res *Response) Unprocessable(message string, errs []string) {
	res.JSON(http.StatusUnprocessableEntity, body{Message: message, Errors: errs})
}
