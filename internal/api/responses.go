// Package api defines the uniform response envelope shared by all HTTP
// handlers: {"status": "success"|"error", "data"|"message": ...}.
package api

// SuccessResponse is the envelope for successful operations.
type SuccessResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
}

// ErrorResponse is the envelope for failed operations. Message carries only
// user-facing text; internal detail stays in the logs.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Success wraps data in a success envelope.
func Success(data interface{}) SuccessResponse {
	return SuccessResponse{Status: "success", Data: data}
}

// Error wraps a user-facing message in an error envelope.
func Error(message string) ErrorResponse {
	return ErrorResponse{Status: "error", Message: message}
}
