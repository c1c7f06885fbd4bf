package hostfuncs

import (
	"encoding/json"
	"fmt"

	"github.com/motoko-tools/ttlex/domain/entities"
)

// Error codes carried by ErrorResponse.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeInternal   = "INTERNAL_ERROR"
)

// ErrorResponse is the JSON a host function returns instead of trapping.
// It uses the same {"error": {"message": ...}} shape as guest responses.
type ErrorResponse struct {
	Error entities.ErrorDetail `json:"error"`
	Code  string               `json:"code"`
}

// ToJSON serializes the response. It cannot fail for this type.
func (e ErrorResponse) ToJSON() []byte {
	data, _ := json.Marshal(e)
	return data
}

// NewValidationError reports a malformed payload.
func NewValidationError(message string) ErrorResponse {
	return ErrorResponse{Code: CodeValidation, Error: entities.ErrorDetail{Message: message}}
}

// NewNotFoundError reports an unknown host function.
func NewNotFoundError(name string) ErrorResponse {
	return ErrorResponse{Code: CodeNotFound, Error: entities.ErrorDetail{Message: "unknown host function: " + name}}
}

// NewPanicError reports a panic contained in a host function.
func NewPanicError(panicValue any) ErrorResponse {
	return ErrorResponse{Code: CodeInternal, Error: entities.ErrorDetail{Message: fmt.Sprintf("panic: %v", panicValue)}}
}
