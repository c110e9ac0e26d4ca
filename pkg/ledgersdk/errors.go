package ledgersdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error codes used in ErrorResponse.Code.
const (
	ErrorCodeValidation  = "validation_error"
	ErrorCodeNotFound    = "not_found"
	ErrorCodeConflict    = "conflict"
	ErrorCodeBadRequest  = "bad_request"
	ErrorCodeDispatch    = "dispatch_error"
	ErrorCodeServerError = "server_error"
	ErrorCodeRateLimited = "rate_limited"
)

// APIError is the error the SDK client returns for any non-2xx
// response. It keeps the HTTP status alongside the server's envelope.
type APIError struct {
	StatusCode int               `json:"-"`
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Code, e.StatusCode, e.Message)
}

// parseErrorResponse converts a failed HTTP response body into an APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var envelope ErrorResponse
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Code == "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       ErrorCodeServerError,
			Message:    resp.Status,
		}
	}
	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       envelope.Code,
		Message:    envelope.Message,
		Details:    envelope.Details,
	}
}
