package transport

import (
	"time"

	"github.com/ormawadev/orgapi/internal/pagination"
)

const codeSuccess = "SUCCESS"

// SuccessEnvelope is the uniform wrapper for every successful listing
// response. Data is always a JSON array, empty rather than null when the
// requested page is past the end of the result set.
type SuccessEnvelope struct {
	Data      any                 `json:"data"`
	Timestamp string              `json:"timestamp"`
	Code      string              `json:"code"`
	Metadata  pagination.Metadata `json:"metadata"`
}

// ErrorEnvelope is the uniform wrapper for every error response.
type ErrorEnvelope struct {
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
	Code      string `json:"code"`
	Metadata  any    `json:"metadata,omitempty"`
}

func NewSuccessEnvelope(data any, meta pagination.Metadata) SuccessEnvelope {
	return SuccessEnvelope{
		Data:      data,
		Timestamp: envelopeTimestamp(),
		Code:      codeSuccess,
		Metadata:  meta,
	}
}

func NewErrorEnvelope(message, code string, metadata any) ErrorEnvelope {
	return ErrorEnvelope{
		Error:     message,
		Timestamp: envelopeTimestamp(),
		Code:      code,
		Metadata:  metadata,
	}
}

func envelopeTimestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
