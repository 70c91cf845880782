package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/San2021331091/Smart-Cart-Backend/pkg/errors"
)

// maxErrorBody bounds how much of a failed response is read.
const maxErrorBody = 1 << 20

// downstreamError accepts both `{"error":{"code":..,"message":..}}` and the
// flat `{"error":"Product not found"}` shape.
type downstreamError struct {
	Error json.RawMessage `json:"error"`
}

type structuredError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ParseResponseError consumes and closes the body of a non-2xx response and
// translates it into an AppError.
func ParseResponseError(resp *http.Response, serviceName string) error {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return apperrors.Upstream(serviceName, resp.StatusCode, fmt.Sprintf("read body: %v", err))
	}

	return mapDownstreamError(resp.StatusCode, errorMessage(body), serviceName)
}

func errorMessage(body []byte) string {
	var de downstreamError
	if json.Unmarshal(body, &de) == nil && len(de.Error) > 0 {
		var flat string
		if json.Unmarshal(de.Error, &flat) == nil {
			return flat
		}
		var structured structuredError
		if json.Unmarshal(de.Error, &structured) == nil && structured.Message != "" {
			return structured.Message
		}
	}
	return string(body)
}

func mapDownstreamError(status int, message, serviceName string) error {
	switch {
	case status == http.StatusNotFound:
		return apperrors.NotFound(serviceName, "resource")
	case status == http.StatusServiceUnavailable:
		return apperrors.ServiceUnavailable(serviceName, fmt.Errorf("%s", message))
	default:
		return apperrors.Upstream(serviceName, status, message)
	}
}

// IsClientError returns true if the HTTP status code is a 4xx client error.
func IsClientError(status int) bool {
	return status >= 400 && status < 500
}
