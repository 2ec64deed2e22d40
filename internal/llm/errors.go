package llm

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// UpstreamError is a non-success reply from the generation provider.
// Quota marks rate-limit/billing failures so handlers can answer 429.
type UpstreamError struct {
	Status  int
	Message string
	Quota   bool
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("generation provider status %d: %s", e.Status, e.Message)
}

// IsQuotaExceeded reports whether err is an upstream quota/billing failure.
func IsQuotaExceeded(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue) && ue.Quota
}

var quotaPatterns = []string{
	"quota",
	"billing",
	"rate limit",
	"rate_limit",
	"insufficient_quota",
}

func isQuotaMessage(status int, msg string) bool {
	if status == http.StatusTooManyRequests {
		return true
	}
	msg = strings.ToLower(msg)
	for _, p := range quotaPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

var unsupportedToolPatterns = []string{
	"unsupported tool",
	"tool is not supported",
	"tools are not supported",
	"does not support tools",
	"unsupported feature",
	"unknown parameter: 'tools'",
}

// retryWithoutTools reports whether the failure message is the
// unsupported-tool/feature rejection that warrants the one retry.
func retryWithoutTools(msg string) bool {
	msg = strings.ToLower(msg)
	for _, p := range unsupportedToolPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}
