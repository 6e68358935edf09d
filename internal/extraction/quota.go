package extraction

import (
	"errors"
	"strings"
)

var quotaMarkers = []string{
	"429",
	"quota",
	"rate limit",
	"resource has been exhausted",
	"too many requests",
}

// IsQuotaMessage reports whether msg reads like a quota or rate-limit failure.
func IsQuotaMessage(msg string) bool {
	lower := strings.ToLower(msg)
	for _, m := range quotaMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// IsQuotaError reports whether err is a rate-limit failure, either by category
// or by its message.
func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}
	var ee *ExtractionError
	if errors.As(err, &ee) && ee.Category == CategoryRateLimited {
		return true
	}
	return IsQuotaMessage(err.Error())
}
