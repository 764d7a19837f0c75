package log

import (
	"time"

	"go.uber.org/zap"
)

// HTTPLogEntry describes one outbound request made to the chart service
type HTTPLogEntry struct {
	RequestID string
	Method    string
	URL       string
	Status    int
	Duration  time.Duration
	Size      int
	Err       error
}

// LogHTTPRequest writes an outbound request entry to the given logger. Failed
// requests are logged at error level, everything else at debug.
func LogHTTPRequest(logger *zap.SugaredLogger, entry HTTPLogEntry) {
	if logger == nil {
		logger = GetSugaredLogger()
	}

	fields := []interface{}{
		"request_id", entry.RequestID,
		"method", entry.Method,
		"url", entry.URL,
		"status", entry.Status,
		"duration", entry.Duration,
		"size", entry.Size,
	}

	if entry.Err != nil {
		logger.Errorw("chart service request failed", append(fields, "error", entry.Err)...)
		return
	}
	logger.Debugw("chart service request", fields...)
}
