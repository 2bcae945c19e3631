package logging

import (
	"log/slog"
	"sort"
)

// SlogAdapter bridges an slog.Logger to the dispatch Logger contract.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter wraps the given logger. A nil logger falls back to slog.Default.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

// Log emits one record at the given level with fields as attributes.
// Field keys are sorted so records are stable across runs.
func (a *SlogAdapter) Log(level, message string, fields map[string]interface{}) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]any, 0, len(fields)*2)
	for _, k := range keys {
		attrs = append(attrs, k, fields[k])
	}

	switch level {
	case "DEBUG":
		a.logger.Debug(message, attrs...)
	case "WARN":
		a.logger.Warn(message, attrs...)
	case "ERROR":
		a.logger.Error(message, attrs...)
	default:
		a.logger.Info(message, attrs...)
	}
}
