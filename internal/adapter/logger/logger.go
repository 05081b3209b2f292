package logger

import (
	"log/slog"
	"os"
)

// LoggerAdapter implements ports.LoggerPort on slog: JSON output in
// production, text everywhere else.
type LoggerAdapter struct {
	log *slog.Logger
}

func NewLoggerAdapter(env string) *LoggerAdapter {
	var handler slog.Handler
	if env == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return &LoggerAdapter{log: slog.New(handler)}
}

func (l *LoggerAdapter) Debug(message string, fields map[string]interface{}) {
	l.log.Debug(message, attrs(fields)...)
}

func (l *LoggerAdapter) Info(message string, fields map[string]interface{}) {
	l.log.Info(message, attrs(fields)...)
}

func (l *LoggerAdapter) Warn(message string, fields map[string]interface{}) {
	l.log.Warn(message, attrs(fields)...)
}

func (l *LoggerAdapter) Error(message string, fields map[string]interface{}) {
	l.log.Error(message, attrs(fields)...)
}

func attrs(fields map[string]interface{}) []any {
	out := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		out = append(out, k, v)
	}
	return out
}
