package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// JSONLogger writes one JSON object per log call. It implements types.Logger
// for environments without a terminal, such as Lambda.
type JSONLogger struct {
	logger zerolog.Logger
}

// NewJSONLogger creates a logger writing to stdout with the given component name.
func NewJSONLogger(component string) *JSONLogger {
	return NewJSONLoggerWithWriter(os.Stdout, component, os.Getenv("LOG_LEVEL"))
}

// NewJSONLoggerWithWriter creates a logger on w. An empty or unknown level means info.
func NewJSONLoggerWithWriter(w io.Writer, component, level string) *JSONLogger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	logger := zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Str("component", component).
		Logger()

	return &JSONLogger{logger: logger}
}

// With returns a child logger carrying an extra string field.
func (l *JSONLogger) With(key, value string) *JSONLogger {
	return &JSONLogger{logger: l.logger.With().Str(key, value).Logger()}
}

// LogInfo registra uma mensagem de informação.
func (l *JSONLogger) LogInfo(format string, a ...interface{}) {
	l.logger.Info().Msg(fmt.Sprintf(format, a...))
}

// LogWarning registra uma mensagem de aviso.
func (l *JSONLogger) LogWarning(format string, a ...interface{}) {
	l.logger.Warn().Msg(fmt.Sprintf(format, a...))
}

// LogError registra uma mensagem de erro.
func (l *JSONLogger) LogError(format string, a ...interface{}) {
	l.logger.Error().Msg(fmt.Sprintf(format, a...))
}

// LogSuccess registra uma mensagem de sucesso.
func (l *JSONLogger) LogSuccess(format string, a ...interface{}) {
	l.logger.Info().Bool("success", true).Msg(fmt.Sprintf(format, a...))
}
