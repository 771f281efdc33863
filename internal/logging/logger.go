package logging

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/gin-gonic/gin"
)

var (
	level = new(slog.LevelVar)

	outputMu sync.RWMutex
	// stdout is left to command output, hidden images are often piped through it
	output io.Writer = os.Stderr
)

type Logger struct {
	*slog.Logger
}

// SetLevel accepts the slog level names, e.g. debug, info, warn or error
func SetLevel(name string) error {
	return level.UnmarshalText([]byte(name))
}

func SetOutput(w io.Writer) {
	outputMu.Lock()
	defer outputMu.Unlock()
	output = w
}

func BuildLogger() *Logger {
	outputMu.RLock()
	defer outputMu.RUnlock()
	return &Logger{Logger: slog.New(slog.NewJSONHandler(output, &slog.HandlerOptions{Level: level}))}
}

func BuildLoggerFromCtx(ctx *gin.Context) *Logger {
	logger := BuildLogger()
	return &Logger{Logger: logger.With("path", ctx.Request.URL.Path)}
}

func (l *Logger) WithError(err error) *Logger {
	modifiedLogger := Logger{Logger: l.With("error", err.Error())}
	return &modifiedLogger
}
