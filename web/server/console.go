package server

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/df07/go-wknder/pkg/core"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// WebLogger implements core.Logger by forwarding renderer progress to a
// console channel and the server log
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
	logger      *slog.Logger
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage, logger *slog.Logger) core.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
		logger:      logger,
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	wl.logger.Debug(strings.TrimRight(message, "\n"), "render", wl.renderID)

	if wl.consoleChan != nil {
		select {
		case wl.consoleChan <- ConsoleMessage{
			Message:   message,
			Timestamp: time.Now(),
			Level:     "info",
		}:
		default:
			// Channel full, drop rather than stall a render worker
		}
	}
}
