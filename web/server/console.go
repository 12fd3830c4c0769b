package server

import (
	"bytes"
	"strings"
	"time"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "debug", "info", "warning", "error"
}

// ConsoleWriter is a log sink that forwards each line to a channel read by
// the event stream. Sends never block; lines are dropped when the channel
// is full.
type ConsoleWriter struct {
	messages chan ConsoleMessage
}

// NewConsoleWriter creates a writer buffering up to size messages
func NewConsoleWriter(size int) *ConsoleWriter {
	return &ConsoleWriter{messages: make(chan ConsoleMessage, size)}
}

// Messages returns the channel consumed by the server
func (cw *ConsoleWriter) Messages() <-chan ConsoleMessage {
	return cw.messages
}

// Write implements io.Writer
func (cw *ConsoleWriter) Write(p []byte) (int, error) {
	for _, line := range bytes.Split(bytes.TrimRight(p, "\n"), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		message := string(line)
		select {
		case cw.messages <- ConsoleMessage{
			Message:   message,
			Timestamp: time.Now(),
			Level:     levelOf(message),
		}:
		default:
			// Channel full, skip (don't block)
		}
	}
	return len(p), nil
}

// levelOf extracts the level from a formatted log line
func levelOf(message string) string {
	switch {
	case strings.Contains(message, "[ERROR]"), strings.Contains(message, "[CRITICAL]"):
		return "error"
	case strings.Contains(message, "[WARNING]"):
		return "warning"
	case strings.Contains(message, "[DEBUG]"):
		return "debug"
	default:
		return "info"
	}
}
